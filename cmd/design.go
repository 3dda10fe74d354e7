package cmd

import (
	"log"

	"github.com/katalyzeAI/dsrna-designer/config"
	"github.com/katalyzeAI/dsrna-designer/internal/design"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var designGenesPath string
var designOutPath string

// designCmd represents the design command
var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Design dsRNA candidate windows for the top-ranked genes",
	Long: `Slide a scoring window across each of the top genes from "genes",
score every position for GC content, homopolymer runs, and distance from
the gene's ends, and keep the best non-overlapping windows per gene`,
	Run: func(cmd *cobra.Command, args []string) {
		viper.BindPFlags(cmd.Flags())
		c := config.New()

		genes, err := design.ReadGeneMatches(designGenesPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		candidates := design.DesignCandidates(genes, c.NumGenes, design.Params{
			WindowLength:      c.WindowLength,
			StepSize:          c.StepSize,
			CandidatesPerGene: c.CandidatesPerGene,
		})

		if err := design.Write(designOutPath, candidates); err != nil {
			log.Fatalf("%v", err)
		}

		log.Printf("designed %d total candidates", len(candidates))
	},
}

func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().StringVarP(&designGenesPath, "genes", "g", "", "path to the ranked gene list from \"genes\"")
	designCmd.Flags().StringVarP(&designOutPath, "out", "o", "", "path to write the raw candidates to")
	designCmd.Flags().Int("num-genes", 5, "number of top genes to design candidates for")
	designCmd.Flags().Int("candidates-per-gene", 3, "number of candidates to select per gene")
	designCmd.Flags().Int("length", 300, "dsRNA candidate length in bp")
	designCmd.Flags().Int("step", 50, "bp between the starts of successive windows")

	designCmd.MarkFlagRequired("genes")
	designCmd.MarkFlagRequired("out")
}
