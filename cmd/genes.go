package cmd

import (
	"log"

	"github.com/katalyzeAI/dsrna-designer/config"
	"github.com/katalyzeAI/dsrna-designer/internal/design"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var genomePath string
var essentialDBPath string
var literaturePath string
var genesOutPath string

// genesCmd represents the genes command
var genesCmd = &cobra.Command{
	Use:   "genes",
	Short: "Match curated essential genes against a target genome and rank them",
	Long: `Scan the target genome's CDS annotations for each gene in the curated
essential-gene database, score each match by its essentiality evidence
(ortholog match, literature support, cross-species essentiality), and
write the ranked gene list consumed by "design"`,
	Run: func(cmd *cobra.Command, args []string) {
		viper.BindPFlags(cmd.Flags())
		c := config.New()

		essential, err := design.ReadEssentialGenes(essentialDBPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		literatureGenes, err := design.ReadLiteratureGenes(literaturePath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		log.Printf("loaded %d essential genes from database", len(essential))
		log.Printf("found %d genes in literature", len(literatureGenes))

		genome, err := design.ReadGenome(genomePath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("loaded %d sequences from genome", len(genome))

		matches := design.MatchGenes(essential, genome, literatureGenes, c.MaxResults)

		if err := design.Write(genesOutPath, matches); err != nil {
			log.Fatalf("%v", err)
		}

		log.Printf("found %d essential gene matches", len(matches))
		for i, m := range matches {
			if i >= 5 {
				break
			}
			log.Printf("  %d. %s: %.2f", i+1, m.GeneName, m.Score)
		}
	},
}

func init() {
	rootCmd.AddCommand(genesCmd)

	genesCmd.Flags().StringVarP(&genomePath, "genome", "g", "", "path to the target genome's CDS FASTA file")
	genesCmd.Flags().StringVarP(&essentialDBPath, "essential-db", "e", "", "path to the curated essential-gene JSON database")
	genesCmd.Flags().StringVarP(&literaturePath, "literature", "l", "", "path to literature search results JSON (optional)")
	genesCmd.Flags().StringVarP(&genesOutPath, "out", "o", "", "path to write the ranked gene list to")
	genesCmd.Flags().Int("max-results", 20, "maximum number of gene matches to keep")

	genesCmd.MarkFlagRequired("genome")
	genesCmd.MarkFlagRequired("essential-db")
	genesCmd.MarkFlagRequired("out")
}
