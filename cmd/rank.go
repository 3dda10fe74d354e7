package cmd

import (
	"log"

	"github.com/katalyzeAI/dsrna-designer/config"
	"github.com/katalyzeAI/dsrna-designer/internal/design"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rankCandidatesPath string
var rankScreenPath string
var rankGenesPath string
var rankOutPath string

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Combine design, screening, and essentiality into the final ranking",
	Long: `Score each candidate's efficacy from its GC content, homopolymer runs,
design score, and gene essentiality, multiply by its off-target safety
score, and write the candidates ranked by the combined score`,
	Run: func(cmd *cobra.Command, args []string) {
		viper.BindPFlags(cmd.Flags())
		c := config.New()

		candidates, err := design.ReadCandidates(rankCandidatesPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		report, err := design.ReadScreenReport(rankScreenPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		genes, err := design.ReadGeneMatches(rankGenesPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		scored := design.Rank(candidates, report.Results, genes, design.Thresholds{
			Caution: c.CautionThreshold,
			Reject:  c.RejectThreshold,
		})

		if err := design.Write(rankOutPath, scored); err != nil {
			log.Fatalf("%v", err)
		}

		design.Summarize(scored)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&rankCandidatesPath, "candidates", "c", "", "path to the raw candidates from \"design\"")
	rankCmd.Flags().StringVarP(&rankScreenPath, "screen", "s", "", "path to the screening report from \"screen\"")
	rankCmd.Flags().StringVarP(&rankGenesPath, "genes", "g", "", "path to the ranked gene list from \"genes\"")
	rankCmd.Flags().StringVarP(&rankOutPath, "out", "o", "", "path to write the ranked candidates to")
	rankCmd.Flags().Int("caution-threshold", 15, "minimum off-target match (bp) for the caution tier")
	rankCmd.Flags().Int("reject-threshold", 19, "minimum off-target match (bp) for the reject tier")

	rankCmd.MarkFlagRequired("candidates")
	rankCmd.MarkFlagRequired("screen")
	rankCmd.MarkFlagRequired("genes")
	rankCmd.MarkFlagRequired("out")
}
