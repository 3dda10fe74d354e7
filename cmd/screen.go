package cmd

import (
	"log"

	"github.com/katalyzeAI/dsrna-designer/config"
	"github.com/katalyzeAI/dsrna-designer/internal/design"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var screenCandidatesPath string
var screenDBDir string
var screenOutPath string

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen candidates for off-target homology with BLAST",
	Long: `Run every candidate as a blastn query against the human and honeybee
CDS databases and classify each by its longest off-target match:
safe below the caution threshold, caution below the reject threshold,
reject at or above it. A candidate whose query times out is an error
and is treated as unsafe`,
	Run: func(cmd *cobra.Command, args []string) {
		viper.BindPFlags(cmd.Flags())
		c := config.New()

		candidates, err := design.ReadCandidates(screenCandidatesPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		report, err := design.Screen(candidates, design.ScreenConfig{
			DBDir:       screenDBDir,
			Blastn:      c.Blastn,
			Timeout:     c.BlastTimeout(),
			Concurrency: c.Concurrency,
			Thresholds: design.Thresholds{
				Caution: c.CautionThreshold,
				Reject:  c.RejectThreshold,
			},
		})
		if err != nil {
			log.Fatalf("%v", err)
		}

		if err := design.Write(screenOutPath, report); err != nil {
			log.Fatalf("%v", err)
		}

		safe, caution, reject, errored := design.Tally(report.Results)
		log.Printf("screened %d candidates", len(report.Results))
		log.Printf("  safe: %d", safe)
		log.Printf("  caution: %d", caution)
		log.Printf("  rejected: %d", reject)
		if errored > 0 {
			log.Printf("  errors: %d", errored)
		}
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVarP(&screenCandidatesPath, "candidates", "c", "", "path to the raw candidates from \"design\"")
	screenCmd.Flags().StringVarP(&screenDBDir, "db-dir", "d", "", "directory containing the human_cds and honeybee_cds BLAST databases")
	screenCmd.Flags().StringVarP(&screenOutPath, "out", "o", "", "path to write the screening report to")
	screenCmd.Flags().Int("timeout", 60, "seconds allowed per BLAST query per database")
	screenCmd.Flags().Int("concurrency", 1, "number of candidates screened concurrently")
	screenCmd.Flags().Int("caution-threshold", 15, "minimum off-target match (bp) for the caution tier")
	screenCmd.Flags().Int("reject-threshold", 19, "minimum off-target match (bp) for the reject tier")
	screenCmd.Flags().String("blastn", "blastn", "name of or path to the blastn executable")

	screenCmd.MarkFlagRequired("candidates")
	screenCmd.MarkFlagRequired("db-dir")
	screenCmd.MarkFlagRequired("out")
}
