package cmd

import (
	"log"
	"path/filepath"

	"github.com/katalyzeAI/dsrna-designer/config"
	"github.com/katalyzeAI/dsrna-designer/internal/design"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runGenomePath string
var runEssentialDBPath string
var runLiteraturePath string
var runDBDir string
var runOutDir string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole design pipeline over one output directory",
	Long: `Run genes, design, screen, and rank in sequence, writing each stage's
artifact into the output directory:

  essential_genes.json    ranked essential-gene matches
  candidates.json         raw dsRNA candidates
  offtarget.json          off-target screening report
  ranked_candidates.json  final ranked candidates`,
	Run: func(cmd *cobra.Command, args []string) {
		viper.BindPFlags(cmd.Flags())
		c := config.New()

		essential, err := design.ReadEssentialGenes(runEssentialDBPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		literatureGenes, err := design.ReadLiteratureGenes(runLiteraturePath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		genome, err := design.ReadGenome(runGenomePath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		genes := design.MatchGenes(essential, genome, literatureGenes, c.MaxResults)
		if err := design.Write(filepath.Join(runOutDir, "essential_genes.json"), genes); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("matched %d essential genes", len(genes))

		candidates := design.DesignCandidates(genes, c.NumGenes, design.Params{
			WindowLength:      c.WindowLength,
			StepSize:          c.StepSize,
			CandidatesPerGene: c.CandidatesPerGene,
		})
		if err := design.Write(filepath.Join(runOutDir, "candidates.json"), candidates); err != nil {
			log.Fatalf("%v", err)
		}

		thresholds := design.Thresholds{
			Caution: c.CautionThreshold,
			Reject:  c.RejectThreshold,
		}

		report, err := design.Screen(candidates, design.ScreenConfig{
			DBDir:       runDBDir,
			Blastn:      c.Blastn,
			Timeout:     c.BlastTimeout(),
			Concurrency: c.Concurrency,
			Thresholds:  thresholds,
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := design.Write(filepath.Join(runOutDir, "offtarget.json"), report); err != nil {
			log.Fatalf("%v", err)
		}

		scored := design.Rank(candidates, report.Results, genes, thresholds)
		if err := design.Write(filepath.Join(runOutDir, "ranked_candidates.json"), scored); err != nil {
			log.Fatalf("%v", err)
		}

		design.Summarize(scored)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runGenomePath, "genome", "g", "", "path to the target genome's CDS FASTA file")
	runCmd.Flags().StringVarP(&runEssentialDBPath, "essential-db", "e", "", "path to the curated essential-gene JSON database")
	runCmd.Flags().StringVarP(&runLiteraturePath, "literature", "l", "", "path to literature search results JSON (optional)")
	runCmd.Flags().StringVarP(&runDBDir, "db-dir", "d", "", "directory containing the human_cds and honeybee_cds BLAST databases")
	runCmd.Flags().StringVarP(&runOutDir, "dir", "o", "", "directory to write all pipeline artifacts to")

	runCmd.MarkFlagRequired("genome")
	runCmd.MarkFlagRequired("essential-db")
	runCmd.MarkFlagRequired("db-dir")
	runCmd.MarkFlagRequired("dir")
}
