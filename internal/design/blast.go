package design

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fixed blastn parameters for short off-target queries. Word size 7
// makes blastn sensitive enough to find the short (15-21 bp) matches
// the safety thresholds are written in terms of.
const (
	blastWordSize   = 7
	blastEvalue     = 10
	blastMaxTargets = 100
)

// the two non-target databases every candidate is screened against
const (
	humanDB    = "human_cds"
	honeybeeDB = "honeybee_cds"
)

// index file extensions that mark a formatted blast nucleotide database
var blastDBExtensions = []string{".nhr", ".nin", ".nsq", ".ndb", ".nto"}

// errBlastTimeout marks a query that exceeded its time budget. Not
// retried: the candidate is classified as an error and fails closed.
var errBlastTimeout = errors.New("blast query timed out")

// Thresholds are the off-target classification bands in bp of maximum
// alignment length. Defaults (15 caution, 19 reject) come from
// regulatory guidance on off-target homology; overriding them is
// allowed but must be explicit.
type Thresholds struct {
	Caution int
	Reject  int
}

// Classify maps a maximum off-target match length to a safety tier.
func (t Thresholds) Classify(maxMatch int) (status string, safe bool) {
	switch {
	case maxMatch >= t.Reject:
		return StatusReject, false
	case maxMatch >= t.Caution:
		return StatusCaution, true
	default:
		return StatusSafe, true
	}
}

// SafetyScore is the numeric form of Classify: a step function, never
// interpolated. reject = 0.0, caution = 0.7, safe = 1.0.
func (t Thresholds) SafetyScore(maxMatch int) float64 {
	switch {
	case maxMatch >= t.Reject:
		return 0.0
	case maxMatch >= t.Caution:
		return 0.7
	default:
		return 1.0
	}
}

// report reports the bands in the human-readable form the screening
// artifact carries.
func (t Thresholds) report() ReportThresholds {
	return ReportThresholds{
		Safe:    fmt.Sprintf("<%d bp", t.Caution),
		Caution: fmt.Sprintf("%d-%d bp", t.Caution, t.Reject-1),
		Reject:  fmt.Sprintf(">=%d bp", t.Reject),
	}
}

// ScreenConfig configures one off-target screening run.
type ScreenConfig struct {
	// DBDir is the directory holding the human_cds and honeybee_cds
	// blast databases
	DBDir string

	// Blastn is the name of or path to the blastn executable
	Blastn string

	// Timeout is the budget per query per database
	Timeout time.Duration

	// Concurrency is how many candidates are screened at once
	Concurrency int

	Thresholds Thresholds
}

// searchFunc runs one query file against one database and returns the
// maximum alignment length over all reported hits (0 when none). It is
// the seam for substituting another local aligner; the default is
// blastn with the fixed word-size-7 procedure.
type searchFunc func(ctx context.Context, queryFile, db string) (int, error)

// screener runs the off-target screen for a batch of candidates.
type screener struct {
	cfg    ScreenConfig
	search searchFunc
}

// Screen BLASTs every candidate against the human and honeybee CDS
// databases and classifies the results. Preconditions (blastn present,
// both databases formatted) are checked before any query runs: partial
// screening against one database is unsafe to rely on, so their absence
// is fatal for the whole run.
func Screen(candidates []Candidate, cfg ScreenConfig) (*ScreenReport, error) {
	// make sure the blastn executable exists
	if _, err := exec.LookPath(cfg.Blastn); err != nil {
		return nil, fmt.Errorf("failed to find a blastn executable (%s): %w", cfg.Blastn, err)
	}

	// make sure both dbs exist
	for _, db := range []string{humanDB, honeybeeDB} {
		if !blastDBExists(filepath.Join(cfg.DBDir, db)) {
			return nil, fmt.Errorf("failed to find a blast database at %s", filepath.Join(cfg.DBDir, db))
		}
	}

	s := &screener{cfg: cfg}
	s.search = s.blast

	return s.screen(candidates), nil
}

// screen fans the candidates out over a bounded worker pool and
// collects results by index, so output order always matches input
// order regardless of concurrency.
func (s *screener) screen(candidates []Candidate) *ScreenReport {
	stderr.Printf("screening %d candidates against:", len(candidates))
	stderr.Printf("  - human CDS: %s", filepath.Join(s.cfg.DBDir, humanDB))
	stderr.Printf("  - honeybee CDS: %s", filepath.Join(s.cfg.DBDir, honeybeeDB))

	workers := s.cfg.Concurrency
	if workers < 1 {
		workers = 1
	}

	results := make([]OffTarget, len(candidates))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, c := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c Candidate) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.screenOne(c)
		}(i, c)
	}
	wg.Wait()

	for _, r := range results {
		switch r.SafetyStatus {
		case StatusSafe:
			stderr.Printf("  %s: safe (max match: %d bp)", r.CandidateID, r.MaxMatch)
		case StatusCaution:
			stderr.Printf("  %s: caution (max match: %d bp)", r.CandidateID, r.MaxMatch)
		case StatusReject:
			stderr.Printf("  %s: reject (max match: %d bp)", r.CandidateID, r.MaxMatch)
		default:
			stderr.Printf("  %s: error (%s)", r.CandidateID, r.Err)
		}
	}

	return &ScreenReport{
		Success:       true,
		ScreeningDate: time.Now().Format(time.RFC3339),
		RunID:         uuid.NewString(),
		DatabasesUsed: []string{humanDB, honeybeeDB},
		Thresholds:    s.cfg.Thresholds.report(),
		Results:       results,
	}
}

// screenOne runs one candidate against both databases. Any process
// failure (timeout included) fails closed: the candidate's status is
// "error", safe=false, and it is excluded from downstream ranking.
func (s *screener) screenOne(c Candidate) OffTarget {
	result := OffTarget{
		CandidateID:  c.ID,
		SafetyStatus: StatusError,
	}

	if c.Sequence == "" {
		result.Err = "no sequence provided"
		return result
	}

	queryFile, err := writeQuery(c)
	if err != nil {
		result.Err = fmt.Sprintf("failed to create query file: %v", err)
		return result
	}
	defer os.Remove(queryFile)

	humanMax, humanErr := s.searchDB(queryFile, humanDB)
	honeybeeMax, honeybeeErr := s.searchDB(queryFile, honeybeeDB)

	result.HumanMaxMatch = humanMax
	result.HoneybeeMaxMatch = honeybeeMax
	result.MaxMatch = max(humanMax, honeybeeMax)

	if humanErr != nil || honeybeeErr != nil {
		result.Err = errors.Join(humanErr, honeybeeErr).Error()
		return result
	}

	result.SafetyStatus, result.Safe = s.cfg.Thresholds.Classify(result.MaxMatch)
	return result
}

// searchDB runs the search against one database under its own timeout.
func (s *screener) searchDB(queryFile, db string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	return s.search(ctx, queryFile, filepath.Join(s.cfg.DBDir, db))
}

// blast calls the external blastn binary and returns the maximum
// alignment length over all reported hits.
// https://www.ncbi.nlm.nih.gov/books/NBK279690/
func (s *screener) blast(ctx context.Context, queryFile, db string) (int, error) {
	blastCmd := exec.CommandContext(
		ctx,
		s.cfg.Blastn,
		"-query", queryFile,
		"-db", db,
		"-word_size", strconv.Itoa(blastWordSize),
		"-outfmt", "6 qseqid sseqid length",
		"-max_target_seqs", strconv.Itoa(blastMaxTargets),
		"-evalue", strconv.Itoa(blastEvalue),
	)

	output, err := blastCmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return 0, fmt.Errorf("%w against %s", errBlastTimeout, db)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to execute blastn against %s: %v", db, err)
	}

	return maxMatchLength(string(output)), nil
}

// maxMatchLength parses tabular blast output and returns the longest
// hit length seen. No hits, or no output at all, is 0.
func maxMatchLength(output string) (maxLength int) {
	for _, line := range strings.Split(output, "\n") {
		// comment lines start with a #
		if strings.HasPrefix(line, "#") {
			continue
		}

		// split on white space: qseqid sseqid length
		cols := strings.Fields(line)
		if len(cols) < 3 {
			continue
		}

		length, err := strconv.Atoi(cols[2])
		if err != nil {
			continue
		}
		if length > maxLength {
			maxLength = length
		}
	}

	return maxLength
}

// writeQuery writes the candidate to a temp single-record FASTA file
// and returns its path. The caller removes it.
func writeQuery(c Candidate) (string, error) {
	f, err := os.CreateTemp("", c.ID+"-*.fa")
	if err != nil {
		return "", err
	}

	if _, err := fmt.Fprintf(f, ">%s\n%s\n", c.ID, c.Sequence); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), f.Close()
}

// blastDBExists reports whether db points at a formatted blast
// nucleotide database (any one index extension is enough).
func blastDBExists(db string) bool {
	for _, ext := range blastDBExtensions {
		if _, err := os.Stat(db + ext); err == nil {
			return true
		}
	}
	return false
}

// Tally counts results per safety tier for the screening summary.
func Tally(results []OffTarget) (safe, caution, reject, errored int) {
	for _, r := range results {
		switch r.SafetyStatus {
		case StatusSafe:
			safe++
		case StatusCaution:
			caution++
		case StatusReject:
			reject++
		default:
			errored++
		}
	}
	return
}
