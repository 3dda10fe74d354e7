// Package design holds the dsRNA candidate design and ranking core:
// essential-gene matching, sliding-window candidate selection, off-target
// screening against non-target genomes, and the final efficacy/safety
// ranking. Everything here is deterministic; the only external process
// is the blastn invocation in blast.go.
package design

import (
	"log"
	"math"
	"os"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// EssentialGene is one curated entry in the essential-gene database.
type EssentialGene struct {
	// canonical gene name, e.g. "vATPase-A"
	Name string `json:"name"`

	// what the gene product does
	Function string `json:"function"`

	// alternate names the gene appears under in annotations
	Aliases []string `json:"aliases"`

	// species in which knockdown is known to be lethal/harmful
	EssentialIn []string `json:"essential_in"`

	// PubMed IDs or DOIs backing the essentiality claim
	References []string `json:"references"`
}

// Evidence is the reasoning behind a gene's essentiality score.
type Evidence struct {
	OrthologMatch      bool     `json:"ortholog_match"`
	LiteratureSupport  bool     `json:"literature_support"`
	EssentialInSpecies []string `json:"essential_in_species"`
	References         []string `json:"references"`
}

// GeneMatch couples an essential-gene entry with the genome CDS it
// matched. At most one GeneMatch exists per essential-gene name.
type GeneMatch struct {
	// id of the matched FASTA record in the target genome
	GeneID string `json:"gene_id"`

	// canonical name from the essential-gene database
	GeneName string `json:"gene_name"`

	Function string `json:"function"`

	// essentiality score in [0, 1], see EssentialityScore
	Score float64 `json:"score"`

	Evidence Evidence `json:"evidence"`

	// the matched coding sequence
	Sequence string `json:"sequence"`

	SequenceLength int `json:"sequence_length"`
}

// ScoreBreakdown itemizes the 0-5 design score of a window.
type ScoreBreakdown struct {
	GC       int `json:"gc"`
	PolyN    int `json:"poly_n"`
	StartPos int `json:"start_pos"`
	EndPos   int `json:"end_pos"`
}

// Candidate is one dsRNA candidate window selected from a gene.
type Candidate struct {
	// "{gene_name}_{k}" where k is 1-based acceptance order
	ID string `json:"id"`

	GeneName string `json:"gene_name"`
	GeneID   string `json:"gene_id"`

	// the window's sequence, uppercased
	Sequence string `json:"sequence"`

	// half-open offsets into the gene's sequence
	Start int `json:"start"`
	End   int `json:"end"`

	Length int `json:"length"`

	// fraction of G/C bases, rounded to 3 decimals
	GCContent float64 `json:"gc_content"`

	HasPolyN bool `json:"has_poly_n"`

	// integer design score 0-5
	DesignScore int `json:"design_score"`

	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
}

// safety tiers for off-target classification
const (
	StatusSafe    = "safe"
	StatusCaution = "caution"
	StatusReject  = "reject"
	StatusError   = "error"
	StatusUnknown = "unknown"
)

// OffTarget is the off-target screening result for one candidate.
type OffTarget struct {
	CandidateID string `json:"candidate_id"`

	// longest alignment (bp) found against each non-target database
	HumanMaxMatch    int `json:"human_max_match"`
	HoneybeeMaxMatch int `json:"honeybee_max_match"`

	// max of the two above
	MaxMatch int `json:"max_match"`

	// one of safe/caution/reject/error
	SafetyStatus string `json:"safety_status"`

	Safe bool `json:"safe"`

	// set when screening this candidate failed (timeout, bad input)
	Err string `json:"error,omitempty"`
}

// ReportThresholds states the classification bands in human terms.
type ReportThresholds struct {
	Safe    string `json:"safe"`
	Caution string `json:"caution"`
	Reject  string `json:"reject"`
}

// ScreenReport is the full off-target screening artifact.
type ScreenReport struct {
	Success       bool             `json:"success"`
	ScreeningDate string           `json:"screening_date"`
	RunID         string           `json:"run_id"`
	DatabasesUsed []string         `json:"databases_used"`
	Thresholds    ReportThresholds `json:"thresholds"`
	Results       []OffTarget      `json:"results"`
}

// EfficacyBreakdown itemizes the weighted efficacy components.
type EfficacyBreakdown struct {
	GCScore       float64 `json:"gc_score"`
	PolyNScore    float64 `json:"poly_n_score"`
	PositionScore float64 `json:"position_score"`
	GeneScore     float64 `json:"gene_score"`
}

// ScoredCandidate is a Candidate enriched with its final scores.
// The ranked list is []ScoredCandidate sorted by CombinedScore
// descending, stable on ties.
type ScoredCandidate struct {
	Candidate

	EfficacyScore     float64           `json:"efficacy_score"`
	EfficacyBreakdown EfficacyBreakdown `json:"efficacy_breakdown"`
	SafetyScore       float64           `json:"safety_score"`
	CombinedScore     float64           `json:"combined_score"`

	HumanMaxMatch    int    `json:"human_max_match"`
	HoneybeeMaxMatch int    `json:"honeybee_max_match"`
	SafetyStatus     string `json:"safety_status"`
}

// round rounds v to the given number of decimal places. Scores are
// persisted rounded so artifacts are stable across runs/platforms.
func round(v float64, places int) float64 {
	f := math.Pow10(places)
	return math.Round(v*f) / f
}
