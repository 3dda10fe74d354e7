package design

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// efficacy component weights. GC content and gene essentiality carry
// the most signal, so they get the larger shares.
const (
	gcWeight       = 0.3
	polyNWeight    = 0.2
	positionWeight = 0.2
	geneWeight     = 0.3
)

// defaultGeneScore is the essentiality assumed for a candidate whose
// gene is missing from the ranked gene list.
const defaultGeneScore = 0.5

// GCScore is the continuous confidence in a candidate's GC content:
// 1.0 inside the optimal 35-50% band, 0.7 in the acceptable 30-55%
// band, 0.3 outside. Coarser than the design-time 0/1/2 bonus on
// purpose: this is a confidence weight, not a discrete score.
func GCScore(gc float64) float64 {
	switch {
	case gc >= 0.35 && gc <= 0.50:
		return 1.0
	case gc >= 0.30 && gc <= 0.55:
		return 0.7
	default:
		return 0.3
	}
}

// Rank combines each candidate's design-time fields, its off-target
// result, and its gene's essentiality into the final ranked list:
// sorted by combined score descending, stable on ties.
//
// Candidates whose screening ended in an error are excluded entirely,
// unsafe-by-default. Candidates with no screening record at all are
// kept with max_match 0 and status "unknown".
func Rank(candidates []Candidate, offTargets []OffTarget, genes []GeneMatch, t Thresholds) []ScoredCandidate {
	screenByID := make(map[string]OffTarget, len(offTargets))
	for _, o := range offTargets {
		screenByID[o.CandidateID] = o
	}

	scoreByGene := make(map[string]float64, len(genes))
	for _, g := range genes {
		scoreByGene[g.GeneName] = g.Score
	}

	stderr.Printf("scoring %d candidates", len(candidates))

	var scored []ScoredCandidate
	excluded := 0
	for _, c := range candidates {
		offTarget, screened := screenByID[c.ID]
		if screened && offTarget.SafetyStatus == StatusError {
			excluded++
			continue
		}

		scored = append(scored, scoreCandidate(c, offTarget, screened, scoreByGene, t))
	}

	if excluded > 0 {
		stderr.Printf("excluded %d candidates with screening errors", excluded)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CombinedScore > scored[j].CombinedScore
	})

	return scored
}

// scoreCandidate builds one ScoredCandidate from its parts.
func scoreCandidate(c Candidate, offTarget OffTarget, screened bool, scoreByGene map[string]float64, t Thresholds) ScoredCandidate {
	gcScore := GCScore(c.GCContent)

	polyNScore := 1.0
	if c.HasPolyN {
		polyNScore = 0.0
	}

	// normalize the 0-5 integer design score
	positionScore := float64(c.DesignScore) / 5.0
	if positionScore > 1.0 {
		positionScore = 1.0
	}

	geneScore, ok := scoreByGene[c.GeneName]
	if !ok {
		geneScore = defaultGeneScore
	}

	efficacy := gcWeight*gcScore +
		polyNWeight*polyNScore +
		positionWeight*positionScore +
		geneWeight*geneScore

	safety := t.SafetyScore(offTarget.MaxMatch)

	status := offTarget.SafetyStatus
	if !screened {
		status = StatusUnknown
	}

	return ScoredCandidate{
		Candidate:     c,
		EfficacyScore: round(efficacy, 3),
		EfficacyBreakdown: EfficacyBreakdown{
			GCScore:       round(gcScore, 2),
			PolyNScore:    round(polyNScore, 2),
			PositionScore: round(positionScore, 2),
			GeneScore:     round(geneScore, 2),
		},
		SafetyScore:      round(safety, 3),
		CombinedScore:    round(efficacy*safety, 3),
		HumanMaxMatch:    offTarget.HumanMaxMatch,
		HoneybeeMaxMatch: offTarget.HoneybeeMaxMatch,
		SafetyStatus:     status,
	}
}

// Summarize logs the top candidates and the combined-score distribution
// after ranking.
func Summarize(scored []ScoredCandidate) {
	stderr.Printf("ranked %d candidates", len(scored))
	if len(scored) == 0 {
		return
	}

	top := len(scored)
	if top > 5 {
		top = 5
	}
	stderr.Printf("top %d candidates:", top)
	stderr.Printf("  %-5s %-20s %-10s %-10s %-10s %s", "rank", "id", "efficacy", "safety", "combined", "status")
	for i, c := range scored[:top] {
		stderr.Printf("  %-5d %-20s %-10.3f %-10.3f %-10.3f %s",
			i+1, c.ID, c.EfficacyScore, c.SafetyScore, c.CombinedScore, c.SafetyStatus)
	}

	combined := make([]float64, len(scored))
	safeCount := 0
	for i, c := range scored {
		combined[i] = c.CombinedScore
		if c.SafetyStatus == StatusSafe {
			safeCount++
		}
	}

	stderr.Printf("score distribution:")
	stderr.Printf("  max: %.3f", combined[0])
	stderr.Printf("  min: %.3f", combined[len(combined)-1])
	stderr.Printf("  mean: %.3f", stat.Mean(combined, nil))
	stderr.Printf("  safe candidates: %d/%d", safeCount, len(scored))
}
