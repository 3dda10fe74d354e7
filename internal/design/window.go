package design

import "strings"

// minPolyRun is the shortest homopolymer run that counts as a poly-N
// defect in a candidate window.
const minPolyRun = 4

// margins (bp) kept clear of the gene's ends. Annotation and
// translation boundaries are least reliable near the UTRs.
const (
	startMargin = 75
	endMargin   = 50
)

// window is a scored candidate position on a gene. Ephemeral: windows
// exist only while selecting candidates for one gene.
type window struct {
	start, end int
	seq        string
	gc         float64
	polyN      bool
	score      int
	breakdown  ScoreBreakdown
}

// scoreWindow scores the [start, end) window of seq against the design
// criteria and returns the window with its 0-5 score and breakdown.
// GC content is worth up to 2 points since it drives dsRNA thermodynamic
// stability; poly-N absence and each positional margin are worth 1.
// The four sub-scores are independent, not short-circuiting.
func scoreWindow(seq string, start, end, geneLength int) window {
	w := window{
		start: start,
		end:   end,
		seq:   strings.ToUpper(seq[start:end]),
	}
	w.gc = GCContent(w.seq)
	w.polyN = HasPolyRun(w.seq, minPolyRun)

	// GC band: 35-50% is optimal, 30-55% acceptable
	switch {
	case w.gc >= 0.35 && w.gc <= 0.50:
		w.breakdown.GC = 2
	case w.gc >= 0.30 && w.gc <= 0.55:
		w.breakdown.GC = 1
	}

	if !w.polyN {
		w.breakdown.PolyN = 1
	}

	// avoid the 5' UTR-proximal region
	if start >= startMargin {
		w.breakdown.StartPos = 1
	}

	// avoid the 3' UTR-proximal region
	if end <= geneLength-endMargin {
		w.breakdown.EndPos = 1
	}

	w.score = w.breakdown.GC + w.breakdown.PolyN + w.breakdown.StartPos + w.breakdown.EndPos

	return w
}
