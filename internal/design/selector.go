package design

import (
	"fmt"
	"sort"
)

// Params holds the sliding-window design parameters.
type Params struct {
	// WindowLength is the candidate length in bp (default 300)
	WindowLength int

	// StepSize is the distance between window starts (default 50)
	StepSize int

	// CandidatesPerGene is the number of non-overlapping windows to
	// select per gene (default 3)
	CandidatesPerGene int
}

// ErrTooShort is returned when a gene's sequence cannot fit a single
// candidate window. The gene yields zero candidates; the batch goes on.
type ErrTooShort struct {
	Gene     string
	Length   int
	Required int
}

func (e *ErrTooShort) Error() string {
	return fmt.Sprintf("%s is too short for a candidate window: %d < %d bp", e.Gene, e.Length, e.Required)
}

// CandidatesForGene slides a window of p.WindowLength across the gene's
// sequence in p.StepSize increments, scores every position, and selects
// up to p.CandidatesPerGene non-overlapping windows, best score first.
//
// Selection is deterministic: windows are sorted by score descending
// with a stable sort, so equal scores keep their ascending start-position
// order, and the greedy walk accepts a window only if its [start, end)
// interval is disjoint from every already-accepted one. Fewer than
// p.CandidatesPerGene candidates is a normal outcome, not an error.
func CandidatesForGene(gene GeneMatch, p Params) ([]Candidate, error) {
	geneLength := len(gene.Sequence)
	if geneLength < p.WindowLength {
		return nil, &ErrTooShort{
			Gene:     gene.GeneName,
			Length:   geneLength,
			Required: p.WindowLength,
		}
	}

	// score every window position
	var windows []window
	for start := 0; start+p.WindowLength <= geneLength; start += p.StepSize {
		windows = append(windows, scoreWindow(gene.Sequence, start, start+p.WindowLength, geneLength))
	}

	// best score first, earliest start breaking ties
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].score > windows[j].score
	})

	// greedily accept windows that don't overlap any accepted one
	var selected []Candidate
	var accepted []window
	for _, w := range windows {
		if len(selected) >= p.CandidatesPerGene {
			break
		}
		if overlapsAny(w, accepted) {
			continue
		}

		accepted = append(accepted, w)
		selected = append(selected, Candidate{
			ID:             fmt.Sprintf("%s_%d", gene.GeneName, len(selected)+1),
			GeneName:       gene.GeneName,
			GeneID:         gene.GeneID,
			Sequence:       w.seq,
			Start:          w.start,
			End:            w.end,
			Length:         p.WindowLength,
			GCContent:      round(w.gc, 3),
			HasPolyN:       w.polyN,
			DesignScore:    w.score,
			ScoreBreakdown: w.breakdown,
		})
	}

	return selected, nil
}

// overlapsAny reports whether w's [start, end) interval intersects any
// of the accepted windows' intervals.
func overlapsAny(w window, accepted []window) bool {
	for _, a := range accepted {
		if w.start < a.end && a.start < w.end {
			return true
		}
	}
	return false
}

// DesignCandidates designs candidates for the top numGenes genes of an
// already-ranked gene list. Genes shorter than the window are logged,
// counted, and skipped; they never abort the batch.
func DesignCandidates(genes []GeneMatch, numGenes int, p Params) []Candidate {
	if numGenes < len(genes) {
		genes = genes[:numGenes]
	}

	stderr.Printf("designing candidates for top %d genes", len(genes))
	stderr.Printf("  window length: %d bp", p.WindowLength)
	stderr.Printf("  candidates per gene: %d", p.CandidatesPerGene)

	var all []Candidate
	skipped := 0
	for _, gene := range genes {
		candidates, err := CandidatesForGene(gene, p)
		if err != nil {
			stderr.Printf("  skipping %v", err)
			skipped++
			continue
		}

		stderr.Printf("  %s: designed %d candidates", gene.GeneName, len(candidates))
		all = append(all, candidates...)
	}

	if skipped > 0 {
		stderr.Printf("skipped %d genes shorter than %d bp", skipped, p.WindowLength)
	}

	return all
}
