package design

import (
	"sort"
	"strings"
	"unicode"
)

// minCDSLength is the shortest genome sequence (bp) the matcher will
// pair with an essential gene. Anything shorter is unlikely to be a
// CDS of interest.
const minCDSLength = 300

// GenomeSeq is one CDS record from the target genome's FASTA file.
type GenomeSeq struct {
	// ID is the first whitespace-delimited token of the header
	ID string

	// Description is the full header line, the text the matcher scans
	Description string

	Sequence string
}

// essentiality score weights: 0.5 for the ortholog match itself,
// 0.3 for literature support, 0.05 per known-essential species
// capped at 0.2. The three sum to at most 1.0 by construction.
const (
	orthologWeight   = 0.5
	literatureWeight = 0.3
	perSpeciesWeight = 0.05
	speciesWeightCap = 0.2
)

// EssentialityScore is the confidence, in [0, 1], that silencing the
// gene harms the target pest. literatureGenes is the case-folded set of
// gene names seen in literature search results.
func EssentialityScore(gene EssentialGene, literatureGenes map[string]bool) float64 {
	score := orthologWeight

	if hasLiteratureSupport(gene, literatureGenes) {
		score += literatureWeight
	}

	speciesBonus := perSpeciesWeight * float64(len(gene.EssentialIn))
	if speciesBonus > speciesWeightCap {
		speciesBonus = speciesWeightCap
	}
	score += speciesBonus

	return round(score, 2)
}

// hasLiteratureSupport reports whether the gene's canonical name or any
// alias appears in the literature gene set.
func hasLiteratureSupport(gene EssentialGene, literatureGenes map[string]bool) bool {
	if literatureGenes[strings.ToLower(gene.Name)] {
		return true
	}
	for _, alias := range gene.Aliases {
		if literatureGenes[strings.ToLower(alias)] {
			return true
		}
	}
	return false
}

// MatchGenes scans the genome's sequence descriptions for each curated
// essential gene and returns the matches ranked by essentiality score
// descending (stable, so database order breaks ties), truncated to
// maxResults.
//
// First match wins twice over: a gene stops searching at its first
// acceptable sequence, and a gene name already matched is never matched
// again. The matched set is an explicit accumulator threaded through
// the scan, so repeated runs over the same inputs are identical.
func MatchGenes(essential []EssentialGene, genome []GenomeSeq, literatureGenes map[string]bool, maxResults int) []GeneMatch {
	var matches []GeneMatch
	matched := map[string]bool{}

	for _, gene := range essential {
		for _, seq := range genome {
			if !matchesDescription(gene, seq.Description) {
				continue
			}

			// at most one sequence per essential-gene name
			if matched[gene.Name] {
				continue
			}

			// too short to be a CDS of interest
			if len(seq.Sequence) < minCDSLength {
				continue
			}

			matches = append(matches, GeneMatch{
				GeneID:   seq.ID,
				GeneName: gene.Name,
				Function: gene.Function,
				Score:    EssentialityScore(gene, literatureGenes),
				Evidence: Evidence{
					OrthologMatch:      true,
					LiteratureSupport:  hasLiteratureSupport(gene, literatureGenes),
					EssentialInSpecies: gene.EssentialIn,
					References:         gene.References,
				},
				Sequence:       seq.Sequence,
				SequenceLength: len(seq.Sequence),
			})

			matched[gene.Name] = true
			break // move to the next essential gene
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if maxResults < len(matches) {
		matches = matches[:maxResults]
	}

	return matches
}

// matchesDescription reports whether the gene's name or any alias is a
// case-insensitive substring of the sequence description. Each name is
// tried as-is and with hyphens/whitespace stripped from both sides, to
// tolerate formatting variance in annotations ("v-ATPase" vs "vATPase").
func matchesDescription(gene EssentialGene, description string) bool {
	desc := strings.ToLower(description)
	descClean := stripSeparators(desc)

	names := append([]string{gene.Name}, gene.Aliases...)
	for _, name := range names {
		n := strings.ToLower(name)
		if strings.Contains(desc, n) {
			return true
		}
		if strings.Contains(descClean, stripSeparators(n)) {
			return true
		}
	}

	return false
}

// stripSeparators removes hyphens and all whitespace from s.
func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
