package design

import (
	"strings"
	"testing"
)

func Test_EssentialityScore(t *testing.T) {
	lit := map[string]bool{"vatpase-a": true, "chs1": true}

	tests := []struct {
		name string
		gene EssentialGene
		want float64
	}{
		{
			"ortholog match only",
			EssentialGene{Name: "actin"},
			0.5,
		},
		{
			"two species, no literature",
			EssentialGene{Name: "actin", EssentialIn: []string{"D. melanogaster", "T. castaneum"}},
			0.6,
		},
		{
			"species bonus caps at 0.2",
			EssentialGene{Name: "actin", EssentialIn: []string{"a", "b", "c", "d", "e", "f"}},
			0.7,
		},
		{
			"literature support by name",
			EssentialGene{Name: "vATPase-A"},
			0.8,
		},
		{
			"literature support by alias",
			EssentialGene{Name: "chitin synthase 1", Aliases: []string{"CHS1"}},
			0.8,
		},
		{
			"five species with literature support hits 1.0",
			EssentialGene{Name: "vATPase-A", EssentialIn: []string{"a", "b", "c", "d", "e"}},
			1.0,
		},
	}

	for _, tt := range tests {
		if got := EssentialityScore(tt.gene, lit); got != tt.want {
			t.Errorf("%s: score = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func Test_matchesDescription(t *testing.T) {
	tests := []struct {
		name string
		gene EssentialGene
		desc string
		want bool
	}{
		{
			"case-insensitive name",
			EssentialGene{Name: "Actin"},
			"XM_001.1 actin-related protein",
			true,
		},
		{
			"hyphens stripped both sides",
			EssentialGene{Name: "v-ATPase"},
			"XM_002.1 vacuolar ATPase subunit A (vATPase)",
			true,
		},
		{
			"alias matches",
			EssentialGene{Name: "chitin synthase 1", Aliases: []string{"CHS1"}},
			"XM_003.1 chs1 transcript variant X2",
			true,
		},
		{
			"whitespace stripped from alias",
			EssentialGene{Name: "rpl32", Aliases: []string{"ribosomal protein L32"}},
			"XM_004.1 ribosomalproteinL32-like",
			true,
		},
		{
			"no match",
			EssentialGene{Name: "trehalase", Aliases: []string{"TRE1"}},
			"XM_005.1 uncharacterized protein",
			false,
		},
	}

	for _, tt := range tests {
		if got := matchesDescription(tt.gene, tt.desc); got != tt.want {
			t.Errorf("%s: match = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func testGenomeSeq(id, desc string, length int) GenomeSeq {
	return GenomeSeq{
		ID:          id,
		Description: id + " " + desc,
		Sequence:    strings.Repeat("ATGC", length/4),
	}
}

// a gene stops at its first acceptable sequence and is never matched twice
func Test_MatchGenes_firstMatchWins(t *testing.T) {
	essential := []EssentialGene{
		{Name: "actin"},
		{Name: "actin"}, // duplicate database entry
	}
	genome := []GenomeSeq{
		testGenomeSeq("XM_001.1", "actin isoform A", 600),
		testGenomeSeq("XM_002.1", "actin isoform B", 900),
	}

	matches := MatchGenes(essential, genome, nil, 20)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].GeneID != "XM_001.1" {
		t.Errorf("matched %s, want the first sequence XM_001.1", matches[0].GeneID)
	}
}

// sequences under 300 bp are passed over for the next matching sequence
func Test_MatchGenes_skipsShortSequences(t *testing.T) {
	essential := []EssentialGene{{Name: "actin"}}
	genome := []GenomeSeq{
		testGenomeSeq("XM_001.1", "actin fragment", 200),
		testGenomeSeq("XM_002.1", "actin full CDS", 1200),
	}

	matches := MatchGenes(essential, genome, nil, 20)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].GeneID != "XM_002.1" {
		t.Errorf("matched %s, want XM_002.1", matches[0].GeneID)
	}
	if matches[0].SequenceLength != 1200 {
		t.Errorf("sequence length = %d, want 1200", matches[0].SequenceLength)
	}
}

// matches come back ranked by score descending and truncated
func Test_MatchGenes_ranksAndTruncates(t *testing.T) {
	lit := map[string]bool{"vatpase-a": true}
	essential := []EssentialGene{
		{Name: "actin"},
		{Name: "vATPase-A", EssentialIn: []string{"a", "b", "c", "d", "e"}},
		{Name: "trehalase", EssentialIn: []string{"a"}},
	}
	genome := []GenomeSeq{
		testGenomeSeq("XM_001.1", "actin", 600),
		testGenomeSeq("XM_002.1", "vATPase-A subunit", 600),
		testGenomeSeq("XM_003.1", "trehalase precursor", 600),
	}

	matches := MatchGenes(essential, genome, lit, 2)

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 after truncation", len(matches))
	}
	if matches[0].GeneName != "vATPase-A" || matches[0].Score != 1.0 {
		t.Errorf("top match = %s (%v), want vATPase-A (1.0)", matches[0].GeneName, matches[0].Score)
	}
	if matches[1].GeneName != "trehalase" || matches[1].Score != 0.55 {
		t.Errorf("second match = %s (%v), want trehalase (0.55)", matches[1].GeneName, matches[1].Score)
	}
	if !matches[0].Evidence.LiteratureSupport {
		t.Error("vATPase-A should carry literature support evidence")
	}
	if matches[1].Evidence.LiteratureSupport {
		t.Error("trehalase should not carry literature support evidence")
	}
}
