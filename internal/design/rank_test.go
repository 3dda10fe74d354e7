package design

import (
	"reflect"
	"sort"
	"testing"
)

func Test_GCScore(t *testing.T) {
	tests := []struct {
		gc   float64
		want float64
	}{
		{0.40, 1.0},
		{0.35, 1.0},
		{0.50, 1.0},
		{0.32, 0.7},
		{0.30, 0.7},
		{0.55, 0.7},
		{0.25, 0.3},
		{0.60, 0.3},
	}

	for _, tt := range tests {
		if got := GCScore(tt.gc); got != tt.want {
			t.Errorf("GCScore(%v) = %v, want %v", tt.gc, got, tt.want)
		}
	}
}

// efficacy 0.8 at safety 0.7 combines to 0.560
func Test_Rank_combinedScore(t *testing.T) {
	candidates := []Candidate{{
		ID:          "actin_1",
		GeneName:    "actin",
		GCContent:   0.40, // gc_score 1.0      * 0.3
		HasPolyN:    false,
		DesignScore: 3, // position_score 0.6   * 0.2
	}}
	offTargets := []OffTarget{{
		CandidateID:  "actin_1",
		MaxMatch:     15, // caution: safety 0.7
		SafetyStatus: StatusCaution,
		Safe:         true,
	}}
	genes := []GeneMatch{{GeneName: "actin", Score: 0.6}} // gene_score 0.6 * 0.3

	scored := Rank(candidates, offTargets, genes, testThresholds)

	if len(scored) != 1 {
		t.Fatalf("got %d scored candidates, want 1", len(scored))
	}

	s := scored[0]
	if s.EfficacyScore != 0.8 {
		t.Errorf("efficacy = %v, want 0.8", s.EfficacyScore)
	}
	if s.SafetyScore != 0.7 {
		t.Errorf("safety = %v, want 0.7", s.SafetyScore)
	}
	if s.CombinedScore != 0.56 {
		t.Errorf("combined = %v, want 0.56", s.CombinedScore)
	}

	wantBreakdown := EfficacyBreakdown{GCScore: 1.0, PolyNScore: 1.0, PositionScore: 0.6, GeneScore: 0.6}
	if s.EfficacyBreakdown != wantBreakdown {
		t.Errorf("breakdown = %+v, want %+v", s.EfficacyBreakdown, wantBreakdown)
	}
	if s.SafetyStatus != StatusCaution {
		t.Errorf("status = %s, want caution", s.SafetyStatus)
	}
}

// a poly-N run zeroes its component; a rejected match zeroes everything
func Test_Rank_zeroes(t *testing.T) {
	candidates := []Candidate{{
		ID:          "chs1_1",
		GeneName:    "chs1",
		GCContent:   0.40,
		HasPolyN:    true,
		DesignScore: 5,
	}}
	offTargets := []OffTarget{{
		CandidateID:  "chs1_1",
		MaxMatch:     19,
		SafetyStatus: StatusReject,
	}}

	scored := Rank(candidates, offTargets, nil, testThresholds)

	s := scored[0]
	if s.EfficacyBreakdown.PolyNScore != 0.0 {
		t.Errorf("poly-N score = %v, want 0", s.EfficacyBreakdown.PolyNScore)
	}
	if s.SafetyScore != 0.0 || s.CombinedScore != 0.0 {
		t.Errorf("safety/combined = %v/%v, want 0/0", s.SafetyScore, s.CombinedScore)
	}
}

// candidates whose screening errored are excluded, unsafe-by-default
func Test_Rank_excludesErrors(t *testing.T) {
	candidates := []Candidate{
		{ID: "actin_1", GeneName: "actin", GCContent: 0.40, DesignScore: 5},
		{ID: "actin_2", GeneName: "actin", GCContent: 0.40, DesignScore: 5},
	}
	offTargets := []OffTarget{
		{CandidateID: "actin_1", SafetyStatus: StatusError, Err: "blast query timed out"},
		{CandidateID: "actin_2", MaxMatch: 5, SafetyStatus: StatusSafe, Safe: true},
	}

	scored := Rank(candidates, offTargets, nil, testThresholds)

	if len(scored) != 1 {
		t.Fatalf("got %d scored candidates, want 1", len(scored))
	}
	if scored[0].ID != "actin_2" {
		t.Errorf("kept %s, want actin_2", scored[0].ID)
	}
}

// a candidate with no screening record is kept with status unknown and
// an unknown gene defaults to essentiality 0.5
func Test_Rank_defaults(t *testing.T) {
	candidates := []Candidate{{
		ID:        "mystery_1",
		GeneName:  "mystery",
		GCContent: 0.40,
	}}

	scored := Rank(candidates, nil, nil, testThresholds)

	s := scored[0]
	if s.SafetyStatus != StatusUnknown {
		t.Errorf("status = %s, want unknown", s.SafetyStatus)
	}
	if s.SafetyScore != 1.0 {
		t.Errorf("safety = %v, want 1.0 for max_match 0", s.SafetyScore)
	}
	if s.EfficacyBreakdown.GeneScore != 0.5 {
		t.Errorf("gene score = %v, want the 0.5 default", s.EfficacyBreakdown.GeneScore)
	}
}

// the ranked list is sorted by combined score descending and re-sorting
// it changes nothing
func Test_Rank_orderAndIdempotence(t *testing.T) {
	candidates := []Candidate{
		{ID: "a_1", GeneName: "a", GCContent: 0.25, DesignScore: 1}, // weak
		{ID: "b_1", GeneName: "b", GCContent: 0.40, DesignScore: 5}, // strong
		{ID: "a_2", GeneName: "a", GCContent: 0.25, DesignScore: 1}, // ties a_1
	}
	offTargets := []OffTarget{
		{CandidateID: "a_1", MaxMatch: 3, SafetyStatus: StatusSafe, Safe: true},
		{CandidateID: "b_1", MaxMatch: 3, SafetyStatus: StatusSafe, Safe: true},
		{CandidateID: "a_2", MaxMatch: 3, SafetyStatus: StatusSafe, Safe: true},
	}

	scored := Rank(candidates, offTargets, nil, testThresholds)

	if scored[0].ID != "b_1" {
		t.Errorf("top candidate = %s, want b_1", scored[0].ID)
	}
	// equal scores keep their pre-sort order
	if scored[1].ID != "a_1" || scored[2].ID != "a_2" {
		t.Errorf("tie order = %s, %s, want a_1, a_2", scored[1].ID, scored[2].ID)
	}

	for i := 1; i < len(scored); i++ {
		if scored[i].CombinedScore > scored[i-1].CombinedScore {
			t.Errorf("combined scores not descending at %d", i)
		}
	}

	resorted := make([]ScoredCandidate, len(scored))
	copy(resorted, scored)
	sort.SliceStable(resorted, func(i, j int) bool {
		return resorted[i].CombinedScore > resorted[j].CombinedScore
	})
	if !reflect.DeepEqual(scored, resorted) {
		t.Error("re-sorting an already-ranked list changed the order")
	}
}
