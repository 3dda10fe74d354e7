package design

import "strings"

// GCContent returns the fraction of G and C bases in seq,
// case-insensitive. An empty sequence has a GC content of 0.
func GCContent(seq string) float64 {
	if seq == "" {
		return 0
	}

	s := strings.ToUpper(seq)
	gc := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 'G' || s[i] == 'C' {
			gc++
		}
	}

	return float64(gc) / float64(len(s))
}

// HasPolyRun reports whether seq contains minLength or more consecutive
// identical bases from {A,T,G,C}, case-insensitive. Runs of other
// characters (N, gaps) never count and reset the scan.
func HasPolyRun(seq string, minLength int) bool {
	s := strings.ToUpper(seq)

	run := 0
	var prev byte
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case 'A', 'T', 'G', 'C':
			if b == prev {
				run++
			} else {
				prev = b
				run = 1
			}
			if run >= minLength {
				return true
			}
		default:
			prev = 0
			run = 0
		}
	}

	return false
}
