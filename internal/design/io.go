package design

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bebop/poly/io/fasta"
)

// ReadGenome parses a genome's CDS FASTA file. A record's ID is the
// first token of its header; the matcher scans the full header.
func ReadGenome(path string) ([]GenomeSeq, error) {
	entries, err := fasta.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genome FASTA %s: %w", path, err)
	}

	seqs := make([]GenomeSeq, 0, len(entries))
	for _, entry := range entries {
		id := entry.Name
		if fields := strings.Fields(entry.Name); len(fields) > 0 {
			id = fields[0]
		}

		seqs = append(seqs, GenomeSeq{
			ID:          id,
			Description: entry.Name,
			Sequence:    strings.ToUpper(entry.Sequence),
		})
	}

	return seqs, nil
}

// essentialDB is the on-disk shape of the curated essential-gene database.
type essentialDB struct {
	Genes []EssentialGene `json:"genes"`
}

// ReadEssentialGenes loads the curated essential-gene database.
func ReadEssentialGenes(path string) ([]EssentialGene, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read essential-gene database %s: %w", path, err)
	}

	var db essentialDB
	if err := json.Unmarshal(contents, &db); err != nil {
		return nil, fmt.Errorf("failed to parse essential-gene database %s: %w", path, err)
	}

	return db.Genes, nil
}

// paper is the slice of a literature record the scorer cares about.
type paper struct {
	GeneNames []string `json:"gene_names"`
}

// ReadLiteratureGenes extracts the case-folded set of gene names from a
// literature search artifact. The file is either a bare array of papers
// or an object with a "papers" key; a missing path yields an empty set,
// not an error (literature support is optional evidence).
func ReadLiteratureGenes(path string) (map[string]bool, error) {
	genes := map[string]bool{}
	if path == "" {
		return genes, nil
	}

	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return genes, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read literature results %s: %w", path, err)
	}

	var papers []paper
	var wrapped struct {
		Papers []paper `json:"papers"`
	}
	if err := json.Unmarshal(contents, &wrapped); err == nil && wrapped.Papers != nil {
		papers = wrapped.Papers
	} else if err := json.Unmarshal(contents, &papers); err != nil {
		return nil, fmt.Errorf("failed to parse literature results %s: %w", path, err)
	}

	for _, p := range papers {
		for _, name := range p.GeneNames {
			genes[strings.ToLower(name)] = true
		}
	}

	return genes, nil
}

// ReadGeneMatches loads a ranked gene list written by Write.
func ReadGeneMatches(path string) ([]GeneMatch, error) {
	var genes []GeneMatch
	return genes, readJSON(path, &genes)
}

// ReadCandidates loads a raw candidate list written by Write.
func ReadCandidates(path string) ([]Candidate, error) {
	var candidates []Candidate
	return candidates, readJSON(path, &candidates)
}

// ReadScreenReport loads an off-target screening report written by Write.
func ReadScreenReport(path string) (*ScreenReport, error) {
	report := &ScreenReport{}
	return report, readJSON(path, report)
}

func readJSON(path string, v interface{}) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(contents, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// Write serializes an artifact to path as indented JSON, creating the
// parent directory if needed.
func Write(path string, v interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	contents, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}

	if err := os.WriteFile(path, contents, 0666); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
