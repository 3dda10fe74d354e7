// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line.
//
// The safety thresholds default to the regulatory guidance values
// (15 bp caution, 19 bp reject). They can be overridden, but only
// explicitly, via a flag or settings file.
type Config struct {
	// length of each dsRNA candidate window in basepairs
	WindowLength int `mapstructure:"length"`

	// number of basepairs between the starts of successive windows
	StepSize int `mapstructure:"step"`

	// number of candidates to design per gene
	CandidatesPerGene int `mapstructure:"candidates-per-gene"`

	// number of top-ranked genes to design candidates for
	NumGenes int `mapstructure:"num-genes"`

	// maximum number of essential-gene matches to keep
	MaxResults int `mapstructure:"max-results"`

	// seconds allowed per BLAST query per database
	BlastTimeoutSeconds int `mapstructure:"timeout"`

	// number of candidates screened concurrently
	Concurrency int `mapstructure:"concurrency"`

	// minimum off-target match length (bp) for the "caution" tier
	CautionThreshold int `mapstructure:"caution-threshold"`

	// minimum off-target match length (bp) for the "reject" tier
	RejectThreshold int `mapstructure:"reject-threshold"`

	// name of or path to the blastn executable
	Blastn string `mapstructure:"blastn"`
}

// New returns a new Config struct populated by Viper settings
// (either from the local settings.yaml) and/or command line arguments.
func New() Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}

	return c
}

// BlastTimeout returns the per-query BLAST time budget.
func (c Config) BlastTimeout() time.Duration {
	return time.Duration(c.BlastTimeoutSeconds) * time.Second
}

// setDefaults registers the default value of every exposed parameter
// with viper. Flags bound in /cmd take precedence when set.
func setDefaults() {
	viper.SetDefault("length", 300)
	viper.SetDefault("step", 50)
	viper.SetDefault("candidates-per-gene", 3)
	viper.SetDefault("num-genes", 5)
	viper.SetDefault("max-results", 20)
	viper.SetDefault("timeout", 60)
	viper.SetDefault("concurrency", 1)
	viper.SetDefault("caution-threshold", 15)
	viper.SetDefault("reject-threshold", 19)
	viper.SetDefault("blastn", "blastn")
}
