// Package cmd is for command line interactions with the dsRNA designer
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "dsrna-designer",
	Short: `Design double-stranded RNA biopesticide candidates for a pest species.
Match essential genes against its genome, select candidate windows, screen
them for off-target homology, and rank the survivors`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)
}

// initSettings reads the optional settings.yaml in the working directory.
// Every setting has a default, so a missing file is fine.
func initSettings() {
	viper.SetConfigName("settings")
	viper.AddConfigPath(".")
	viper.ReadInConfig()
}
