package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interviewprep"
)

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "interviewprep generates interview questions from a resume and scores your answers",
	// Without a subcommand the API server is started.
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve()
	},
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}
