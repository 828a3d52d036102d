package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rozeraf/mkvenv/src/internal/appdir"
	"github.com/rozeraf/mkvenv/src/internal/telemetry"
)

var (
	cfgFile     string
	profileFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "mkvenv",
	Short: "mkvenv creates and manages Python virtual environments",
	Long: `mkvenv wraps python -m venv and pip into a guided workflow: it finds the
Python versions available on your machine (pyenv installs and system
binaries), creates environments with a sensible base package set, and helps
with activation, freezing and cleanup.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if profileFlag {
			if _, err := telemetry.Start(appdir.ProfileDir()); err != nil {
				fmt.Fprintf(os.Stderr, "profiling disabled: %v\n", err)
			}
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if telemetry.Enabled() {
			_, _ = telemetry.Stop()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+appdir.ConfigFile()+")")
	rootCmd.PersistentFlags().BoolVar(&profileFlag, "profile", false, "record a trace log and CPU profile for this run")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(appdir.MustHome())
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		// Config file found and read
	}
}
