/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/masnyjimmy/reqgen/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reqgen",
	Short: "Generate Go client request handlers from an api document",
	Long: `reqgen compiles a YAML api document into a Go package: one request
type per request, a constructor for the required parameters, one With
method per optional parameter and a Client with a handler per request.`,
}

var errorLogger *log.Logger = log.New(os.Stderr, "Error: ", log.Ltime)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := config.Default()

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFile, "Config file")
	rootCmd.PersistentFlags().StringP("input", "i", defaults.Input, "Api document (YAML)")
	rootCmd.PersistentFlags().StringP("package", "p", "", "Override the generated package name")
	rootCmd.MarkPersistentFlagFilename("input", "yaml", "yml", "json")
}

// loadConfig reads the config file, flags set on the command line win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	filename, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	// only the default config file is optional
	if flags.Changed("config") {
		if _, err := os.Stat(filename); err != nil {
			return config.Config{}, fmt.Errorf("unable to read config %v: %w", filename, err)
		}
	}

	cfg, err := config.Load(filename)
	if err != nil {
		return config.Config{}, err
	}

	overrideString := func(name string, target *string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	overrideString("input", &cfg.Input)
	overrideString("package", &cfg.Package)
	overrideString("output", &cfg.OutputDir)
	overrideString("model", &cfg.Model)
	overrideString("addr", &cfg.Preview.Addr)

	if flags.Lookup("no-format") != nil && flags.Changed("no-format") {
		noFormat, _ := flags.GetBool("no-format")
		cfg.Format = !noFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
