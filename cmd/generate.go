/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/reqgen/compilation"
	"github.com/masnyjimmy/reqgen/config"
	"github.com/masnyjimmy/reqgen/docs"
	"github.com/masnyjimmy/reqgen/generator"
	"github.com/masnyjimmy/reqgen/validation"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate request handlers into the output directory",
	Long: `Reads the api document, validates it against the document schema,
compiles it and writes one Go file per request plus enums.go and client.go.

Example:
  reqgen generate -i api.yaml -o ./ds3`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			errorLogger.Print(err)
			os.Exit(1)
		}

		if res := GenerateFile(cfg); res != 0 {
			os.Exit(res)
		}
	},
}

const (
	exitRead = 1 + iota
	exitValidate
	exitParse
	exitCompile
	exitRender
	exitWrite
)

func writeModel(output string, document *docs.Document) error {
	var (
		bytes []byte
		err   error
	)

	switch filepath.Ext(output) {
	case ".json":
		log.Printf("Model type selected: json")
		bytes, err = compilation.CompileToJSON(document)
	default:
		log.Printf("Model type selected: yaml")
		bytes, err = compilation.CompileToYAML(document)
	}

	if err != nil {
		return err
	}

	return os.WriteFile(output, bytes, 0644)
}

/*
1. read bytes
2. validate schema
3. unmarshal
4. compile
5. render
*/
func readAPI(cfg config.Config) (generator.Files, int, error) {

	log.Printf("Reading %v", cfg.Input)

	bytes, err := os.ReadFile(cfg.Input)

	if err != nil {
		return nil, exitRead, fmt.Errorf("unable to read file %q: %w", cfg.Input, err)
	}

	log.Print("Validating schema..")

	if err := validation.Validate(bytes); err != nil {
		return nil, exitValidate, fmt.Errorf("validation failed: %w", err)
	}

	log.Printf("Parsing document..")

	var document docs.Document

	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return nil, exitParse, fmt.Errorf("unable to parse document: %w", err)
	}

	if cfg.Package != "" {
		document.Package = cfg.Package
	}

	log.Print("Compiling api document..")

	var pkg compilation.Package

	if err := compilation.Compile(&pkg, &document); err != nil {
		return nil, exitCompile, fmt.Errorf("compilation error: %w", err)
	}

	if cfg.Model != "" {
		log.Printf("Writing compiled model to %v", cfg.Model)

		if err := writeModel(cfg.Model, &document); err != nil {
			return nil, exitWrite, fmt.Errorf("unable to write model %v: %w", cfg.Model, err)
		}
	}

	log.Printf("Rendering %v requests..", len(pkg.Requests))

	files, err := generator.Generate(&pkg, generator.Options{Format: cfg.Format})

	if err != nil {
		return nil, exitRender, fmt.Errorf("render error: %w", err)
	}

	return files, 0, nil
}

func GenerateFile(cfg config.Config) int {

	files, res, err := readAPI(cfg)

	if err != nil {
		errorLogger.Print(err)
		return res
	}

	log.Printf("Writing %v files to %v", len(files), cfg.OutputDir)

	if err := generator.WriteFiles(cfg.OutputDir, files); err != nil {
		errorLogger.Printf("Unable to write files: %v", err)
		return exitWrite
	}

	log.Printf("Finished successfully")
	return 0
}

func init() {
	rootCmd.AddCommand(generateCmd)

	defaults := config.Default()

	generateCmd.Flags().StringP("output", "o", defaults.OutputDir, "Output directory")
	generateCmd.Flags().Bool("no-format", false, "Skip gofmt of the generated sources")
	generateCmd.Flags().String("model", "", "Also write the compiled model (.json or .yaml)")
	generateCmd.MarkFlagDirname("output")
	generateCmd.MarkFlagFilename("model", "yaml", "json")
}
