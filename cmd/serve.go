/*
Copyright © 2026 NAME HERE
*/
package cmd

import (
	"log"
	"net/http"
	"os"

	"github.com/masnyjimmy/reqgen/config"
	"github.com/masnyjimmy/reqgen/generator"
	"github.com/masnyjimmy/reqgen/preview"
	"github.com/spf13/cobra"
)

// ==================== Cobra Command ====================

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview generated request handlers, regenerating on change",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			errorLogger.Print(err)
			os.Exit(1)
		}

		write, err := cmd.Flags().GetBool("write")
		if err != nil {
			panic(err)
		}

		Serve(cfg, write)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := config.Default()

	serveCmd.Flags().String("addr", defaults.Preview.Addr, "Listen address")
	serveCmd.Flags().StringP("output", "o", defaults.OutputDir, "Output directory used with --write")
	serveCmd.Flags().Bool("write", false, "Also write the generated files on every change")
}

func previewOptions(cfg config.Config) preview.Options {
	opt := preview.DefaultOptions()

	if cfg.Preview.BaseUrl != "" {
		opt.BaseUrl = cfg.Preview.BaseUrl
	}
	if len(cfg.Preview.AllowedOrigins) != 0 {
		opt.AllowedOrigins = cfg.Preview.AllowedOrigins
	}
	// validated by loadConfig
	if debounce, _ := cfg.Preview.DebounceTime(); debounce > 0 {
		opt.DebounceTime = debounce
	}

	return opt
}

func regenerate(cfg config.Config, write bool) (generator.Files, error) {
	files, _, err := readAPI(cfg)
	if err != nil {
		return nil, err
	}

	if write {
		if err := generator.WriteFiles(cfg.OutputDir, files); err != nil {
			return nil, err
		}
	}

	return files, nil
}

func Serve(cfg config.Config, write bool) {

	files, err := regenerate(cfg, write)

	if err != nil {
		log.Fatal(err)
	}

	opt := previewOptions(cfg)

	previewHandler, err := preview.New(files, opt)

	if err != nil {
		log.Fatalf("Invalid input: %v", err)
	}

	watcher, err := preview.WatchFile(cfg.Input, opt.DebounceTime)

	if err != nil {
		log.Printf("Unable to watch for file updates: %v", err)
	} else {
		defer watcher.Close()

		watchHandler := func() {
			for err := range watcher.Update {
				if err != nil {
					log.Print(err)
					continue
				}

				files, err := regenerate(cfg, write)
				if err != nil {
					log.Printf("Unable to update preview: %v", err)
					continue
				}

				if err := previewHandler.SetFiles(files); err != nil {
					log.Printf("Unable to update preview: %v", err)
				}
			}
		}
		go watchHandler()
	}
	log.Printf("Started server at http://localhost%v", cfg.Preview.Addr)
	log.Fatal(http.ListenAndServe(cfg.Preview.Addr, previewHandler.Handler(nil)))
}
