// Package main provides the compiler command-line tool that builds the static dining site.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"ritdining/internal/config"
	"ritdining/internal/formatter"
	"ritdining/internal/logger"
	"ritdining/internal/site"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: "+config.DefaultPath+" when present)")
	restaurants := flag.String("restaurants", "", "Path to the restaurants JSONC file")
	homepage := flag.String("homepage", "", "Path to the homepage JSONC file")
	reviews := flag.String("reviews", "", "Path to the reviews JSONC file")
	templates := flag.String("templates", "", "Directory with skeleton.html and restaurant.html (default: built-in templates)")
	outDir := flag.String("out", "", "Output root directory")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	strict := flag.Bool("strict", false, "Abort when data validation reports errors")
	sign := flag.Bool("sign", false, "Stamp every page with a metadata block")
	quiet := flag.Bool("quiet", false, "Do not print the summary table")

	flag.Parse()

	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	override(&cfg.Sources.Restaurants, *restaurants)
	override(&cfg.Sources.Homepage, *homepage)
	override(&cfg.Sources.Reviews, *reviews)
	override(&cfg.Templates.Dir, *templates)
	override(&cfg.Logging.Level, *logLevel)

	if *outDir != "" {
		// The media root follows the output root unless the config pinned it elsewhere.
		if cfg.Output.MediaRoot == cfg.Output.Root {
			cfg.Output.MediaRoot = *outDir
		}

		cfg.Output.Root = *outDir
	}

	cfg.Validation.Strict = cfg.Validation.Strict || *strict
	cfg.Output.SignPages = cfg.Output.SignPages || *sign

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	log.Debug("Configuration loaded", "config", cfg.String())

	report, err := site.NewBuilder(cfg, log).Build()
	if err != nil {
		log.Error("Build failed", "error", err)
		os.Exit(1)
	}

	if !*quiet {
		printSummary(report)
	}

	log.Info("Build complete", "pages", len(report.Pages), "skipped", len(report.Skipped), "out", cfg.Output.Root)
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}

func printSummary(report *site.Report) {
	table := formatter.NewTable("Slug", "Name", "Open days", "Reviews")
	for _, page := range report.Pages {
		table.AddRow(page.Slug, page.Name, strconv.Itoa(page.OpenDays), strconv.Itoa(page.Reviews))
	}

	fmt.Println(table.String())
	fmt.Printf("📄 %d pages written", len(report.Pages))

	if len(report.Skipped) > 0 {
		fmt.Printf(", ⚠️  %d skipped", len(report.Skipped))
	}

	if report.MediaCopied > 0 {
		fmt.Printf(", 🖼️  %d media files copied", report.MediaCopied)
	}

	fmt.Println()
}
