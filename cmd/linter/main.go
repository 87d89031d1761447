// Package main provides the linter command-line tool that checks the dining data files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"ritdining/internal/config"
	"ritdining/internal/formatter"
	"ritdining/internal/loader"
	"ritdining/internal/validator"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	restaurants := flag.String("restaurants", "", "Path to the restaurants JSONC file")
	reviews := flag.String("reviews", "", "Path to the reviews JSONC file")
	warnErrors := flag.Bool("warnings-as-errors", false, "Fail when any warning is reported")

	flag.Parse()

	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *restaurants != "" {
		cfg.Sources.Restaurants = *restaurants
	}

	if *reviews != "" {
		cfg.Sources.Reviews = *reviews
	}

	fmt.Printf("📂 Checking: %s\n", cfg.Sources.Restaurants)

	entries, err := loader.LoadRestaurants(cfg.Sources.Restaurants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	v := validator.NewDataValidator(cfg)
	result := v.ValidateRestaurants(entries)

	if loader.Exists(cfg.Sources.Reviews) {
		fmt.Printf("📂 Checking: %s\n", cfg.Sources.Reviews)

		all, err := loader.LoadReviews(cfg.Sources.Reviews)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		v.ValidateReviews(result, entries, all)
	}

	fmt.Println()

	stats := formatter.NewTable("Items", "Valid", "Invalid", "Local assets", "Remote assets", "Reviews")
	stats.AddRow(
		strconv.Itoa(result.Stats.TotalItems),
		strconv.Itoa(result.Stats.ValidItems),
		strconv.Itoa(result.Stats.InvalidItems),
		strconv.Itoa(result.Stats.LocalAssets),
		strconv.Itoa(result.Stats.RemoteAssets),
		strconv.Itoa(result.Stats.Reviews),
	)
	fmt.Println(stats.String())

	result.PrintErrors()
	result.PrintWarnings()

	fmt.Println(result.String())

	if !result.IsValid || (*warnErrors && len(result.Warnings) > 0) {
		os.Exit(1)
	}
}
