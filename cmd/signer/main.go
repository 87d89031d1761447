// Package main provides the signer command-line tool for stamping and verifying generated pages.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ritdining/internal/config"
	"ritdining/pkg/metadata"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	root := flag.String("path", "", "Site directory to process (default: output.root)")
	verify := flag.Bool("verify", false, "Verify existing stamps instead of signing")

	flag.Parse()

	dir := *root
	if dir == "" {
		cfg, err := config.LoadOrDefault(*configFile)
		if err != nil {
			log.Fatalf("❌ Failed to load config: %v\n", err)
		}

		dir = cfg.Output.Root
	}

	fmt.Printf("📂 Scanning: %s\n", dir)

	now := time.Now()

	count, failed := 0, 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".html" {
			return nil
		}

		count++

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		if *verify {
			if err := verifyFile(path); err != nil {
				fmt.Printf("❌ %s: %v\n", rel, err)

				failed++
			} else {
				fmt.Printf("✅ %s\n", rel)
			}

			return nil
		}

		if err := signFile(path, filepath.ToSlash(rel), now); err != nil {
			fmt.Printf("❌ %s: %v\n", rel, err)

			failed++
		} else {
			fmt.Printf("✍️  Signed: %s\n", rel)
		}

		return nil
	})
	if err != nil {
		log.Fatalf("❌ Error walking %s: %v\n", dir, err)
	}

	fmt.Printf("\n📊 Summary: %d pages, %d failed\n", count, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func verifyFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	_, err = metadata.Verify(string(content))

	return err
}

// signFile re-stamps a page, keeping the validation flag of an existing stamp.
func signFile(path, page string, now time.Time) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	validated := true

	meta, err := metadata.Verify(string(content))
	switch {
	case errors.Is(err, metadata.ErrNoMetadataBlock):
	case meta != nil:
		validated = meta.Validation
	}

	signed := metadata.Sign(string(content), page, validated, now)

	return os.WriteFile(path, []byte(signed), 0644)
}
