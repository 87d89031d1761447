// Package main provides the deploy command-line tool for publishing the generated site.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"ritdining/internal/config"
	"ritdining/internal/logger"
	"ritdining/internal/publish"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorRed    = "\033[0;31m"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	envFile := flag.String("env", ".env", "Dotenv file with S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY")
	dir := flag.String("path", "", "Site directory to upload (default: output.root)")
	bucket := flag.String("bucket", "", "Target bucket (default: deploy.bucket)")
	dryRun := flag.Bool("dry-run", false, "List the objects without uploading")

	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		fmt.Printf("%s[DEPLOY]%s No %s file loaded, using the process environment\n", colorYellow, colorReset, *envFile)
	}

	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fail("failed to load config: %v", err)
	}

	if *dir == "" {
		*dir = cfg.Output.Root
	}

	if *bucket != "" {
		cfg.Deploy.Bucket = *bucket
	}

	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.Deploy.Endpoint = v
	}

	log := logger.NewLogger(cfg.Logging.Level)

	var client publish.Client = noopClient{}

	if !*dryRun {
		s3Client, err := publish.NewS3Client(cfg.Deploy.Endpoint, cfg.Deploy.Region, publish.Credentials{
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			fail("%v", err)
		}

		client = s3Client
	}

	publisher, err := publish.NewPublisher(client, cfg.Deploy.Bucket, cfg.Deploy.Prefix, log)
	if err != nil {
		fail("%v", err)
	}

	publisher.SetDryRun(*dryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s[DEPLOY]%s Publishing %s to bucket %s...\n", colorGreen, colorReset, *dir, cfg.Deploy.Bucket)

	result, err := publisher.Publish(ctx, *dir)
	if err != nil {
		fail("%v", err)
	}

	if len(result.Errors) > 0 {
		fail("%d of %d uploads failed", len(result.Errors), len(result.Errors)+len(result.Uploaded))
	}

	fmt.Printf("%s[DEPLOY]%s Uploaded %d objects\n", colorGreen, colorReset, len(result.Uploaded))

	if cfg.Deploy.PublicURL != "" {
		fmt.Printf("%s[DEPLOY]%s Site: %s/%s\n", colorGreen, colorReset, cfg.Deploy.PublicURL, publisher.Key("index.html"))
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s[DEPLOY]%s %s\n", colorRed, colorReset, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// noopClient satisfies publish.Client for dry runs.
type noopClient struct{}

func (noopClient) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, nil
}
