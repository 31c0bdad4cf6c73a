package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"depthcharge/internal/artifact"
	"depthcharge/internal/config"
	"depthcharge/internal/gitrepo"
	"depthcharge/internal/logger"
	"depthcharge/internal/reporter"
	"depthcharge/internal/scanner"
)

func main() {
	repoPath := flag.String("repo", "", "Path to a local git repository to scan.")
	repoPathAlias := flag.String("r", "", "Alias for --repo")

	repoURL := flag.String("url", "", "Remote repository URL (or platform 'owner/name') to clone and scan.")
	repoURLAlias := flag.String("u", "", "Alias for --url")

	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for --config")

	refs := flag.String("refs", "", "Comma-separated list of start references (default: all refs).")
	jsonOutput := flag.Bool("json", false, "Emit findings as JSON lines instead of console output.")
	workers := flag.Int("workers", 0, "Number of scan workers (overrides config file if set).")
	maxCommits := flag.Int("max-commits", 0, "Maximum number of commits to visit (overrides config file if set).")
	sinceCommit := flag.String("since-commit", "", "Stop traversal when this commit is reached.")
	allParents := flag.Bool("all-parents", false, "Diff merge commits against every parent instead of first parent only.")
	flag.Parse()

	if *repoPath == "" && *repoPathAlias != "" {
		*repoPath = *repoPathAlias
	}
	if *repoURL == "" && *repoURLAlias != "" {
		*repoURL = *repoURLAlias
	}
	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}

	cfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", *configFile, err)
	}

	// Flags take precedence over the config file.
	if *repoPath != "" {
		cfg.RepoConfig.Path = *repoPath
	}
	if *repoURL != "" {
		cfg.RepoConfig.URL = *repoURL
	}
	if *refs != "" {
		cfg.WalkConfig.StartRefs = strings.Split(*refs, ",")
	}
	if *workers > 0 {
		cfg.ScannerConfig.Workers = *workers
	}
	if *maxCommits > 0 {
		cfg.WalkConfig.MaxCommits = *maxCommits
	}
	if *sinceCommit != "" {
		cfg.WalkConfig.SinceCommit = *sinceCommit
	}
	if *allParents {
		cfg.WalkConfig.FirstParentOnly = false
	}
	if *jsonOutput {
		cfg.ReporterConfig.Format = "json"
	}
	if cfg.RepoConfig.Path == "" && cfg.RepoConfig.URL == "" {
		cfg.RepoConfig.Path = "."
	}

	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("[FATAL] Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := gitrepo.Acquire(ctx, cfg.RepoConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not open repository")
	}

	scan, err := scanner.NewScanner(store, cfg, artifact.NewStringTable(), zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not initialize scanner")
	}

	result, err := scan.Run(ctx)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Scan failed")
	}

	rep := reporter.NewReporter(os.Stdout, cfg.ReporterConfig, zLogger)
	if err := rep.Report(result); err != nil {
		zLogger.Fatal().Err(err).Msg("Could not render report")
	}

	if result.Summary.Termination.Interrupted() {
		zLogger.Warn().Str("reason", string(result.Summary.Termination)).Msg("Scan terminated early")
	}
}
