// Package scanner wires the commit walker, diff extractor, detectors and
// scan cache into a concurrent pipeline: a single producer enumerates diff
// edges into a bounded queue, a worker pool fully owns the per-edge diff and
// detection work, and the aggregator imposes the final commit-time order.
package scanner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"depthcharge/internal/artifact"
	"depthcharge/internal/config"
	"depthcharge/internal/detector"
	"depthcharge/internal/differ"
	"depthcharge/internal/gitrepo"
	"depthcharge/internal/models"
	"depthcharge/internal/scancache"
	"depthcharge/internal/walker"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scanner runs one scan invocation. Each invocation owns its own walker
// state and scan cache; nothing persists across invocations.
type Scanner struct {
	store   *gitrepo.ContentStore
	walker  *walker.CommitWalker
	differ  *differ.DiffExtractor
	engine  *detector.Engine
	adapter artifact.Adapter
	cache   *scancache.Cache
	cfg     *config.GlobalConfig
	scanID  string
	logger  zerolog.Logger

	edgesProcessed  atomic.Int64
	decompileErrors atomic.Int64
}

// ScanResult is the outcome of one scan: the ordered findings stream, the
// parallel warnings channel drained into a slice, and summary counters.
type ScanResult struct {
	Findings []models.Finding
	Warnings []models.Warning
	Summary  models.ScanSummary
}

// NewScanner assembles a scanner from configuration. All fatal configuration
// errors (uncompilable rules, bad path filters) surface here, before any
// worker is started.
func NewScanner(store *gitrepo.ContentStore, cfg *config.GlobalConfig, adapter artifact.Adapter, logger zerolog.Logger) (*Scanner, error) {
	engine, err := detector.NewEngine(cfg.DetectorConfig)
	if err != nil {
		return nil, err
	}

	matcher := artifact.NewPathMatcher(cfg.ArtifactConfig)
	diffExtractor, err := differ.NewDiffExtractor(store, cfg.DiffConfig, matcher, logger)
	if err != nil {
		return nil, err
	}

	scanID := uuid.NewString()
	return &Scanner{
		store:   store,
		walker:  walker.NewCommitWalker(store, cfg.WalkConfig, logger),
		differ:  diffExtractor,
		engine:  engine,
		adapter: adapter,
		cache:   scancache.New(),
		cfg:     cfg,
		scanID:  scanID,
		logger:  logger.With().Str("module", "Scanner").Str("scan_id", scanID).Logger(),
	}, nil
}

// ScanID identifies this invocation in logs and summaries.
func (s *Scanner) ScanID() string {
	return s.scanID
}

// Run executes the scan and blocks until the findings stream is complete.
// Recoverable failures degrade the result and surface as warnings; only
// startup problems return an error.
func (s *Scanner) Run(ctx context.Context) (*ScanResult, error) {
	startedAt := time.Now()

	// Resolve the start refs once, before spinning up any worker, so an
	// inaccessible repository fails fast.
	start, err := s.store.ResolveStartRefs(s.cfg.WalkConfig.StartRefs)
	if err != nil {
		return nil, err
	}

	// The walk context governs edge production only. Budget exhaustion
	// cancels it so no new edge is started, while the edge each worker is
	// currently processing finishes on the caller's context, so no edge
	// produces torn output.
	var walkCtx context.Context
	var stopWalk context.CancelFunc
	if s.cfg.ScannerConfig.MaxDurationSecs > 0 {
		walkCtx, stopWalk = context.WithTimeout(ctx, time.Duration(s.cfg.ScannerConfig.MaxDurationSecs)*time.Second)
	} else {
		walkCtx, stopWalk = context.WithCancel(ctx)
	}
	defer stopWalk()

	agg := newAggregator(s.cfg.ScannerConfig.MaxFindings, stopWalk)
	warnings := newWarningSink()

	workers := s.cfg.ScannerConfig.Workers
	if workers <= 0 {
		workers = config.DefaultWorkers
	}
	queueSize := s.cfg.ScannerConfig.QueueSize
	if queueSize <= 0 {
		queueSize = config.DefaultQueueSize
	}

	edges := make(chan models.DiffEdge, queueSize)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for edge := range edges {
				if walkCtx.Err() != nil {
					// Drain queued edges without processing once a
					// budget fired; in-flight edges already ran to
					// completion.
					continue
				}
				s.processEdge(ctx, edge, agg, warnings)
			}
		}()
	}

	s.logger.Info().Int("workers", workers).Int("queue_size", queueSize).Msg("Scan started")

	visited, bounded := s.walker.Walk(walkCtx, start, edges, warnings.add)
	close(edges)
	wg.Wait()

	findings := agg.sorted()
	warningList := warnings.list()
	hits, computes := s.cache.Stats()

	summary := models.ScanSummary{
		ScanID:          s.scanID,
		CommitsVisited:  visited,
		EdgesProcessed:  int(s.edgesProcessed.Load()),
		BlobsScanned:    int(computes),
		CacheHits:       int(hits),
		FindingCount:    len(findings),
		WarningCount:    len(warningList),
		Termination:     s.termination(ctx, walkCtx, bounded, agg),
		Duration:        time.Since(startedAt),
		StartedAt:       startedAt,
		DecompileErrors: int(s.decompileErrors.Load()),
	}

	s.logger.Info().
		Int("commits", summary.CommitsVisited).
		Int("findings", summary.FindingCount).
		Int("warnings", summary.WarningCount).
		Str("termination", string(summary.Termination)).
		Dur("duration", summary.Duration).
		Msg("Scan finished")

	return &ScanResult{Findings: findings, Warnings: warningList, Summary: summary}, nil
}

// termination classifies how the scan ended, keeping budget exhaustion
// distinct from natural completion.
func (s *Scanner) termination(parent, walk context.Context, bounded bool, agg *aggregator) models.TerminationReason {
	switch {
	case agg.limitReached():
		return models.TerminationMaxFindings
	case errors.Is(walk.Err(), context.DeadlineExceeded):
		return models.TerminationTimeout
	case parent.Err() != nil:
		return models.TerminationCanceled
	case bounded:
		return models.TerminationMaxCommits
	default:
		return models.TerminationCompleted
	}
}
