package scanner

import (
	"context"
	"sort"
	"sync"

	"depthcharge/internal/models"
)

// aggregator merges per-edge detector output arriving in arbitrary worker
// completion order. Duplicate findings (same commit, path, line and rule) are
// collapsed into one record listing every contributing detector, and the
// final stream is sorted by commit time with deterministic tie breaking.
type aggregator struct {
	mu          sync.Mutex
	byKey       map[string]*models.Finding
	maxFindings int
	cancel      context.CancelFunc
	limited     bool
}

func newAggregator(maxFindings int, cancel context.CancelFunc) *aggregator {
	return &aggregator{
		byKey:       make(map[string]*models.Finding),
		maxFindings: maxFindings,
		cancel:      cancel,
	}
}

// add folds a batch of findings from one edge into the aggregate. When the
// findings budget is exhausted the scan context is canceled; the batch that
// crossed the limit is still recorded in full so no edge produces torn
// output.
func (a *aggregator) add(findings []models.Finding) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range findings {
		f := findings[i]
		key := f.Key()
		if existing, ok := a.byKey[key]; ok {
			existing.Detectors = mergeDetectors(existing.Detectors, f.Detectors)
			continue
		}
		a.byKey[key] = &f
	}

	if a.maxFindings > 0 && len(a.byKey) >= a.maxFindings && !a.limited {
		a.limited = true
		a.cancel()
	}
}

func (a *aggregator) limitReached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limited
}

// sorted returns the deduplicated findings ordered by commit time, with ties
// broken by commit identifier, file path, line number and rule name.
func (a *aggregator) sorted() []models.Finding {
	a.mu.Lock()
	defer a.mu.Unlock()

	findings := make([]models.Finding, 0, len(a.byKey))
	for _, f := range a.byKey {
		findings = append(findings, *f)
	}

	sort.Slice(findings, func(i, j int) bool {
		fi, fj := &findings[i], &findings[j]
		if !fi.CommitTime.Equal(fj.CommitTime) {
			return fi.CommitTime.Before(fj.CommitTime)
		}
		if fi.CommitHash != fj.CommitHash {
			return fi.CommitHash < fj.CommitHash
		}
		if fi.FilePath != fj.FilePath {
			return fi.FilePath < fj.FilePath
		}
		if fi.LineNumber != fj.LineNumber {
			return fi.LineNumber < fj.LineNumber
		}
		return fi.RuleName < fj.RuleName
	})
	return findings
}

func mergeDetectors(existing, incoming []models.DetectorKind) []models.DetectorKind {
	for _, kind := range incoming {
		found := false
		for _, have := range existing {
			if have == kind {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, kind)
		}
	}
	return existing
}

// warningSink collects recoverable-failure warnings from the walker, the
// differ and the workers. Warnings are deduplicated on (kind, subject) so a
// failure attributed to one blob or commit is recorded once.
type warningSink struct {
	mu   sync.Mutex
	seen map[string]struct{}
	all  []models.Warning
}

func newWarningSink() *warningSink {
	return &warningSink{seen: make(map[string]struct{})}
}

func (s *warningSink) add(w models.Warning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(w.Kind) + ":" + w.Subject
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.all = append(s.all, w)
}

func (s *warningSink) list() []models.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Warning, len(s.all))
	copy(out, s.all)
	return out
}
