package scanner

import (
	"context"

	"depthcharge/internal/models"

	"github.com/go-git/go-git/v5/plumbing"
)

// processEdge runs the full diff and detect pipeline for one edge. Workers own
// this path exclusively; the scan cache is the only shared mutable state.
func (s *Scanner) processEdge(ctx context.Context, edge models.DiffEdge, agg *aggregator, warnings *warningSink) {
	s.edgesProcessed.Add(1)

	diffs, warns := s.differ.Extract(ctx, edge)
	for _, w := range warns {
		warnings.add(w)
	}

	for i := range diffs {
		diff := &diffs[i]

		var verdict *models.ScanVerdict
		var err error
		if diff.IsArtifact {
			verdict, err = s.artifactVerdict(diff.Path, diff.BlobHash, warnings)
		} else {
			verdict, err = s.blobVerdict(diff.BlobHash, warnings)
		}
		if err != nil {
			warnings.add(models.Warning{
				Kind:    models.WarningBlobUnreadable,
				Subject: diff.BlobHash,
				Detail:  err.Error(),
			})
			continue
		}
		if verdict.DecompileFailed {
			continue
		}

		candidates := s.attributableCandidates(diff, verdict, warnings)
		if len(candidates) == 0 {
			continue
		}

		findings := make([]models.Finding, 0, len(candidates))
		for _, c := range candidates {
			findings = append(findings, models.Finding{
				CommitHash: edge.Commit.Hash,
				Author:     edge.Commit.Author,
				CommitTime: edge.Commit.CommitTime,
				FilePath:   diff.Path,
				LineNumber: c.LineNumber,
				RuleName:   c.RuleName,
				Secret:     c.Secret,
				Confidence: c.Confidence,
				Origin:     verdict.Origin,
				Detectors:  []models.DetectorKind{c.Kind},
			})
		}
		agg.add(findings)
	}
}

// blobVerdict memoizes a full-blob detector run. The verdict depends only on
// blob content and detector configuration, so it is shared across every
// commit that references the blob.
func (s *Scanner) blobVerdict(blobHash string, warnings *warningSink) (*models.ScanVerdict, error) {
	return s.cache.GetOrCompute(blobHash, func() (*models.ScanVerdict, error) {
		content, err := s.store.BlobBytes(plumbing.NewHash(blobHash))
		if err != nil {
			return nil, err
		}
		candidates, degraded := s.engine.ScanContent(content)
		if degraded > 0 {
			warnings.add(models.Warning{
				Kind:    models.WarningMalformedText,
				Subject: blobHash,
				Detail:  "lines were sanitized or truncated before detection; result may be partial",
			})
		}
		return &models.ScanVerdict{
			BlobHash:   blobHash,
			Origin:     models.OriginSource,
			Candidates: candidates,
		}, nil
	})
}

// artifactVerdict memoizes decompile-then-scan for a cache artifact. A
// decompilation failure is cached as a failure marker so it is recorded once
// per blob hash, not once per referencing commit.
func (s *Scanner) artifactVerdict(path, blobHash string, warnings *warningSink) (*models.ScanVerdict, error) {
	return s.cache.GetOrCompute(blobHash, func() (*models.ScanVerdict, error) {
		data, err := s.store.BlobBytes(plumbing.NewHash(blobHash))
		if err != nil {
			return nil, err
		}

		text, err := s.adapter.Decompile(path, data)
		if err != nil {
			s.decompileErrors.Add(1)
			warnings.add(models.Warning{
				Kind:    models.WarningDecompileFailed,
				Subject: blobHash,
				Detail:  path + ": " + err.Error(),
			})
			return &models.ScanVerdict{
				BlobHash:        blobHash,
				Origin:          models.OriginDecompiled,
				DecompileFailed: true,
				FailureReason:   err.Error(),
			}, nil
		}

		candidates, degraded := s.engine.ScanContent([]byte(text))
		if degraded > 0 {
			warnings.add(models.Warning{
				Kind:    models.WarningMalformedText,
				Subject: blobHash,
				Detail:  "lines were sanitized or truncated before detection; result may be partial",
			})
		}
		return &models.ScanVerdict{
			BlobHash:   blobHash,
			Origin:     models.OriginDecompiled,
			Candidates: candidates,
			Text:       text,
		}, nil
	})
}

// attributableCandidates narrows a blob-wide verdict to the lines this edge
// actually introduced. For ordinary files the differ already produced added
// line numbers; for artifacts the reconstructed texts of both sides are
// diffed here as ordinary text.
func (s *Scanner) attributableCandidates(diff *models.FileDiff, verdict *models.ScanVerdict, warnings *warningSink) []models.Candidate {
	if diff.WholeBlobNew {
		return verdict.Candidates
	}

	var addedLines map[int]struct{}
	if diff.IsArtifact {
		oldVerdict, err := s.artifactVerdict(diff.FromPath, diff.FromBlobHash, warnings)
		if err != nil || oldVerdict.DecompileFailed {
			// Without the parent side every candidate is attributable.
			return verdict.Candidates
		}
		addedLines = addedLineNumbers(oldVerdict.Text, verdict.Text)
	} else {
		addedLines = make(map[int]struct{}, len(diff.Added))
		for _, line := range diff.Added {
			addedLines[line.LineNumber] = struct{}{}
		}
	}

	var filtered []models.Candidate
	for _, c := range verdict.Candidates {
		if _, ok := addedLines[c.LineNumber]; ok {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
