// Package reporter renders the ordered findings stream for consumption
// outside the scan core.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"depthcharge/internal/config"
	"depthcharge/internal/models"
	"depthcharge/internal/scanner"

	"github.com/rs/zerolog"
)

// Reporter writes findings, warnings and the scan summary to an output
// stream, either as human-readable text or JSON lines.
type Reporter struct {
	out    io.Writer
	format string
	logger zerolog.Logger
}

// NewReporter creates a reporter for the configured format.
func NewReporter(out io.Writer, cfg config.ReporterConfig, logger zerolog.Logger) *Reporter {
	return &Reporter{
		out:    out,
		format: strings.ToLower(cfg.Format),
		logger: logger.With().Str("module", "Reporter").Logger(),
	}
}

// Report renders one scan result.
func (r *Reporter) Report(result *scanner.ScanResult) error {
	if r.format == "json" {
		return r.reportJSON(result)
	}
	return r.reportConsole(result)
}

func (r *Reporter) reportJSON(result *scanner.ScanResult) error {
	encoder := json.NewEncoder(r.out)
	for i := range result.Findings {
		if err := encoder.Encode(&result.Findings[i]); err != nil {
			return err
		}
	}
	for i := range result.Warnings {
		if err := encoder.Encode(&result.Warnings[i]); err != nil {
			return err
		}
	}
	return encoder.Encode(&result.Summary)
}

func (r *Reporter) reportConsole(result *scanner.ScanResult) error {
	if len(result.Findings) == 0 {
		fmt.Fprintln(r.out, "No secrets found.")
	}

	for i := range result.Findings {
		f := &result.Findings[i]
		fmt.Fprintln(r.out, "#########################################")
		fmt.Fprintf(r.out, "%-12s=> %s\n", "commit", f.CommitHash)
		fmt.Fprintf(r.out, "%-12s=> %s\n", "author", f.Author)
		fmt.Fprintf(r.out, "%-12s=> %s\n", "date", f.CommitTime.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(r.out, "%-12s=> %s:%d\n", "location", f.FilePath, f.LineNumber)
		fmt.Fprintf(r.out, "%-12s=> %s (%s, %s)\n", "rule", f.RuleName, detectorList(f.Detectors), f.Confidence)
		if f.Origin == models.OriginDecompiled {
			fmt.Fprintf(r.out, "%-12s=> recovered from decompiled cache artifact\n", "origin")
		}
		fmt.Fprintf(r.out, "%-12s=> %s\n", "secret", f.Secret)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(r.out, "\n%d warning(s): scan result is partial\n", len(result.Warnings))
		for i := range result.Warnings {
			w := &result.Warnings[i]
			fmt.Fprintf(r.out, "  [%s] %s %s\n", w.Kind, w.Subject, w.Detail)
		}
	}

	s := &result.Summary
	fmt.Fprintf(r.out, "\nScanned %d commit(s), %d edge(s), %d blob(s) (%d cache hits) in %s: %d finding(s), termination=%s\n",
		s.CommitsVisited, s.EdgesProcessed, s.BlobsScanned, s.CacheHits, s.Duration.Round(time.Millisecond), s.FindingCount, s.Termination)
	return nil
}

func detectorList(kinds []models.DetectorKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, "+")
}
