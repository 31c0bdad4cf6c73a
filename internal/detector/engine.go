package detector

import (
	"bufio"
	"bytes"
	"strings"
	"unicode/utf8"

	"depthcharge/internal/config"
	"depthcharge/internal/models"
)

// maxLineBytes caps how much of a single line is examined. Minified bundles
// routinely pack everything into one line; content past the cap is dropped
// and the line is counted as degraded so the caller can surface a warning.
const maxLineBytes = 4 * 1024 * 1024

// Engine runs the full detector set over blob content line by line. It is the
// compute function memoized by the scan cache: output depends only on the
// content and the detector configuration.
type Engine struct {
	detectors []Detector
}

// NewEngine compiles the detector configuration into an engine. Malformed
// rules fail here, before any worker starts.
func NewEngine(cfg config.DetectorConfig) (*Engine, error) {
	detectors, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{detectors: detectors}, nil
}

// ScanContent scans every line of content and returns candidates with line
// numbers assigned, plus a count of lines that were degraded before
// detection: invalid text encoding sanitized, or an over-long line truncated
// at the cap. A degraded line never stops the remainder of the blob from
// being scanned.
func (e *Engine) ScanContent(content []byte) ([]models.Candidate, int) {
	var candidates []models.Candidate
	degraded := 0

	reader := bufio.NewReaderSize(bytes.NewReader(content), 64*1024)
	lineNumber := 1
	for {
		line, truncated, err := readCappedLine(reader)
		if err != nil {
			break
		}
		sanitized := !utf8.ValidString(line)
		if sanitized {
			line = strings.ToValidUTF8(line, "�")
		}
		if truncated || sanitized {
			degraded++
		}
		for _, d := range e.detectors {
			for _, c := range d.Detect(line) {
				c.LineNumber = lineNumber
				c.LineText = line
				candidates = append(candidates, c)
			}
		}
		lineNumber++
	}

	return candidates, degraded
}

// readCappedLine reads one line, keeping at most maxLineBytes of it. The
// remainder of an over-long line is consumed and discarded so the numbering
// of every line after it stays intact.
func readCappedLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	truncated := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if len(buf) > 0 || truncated {
				return string(buf), truncated, nil
			}
			return "", false, err
		}
		if room := maxLineBytes - len(buf); len(chunk) > room {
			buf = append(buf, chunk[:room]...)
			truncated = true
		} else if !truncated {
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			return string(buf), truncated, nil
		}
	}
}
