package detector

import (
	"math"
	"regexp"

	"depthcharge/internal/common/errorwrapper"
	"depthcharge/internal/config"
	"depthcharge/internal/models"
)

type charset struct {
	name      string
	member    [256]bool
	threshold float64
}

// EntropyDetector flags maximal charset tokens whose Shannon entropy meets
// the charset's threshold. Thresholds are tunable per charset: base64's
// larger alphabet yields structurally higher entropy than hex for genuinely
// random data, so the two cannot share a cutoff.
type EntropyDetector struct {
	charsets []charset
	minLen   int
	denylist []*regexp.Regexp
}

// NewEntropyDetector compiles the entropy configuration. An uncompilable
// denylist pattern is fatal.
func NewEntropyDetector(cfg config.EntropyConfig) (*EntropyDetector, error) {
	if cfg.MinTokenLength <= 0 {
		return nil, errorwrapper.NewValidationError("min_token_length", cfg.MinTokenLength, "must be positive")
	}

	d := &EntropyDetector{minLen: cfg.MinTokenLength}
	for _, cs := range cfg.Charsets {
		c := charset{name: cs.Name, threshold: cs.Threshold}
		for i := 0; i < len(cs.Chars); i++ {
			c.member[cs.Chars[i]] = true
		}
		d.charsets = append(d.charsets, c)
	}

	for _, pattern := range cfg.Denylist {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errorwrapper.NewRuleError("denylist", pattern, err)
		}
		d.denylist = append(d.denylist, re)
	}

	return d, nil
}

func (d *EntropyDetector) Kind() models.DetectorKind {
	return models.DetectorKindEntropy
}

// Detect tokenizes the line per charset and flags high-entropy tokens that
// are not suppressed by the denylist.
func (d *EntropyDetector) Detect(line string) []models.Candidate {
	var candidates []models.Candidate
	for i := range d.charsets {
		cs := &d.charsets[i]
		for _, token := range d.tokensOfSet(line, cs) {
			entropy := shannonEntropy(token)
			if entropy < cs.threshold {
				continue
			}
			if d.denied(token) {
				continue
			}
			candidates = append(candidates, models.Candidate{
				RuleName:   cs.name,
				Kind:       models.DetectorKindEntropy,
				Secret:     token,
				Confidence: models.ConfidenceMedium,
				Entropy:    entropy,
			})
		}
	}
	return candidates
}

func (d *EntropyDetector) denied(token string) bool {
	for _, re := range d.denylist {
		if re.MatchString(token) {
			return true
		}
	}
	return false
}

// tokensOfSet returns the maximal substrings of line whose bytes all belong
// to the charset and that reach the minimum token length. Shorter tokens
// cannot carry enough entropy to be meaningfully suspicious.
func (d *EntropyDetector) tokensOfSet(line string, cs *charset) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(line); i++ {
		if cs.member[line[i]] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= d.minLen {
			tokens = append(tokens, line[start:i])
		}
		start = -1
	}
	if start >= 0 && len(line)-start >= d.minLen {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

// shannonEntropy computes -sum(p(c) * log2(p(c))) over the token's character
// frequency distribution, scanning the token once.
func shannonEntropy(token string) float64 {
	if token == "" {
		return 0
	}
	var counts [256]int
	for i := 0; i < len(token); i++ {
		counts[token[i]]++
	}
	total := float64(len(token))
	entropy := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}
