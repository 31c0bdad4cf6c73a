package detector

import (
	"regexp"

	"depthcharge/internal/common/errorwrapper"
	"depthcharge/internal/config"
	"depthcharge/internal/models"
)

type compiledRule struct {
	name  string
	regex *regexp.Regexp
}

// SignatureDetector matches a line against an ordered list of named rules.
// Every matching rule is reported separately; rules never suppress each
// other, so evaluation order does not affect the result set.
type SignatureDetector struct {
	rules []compiledRule
}

// NewSignatureDetector compiles the rule list. An uncompilable rule is a
// fatal configuration error.
func NewSignatureDetector(rules []config.SignatureRule) (*SignatureDetector, error) {
	d := &SignatureDetector{rules: make([]compiledRule, 0, len(rules))}
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errorwrapper.NewRuleError(rule.Name, rule.Pattern, err)
		}
		d.rules = append(d.rules, compiledRule{name: rule.Name, regex: re})
	}
	return d, nil
}

func (d *SignatureDetector) Kind() models.DetectorKind {
	return models.DetectorKindSignature
}

// Detect reports every rule match anywhere in the line. A capture group, when
// present, narrows the reported secret to the captured portion of the match.
func (d *SignatureDetector) Detect(line string) []models.Candidate {
	var candidates []models.Candidate
	for i := range d.rules {
		rule := &d.rules[i]
		for _, match := range rule.regex.FindAllStringSubmatch(line, -1) {
			secret := match[0]
			if len(match) > 1 && match[1] != "" {
				secret = match[1]
			}
			candidates = append(candidates, models.Candidate{
				RuleName:   rule.name,
				Kind:       models.DetectorKindSignature,
				Secret:     secret,
				Confidence: models.ConfidenceHigh,
			})
		}
	}
	return candidates
}
