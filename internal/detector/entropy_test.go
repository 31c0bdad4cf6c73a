package detector

import (
	"testing"

	"depthcharge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntropyDetector(t *testing.T) *EntropyDetector {
	t.Helper()
	d, err := NewEntropyDetector(config.NewDefaultDetectorConfig().Entropy)
	require.NoError(t, err)
	return d
}

func TestEntropyDetector_Detect(t *testing.T) {
	detector := newTestEntropyDetector(t)

	tests := []struct {
		name      string
		line      string
		wantCount int
		wantRule  string
	}{
		{
			name:      "Uniform random base64 token is flagged",
			line:      `secret = "xK9mPqR2vT7wYzA3bN5cD8fG1hJ4lM6o"`,
			wantCount: 1,
			wantRule:  "base64",
		},
		{
			name:      "Repeated single character is not flagged",
			line:      `pad = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"`,
			wantCount: 0,
		},
		{
			name:      "High entropy token below minimum length is not flagged",
			line:      `x = "kQ3zXp9Rv1"`,
			wantCount: 0,
		},
		{
			name:      "Random hex token is flagged",
			line:      `sha = 9f2c4e1a7d0b835fa6c2e84d1b09f73ca5`,
			wantCount: 1,
			wantRule:  "hex",
		},
		{
			name:      "Natural language is not flagged",
			line:      "the quick brown fox jumps over the lazy dog",
			wantCount: 0,
		},
		{
			name:      "UUID literal is suppressed by denylist",
			line:      `id = "f47ac10b58cc4372a5670e02b2c3d479"`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := detector.Detect(tt.line)
			require.Len(t, candidates, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantRule, candidates[0].RuleName)
			}
		})
	}
}

func TestEntropyDetector_Deterministic(t *testing.T) {
	detector := newTestEntropyDetector(t)
	line := `token = "xK9mPqR2vT7wYzA3bN5cD8fG1hJ4lM6o"`

	first := detector.Detect(line)
	require.NotEmpty(t, first)
	for i := 0; i < 10; i++ {
		again := detector.Detect(line)
		require.Equal(t, first, again, "identical line must yield identical candidates")
	}
}

func TestEntropyDetector_ThresholdBoundary(t *testing.T) {
	// One charset with a threshold the token entropy exactly meets: flagging
	// is inclusive at the boundary.
	cfg := config.EntropyConfig{
		Enabled:        true,
		MinTokenLength: 4,
		Charsets: []config.CharsetRule{
			// "abcd" has entropy exactly 2.0 bits per character.
			{Name: "lower", Chars: "abcdefghijklmnopqrstuvwxyz", Threshold: 2.0},
		},
	}
	detector, err := NewEntropyDetector(cfg)
	require.NoError(t, err)

	require.Len(t, detector.Detect("abcd"), 1, "entropy equal to threshold must flag")
	require.Empty(t, detector.Detect("aabb aaab"), "entropy below threshold must not flag")
}

func TestShannonEntropy(t *testing.T) {
	assert.Equal(t, 0.0, shannonEntropy(""))
	assert.Equal(t, 0.0, shannonEntropy("aaaa"))
	assert.InDelta(t, 2.0, shannonEntropy("abcd"), 1e-9)
	assert.InDelta(t, 1.0, shannonEntropy("aabb"), 1e-9)
}

func TestNewEntropyDetector_BadDenylistIsFatal(t *testing.T) {
	cfg := config.NewDefaultDetectorConfig().Entropy
	cfg.Denylist = append(cfg.Denylist, "([unclosed")
	_, err := NewEntropyDetector(cfg)
	require.Error(t, err)
}
