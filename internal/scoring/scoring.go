// Package scoring holds the canonical score extraction and derivation rules.
// Every call site that needs isDeepfake or a confidence band goes through
// this package; the thresholds are defined nowhere else.
package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"deepguard/internal/models"
)

const (
	// DeepfakeThreshold: a score strictly above this marks content as deepfake.
	DeepfakeThreshold = 60.0

	// Band thresholds: >75 high, >50 medium, else low.
	HighBandThreshold   = 75.0
	MediumBandThreshold = 50.0

	// Keyword heuristic parameters used when no explicit score is present.
	baselineScore    = 45
	keywordIncrement = 12
	keywordDecrement = 8
)

// explicitPatterns are tried in order; the first (leftmost) match wins.
var explicitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:score|confidence)\s*[:=]?\s*(\d{1,3})`),
	regexp.MustCompile(`(\d{1,3})\s*%`),
}

// manipulationKeywords indicate generated or altered content.
var manipulationKeywords = []string{
	"fake",
	"artificial",
	"generated",
	"manipulated",
	"synthetic",
	"deepfake",
	"fabricated",
}

// authenticityKeywords indicate genuine content and lower the score.
var authenticityKeywords = []string{
	"authentic",
	"genuine",
	"real photo",
	"original",
	"natural",
	"unaltered",
}

// ExtractScore turns free-form analysis text into a score in [0,100].
//
// It first looks for an explicit percentage or "score:"/"confidence:" value
// and returns it clamped. Without one it falls back to the keyword heuristic:
// baseline 45, +12 per manipulation keyword, -8 per authenticity keyword.
// Empty or unparseable text yields the baseline.
func ExtractScore(text string) int {
	for _, re := range explicitPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return clamp(v)
			}
		}
	}

	score := baselineScore
	lower := strings.ToLower(text)
	for _, kw := range manipulationKeywords {
		if strings.Contains(lower, kw) {
			score += keywordIncrement
		}
	}
	for _, kw := range authenticityKeywords {
		if strings.Contains(lower, kw) {
			score -= keywordDecrement
		}
	}
	return clamp(score)
}

// IsDeepfake reports whether a score marks the content as a deepfake.
func IsDeepfake(score float64) bool {
	return score > DeepfakeThreshold
}

// Band maps a score to its confidence band.
func Band(score float64) models.ConfidenceBand {
	switch {
	case score > HighBandThreshold:
		return models.BandHigh
	case score > MediumBandThreshold:
		return models.BandMedium
	default:
		return models.BandLow
	}
}

// Derive returns both derived fields for a score. Write paths call this so
// the stored flags can never drift from the score.
func Derive(score float64) (bool, models.ConfidenceBand) {
	return IsDeepfake(score), Band(score)
}

// ValidScore reports whether a score is inside the accepted [0,100] range.
func ValidScore(score float64) bool {
	return score >= 0 && score <= 100
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
