package scoring

import (
	"testing"

	"deepguard/internal/models"
)

func TestExtractScore_ExplicitConfidencePattern(t *testing.T) {
	// Direct extraction wins; the keyword heuristic must not fire even though
	// the text also contains manipulation keywords.
	score := ExtractScore("Confidence: 88% — clearly AI-generated and synthetic")
	if score != 88 {
		t.Fatalf("expected 88, got %d", score)
	}
}

func TestExtractScore_ExplicitScorePattern(t *testing.T) {
	if score := ExtractScore("deepfake score: 42 based on artifacts"); score != 42 {
		t.Fatalf("expected 42, got %d", score)
	}
}

func TestExtractScore_BarePercentage(t *testing.T) {
	if score := ExtractScore("the material is 73% likely to be altered"); score != 73 {
		t.Fatalf("expected 73, got %d", score)
	}
}

func TestExtractScore_ClampsAbove100(t *testing.T) {
	if score := ExtractScore("confidence: 250"); score != 100 {
		t.Fatalf("expected clamp to 100, got %d", score)
	}
}

func TestExtractScore_KeywordHeuristic(t *testing.T) {
	// baseline 45 + 12 (synthetic) + 12 (manipulated) = 69
	score := ExtractScore("the lighting appears synthetic and the audio manipulated")
	if score != 69 {
		t.Fatalf("expected 69, got %d", score)
	}
	if !IsDeepfake(float64(score)) {
		t.Fatalf("expected 69 to be flagged deepfake")
	}
	if Band(float64(score)) != models.BandMedium {
		t.Fatalf("expected medium band for 69, got %s", Band(float64(score)))
	}
}

func TestExtractScore_AuthenticityKeywordsLowerScore(t *testing.T) {
	// baseline 45 - 8 (genuine) - 8 (unaltered) = 29
	score := ExtractScore("footage looks genuine and unaltered")
	if score != 29 {
		t.Fatalf("expected 29, got %d", score)
	}
}

func TestExtractScore_EmptyTextReturnsBaseline(t *testing.T) {
	if score := ExtractScore(""); score != 45 {
		t.Fatalf("expected baseline 45, got %d", score)
	}
}

func TestBand_ThresholdEdges(t *testing.T) {
	cases := []struct {
		score float64
		want  models.ConfidenceBand
	}{
		{0, models.BandLow},
		{50, models.BandLow},
		{50.1, models.BandMedium},
		{75, models.BandMedium},
		{75.1, models.BandHigh},
		{100, models.BandHigh},
	}
	for _, c := range cases {
		if got := Band(c.score); got != c.want {
			t.Fatalf("Band(%v): expected %s, got %s", c.score, c.want, got)
		}
	}
}

func TestIsDeepfake_ThresholdEdges(t *testing.T) {
	if IsDeepfake(60) {
		t.Fatalf("60 must not be flagged deepfake")
	}
	if !IsDeepfake(60.1) {
		t.Fatalf("60.1 must be flagged deepfake")
	}
}

func TestDerive_HighScore(t *testing.T) {
	isDeepfake, band := Derive(82)
	if !isDeepfake || band != models.BandHigh {
		t.Fatalf("expected (true, high) for 82, got (%v, %s)", isDeepfake, band)
	}
}

func TestValidScore_Range(t *testing.T) {
	for _, s := range []float64{0, 50, 100} {
		if !ValidScore(s) {
			t.Fatalf("expected %v to be valid", s)
		}
	}
	for _, s := range []float64{-0.1, 100.1} {
		if ValidScore(s) {
			t.Fatalf("expected %v to be invalid", s)
		}
	}
}
