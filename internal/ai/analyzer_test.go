package ai

import (
	"context"
	"errors"
	"testing"

	"deepguard/internal/models"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(_ context.Context, _ ChatRequest) (*ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ChatResponse{
		Model:   "fake-model",
		Choices: []ChatChoice{{Message: ChatMessage{Role: "assistant", Content: f.reply}}},
	}, nil
}

var _ ChatProvider = (*fakeProvider)(nil)

func TestAnalyzeURLExplicitConfidence(t *testing.T) {
	a := NewAnalyzer(&fakeProvider{reply: "This image shows clear GAN artifacts. Confidence: 88%"}, 0)

	analysis, err := a.AnalyzeURL(context.Background(), "https://example.com/face.jpg")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if analysis.Score != 88 {
		t.Fatalf("expected explicit score 88, got %.0f", analysis.Score)
	}
	if !analysis.IsDeepfake || analysis.Confidence != models.BandHigh {
		t.Fatalf("expected high-confidence deepfake verdict, got %+v", analysis)
	}
	if analysis.Details["verdict"] == "" || analysis.Details["provider"] != "fake" {
		t.Fatalf("details missing provenance: %v", analysis.Details)
	}
}

func TestAnalyzeURLKeywordFallback(t *testing.T) {
	// No explicit percentage: baseline 45 plus two manipulation keywords.
	a := NewAnalyzer(&fakeProvider{reply: "The face looks artificial and likely generated."}, 0)

	analysis, err := a.AnalyzeURL(context.Background(), "https://example.com/clip.mp4")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if analysis.Score != 69 {
		t.Fatalf("expected heuristic score 69, got %.0f", analysis.Score)
	}
	if analysis.Confidence != models.BandMedium {
		t.Fatalf("expected medium band, got %s", analysis.Confidence)
	}
}

func TestAnalyzeURLProviderFailure(t *testing.T) {
	a := NewAnalyzer(&fakeProvider{err: errors.New("upstream 503")}, 0)

	_, err := a.AnalyzeURL(context.Background(), "https://example.com/face.jpg")
	if !errors.Is(err, models.ErrLookupFailed) {
		t.Fatalf("provider failure must map to ErrLookupFailed, got %v", err)
	}
}

func TestAnalyzeURLEmptyVerdict(t *testing.T) {
	a := NewAnalyzer(&fakeProvider{reply: "   "}, 0)

	_, err := a.AnalyzeURL(context.Background(), "https://example.com/face.jpg")
	if !errors.Is(err, models.ErrLookupFailed) {
		t.Fatalf("empty verdict must map to ErrLookupFailed, got %v", err)
	}
}

func TestAnalyzeURLRejectsBadInput(t *testing.T) {
	a := NewAnalyzer(&fakeProvider{reply: "Confidence: 10%"}, 0)

	for _, bad := range []string{"", "not a url", "ftp://example.com/x", "//missing-scheme"} {
		if _, err := a.AnalyzeURL(context.Background(), bad); !errors.Is(err, models.ErrValidation) {
			t.Fatalf("input %q: expected ErrValidation, got %v", bad, err)
		}
	}
}
