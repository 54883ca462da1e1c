package analytics

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/gorm"

	"deepguard/internal/models"
)

type fakeChecks struct {
	checks []models.BreachCheck
	err    error
}

func (f *fakeChecks) List(_ context.Context, _ uint) ([]models.BreachCheck, error) {
	return f.checks, f.err
}

type fakeDetections struct {
	detections []models.DetectionResult
	err        error
}

func (f *fakeDetections) List(_ context.Context, _ uint) ([]models.DetectionResult, error) {
	return f.detections, f.err
}

func checkAt(t time.Time, subjectType models.SubjectType, breached bool, risk models.RiskLevel, names ...string) models.BreachCheck {
	var breaches models.BreachList
	for _, name := range names {
		breaches = append(breaches, models.BreachData{Name: name})
	}
	return models.BreachCheck{
		Model:         gorm.Model{CreatedAt: t},
		SubjectType:   subjectType,
		IsBreached:    breached,
		TotalBreaches: len(breaches),
		RiskLevel:     risk,
		Breaches:      breaches,
	}
}

func TestSummary(t *testing.T) {
	now := time.Now().UTC()
	agg := New(
		&fakeChecks{checks: []models.BreachCheck{
			checkAt(now, models.SubjectEmail, true, models.RiskHigh, "LinkedIn", "Adobe"),
			checkAt(now, models.SubjectEmail, false, models.RiskLow),
			checkAt(now, models.SubjectPhone, true, models.RiskMedium, "LinkedIn"),
		}},
		&fakeDetections{detections: []models.DetectionResult{
			{Model: gorm.Model{CreatedAt: now}, Score: 88},
			{Model: gorm.Model{CreatedAt: now}, Score: 30},
		}},
	)

	s := agg.Summary(context.Background(), 1)

	if s.Status != StatusOK {
		t.Fatalf("expected ok status, got %s", s.Status)
	}
	if s.TotalChecks != 5 || s.EmailChecks != 2 || s.PhoneChecks != 1 || s.URLAnalyses != 2 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.BreachedChecks != 2 {
		t.Fatalf("expected 2 breached checks, got %d", s.BreachedChecks)
	}
	if want := float64(2) / float64(5) * 100; s.BreachRate != want {
		t.Fatalf("expected breach rate %.2f, got %.2f", want, s.BreachRate)
	}
	// Histogram covers breach risks plus bucketed detection scores: 88 -> high, 30 -> low.
	if s.RiskHistogram[models.RiskHigh] != 2 || s.RiskHistogram[models.RiskLow] != 2 || s.RiskHistogram[models.RiskMedium] != 1 {
		t.Fatalf("unexpected histogram: %v", s.RiskHistogram)
	}
	if len(s.TopBreaches) != 2 {
		t.Fatalf("expected 2 ranked breaches, got %d", len(s.TopBreaches))
	}
	if s.TopBreaches[0].Name != "LinkedIn" || s.TopBreaches[0].Count != 2 {
		t.Fatalf("expected LinkedIn first with count 2, got %+v", s.TopBreaches[0])
	}
}

func TestSummaryEmpty(t *testing.T) {
	agg := New(&fakeChecks{}, &fakeDetections{})

	s := agg.Summary(context.Background(), 1)

	if s.Status != StatusOK {
		t.Fatalf("expected ok status, got %s", s.Status)
	}
	if s.TotalChecks != 0 || s.BreachRate != 0 {
		t.Fatalf("expected zeroed summary without division error, got %+v", s)
	}
}

func TestSummaryDegradedOnReadFailure(t *testing.T) {
	agg := New(
		&fakeChecks{err: errors.New("connection reset")},
		&fakeDetections{detections: []models.DetectionResult{{Score: 88}}},
	)

	s := agg.Summary(context.Background(), 1)

	if s.Status != StatusDegraded {
		t.Fatalf("expected degraded status, got %s", s.Status)
	}
	if s.TotalChecks != 0 || s.URLAnalyses != 0 || len(s.TopBreaches) != 0 {
		t.Fatalf("degraded summary must be zeroed, got %+v", s)
	}
}

func TestTrendsDenseSeries(t *testing.T) {
	now := time.Now().UTC()
	agg := New(
		&fakeChecks{checks: []models.BreachCheck{
			checkAt(now, models.SubjectEmail, true, models.RiskHigh, "Adobe"),
			checkAt(now.AddDate(0, 0, -2), models.SubjectEmail, false, models.RiskLow),
			// Outside the window, must be dropped.
			checkAt(now.AddDate(0, 0, -10), models.SubjectEmail, true, models.RiskHigh, "Adobe"),
		}},
		&fakeDetections{detections: []models.DetectionResult{
			{Model: gorm.Model{CreatedAt: now.AddDate(0, 0, -1)}, Score: 70},
		}},
	)

	series := agg.Trends(context.Background(), 1, 7)

	if series.Status != StatusOK {
		t.Fatalf("expected ok status, got %s", series.Status)
	}
	if series.Days != 7 {
		t.Fatalf("expected 7-day window, got %d", series.Days)
	}
	points := series.Points
	if len(points) != 7 {
		t.Fatalf("expected exactly 7 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		prev, _ := time.Parse("2006-01-02", points[i-1].Date)
		cur, _ := time.Parse("2006-01-02", points[i].Date)
		if cur.Sub(prev) != 24*time.Hour {
			t.Fatalf("dates not consecutive: %s then %s", points[i-1].Date, points[i].Date)
		}
	}
	if got := points[6].Date; got != now.Format("2006-01-02") {
		t.Fatalf("series must end today, got %s", got)
	}
	if points[6].BreachChecks != 1 || points[6].Breached != 1 {
		t.Fatalf("today's counts wrong: %+v", points[6])
	}
	if points[5].Detections != 1 {
		t.Fatalf("yesterday's detection count wrong: %+v", points[5])
	}
	if points[4].BreachChecks != 1 || points[4].Breached != 0 {
		t.Fatalf("two-days-ago counts wrong: %+v", points[4])
	}
	if points[0].BreachChecks != 0 && points[0].Detections != 0 {
		t.Fatalf("empty day must be zero-filled: %+v", points[0])
	}
}

func TestTrendsDefaultsWindow(t *testing.T) {
	agg := New(&fakeChecks{}, &fakeDetections{})
	if got := len(agg.Trends(context.Background(), 1, 0).Points); got != 7 {
		t.Fatalf("expected default 7-day window, got %d", got)
	}
}

func TestTrendsDegradedOnReadFailure(t *testing.T) {
	healthy := New(&fakeChecks{}, &fakeDetections{})
	broken := New(&fakeChecks{err: errors.New("connection reset")}, &fakeDetections{})

	empty := healthy.Trends(context.Background(), 1, 7)
	failed := broken.Trends(context.Background(), 1, 7)

	if empty.Status != StatusOK {
		t.Fatalf("empty dataset must be ok, got %s", empty.Status)
	}
	if failed.Status != StatusDegraded {
		t.Fatalf("failed read must be degraded, got %s", failed.Status)
	}
	// The failed series stays dense so charts still render, but it can never
	// be mistaken for a genuinely quiet window.
	if len(failed.Points) != 7 {
		t.Fatalf("degraded series must stay dense, got %d points", len(failed.Points))
	}
	if !reflect.DeepEqual(empty.Points, failed.Points) {
		t.Fatalf("zero-filled points should match; the status is the distinction")
	}
	if reflect.DeepEqual(empty, failed) {
		t.Fatalf("failed read must be distinguishable from an empty dataset")
	}
}
