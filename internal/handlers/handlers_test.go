package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deepguard/internal/ai"
	"deepguard/internal/analytics"
	"deepguard/internal/models"
	"deepguard/internal/scoring"
)

type fakeResolver struct{ keys map[string]uint }

func (f *fakeResolver) Resolve(_ context.Context, key string) (uint, error) {
	if id, ok := f.keys[key]; ok {
		return id, nil
	}
	return 0, models.ErrUnauthorized
}

type fakeAnalyzer struct {
	analysis *ai.Analysis
	err      error
}

func (f *fakeAnalyzer) AnalyzeURL(_ context.Context, _ string) (*ai.Analysis, error) {
	return f.analysis, f.err
}

type fakeDetections struct {
	records map[uint]*models.DetectionResult
	nextID  uint
}

func newFakeDetections() *fakeDetections {
	return &fakeDetections{records: make(map[uint]*models.DetectionResult), nextID: 1}
}

func (f *fakeDetections) Create(_ context.Context, userID uint, req models.CreateDetectionRequest) (*models.DetectionResult, error) {
	if req.SourceRef == "" || req.Score < 0 || req.Score > 100 {
		return nil, models.ErrValidation
	}
	isDeepfake, band := scoring.Derive(req.Score)
	rec := &models.DetectionResult{
		UserID:     userID,
		SourceRef:  req.SourceRef,
		Score:      req.Score,
		IsDeepfake: isDeepfake,
		Confidence: band,
		Details:    req.Details,
	}
	rec.ID = f.nextID
	f.nextID++
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeDetections) Get(_ context.Context, userID, id uint) (*models.DetectionResult, error) {
	rec, ok := f.records[id]
	if !ok || rec.UserID != userID {
		return nil, models.ErrNotFound
	}
	return rec, nil
}

func (f *fakeDetections) Update(_ context.Context, userID, id uint, req models.UpdateDetectionRequest) (*models.DetectionResult, error) {
	rec, err := f.Get(context.Background(), userID, id)
	if err != nil {
		return nil, err
	}
	if req.Score != nil {
		if !scoring.ValidScore(*req.Score) {
			return nil, models.ErrValidation
		}
		rec.Score = *req.Score
		rec.IsDeepfake, rec.Confidence = scoring.Derive(*req.Score)
	}
	return rec, nil
}

func (f *fakeDetections) Delete(_ context.Context, userID, id uint) error {
	if _, err := f.Get(context.Background(), userID, id); err != nil {
		return err
	}
	delete(f.records, id)
	return nil
}

func (f *fakeDetections) List(_ context.Context, userID uint) ([]models.DetectionResult, error) {
	var out []models.DetectionResult
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeUsage struct {
	charges []string
	err     error
}

func (f *fakeUsage) Charge(_ context.Context, _ uint, action string, _ int) error {
	if f.err != nil {
		return f.err
	}
	f.charges = append(f.charges, action)
	return nil
}

func (f *fakeUsage) History(_ context.Context, userID uint) ([]models.UsageLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	logs := make([]models.UsageLog, 0, len(f.charges))
	for _, action := range f.charges {
		logs = append(logs, models.UsageLog{UserID: userID, Action: action, CreditsSpent: 1})
	}
	return logs, nil
}

type fakeNotifier struct{ notified int }

func (f *fakeNotifier) FromDetection(_ context.Context, _ *models.DetectionResult) { f.notified++ }

func authedRequest(method, target string, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set("X-API-Key", "good-key")
	return r
}

func newAuthedMux(resolver KeyResolver, pattern string, h http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(pattern, RequireAPIKey(resolver, h))
	return mux
}

func TestRequireAPIKey(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 42}}
	mux := newAuthedMux(resolver, "GET /whoami", func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserID(r)
		writeJSON(w, http.StatusOK, map[string]uint{"user": id})
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key: expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/whoami", ""))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "42") {
		t.Fatalf("valid key: expected 200 with user 42, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeURLEndpoint(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1}}
	detections := newFakeDetections()
	usage := &fakeUsage{}
	notifier := &fakeNotifier{}
	analyzer := &fakeAnalyzer{analysis: &ai.Analysis{
		URL: "https://example.com/face.jpg", Score: 88, IsDeepfake: true,
		Confidence: models.BandHigh, ProcessingMS: 120,
	}}
	mux := newAuthedMux(resolver, "POST /analyze-url", NewAnalyzeURL(analyzer, detections, usage, notifier))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/analyze-url", `{"url":"https://example.com/face.jpg"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.AnalyzeURLResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if resp.ID == 0 || resp.Result.Score != 88 || !resp.Result.IsDeepfake {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(usage.charges) != 1 || usage.charges[0] != "analyze_url" {
		t.Fatalf("expected one analyze_url charge, got %v", usage.charges)
	}
	if notifier.notified != 1 {
		t.Fatalf("expected deepfake alert emission")
	}
	if len(detections.records) != 1 {
		t.Fatalf("expected persisted detection record")
	}
}

func TestAnalyzeURLQuotaExceeded(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1}}
	usage := &fakeUsage{err: fmt.Errorf("%w: plan limit reached", models.ErrQuotaExceeded)}
	analyzer := &fakeAnalyzer{analysis: &ai.Analysis{Score: 10}}
	mux := newAuthedMux(resolver, "POST /analyze-url", NewAnalyzeURL(analyzer, newFakeDetections(), usage, &fakeNotifier{}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/analyze-url", `{"url":"https://example.com/x.jpg"}`))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("quota exhaustion: expected 429, got %d", rec.Code)
	}
}

func TestAnalyzeURLPublicEnvelope(t *testing.T) {
	h := NewAnalyzeURLPublic(&fakeAnalyzer{analysis: &ai.Analysis{
		Score: 30, Confidence: models.BandLow, ProcessingMS: 50,
	}})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/analyze-url-public", strings.NewReader(`{"url":"https://example.com/x.jpg"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.PublicAnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if !resp.Success || resp.Result == nil || resp.Result.Score != 30 || resp.Timestamp.IsZero() {
		t.Fatalf("unexpected envelope: %+v", resp)
	}

	// Lookup failure: success:false envelope, 502, no fabricated result.
	h = NewAnalyzeURLPublic(&fakeAnalyzer{err: fmt.Errorf("%w: model down", models.ErrLookupFailed)})
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/analyze-url-public", strings.NewReader(`{"url":"https://example.com/x.jpg"}`)))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	resp = models.PublicAnalyzeResponse{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success || resp.Result != nil || resp.Error == "" {
		t.Fatalf("failure envelope wrong: %+v", resp)
	}
}

func TestDetectionCRUDEndpoints(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1, "other-key": 2}}
	detections := newFakeDetections()
	mux := http.NewServeMux()
	mux.Handle("POST /detections", RequireAPIKey(resolver, NewCreateDetection(detections, &fakeNotifier{})))
	mux.Handle("GET /detections/{id}", RequireAPIKey(resolver, NewGetDetection(detections)))
	mux.Handle("DELETE /detections/{id}", RequireAPIKey(resolver, NewDeleteDetection(detections)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/detections", `{"source_ref":"clip.mp4","score":72}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/detections/1", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	// Another owner's key must not see the record.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/detections/1", nil)
	req.Header.Set("X-API-Key", "other-key")
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign record: expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodDelete, "/detections/1", ""))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/detections/999", ""))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing record: expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/detections/abc", ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", rec.Code)
	}
}

func TestUpdateDetectionRederivesScore(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1}}
	detections := newFakeDetections()
	mux := http.NewServeMux()
	mux.Handle("POST /detections", RequireAPIKey(resolver, NewCreateDetection(detections, &fakeNotifier{})))
	mux.Handle("PATCH /detections/{id}", RequireAPIKey(resolver, NewUpdateDetection(detections)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/detections", `{"source_ref":"clip.mp4","score":82}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Re-scoring below both thresholds must flip the derived fields with it.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPatch, "/detections/1", `{"score":30}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.DetectionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if updated.Score != 30 || updated.IsDeepfake || updated.Confidence != models.BandLow {
		t.Fatalf("score 30 must derive no-deepfake/low, got %+v", updated)
	}

	// And back up into the medium band.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPatch, "/detections/1", `{"score":69}`))
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if !updated.IsDeepfake || updated.Confidence != models.BandMedium {
		t.Fatalf("score 69 must derive deepfake/medium, got %+v", updated)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPatch, "/detections/1", `{"score":120}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range score: expected 400, got %d", rec.Code)
	}
}

type fakeAlertStore struct {
	alerts []*models.MonitoringAlert
}

func (f *fakeAlertStore) List(_ context.Context, userID uint) ([]models.MonitoringAlert, error) {
	var out []models.MonitoringAlert
	for _, a := range f.alerts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAlertStore) Get(_ context.Context, userID, id uint) (*models.MonitoringAlert, error) {
	for _, a := range f.alerts {
		if a.UserID == userID && a.ID == id {
			return a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAlertStore) MarkRead(_ context.Context, userID, id uint) error {
	for _, a := range f.alerts {
		if a.UserID == userID && a.ID == id {
			a.Read = true
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeAlertStore) MarkAllRead(_ context.Context, userID uint) error {
	for _, a := range f.alerts {
		if a.UserID == userID {
			a.Read = true
		}
	}
	return nil
}

func (f *fakeAlertStore) UnreadCount(_ context.Context, userID uint) (int, error) {
	count := 0
	for _, a := range f.alerts {
		if a.UserID == userID && !a.Read {
			count++
		}
	}
	return count, nil
}

func TestMarkAllAlertsReadIdempotent(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1}}
	store := &fakeAlertStore{}
	for i := uint(1); i <= 3; i++ {
		alert := &models.MonitoringAlert{UserID: 1, AlertType: models.AlertSystem, Severity: models.RiskLow, Title: "t"}
		alert.ID = i
		store.alerts = append(store.alerts, alert)
	}
	mux := http.NewServeMux()
	mux.Handle("POST /alerts/read-all", RequireAPIKey(resolver, NewMarkAllAlertsRead(store)))
	mux.Handle("GET /alerts/unread-count", RequireAPIKey(resolver, NewUnreadAlertCount(store)))

	unread := func() int {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/alerts/unread-count", ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("unread-count: expected 200, got %d", rec.Code)
		}
		var resp struct {
			Unread int `json:"unread"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response JSON: %v", err)
		}
		return resp.Unread
	}

	if got := unread(); got != 3 {
		t.Fatalf("expected 3 unread before read-all, got %d", got)
	}

	// Twice in a row: unread must be zero after each call.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/alerts/read-all", ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("read-all #%d: expected 200, got %d", i+1, rec.Code)
		}
		if got := unread(); got != 0 {
			t.Fatalf("read-all #%d: expected 0 unread, got %d", i+1, got)
		}
	}
}

type fakeBreachChecker struct {
	result *models.BreachDetectionResult
	err    error
}

func (f *fakeBreachChecker) CheckEmail(_ context.Context, _ uint, _ string) (*models.BreachDetectionResult, error) {
	return f.result, f.err
}

func (f *fakeBreachChecker) CheckPhone(_ context.Context, _ uint, _ string) (*models.BreachDetectionResult, error) {
	return f.result, f.err
}

func TestCheckEmailEndpoint(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1}}
	checker := &fakeBreachChecker{result: &models.BreachDetectionResult{
		Subject: "user@example.com", SubjectType: models.SubjectEmail,
		IsBreached: true, TotalBreaches: 2, RiskLevel: models.RiskMedium,
		DetectedAt: time.Now().UTC(),
	}}
	usage := &fakeUsage{}
	mux := newAuthedMux(resolver, "POST /breach/check-email", NewCheckEmail(checker, usage))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/breach/check-email", `{"email":"user@example.com"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(usage.charges) != 1 || usage.charges[0] != "breach_check_email" {
		t.Fatalf("expected breach_check_email charge, got %v", usage.charges)
	}
}

func TestUsageHistoryEndpoint(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 7}}
	usage := &fakeUsage{charges: []string{"analyze_url", "breach_check_email"}}
	mux := newAuthedMux(resolver, "GET /usage", NewUsageHistory(usage))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/usage", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Usage []models.UsageLog `json:"usage"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if resp.Count != 2 || len(resp.Usage) != 2 {
		t.Fatalf("expected 2 usage rows, got count=%d len=%d", resp.Count, len(resp.Usage))
	}
	if resp.Usage[0].Action != "analyze_url" {
		t.Fatalf("unexpected first action %q", resp.Usage[0].Action)
	}
}

func TestCheckEmailLookupFailureIs502(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1}}
	checker := &fakeBreachChecker{err: fmt.Errorf("%w: provider returned 500", models.ErrLookupFailed)}
	mux := newAuthedMux(resolver, "POST /breach/check-email", NewCheckEmail(checker, &fakeUsage{}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/breach/check-email", `{"email":"user@example.com"}`))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("lookup failure must be 502, never a clean result; got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"is_breached"`) {
		t.Fatalf("failure response must not carry a breach verdict: %s", rec.Body.String())
	}
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if body.Error != models.ErrLookupFailed.Error() {
		t.Fatalf("expected error label %q, got %q", models.ErrLookupFailed.Error(), body.Error)
	}
	if !strings.Contains(body.Details, "provider returned 500") {
		t.Fatalf("details must carry the wrapped cause, got %q", body.Details)
	}
}

type fakeAggregator struct{}

func (fakeAggregator) Summary(_ context.Context, _ uint) analytics.Summary {
	return analytics.Summary{Status: analytics.StatusOK, GeneratedAt: time.Now().UTC()}
}

func (fakeAggregator) Trends(_ context.Context, _ uint, days int) analytics.TrendSeries {
	return analytics.TrendSeries{
		Status: analytics.StatusOK,
		Days:   days,
		Points: make([]analytics.TrendPoint, days),
	}
}

func TestAnalyticsTrendsValidation(t *testing.T) {
	resolver := &fakeResolver{keys: map[string]uint{"good-key": 1}}
	mux := newAuthedMux(resolver, "GET /analytics/trends", NewAnalyticsTrends(fakeAggregator{}))

	for _, bad := range []string{"0", "-1", "91", "abc"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/analytics/trends?days="+bad, ""))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("days=%s: expected 400, got %d", bad, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/analytics/trends?days=30", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("days=30: expected 200, got %d", rec.Code)
	}
	var resp analytics.TrendSeries
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if resp.Days != 30 || len(resp.Points) != 30 {
		t.Fatalf("expected 30-point series, got days=%d len=%d", resp.Days, len(resp.Points))
	}
	if resp.Status != analytics.StatusOK {
		t.Fatalf("expected ok status on the wire, got %s", resp.Status)
	}
}

func TestRequireAdminKey(t *testing.T) {
	h := RequireAdminKey("secret", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing admin key: expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	req.Header.Set("X-ADMIN-KEY", "secret")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid admin key: expected 200, got %d", rec.Code)
	}

	// An empty configured key must lock the endpoint, not open it.
	h = RequireAdminKey("", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	req.Header.Set("X-ADMIN-KEY", "")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("empty configured key must reject, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(http.NewServeMux())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/analyze-url", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS headers")
	}
}
