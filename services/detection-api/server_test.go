package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"voicedetect/common/auth"
	"voicedetect/common/config"
	"voicedetect/common/detector"
	"voicedetect/common/models"
	"voicedetect/common/observe"
)

const testKey = "hackathon_2024_voice_detection_key"

func init() {
	gin.SetMode(gin.TestMode)
}

type captureRecorder struct {
	mu      sync.Mutex
	records []models.DetectionRecord
}

func (r *captureRecorder) Submit(rec models.DetectionRecord) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return true
}

func newTestServer(t *testing.T, mutate func(*config.Config)) (*gin.Engine, *captureRecorder) {
	t.Helper()
	r, rec, _ := newMeteredTestServer(t, mutate)
	return r, rec
}

// newMeteredTestServer also returns the reader behind the server's metrics.
func newMeteredTestServer(t *testing.T, mutate func(*config.Config)) (*gin.Engine, *captureRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	cfg := config.Default()
	cfg.Auth = config.AuthConfig{Mode: config.AuthStatic, Header: "X-API-Key", APIKey: testKey}
	cfg.Server.MaxPayloadBytes = 64 << 10
	if mutate != nil {
		mutate(&cfg)
	}

	key, err := auth.New(cfg.Auth)
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	rec := &captureRecorder{}
	s := &server{
		cfg:      cfg,
		detector: detector.New(detector.WithLanguages(cfg.Languages()...)),
		auth:     key,
		audit:    rec,
		metrics:  metrics,
		now:      func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) },
	}
	return newRouter(s, http.NotFoundHandler()), rec, reader
}

func golden() []byte {
	return append([]byte{0xFF, 0xFB}, make([]byte, 1600)...)
}

func detectRequest(t *testing.T, key string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDetect_Success(t *testing.T) {
	t.Parallel()
	r, audit := newTestServer(t, nil)

	rec := serve(r, detectRequest(t, testKey, models.DetectionRequest{
		AudioBase64: base64.StdEncoding.EncodeToString(golden()),
		Language:    "telugu",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp models.DetectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Classification != "HUMAN" || resp.Confidence != 0.9068 {
		t.Errorf("verdict = %s %v, want HUMAN 0.9068", resp.Classification, resp.Confidence)
	}
	if resp.Language != "telugu" || resp.Explanation.LanguageSpecificAnalysis != "Telugu phonetic patterns analyzed" {
		t.Errorf("language fields = %q / %q", resp.Language, resp.Explanation.LanguageSpecificAnalysis)
	}
	if len(resp.Explanation.PrimaryIndicators) != 3 {
		t.Errorf("indicators = %v", resp.Explanation.PrimaryIndicators)
	}
	if resp.AudioDurationSeconds != 0.1 {
		t.Errorf("duration = %v, want 0.1", resp.AudioDurationSeconds)
	}
	if got := rec.Header().Get("Content-Language"); got != "te" {
		t.Errorf("Content-Language = %q, want te", got)
	}

	audit.mu.Lock()
	defer audit.mu.Unlock()
	if len(audit.records) != 1 {
		t.Fatalf("audit records = %d, want 1", len(audit.records))
	}
	if got := audit.records[0]; got.RequestID != rec.Header().Get(observe.RequestIDHeader) || got.Fingerprint != resp.Fingerprint {
		t.Errorf("audit record = %+v", got)
	}
}

func TestDetect_RepeatedRequestIDKeepsAuditRecordsDistinct(t *testing.T) {
	t.Parallel()
	r, audit := newTestServer(t, nil)
	const requestID = "11111111-1111-1111-1111-111111111111"

	for i := 0; i < 2; i++ {
		req := detectRequest(t, testKey, models.DetectionRequest{
			AudioBase64: base64.StdEncoding.EncodeToString(golden()),
		})
		req.Header.Set(observe.RequestIDHeader, requestID)
		if rec := serve(r, req); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, body = %s", i, rec.Code, rec.Body)
		}
	}

	audit.mu.Lock()
	defer audit.mu.Unlock()
	if len(audit.records) != 2 {
		t.Fatalf("audit records = %d, want 2", len(audit.records))
	}
	a, b := audit.records[0], audit.records[1]
	if a.ID == b.ID || a.ID == requestID || b.ID == requestID {
		t.Errorf("record ids %q and %q must be distinct and server-generated", a.ID, b.ID)
	}
	if a.RequestID != requestID || b.RequestID != requestID {
		t.Errorf("request ids = %q, %q; want %q", a.RequestID, b.RequestID, requestID)
	}
}

func TestDetect_AuthRejectionCounted(t *testing.T) {
	t.Parallel()
	r, _, reader := newMeteredTestServer(t, nil)

	rec := serve(r, detectRequest(t, "nope", models.DetectionRequest{
		AudioBase64: base64.StdEncoding.EncodeToString(golden()),
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var got int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "voicedetect.rejections" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("rejections data = %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value("reason"); ok && v.AsString() == "auth" {
					got += dp.Value
				}
			}
		}
	}
	if got != 1 {
		t.Errorf("rejections{reason=auth} = %d, want 1", got)
	}
}

func TestDetect_DefaultsToEnglish(t *testing.T) {
	t.Parallel()
	r, _ := newTestServer(t, nil)
	rec := serve(r, detectRequest(t, testKey, map[string]string{
		"audio_base64": base64.StdEncoding.EncodeToString(golden()),
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"language":"english"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestDetect_Errors(t *testing.T) {
	t.Parallel()
	r, audit := newTestServer(t, func(c *config.Config) {
		c.Detector.Languages = []detector.Language{detector.English, detector.Hindi}
	})
	good := base64.StdEncoding.EncodeToString(golden())

	tests := []struct {
		name   string
		key    string
		body   any
		status int
		msg    string
	}{
		{"missing key", "", models.DetectionRequest{AudioBase64: good}, http.StatusUnauthorized, "Invalid API key"},
		{"wrong key", "nope", models.DetectionRequest{AudioBase64: good}, http.StatusUnauthorized, "Invalid API key"},
		{"no audio", testKey, map[string]string{"language": "english"}, http.StatusBadRequest, "Invalid request body"},
		{"bad language", testKey, models.DetectionRequest{AudioBase64: good, Language: "french"}, http.StatusBadRequest, "Unsupported language"},
		{"disabled language", testKey, models.DetectionRequest{AudioBase64: good, Language: "tamil"}, http.StatusBadRequest, "Unsupported language"},
		{"not base64", testKey, models.DetectionRequest{AudioBase64: "%%%"}, http.StatusBadRequest, "Invalid audio data"},
		{"not mp3", testKey, models.DetectionRequest{AudioBase64: base64.StdEncoding.EncodeToString([]byte("RIFF0000WAVE"))}, http.StatusBadRequest, "Invalid audio data: invalid MP3 format"},
		{"too large", testKey, models.DetectionRequest{AudioBase64: strings.Repeat("A", 70<<10)}, http.StatusRequestEntityTooLarge, "Request body too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(r, detectRequest(t, tt.key, tt.body))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d; body = %s", rec.Code, tt.status, rec.Body)
			}
			var body models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.StatusCode != tt.status || !strings.HasPrefix(body.Error, tt.msg) {
				t.Errorf("body = %+v, want prefix %q", body, tt.msg)
			}
		})
	}

	t.Cleanup(func() {
		audit.mu.Lock()
		defer audit.mu.Unlock()
		if len(audit.records) != 0 {
			t.Errorf("rejected requests produced %d audit records", len(audit.records))
		}
	})
}

func TestMetaEndpoints(t *testing.T) {
	t.Parallel()
	r, _ := newTestServer(t, nil)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"operational"`) {
		t.Errorf("root = %d %s", rec.Code, rec.Body)
	}

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "healthy" || len(health.SupportedLanguages) != 5 || health.SupportedLanguages[0] != "tamil" {
		t.Errorf("health = %+v", health)
	}

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d %s", rec.Code, rec.Body)
	}
}

func TestReady_FailingChecker(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	mp := sdkmetric.NewMeterProvider()
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatal(err)
	}
	key, _ := auth.NewStaticKey("k")
	s := &server{
		cfg:      cfg,
		detector: detector.New(),
		auth:     key,
		metrics:  metrics,
		now:      time.Now,
		checkers: []Checker{{Name: "elasticsearch", Check: func(context.Context) error { return errors.New("connection refused") }}},
	}
	rec := serve(newRouter(s, nil), httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("ready = %d %s", rec.Code, rec.Body)
	}
}
