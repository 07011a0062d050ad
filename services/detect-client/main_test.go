package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voicedetect/common/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSampleThenLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mp3")
	out, err := execute(t, "sample", path)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !strings.Contains(out, "1600 bytes") {
		t.Errorf("sample output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 1600 || data[0] != 0xFF || data[1] != 0xFB {
		t.Fatalf("sample has %d bytes starting %x", len(data), data[:2])
	}

	out, err = execute(t, "local", "--json", "-l", "hindi", path)
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	var resp models.DetectionResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode local output: %v\n%s", err, out)
	}
	if resp.Language != "hindi" || len(resp.Explanation.PrimaryIndicators) < 2 {
		t.Errorf("local response = %+v", resp)
	}

	out, err = execute(t, "local", path)
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	if !strings.Contains(out, "Classification:") || !strings.Contains(out, "English phonetic patterns analyzed") {
		t.Errorf("local text output = %s", out)
	}
}

func TestLocal_RejectsNonMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVEfmt "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "local", path); err == nil || !strings.Contains(err.Error(), "invalid MP3 format") {
		t.Errorf("err = %v, want invalid MP3 format", err)
	}
}

func TestDetect_CallsAPI(t *testing.T) {
	var gotKey string
	var gotReq models.DetectionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/detect" {
			http.NotFound(w, r)
			return
		}
		gotKey = r.Header.Get("X-API-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(models.DetectionResponse{
			Classification: "AI_GENERATED",
			Confidence:     0.9459,
			Language:       gotReq.Language,
			Explanation:    models.Explanation{PrimaryIndicators: []string{"Phase coherence artifacts present"}},
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "clip.mp3")
	audio := []byte{0xFF, 0xFB, 0x90, 0x64}
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "detect", "--url", srv.URL+"/", "--api-key", "k1", "-l", "tamil", path)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if gotKey != "k1" || gotReq.Language != "tamil" {
		t.Errorf("request key=%q language=%q", gotKey, gotReq.Language)
	}
	if gotReq.AudioBase64 != base64.StdEncoding.EncodeToString(audio) {
		t.Errorf("audio_base64 = %q", gotReq.AudioBase64)
	}
	if !strings.Contains(out, "AI_GENERATED") || !strings.Contains(out, "94.59%") {
		t.Errorf("output = %s", out)
	}
}

func TestDetect_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid API key", StatusCode: 401})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "detect", "--url", srv.URL, "--api-key", "bad", path)
	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 apiError", err)
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("err = %v", err)
	}
}
