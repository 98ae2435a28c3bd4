package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"lingodesk/internal/detect"
	"lingodesk/internal/pipeline"
	"lingodesk/internal/reply"
	"lingodesk/internal/storage"
	"lingodesk/internal/translate"
)

type fakeDetector struct{}

func (fakeDetector) Detect(string) detect.Result {
	return detect.Result{Code: "es", Name: "Spanish", Confidence: 0.99}
}

type fakeTranslator struct{}

func (fakeTranslator) Translate(context.Context, string) translate.Result {
	return translate.Result{Translation: "hello there", SourceLanguage: "es"}
}

type fakeReplier struct{}

func (fakeReplier) Generate(context.Context, string, reply.Tone) string {
	return "We are happy to help."
}

func newTestServer(t *testing.T) (*Server, storage.Recorder) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	rec, err := storage.NewCSVRecorder(filepath.Join(t.TempDir(), "translations.csv"))
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	h := pipeline.New(fakeDetector{}, fakeTranslator{}, fakeReplier{}, rec, logger)
	return NewServer(h, rec, 0, logger), rec
}

func TestHandleForm_GetRendersForm(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.handleForm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<form") || !strings.Contains(body, "Generate reply?") {
		t.Fatalf("form not rendered: %s", body)
	}
	if strings.Contains(body, "Detected Language") {
		t.Fatal("outputs rendered before any submission")
	}
}

func TestHandleForm_PostRunsPipeline(t *testing.T) {
	s, rec := newTestServer(t)
	form := url.Values{
		"text":           {"hola"},
		"generate_reply": {"on"},
		"tone":           {"friendly"},
		"rating":         {"4"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.handleForm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Spanish (es)", "hello there", "We are happy to help.", "Status: OK"} {
		if !strings.Contains(body, want) {
			t.Fatalf("output %q missing from page:\n%s", want, body)
		}
	}

	rows, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 || rows[0].Rating != 4 || rows[0].Original != "hola" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestHandleForm_EmptyInputNotLogged(t *testing.T) {
	s, rec := newTestServer(t)
	form := url.Values{"text": {"   "}, "rating": {"0"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.handleForm(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Enter text.") || !strings.Contains(body, "No input.") {
		t.Fatalf("short-circuit outputs missing:\n%s", body)
	}
	rows, _ := rec.Load()
	if len(rows) != 0 {
		t.Fatalf("empty input logged: %+v", rows)
	}
}

func TestHandleHistory(t *testing.T) {
	s, rec := newTestServer(t)
	if err := rec.Append(storage.Row{Timestamp: "2026-08-30T10:00:00Z", Original: "hi", Rating: 2}); err != nil {
		t.Fatalf("append: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	s.handleHistory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var resp struct {
		Success bool          `json:"success"`
		Rows    []storage.Row `json:"rows"`
		Total   int           `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Total != 1 || len(resp.Rows) != 1 || resp.Rows[0].Original != "hi" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleStatus(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	s.handleStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Fatalf("unexpected status body: %s", w.Body.String())
	}
}
