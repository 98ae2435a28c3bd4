package translate

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"lingodesk/internal/llm"
)

type fakeClient struct {
	content     string
	err         error
	temperature float32
	calls       int
}

func (f *fakeClient) Generate(_ context.Context, _ []llm.Message, temperature float32) (llm.Response, error) {
	f.calls++
	f.temperature = temperature
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.content}, nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestTranslate_ExtractsEmbeddedJSON(t *testing.T) {
	fc := &fakeClient{content: `Sure, here you go: {"translation":"Hello","source_language":"fr","notes":""} hope that helps`}
	tr := New(fc, testLogger())
	res := tr.Translate(context.Background(), "Bonjour")
	if res.Translation != "Hello" || res.SourceLanguage != "fr" || res.Notes != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if fc.calls != 1 {
		t.Fatalf("want single attempt, got %d", fc.calls)
	}
}

func TestTranslate_NoBracesFallsBack(t *testing.T) {
	fc := &fakeClient{content: "no json here"}
	tr := New(fc, testLogger())
	res := tr.Translate(context.Background(), "hola")
	if res.Translation != "no json here" {
		t.Fatalf("want raw text, got %q", res.Translation)
	}
	if res.SourceLanguage != "unknown" || res.Notes != "json_parse_failed" {
		t.Fatalf("unexpected sentinel: %+v", res)
	}
}

func TestTranslate_MalformedJSONFallsBack(t *testing.T) {
	fc := &fakeClient{content: `{"translation": broken`}
	tr := New(fc, testLogger())
	res := tr.Translate(context.Background(), "hola")
	if res.SourceLanguage != "unknown" || res.Notes != "json_parse_failed" {
		t.Fatalf("unexpected sentinel: %+v", res)
	}
	if res.Translation != `{"translation": broken` {
		t.Fatalf("want raw text preserved, got %q", res.Translation)
	}
}

func TestTranslate_TransportError(t *testing.T) {
	fc := &fakeClient{err: errors.New("connection refused")}
	tr := New(fc, testLogger())
	res := tr.Translate(context.Background(), "hola")
	if res.Translation != "" || res.SourceLanguage != "error" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Notes != "connection refused" {
		t.Fatalf("want error description in notes, got %q", res.Notes)
	}
}

func TestTranslate_DeterministicDecoding(t *testing.T) {
	fc := &fakeClient{content: `{"translation":"x","source_language":"es","notes":""}`}
	tr := New(fc, testLogger())
	tr.Translate(context.Background(), "hola")
	if fc.temperature != 0 {
		t.Fatalf("want temperature 0, got %v", fc.temperature)
	}
}

func TestDelimitedObject(t *testing.T) {
	if _, ok := delimitedObject("plain text"); ok {
		t.Fatal("want no object in plain text")
	}
	if _, ok := delimitedObject("} reversed {"); ok {
		t.Fatal("want no object when braces are reversed")
	}
	got, ok := delimitedObject(`prefix {"a":1} suffix`)
	if !ok || got != `{"a":1}` {
		t.Fatalf("unexpected extraction: %q ok=%v", got, ok)
	}
}
