package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"lingodesk/internal/llm"
)

// Result is what one translation attempt produced. SourceLanguage is "error"
// when the completion call itself failed, and Notes is "json_parse_failed"
// when the model answered with something that was not the requested JSON.
type Result struct {
	Translation    string `json:"translation"`
	SourceLanguage string `json:"source_language"`
	Notes          string `json:"notes"`
}

const promptTemplate = `You are a translation engine. Output ONLY valid JSON.

Task:
1. Translate the following message into fluent natural English.
2. Identify the source language (ISO code).
3. Add short translation notes (optional).

Respond ONLY in this JSON format:
{
  "translation": "...",
  "source_language": "...",
  "notes": "..."
}

Message:
"""%s"""`

type Translator struct {
	client llm.Client
	log    *logrus.Logger
}

func New(client llm.Client, log *logrus.Logger) *Translator {
	return &Translator{client: client, log: log}
}

// Translate asks the model for an English translation of text. A single
// attempt, deterministic decoding, and never an error: transport and parse
// failures degrade into sentinel results.
func (t *Translator) Translate(ctx context.Context, text string) Result {
	prompt := fmt.Sprintf(promptTemplate, text)
	resp, err := t.client.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}}, 0)
	if err != nil {
		t.log.WithError(err).Warn("translation completion failed")
		return Result{Translation: "", SourceLanguage: "error", Notes: err.Error()}
	}
	return parseResponse(strings.TrimSpace(resp.Content))
}

// parseResponse extracts the model's JSON object from its free-form answer.
// The model is asked for bare JSON but is not guaranteed to comply, so this
// stays deliberately lenient: take first "{" to last "}", fall back to the
// raw text when that fails.
func parseResponse(raw string) Result {
	payload, ok := delimitedObject(raw)
	if ok {
		var res Result
		if err := json.Unmarshal([]byte(payload), &res); err == nil {
			return res
		}
	}
	return Result{Translation: raw, SourceLanguage: "unknown", Notes: "json_parse_failed"}
}

// delimitedObject returns the substring from the first "{" to the last "}".
func delimitedObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}
