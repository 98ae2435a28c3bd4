package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lingodesk/internal/detect"
	"lingodesk/internal/reply"
	"lingodesk/internal/storage"
	"lingodesk/internal/translate"
)

type Detector interface {
	Detect(text string) detect.Result
}

type Translator interface {
	Translate(ctx context.Context, text string) translate.Result
}

type Replier interface {
	Generate(ctx context.Context, englishText string, tone reply.Tone) string
}

// Request is one submitted interaction.
type Request struct {
	Text          string
	GenerateReply bool
	Rating        int
	Tone          reply.Tone
}

// Result carries the four user-visible output strings.
type Result struct {
	DetectedSummary string
	Translation     string
	Reply           string
	Status          string
}

// Handler runs one submission through detect, translate, optional reply and
// the interaction log. Sub-calls degrade to sentinel values on failure; only
// a log write failure propagates.
type Handler struct {
	detector   Detector
	translator Translator
	replier    Replier
	recorder   storage.Recorder
	log        *logrus.Logger
	now        func() time.Time
}

func New(detector Detector, translator Translator, replier Replier, recorder storage.Recorder, log *logrus.Logger) *Handler {
	return &Handler{
		detector:   detector,
		translator: translator,
		replier:    replier,
		recorder:   recorder,
		log:        log,
		now:        time.Now,
	}
}

// Handle processes one submission. Empty or whitespace-only text
// short-circuits with no detection, no completion calls and no log row.
func (h *Handler) Handle(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Result{
			DetectedSummary: "—",
			Translation:     "Enter text.",
			Reply:           "",
			Status:          "No input.",
		}, nil
	}

	ts := h.now().UTC().Format(time.RFC3339)

	det := h.detector.Detect(req.Text)
	tr := h.translator.Translate(ctx, req.Text)

	translation := tr.Translation
	if translation == "" {
		translation = req.Text
	}

	var replyText string
	if req.GenerateReply {
		replyText = h.replier.Generate(ctx, translation, req.Tone)
	}

	row := storage.Row{
		Timestamp:    ts,
		Original:     req.Text,
		DetectedCode: det.Code,
		DetectedName: det.Name,
		DetectedConf: det.Confidence,
		Translation:  translation,
		Notes:        tr.Notes,
		Reply:        replyText,
		Rating:       req.Rating,
	}
	if err := h.recorder.Append(row); err != nil {
		return Result{}, fmt.Errorf("append interaction: %w", err)
	}

	h.log.WithFields(logrus.Fields{
		"detected":      det.Code,
		"confidence":    det.Confidence,
		"reply_drafted": req.GenerateReply,
	}).Info("interaction handled")

	return Result{
		DetectedSummary: fmt.Sprintf("%s (%s) — conf %s", det.Name, det.Code, formatConf(det.Confidence)),
		Translation:     translation,
		Reply:           replyText,
		Status:          "OK",
	}, nil
}

// formatConf renders a confidence with at least one decimal, so zero shows
// as "0.0" rather than "0".
func formatConf(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
