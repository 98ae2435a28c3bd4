package detect

import (
	"math"
	"strings"

	"github.com/pemistahl/lingua-go"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of one detection call. Code and Name are "unknown"
// with zero Confidence when the text gives the model nothing to work with.
type Result struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

var unknownResult = Result{Code: "unknown", Name: "unknown", Confidence: 0.0}

// commonLanguages maps frequent ISO 639-1 codes to display names. Codes
// outside this table display as their raw code.
var commonLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"hi": "Hindi",
	"bn": "Bengali",
}

type Detector struct {
	detector lingua.LanguageDetector
	log      *logrus.Logger
}

// New builds a detector over all spoken languages lingua ships models for.
// lingua is deterministic, so repeated calls on the same text agree.
func New(log *logrus.Logger) *Detector {
	d := lingua.NewLanguageDetectorBuilder().
		FromAllSpokenLanguages().
		Build()
	log.Info("language detector initialized")
	return &Detector{detector: d, log: log}
}

// Detect returns the highest-probability candidate for text. It never fails:
// undetectable input yields the unknown sentinel.
func (d *Detector) Detect(text string) Result {
	candidates := d.detector.ComputeLanguageConfidenceValues(text)
	if len(candidates) == 0 {
		d.log.WithField("text_length", len(text)).Debug("no detection candidates")
		return unknownResult
	}

	top := candidates[0]
	conf := math.Round(top.Value()*1000) / 1000
	if conf == 0 {
		return unknownResult
	}

	code := strings.ToLower(top.Language().IsoCode639_1().String())
	return Result{
		Code:       code,
		Name:       displayName(code),
		Confidence: conf,
	}
}

func displayName(code string) string {
	if name, ok := commonLanguages[code]; ok {
		return name
	}
	return code
}
