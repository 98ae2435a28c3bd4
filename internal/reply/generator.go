package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"lingodesk/internal/llm"
)

// Tone selects the voice of a generated reply.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneFormal       Tone = "formal"
)

// ParseTone validates s, defaulting to professional for anything unknown.
func ParseTone(s string) Tone {
	switch Tone(s) {
	case ToneProfessional, ToneFriendly, ToneFormal:
		return Tone(s)
	default:
		return ToneProfessional
	}
}

const promptTemplate = `Write a short, helpful, polite customer-support reply in ENGLISH.

Tone: %s
User message: "%s"

Output ONLY the reply text.`

// replyTemperature allows some variance; replies are prose, not data.
const replyTemperature = 0.3

type Generator struct {
	client llm.Client
	log    *logrus.Logger
}

func New(client llm.Client, log *logrus.Logger) *Generator {
	return &Generator{client: client, log: log}
}

// Generate drafts a support reply to englishText in the given tone. Transport
// failures come back as a placeholder string rather than an error.
func (g *Generator) Generate(ctx context.Context, englishText string, tone Tone) string {
	prompt := fmt.Sprintf(promptTemplate, tone, englishText)
	resp, err := g.client.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}}, replyTemperature)
	if err != nil {
		g.log.WithError(err).Warn("reply completion failed")
		return fmt.Sprintf("(reply_error) %v", err)
	}
	return strings.TrimSpace(resp.Content)
}
