// Package advice turns the recent activity log into a prompt for a
// generative model and maps every failure to a fixed fallback sentence.
package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/greenconnect/internal/store"
	"go.uber.org/zap"
)

// Fallback is shown whenever advice cannot be generated.
const Fallback = "Keep up the great work! Every small eco-friendly action adds up to a big difference."

// MaxPromptEntries bounds how many recent entries go into the prompt.
const MaxPromptEntries = 5

// Generator produces free-form text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Advisor struct {
	gen     Generator
	logger  *zap.Logger
	timeout time.Duration
}

type Option func(*Advisor)

// WithTimeout bounds each Advise call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(a *Advisor) { a.timeout = d }
}

// New returns an Advisor. A nil generator makes every call return Fallback.
func New(gen Generator, logger *zap.Logger, opts ...Option) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Advisor{gen: gen, logger: logger}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Enabled reports whether a generator is configured.
func (a *Advisor) Enabled() bool {
	return a.gen != nil
}

// Advise returns advice for the given entries (most recent first). It never
// fails: any provider problem yields Fallback.
func (a *Advisor) Advise(ctx context.Context, entries []store.ActivityLogEntry) string {
	if a.gen == nil {
		a.logger.Debug("advice generator not configured, using fallback")
		return Fallback
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(entries)
	start := time.Now()
	text, err := a.generate(ctx, prompt)
	if err != nil {
		a.logger.Warn("advice request failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return Fallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		a.logger.Warn("advice request returned empty text")
		return Fallback
	}

	a.logger.Info("advice generated",
		zap.Int("entries", min(len(entries), MaxPromptEntries)),
		zap.Duration("elapsed", time.Since(start)))
	return text
}

func (a *Advisor) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	return a.gen.Generate(ctx, prompt)
}

// BuildPrompt formats up to MaxPromptEntries recent entries into a prompt.
func BuildPrompt(entries []store.ActivityLogEntry) string {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString("I have not logged any eco-friendly activities yet. ")
		b.WriteString("Suggest one simple first step I could take this week to live more sustainably.")
		return b.String()
	}

	if len(entries) > MaxPromptEntries {
		entries = entries[:MaxPromptEntries]
	}
	b.WriteString("Here are my most recent eco-friendly activities:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %s (impact %d/10)\n", e.Category.Label(), e.Description, e.ImpactScore)
	}
	b.WriteString("Based on these, give me one short, encouraging and personalized tip ")
	b.WriteString("to improve my environmental impact, in at most 50 words.")
	return b.String()
}
