// Package classifier picks a campaign category for a free-text SMS reply.
package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/smsify-backend/internal/metrics"
	"github.com/unclebandit/smsify-backend/internal/model"
)

const systemPrompt = "You are a helpful assistant equipped to categorize responses."

// Completer is a single-turn text completion service.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Classifier struct {
	Completer Completer
	// Timeout bounds one completion call on top of the caller's deadline. Zero means no extra bound.
	Timeout time.Duration
	Metrics *metrics.Metrics
}

func New(completer Completer, timeout time.Duration, m *metrics.Metrics) *Classifier {
	return &Classifier{Completer: completer, Timeout: timeout, Metrics: m}
}

// BuildPrompt embeds the original outbound message, the candidate labels and the reply.
func BuildPrompt(reply string, categories []model.Category, original string) string {
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.Label
	}
	return fmt.Sprintf(
		"Given the context: %q and the response: %q, please categorize this response into one of the following categories: %s. Answer with the category label only.",
		original, reply, strings.Join(labels, ", "),
	)
}

// Classify returns the id of the category whose label equals the completion (case-insensitive,
// trimmed). ok is false when there are no candidates, the completion fails or is empty, or the
// text matches no label. Errors never escape.
func (c *Classifier) Classify(ctx context.Context, reply string, categories []model.Category, original string) (categoryID int, ok bool) {
	log := logrus.WithField("candidates", len(categories))

	if len(categories) == 0 {
		log.Info("campaign has no active categories, skipping classification")
		c.Metrics.Uncategorized(metrics.ReasonNoCategories)
		return 0, false
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.Completer.Complete(ctx, systemPrompt, BuildPrompt(reply, categories, original))
	c.Metrics.ObserveClassification(time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).Warn("failed to categorize response")
		c.Metrics.Uncategorized(metrics.ReasonError)
		return 0, false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Info("completion returned no text")
		c.Metrics.Uncategorized(metrics.ReasonEmpty)
		return 0, false
	}

	for _, cat := range categories {
		if strings.EqualFold(cat.Label, text) {
			return cat.ID, true
		}
	}

	log.WithField("completion", text).Info("completion matched no category label")
	c.Metrics.Uncategorized(metrics.ReasonNoMatch)
	return 0, false
}
