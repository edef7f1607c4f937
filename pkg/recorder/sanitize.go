package recorder

import (
	"context"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	answerPolicyOnce sync.Once
	answerPolicy     *bluemonday.Policy
)

// Sanitizing strips markup from answers before handing them to next. Plain
// text passes through unchanged, entities included.
func Sanitizing(next Recorder) Recorder {
	if next == nil {
		next = Discard()
	}
	return Func(func(ctx context.Context, question, answer string) error {
		return next.Record(ctx, question, sanitizeAnswer(answer))
	})
}

func sanitizeAnswer(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(answerSanitizer().Sanitize(raw))
}

func answerSanitizer() *bluemonday.Policy {
	answerPolicyOnce.Do(func() {
		answerPolicy = bluemonday.StrictPolicy()
	})
	return answerPolicy
}
