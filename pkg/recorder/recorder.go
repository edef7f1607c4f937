// Package recorder persists validated (question, answer) pairs. Answers reach
// a Recorder one at a time, in schema order, after the credential fields have
// been stripped.
package recorder

import (
	"context"
	"fmt"
)

// Recorder stores a single answer. Implementations must be safe for
// concurrent use when shared across requests.
type Recorder interface {
	Record(ctx context.Context, question, answer string) error
}

// Func adapts a function into a Recorder.
type Func func(ctx context.Context, question, answer string) error

// Record calls the underlying function.
func (fn Func) Record(ctx context.Context, question, answer string) error {
	return fn(ctx, question, answer)
}

// Discard returns a Recorder that drops every answer.
func Discard() Recorder {
	return Func(func(context.Context, string, string) error { return nil })
}

// StorageError reports a recorder failure for one question.
type StorageError struct {
	Question string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("recorder: store answer for %q: %v", e.Question, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
