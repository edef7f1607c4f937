package recorder

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type writerRecorder struct {
	mu  sync.Mutex
	out io.Writer
}

// Writer returns a Recorder that prints one "question: answer" line per
// answer to out.
func Writer(out io.Writer) Recorder {
	return &writerRecorder{out: out}
}

func (w *writerRecorder) Record(ctx context.Context, question, answer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintf(w.out, "%s: %s\n", question, answer)
	return err
}
