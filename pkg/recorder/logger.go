package recorder

import (
	"context"

	"go.uber.org/zap"
)

// Logger returns a Recorder that emits one info entry per answer.
func Logger(logger *zap.Logger) Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Func(func(ctx context.Context, question, answer string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("answer recorded",
			zap.String("question", question),
			zap.String("answer", answer),
		)
		return nil
	})
}
