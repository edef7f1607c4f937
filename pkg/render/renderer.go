package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/model"
)

// Renderer converts a schema into a byte representation (an HTML page, a
// terminal transcript, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema model.Schema, options RenderOptions) ([]byte, error)
}

// ThanksRenderer is implemented by renderers that can also produce the page
// shown after a successful submission.
type ThanksRenderer interface {
	RenderThanks(ctx context.Context, options RenderOptions) ([]byte, error)
}
