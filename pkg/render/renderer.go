package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/orchestrator"
)

// Renderer converts a form snapshot into a byte representation (HTML, JSON,
// terminal text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot orchestrator.Snapshot, options RenderOptions) ([]byte, error)
}
