// Package interpret provides optional natural-language commentary for
// readings. Interpretation is best effort: any failure degrades to
// ErrUnavailable and a reading remains complete without it.
package interpret

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arcanaland/diviner/internal/reading"
)

// ErrUnavailable signals that no interpretation could be produced. It is a
// degraded-but-successful outcome, not a fault; callers proceed without
// prose.
var ErrUnavailable = errors.New("interpretation unavailable")

// Interpreter produces prose commentary for an assembled reading.
type Interpreter interface {
	// InterpretCard interprets the entry at index, taking the already
	// annotated earlier entries into account.
	InterpretCard(ctx context.Context, r *reading.Reading, index int) (string, error)

	// Summarize writes a closing summary for a fully annotated reading.
	Summarize(ctx context.Context, r *reading.Reading) (string, error)

	// Title proposes a short evocative title for the reading.
	Title(ctx context.Context, r *reading.Reading) (string, error)
}

// Noop is an Interpreter that is never available. It stands in wherever an
// Interpreter is required but interpretation is not configured.
type Noop struct{}

func (Noop) InterpretCard(context.Context, *reading.Reading, int) (string, error) {
	return "", ErrUnavailable
}

func (Noop) Summarize(context.Context, *reading.Reading) (string, error) {
	return "", ErrUnavailable
}

func (Noop) Title(context.Context, *reading.Reading) (string, error) {
	return "", ErrUnavailable
}

// Annotate attaches per-card interpretations and a summary to the reading,
// in position order so later cards can reference earlier ones. Failures are
// logged and skipped; the reading is always left complete and writable.
func Annotate(ctx context.Context, interp Interpreter, r *reading.Reading, logger *slog.Logger) {
	if interp == nil {
		return
	}
	for i := range r.Entries {
		text, err := interp.InterpretCard(ctx, r, i)
		if err != nil {
			if !errors.Is(err, ErrUnavailable) {
				logger.WarnContext(ctx, "card interpretation failed",
					"position", r.Entries[i].Position.Label,
					"error", err)
			}
			continue
		}
		r.Entries[i].Interpretation = text
	}

	summary, err := interp.Summarize(ctx, r)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			logger.WarnContext(ctx, "reading summary failed", "error", err)
		}
		return
	}
	r.Summary = summary
}
