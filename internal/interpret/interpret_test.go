package interpret

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/reading"
)

func testReading(t *testing.T) *reading.Reading {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	rd, err := reading.Assemble(cat, "3card", reading.DefaultOptions())
	require.NoError(t, err)
	return rd
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fake scripts Interpreter behavior per call.
type fake struct {
	cardErr    error
	summaryErr error
}

func (f *fake) InterpretCard(_ context.Context, r *reading.Reading, index int) (string, error) {
	if f.cardErr != nil {
		return "", f.cardErr
	}
	return fmt.Sprintf("insight for %s", r.Entries[index].Position.Label), nil
}

func (f *fake) Summarize(context.Context, *reading.Reading) (string, error) {
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return "a cohesive summary", nil
}

func (f *fake) Title(context.Context, *reading.Reading) (string, error) {
	return "A Turning Point", nil
}

func TestAnnotateAttachesTexts(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	Annotate(context.Background(), &fake{}, rd, discardLogger())

	assert.Equal(t, "insight for Past", rd.Entries[0].Interpretation)
	assert.Equal(t, "insight for Present", rd.Entries[1].Interpretation)
	assert.Equal(t, "insight for Future", rd.Entries[2].Interpretation)
	assert.Equal(t, "a cohesive summary", rd.Summary)
}

func TestAnnotateUnavailableLeavesReadingComplete(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	Annotate(context.Background(), &fake{cardErr: ErrUnavailable, summaryErr: ErrUnavailable}, rd, discardLogger())

	assert.Empty(t, rd.Summary)
	for _, e := range rd.Entries {
		assert.Empty(t, e.Interpretation)
		assert.NotEmpty(t, e.Meaning, "keyword fallback must survive degradation")
	}
}

func TestAnnotateUnexpectedErrorDoesNotPropagate(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	boom := errors.New("connection reset")
	Annotate(context.Background(), &fake{cardErr: boom, summaryErr: boom}, rd, discardLogger())

	assert.Empty(t, rd.Summary)
	for _, e := range rd.Entries {
		assert.Empty(t, e.Interpretation)
	}
}

func TestAnnotateNilInterpreter(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	Annotate(context.Background(), nil, rd, discardLogger())
	assert.Empty(t, rd.Summary)
}

func TestNoopIsNeverAvailable(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	_, err := Noop{}.InterpretCard(context.Background(), rd, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = Noop{}.Summarize(context.Background(), rd)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = Noop{}.Title(context.Background(), rd)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewGeminiWithoutKey(t *testing.T) {
	t.Parallel()

	_, err := NewGemini(context.Background(), discardLogger(), "", DefaultModel)
	assert.ErrorIs(t, err, ErrUnavailable)
}
