package migration

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentStep_TransparentToErrors(t *testing.T) {
	boom := errors.New("step exploded")
	step := Step{
		From: 2,
		To:   3,
		Name: "exploding",
		Up:   func(ctx context.Context, tx *sql.Tx) error { return boom },
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := instrumentStep(step, logger)(context.Background(), nil)
	assert.Same(t, boom, err, "the wrapper must return the step's error unmodified")

	output := buf.String()
	assert.Contains(t, output, "migration step starting")
	assert.Contains(t, output, "migration step failed")
	assert.Contains(t, output, "exploding")
}

func TestInstrumentStep_LogsTiming(t *testing.T) {
	invoked := false
	step := Step{
		From: 0,
		To:   1,
		Name: "quick",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			invoked = true
			return nil
		},
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	require.NoError(t, instrumentStep(step, logger)(context.Background(), nil))
	assert.True(t, invoked)

	output := buf.String()
	assert.Contains(t, output, "migration step finished")
	assert.Contains(t, output, "elapsed=")
}
