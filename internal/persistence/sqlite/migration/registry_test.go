package migration

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopStep(from Version, name string) Step {
	return Step{
		From: from,
		To:   from + 1,
		Name: name,
		Up:   func(ctx context.Context, tx *sql.Tx) error { return nil },
	}
}

func TestNewRegistry_ValidChains(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
	}{
		{"empty", nil},
		{"single step", []Step{noopStep(0, "first")}},
		{"contiguous chain", []Step{noopStep(0, "first"), noopStep(1, "second"), noopStep(2, "third")}},
		{"unsorted input", []Step{noopStep(2, "third"), noopStep(0, "first"), noopStep(1, "second")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry(tt.steps)
			require.NoError(t, err)
			assert.Equal(t, len(tt.steps), registry.Len())
		})
	}
}

func TestNewRegistry_RejectsMalformedChains(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
	}{
		{
			"gap between steps",
			[]Step{noopStep(0, "first"), noopStep(2, "third")},
		},
		{
			"duplicate from version",
			[]Step{noopStep(0, "first"), noopStep(0, "branch")},
		},
		{
			"single step detached from the baseline",
			[]Step{noopStep(5, "orphan")},
		},
		{
			"chain detached from the baseline",
			[]Step{noopStep(5, "fifth"), noopStep(6, "sixth")},
		},
		{
			"step skipping a version",
			[]Step{{From: 0, To: 2, Name: "skip", Up: noopStep(0, "x").Up}},
		},
		{
			"step going backwards",
			[]Step{{From: 1, To: 0, Name: "backwards", Up: noopStep(0, "x").Up}},
		},
		{
			"step below baseline",
			[]Step{{From: -1, To: 0, Name: "negative", Up: noopStep(0, "x").Up}},
		},
		{
			"step without an action",
			[]Step{{From: 0, To: 1, Name: "empty"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry(tt.steps)
			require.ErrorIs(t, err, ErrRegistryGap)
			assert.Nil(t, registry)
		})
	}
}

func TestRegistry_StepsFrom(t *testing.T) {
	registry, err := NewRegistry([]Step{
		noopStep(0, "first"),
		noopStep(1, "second"),
		noopStep(2, "third"),
	})
	require.NoError(t, err)

	t.Run("returns the full chain from the baseline", func(t *testing.T) {
		steps := registry.StepsFrom(0)
		require.Len(t, steps, 3)
		assert.Equal(t, "first", steps[0].Name)
	})

	t.Run("returns the pending suffix only", func(t *testing.T) {
		steps := registry.StepsFrom(2)
		require.Len(t, steps, 1)
		assert.Equal(t, "third", steps[0].Name)
	})

	t.Run("returns empty when up to date", func(t *testing.T) {
		assert.Empty(t, registry.StepsFrom(3))
		assert.Empty(t, registry.StepsFrom(10))
	})

	t.Run("result is strictly ascending and gap free", func(t *testing.T) {
		for v := Version(0); v <= 3; v++ {
			steps := registry.StepsFrom(v)
			for i, step := range steps {
				assert.Equal(t, step.From+1, step.To)
				if i == 0 {
					assert.GreaterOrEqual(t, int(step.From), int(v))
					continue
				}
				assert.Equal(t, steps[i-1].To, step.From)
			}
		}
	})
}

func TestRegistry_Latest(t *testing.T) {
	empty, err := NewRegistry(nil)
	require.NoError(t, err)
	assert.Equal(t, Baseline, empty.Latest())

	registry, err := NewRegistry([]Step{noopStep(0, "first"), noopStep(1, "second")})
	require.NoError(t, err)
	assert.Equal(t, Version(2), registry.Latest())
}
