package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-structura/catalog"
	"go-structura/types"
)

func TestClassify(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name     string
		counts   types.DetectionCounts
		expected types.Severity
	}{
		{"empty counts", types.DetectionCounts{}, types.Good},
		{"nil counts", nil, types.Good},
		{"zero-valued entries", types.DetectionCounts{types.Stain: 0, types.Crack: 0}, types.Good},
		{"one cosmetic", types.DetectionCounts{types.Stain: 1}, types.Moderate},
		{"two cosmetic", types.DetectionCounts{types.MinorCrack: 1, types.Stain: 1}, types.Moderate},
		{"three cosmetic", types.DetectionCounts{types.MinorCrack: 1, types.Stain: 1, types.Algae: 1}, types.Critical},
		{"single structural overrides count threshold", types.DetectionCounts{types.MajorCrack: 1}, types.Critical},
		{"spalling overrides count threshold", types.DetectionCounts{types.Spalling: 1}, types.Critical},
		{"structural among cosmetics", types.DetectionCounts{types.Stain: 1, types.MajorCrack: 1}, types.Critical},
		{"structural with zero count does not override", types.DetectionCounts{types.MajorCrack: 0, types.Stain: 1}, types.Moderate},
		{"unknown kinds count toward total", types.DetectionCounts{"graffiti": 3}, types.Critical},
		{"unknown kind alone below threshold", types.DetectionCounts{"graffiti": 1}, types.Moderate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(cat, tt.counts))
		})
	}
}

func TestScore(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name     string
		counts   types.DetectionCounts
		expected int
	}{
		{"empty counts", types.DetectionCounts{}, 100},
		{"single major crack", types.DetectionCounts{types.MajorCrack: 1}, 85},
		{"mixed damage", types.DetectionCounts{types.Crack: 2, types.Stain: 1}, 71},
		{"clamped at zero", types.DetectionCounts{types.Spalling: 10}, 0},
		{"unknown kinds weigh nothing", types.DetectionCounts{"graffiti": 5}, 100},
		{"normal weighs nothing", types.DetectionCounts{types.Normal: 3}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(cat, tt.counts))
		})
	}
}

func TestScoreBounds(t *testing.T) {
	cat := catalog.Default()

	// Score stays in [0,100] for any mix of counts.
	mixes := []types.DetectionCounts{
		{},
		{types.MajorCrack: 100, types.Spalling: 100},
		{types.Algae: 1},
		{"mystery": 9999},
	}
	for _, counts := range mixes {
		score := Score(cat, counts)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestAdvise(t *testing.T) {
	cat := catalog.Default()

	t.Run("orders by catalog declaration, not detection order", func(t *testing.T) {
		counts := types.DetectionCounts{types.Stain: 1, types.MajorCrack: 1, types.Algae: 2}
		got := Advise(cat, types.Critical, counts)
		assert.Equal(t, []string{
			"Immediate structural inspection required.",
			"Clean surface and improve drainage.",
			"Check for moisture leakage.",
		}, got)
	})

	t.Run("deduplicates while preserving first-seen order", func(t *testing.T) {
		dup := catalog.New([]catalog.Entry{
			{Kind: types.Crack, Weight: 12, TierHint: types.Moderate, Precautions: []string{"Seal cracks."}},
			{Kind: types.MinorCrack, Weight: 8, TierHint: types.Moderate, Precautions: []string{"Seal cracks."}},
		})
		got := Advise(dup, types.Moderate, types.DetectionCounts{types.Crack: 1, types.MinorCrack: 1})
		assert.Equal(t, []string{"Seal cracks."}, got)
	})

	t.Run("good fallback", func(t *testing.T) {
		got := Advise(cat, types.Good, types.DetectionCounts{})
		assert.Equal(t, []string{"No precautions required."}, got)
	})

	t.Run("non-good fallback", func(t *testing.T) {
		got := Advise(cat, types.Moderate, types.DetectionCounts{"graffiti": 1})
		assert.Equal(t, []string{"Monitor the surface regularly and schedule a professional inspection."}, got)
	})
}

func TestBuild(t *testing.T) {
	cat := catalog.Default()
	createdAt := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)

	t.Run("single major crack scenario", func(t *testing.T) {
		a, err := Build(cat, "insp-1", createdAt, types.DetectionCounts{types.MajorCrack: 1})
		require.NoError(t, err)

		assert.Equal(t, "insp-1", a.ID)
		assert.Equal(t, createdAt, a.CreatedAt)
		assert.Equal(t, types.Critical, a.Severity)
		assert.Equal(t, 85, a.HealthScore)
		assert.Contains(t, a.Precautions, "Immediate structural inspection required.")
	})

	t.Run("empty counts scenario", func(t *testing.T) {
		a, err := Build(cat, "insp-2", createdAt, types.DetectionCounts{})
		require.NoError(t, err)

		assert.Equal(t, types.Good, a.Severity)
		assert.Equal(t, 100, a.HealthScore)
		assert.Equal(t, []string{"No precautions required."}, a.Precautions)
	})

	t.Run("negative count rejected", func(t *testing.T) {
		_, err := Build(cat, "insp-3", createdAt, types.DetectionCounts{types.Crack: -1})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNegativeCount)
	})

	t.Run("counts map is frozen", func(t *testing.T) {
		counts := types.DetectionCounts{types.Stain: 1}
		a, err := Build(cat, "insp-4", createdAt, counts)
		require.NoError(t, err)

		counts[types.Stain] = 50
		counts[types.Spalling] = 2

		assert.Equal(t, 1, a.Counts[types.Stain])
		assert.Equal(t, 0, a.Counts[types.Spalling])
	})

	t.Run("deterministic", func(t *testing.T) {
		counts := types.DetectionCounts{types.Crack: 1, types.Algae: 2}
		a1, err := Build(cat, "insp-5", createdAt, counts)
		require.NoError(t, err)
		a2, err := Build(cat, "insp-5", createdAt, counts)
		require.NoError(t, err)

		assert.Equal(t, a1, a2)
	})
}
