package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_ZeroScore(t *testing.T) {
	d := Map(0)

	assert.Equal(t, 0, d.Tier)
	assert.Equal(t, 0, d.Grade)
	assert.Equal(t, 1, d.Level)
	assert.Equal(t, "cardboard", d.TierKey)
	assert.Equal(t, "recruit", d.GradeKey)
	assert.Equal(t, 0, d.ProgressPercent)
	assert.False(t, d.IsMax)
}

func TestMap_NegativeScoreClamped(t *testing.T) {
	assert.Equal(t, Map(0), Map(-100))
}

func TestMap_TierBoundaries(t *testing.T) {
	// Тир 0 стоит 2 очка за уровень, 9 уровней = 18 очков.
	// Счёт 17 — последний уровень тира 0, счёт 18 — первый уровень тира 1.
	d := Map(17)
	assert.Equal(t, 0, d.Tier)
	assert.Equal(t, 8, d.Grade)
	assert.Equal(t, 9, d.Level)
	assert.Equal(t, "general", d.GradeKey)

	d = Map(18)
	assert.Equal(t, 1, d.Tier)
	assert.Equal(t, 0, d.Grade)
	assert.Equal(t, 10, d.Level)
	assert.Equal(t, "wood", d.TierKey)
	assert.Equal(t, "recruit", d.GradeKey)
}

func TestMap_ProgressPercent(t *testing.T) {
	// В тире 1 уровень стоит 4 очка. Счёт 19 = 1 очко внутри уровня 10.
	d := Map(19)
	assert.Equal(t, 10, d.Level)
	assert.Equal(t, 25, d.ProgressPercent)

	// Прогресс никогда не достигает 100 до максимума
	for score := 0; score < MaxScore(); score++ {
		p := Map(score).ProgressPercent
		require.GreaterOrEqual(t, p, 0, "score %d", score)
		require.Less(t, p, 100, "score %d", score)
	}
}

func TestMap_Monotonic(t *testing.T) {
	prev := 0
	for score := 0; score <= MaxScore()+50; score++ {
		level := Map(score).Level
		require.GreaterOrEqual(t, level, prev, "score %d", score)
		require.LessOrEqual(t, level, MaxLevel)
		prev = level
	}
}

func TestMap_MaxRank(t *testing.T) {
	// Максимум достигается ровно на MaxScore и не раньше
	d := Map(MaxScore() - 1)
	assert.False(t, d.IsMax)
	assert.Equal(t, MaxLevel, d.Level) // последний уровень, но ещё не «потолок»

	for _, score := range []int{MaxScore(), MaxScore() + 1, MaxScore() * 3} {
		d := Map(score)
		assert.True(t, d.IsMax, "score %d", score)
		assert.Equal(t, MaxLevel, d.Level)
		assert.Equal(t, 100, d.ProgressPercent)
		assert.Equal(t, "diamond", d.TierKey)
		assert.Equal(t, "general", d.GradeKey)
	}
}

func TestMap_EveryLevelReachable(t *testing.T) {
	seen := make(map[int]bool)
	for score := 0; score <= MaxScore(); score++ {
		seen[Map(score).Level] = true
	}
	assert.Len(t, seen, MaxLevel)
}

func TestTierIndex(t *testing.T) {
	assert.Equal(t, 0, TierIndex(0))
	assert.Equal(t, 1, TierIndex(18))
	assert.Equal(t, TierCount-1, TierIndex(MaxScore()))
}
