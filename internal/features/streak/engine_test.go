package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) string {
	// Март 2026: хватает на любые сценарии без перехода месяца
	return "2026-03-" + string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func TestEvaluate_FirstEver(t *testing.T) {
	res := Evaluate(NewRecord(), day(10))

	assert.True(t, res.NewDay)
	assert.Equal(t, 0, res.Penalty, "первый запуск не штрафуется")
	assert.Equal(t, day(10), res.Record.LastObservedDate)
	assert.False(t, res.Record.HasActivityToday)
	assert.Equal(t, 0, res.Record.EffectiveScore)
}

func TestEvaluate_SameDayIdempotent(t *testing.T) {
	first := Evaluate(NewRecord(), day(10))
	second := Evaluate(first.Record, day(10))

	assert.False(t, second.NewDay)
	assert.Equal(t, first.Record, second.Record, "повторная оценка в тот же день не меняет запись")
}

func TestEvaluate_NextDayNoPenalty(t *testing.T) {
	rec := Record{EffectiveScore: 5, RawStreak: 3, LastObservedDate: day(10), SchemaVersion: SchemaVersion}
	res := Evaluate(rec, day(11))

	assert.True(t, res.NewDay)
	assert.Equal(t, 0, res.Penalty)
	assert.Equal(t, 5, res.Record.EffectiveScore)
	assert.Equal(t, 3, res.Record.RawStreak, "однодневный шаг серию не рвёт")
}

func TestEvaluate_PenaltyExact(t *testing.T) {
	// Спустя 4 дня после последнего наблюдения: 3 пропущенных дня → штраф 6
	rec := Record{EffectiveScore: 10, RawStreak: 5, LastObservedDate: day(10), SchemaVersion: SchemaVersion}
	res := Evaluate(rec, day(14))

	assert.Equal(t, 6, res.Penalty)
	assert.Equal(t, 4, res.Record.EffectiveScore)
	assert.Equal(t, 0, res.Record.RawStreak, "пропуск рвёт серию независимо от счёта")
}

func TestEvaluate_PenaltyClampedAtZero(t *testing.T) {
	rec := Record{EffectiveScore: 3, LastObservedDate: day(1), SchemaVersion: SchemaVersion}
	res := Evaluate(rec, day(20))

	assert.Equal(t, 0, res.Record.EffectiveScore, "счёт не уходит в минус")
}

func TestEvaluate_ObservedDateMonotonic(t *testing.T) {
	rec := Record{LastObservedDate: day(15), SchemaVersion: SchemaVersion}
	res := Evaluate(rec, day(12))

	assert.False(t, res.NewDay)
	assert.Equal(t, day(15), res.Record.LastObservedDate, "курсор наблюдения не двигается назад")
}

func TestEvaluate_KeepsLastActivityDate(t *testing.T) {
	rec := Record{LastActivityDate: day(9), LastObservedDate: day(10), SchemaVersion: SchemaVersion}
	res := Evaluate(rec, day(11))

	assert.Equal(t, day(9), res.Record.LastActivityDate)
}

func TestRegisterActivity_FirstEver(t *testing.T) {
	rec := Evaluate(NewRecord(), day(10)).Record
	res := RegisterActivity(rec, day(10))

	assert.True(t, res.Counted)
	assert.Equal(t, 1, res.Record.EffectiveScore)
	assert.Equal(t, 1, res.Record.RawStreak)
	assert.Equal(t, day(10), res.Record.LastActivityDate)
	assert.True(t, res.Record.HasActivityToday)
}

func TestRegisterActivity_SameDayIdempotent(t *testing.T) {
	rec := Evaluate(NewRecord(), day(10)).Record
	first := RegisterActivity(rec, day(10))
	second := RegisterActivity(first.Record, day(10))

	assert.False(t, second.Counted)
	assert.Equal(t, first.Record.EffectiveScore, second.Record.EffectiveScore)
	assert.Equal(t, first.Record.RawStreak, second.Record.RawStreak)
}

func TestRegisterActivity_ConsecutiveDays(t *testing.T) {
	rec := NewRecord()
	for i, d := range []int{10, 11, 12} {
		rec = Evaluate(rec, day(d)).Record
		res := RegisterActivity(rec, day(d))
		require.True(t, res.Counted)
		rec = res.Record

		assert.Equal(t, i+1, rec.RawStreak)
		assert.Equal(t, i+1, rec.EffectiveScore)
	}
}

func TestRegisterActivity_GapResetsStreakToOne(t *testing.T) {
	// Активность 10-го, потом только 14-го
	rec := Evaluate(NewRecord(), day(10)).Record
	rec = RegisterActivity(rec, day(10)).Record

	rec = Evaluate(rec, day(14)).Record // штраф и обнуление серии
	res := RegisterActivity(rec, day(14))

	assert.True(t, res.Counted)
	assert.Equal(t, 1, res.Record.RawStreak, "после пропуска серия стартует заново")
	assert.Equal(t, 1, res.Record.EffectiveScore, "очко за сегодняшнюю запись начисляется несмотря на пропуск")
}

func TestRegisterActivity_Milestones(t *testing.T) {
	rec := NewRecord()
	milestones := map[int]int{} // день серии → порог

	for d := 1; d <= 31; d++ {
		date := "2026-03-" + string(rune('0'+d/10)) + string(rune('0'+d%10))
		rec = Evaluate(rec, date).Record
		res := RegisterActivity(rec, date)
		rec = res.Record
		if res.Milestone != 0 {
			milestones[rec.RawStreak] = res.Milestone
		}
	}

	assert.Equal(t, map[int]int{3: 3, 7: 7, 14: 14, 30: 30}, milestones)
}

// Сценарий из полного цикла: дни 1-3 с записями, потом оценка на 7-й день.
func TestScenario_FullWeek(t *testing.T) {
	rec := NewRecord()

	// День 1: первая запись
	rec = Evaluate(rec, day(1)).Record
	rec = RegisterActivity(rec, day(1)).Record
	assert.Equal(t, 1, rec.EffectiveScore)
	assert.Equal(t, 1, rec.RawStreak)

	// Дни 2 и 3: подряд
	for _, d := range []int{2, 3} {
		rec = Evaluate(rec, day(d)).Record
		rec = RegisterActivity(rec, day(d)).Record
	}
	assert.Equal(t, 3, rec.EffectiveScore)
	assert.Equal(t, 3, rec.RawStreak)

	// День 7 без активности в дни 4-6: штраф 2×3=6, счёт max(0, 3-6)=0
	res := Evaluate(rec, day(7))
	assert.Equal(t, 6, res.Penalty)
	assert.Equal(t, 0, res.Record.EffectiveScore)
	assert.Equal(t, 0, res.Record.RawStreak)
}

// Неотрицательность счёта на произвольной последовательности операций.
func TestProperty_ScoreNeverNegative(t *testing.T) {
	rec := NewRecord()
	ops := []struct {
		d        int
		activity bool
	}{
		{1, true}, {2, false}, {5, true}, {6, true}, {15, false},
		{16, true}, {25, false}, {26, false}, {28, true},
	}

	for _, op := range ops {
		rec = Evaluate(rec, day(op.d)).Record
		require.GreaterOrEqual(t, rec.EffectiveScore, 0)
		require.GreaterOrEqual(t, rec.RawStreak, 0)
		if op.activity {
			rec = RegisterActivity(rec, day(op.d)).Record
			require.GreaterOrEqual(t, rec.EffectiveScore, 0)
		}
	}
}

// Граница первого тира — 18 очков (9 уровней по 2 очка).
func TestRegisterActivityWithTier_CrossesBoundary(t *testing.T) {
	rec := NewRecord()
	rec.EffectiveScore = 17
	rec.LastObservedDate = day(10)
	rec.LastActivityDate = day(9)

	res := RegisterActivityWithTier(rec, day(10), 0)

	require.True(t, res.Counted)
	assert.Equal(t, 18, res.Record.EffectiveScore)
	assert.True(t, res.TierCrossed)
	assert.Equal(t, 1, res.NewTier)
}

func TestRegisterActivityWithTier_NoCrossingInsideTier(t *testing.T) {
	rec := NewRecord()
	rec.EffectiveScore = 10
	rec.LastObservedDate = day(10)
	rec.LastActivityDate = day(9)

	res := RegisterActivityWithTier(rec, day(10), 0)

	require.True(t, res.Counted)
	assert.False(t, res.TierCrossed)
	assert.Equal(t, 0, res.NewTier)
}

// Буст учитывается при сравнении тиров: 11 очков с множителем 1.5 — это
// 16 (тир 0), а 12 очков — уже 18 (тир 1).
func TestRegisterActivityWithTier_BoostedScore(t *testing.T) {
	rec := NewRecord()
	rec.EffectiveScore = 11
	rec.LastObservedDate = day(10)
	rec.LastActivityDate = day(9)

	res := RegisterActivityWithTier(rec, day(10), 1.5)

	require.True(t, res.Counted)
	assert.Equal(t, 12, res.Record.EffectiveScore)
	assert.True(t, res.TierCrossed)
	assert.Equal(t, 1, res.NewTier)
}

func TestRegisterActivityWithTier_SameDayNoEvent(t *testing.T) {
	rec := NewRecord()
	rec.EffectiveScore = 17
	rec.LastObservedDate = day(10)
	rec.LastActivityDate = day(9)

	first := RegisterActivityWithTier(rec, day(10), 0)
	second := RegisterActivityWithTier(first.Record, day(10), 0)

	assert.False(t, second.Counted)
	assert.False(t, second.TierCrossed)
}
