package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_AllZero(t *testing.T) {
	s := Calculate(Input{})

	// Нулевой вход: долг 0 → подушка 15, долг-фактор 25, всё остальное 0
	assert.Equal(t, 40, s.Value)
	assert.Equal(t, "D", s.Grade)
}

func TestCalculate_PerfectScore(t *testing.T) {
	s := Calculate(Input{
		ShieldFillPercent: 100,
		TotalDebt:         0,
		LiquidCash:        5000,
		StreakDays:        30,
		RankLevel:         90,
	})

	assert.Equal(t, 100, s.Value)
	assert.Equal(t, "A+", s.Grade)
	assert.Equal(t, "grade_msg.aplus", s.MessageKey)
}

func TestCalculate_HundredOnlyAtAllMax(t *testing.T) {
	base := Input{ShieldFillPercent: 100, TotalDebt: 0, LiquidCash: 1000, StreakDays: 30, RankLevel: 90}

	// Ослабляем По одному фактору — сотня недостижима
	weakened := []Input{
		{ShieldFillPercent: 99, TotalDebt: 0, LiquidCash: 1000, StreakDays: 30, RankLevel: 90},
		{ShieldFillPercent: 100, TotalDebt: 50, LiquidCash: 1000, StreakDays: 30, RankLevel: 90},
		{ShieldFillPercent: 100, TotalDebt: 0, LiquidCash: 1000, StreakDays: 29, RankLevel: 90},
		{ShieldFillPercent: 100, TotalDebt: 0, LiquidCash: 1000, StreakDays: 30, RankLevel: 89},
	}

	require.Equal(t, 100, Calculate(base).Value)
	for i, in := range weakened {
		assert.Less(t, Calculate(in).Value, 100, "вариант %d", i)
	}
}

func TestCalculate_Bounds(t *testing.T) {
	inputs := []Input{
		{},
		{ShieldFillPercent: -50, TotalDebt: -1, LiquidCash: -1000, StreakDays: -5, RankLevel: -3},
		{ShieldFillPercent: 500, TotalDebt: 1e12, LiquidCash: 1e12, StreakDays: 100000, RankLevel: 900},
		{ShieldFillPercent: 33.3, TotalDebt: 42000, LiquidCash: 1234, StreakDays: 12, RankLevel: 41},
	}

	for i, in := range inputs {
		s := Calculate(in)
		require.GreaterOrEqual(t, s.Value, 0, "вариант %d", i)
		require.LessOrEqual(t, s.Value, 100, "вариант %d", i)
		require.NotEmpty(t, s.Grade)
		require.NotEmpty(t, s.MessageKey)
	}
}

// Асимметрия фактора подушки: без долга — 15 очков, с долгом потолок 10.
// Наблюдаемое поведение исходного движка, закреплено тестом.
func TestCalculate_CashRatioAsymmetry(t *testing.T) {
	noDebt := Calculate(Input{TotalDebt: 0, LiquidCash: 0})
	assert.InDelta(t, 15, noDebt.Breakdown.Cash, 1e-9)

	// Долг есть, подушка огромная — всё равно не больше 10
	hugeCash := Calculate(Input{TotalDebt: 100, LiquidCash: 1e9})
	assert.InDelta(t, 10, hugeCash.Breakdown.Cash, 1e-9)

	// Переход от долга $1 к долгу $0 скачком добавляет 5 очков фактора
	almostFree := Calculate(Input{TotalDebt: 1, LiquidCash: 1e9})
	assert.InDelta(t, 10, almostFree.Breakdown.Cash, 1e-9)
}

func TestCalculate_DebtFactor(t *testing.T) {
	assert.InDelta(t, 25, Calculate(Input{TotalDebt: 0}).Breakdown.Debt, 1e-9)
	assert.InDelta(t, 12.5, Calculate(Input{TotalDebt: 50000}).Breakdown.Debt, 1e-9)
	assert.InDelta(t, 0, Calculate(Input{TotalDebt: 100000}).Breakdown.Debt, 1e-9)
	assert.InDelta(t, 0, Calculate(Input{TotalDebt: 250000}).Breakdown.Debt, 1e-9)
}

func TestCalculate_ConsistencyFactor(t *testing.T) {
	assert.InDelta(t, 0, Calculate(Input{StreakDays: 0}).Breakdown.Consistency, 1e-9)
	assert.InDelta(t, 10, Calculate(Input{StreakDays: 15}).Breakdown.Consistency, 1e-9)
	assert.InDelta(t, 20, Calculate(Input{StreakDays: 30}).Breakdown.Consistency, 1e-9)
	assert.InDelta(t, 20, Calculate(Input{StreakDays: 365}).Breakdown.Consistency, 1e-9)
}

func TestGradeCutoffs(t *testing.T) {
	tests := []struct {
		score int
		grade string
	}{
		{100, "A+"}, {90, "A+"}, {89, "A"}, {80, "A"},
		{79, "B"}, {65, "B"}, {64, "C"}, {50, "C"},
		{49, "D"}, {35, "D"}, {34, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		grade, _, _ := gradeFor(tt.score)
		assert.Equal(t, tt.grade, grade, "score %d", tt.score)
	}
}

// Монотонность: рост любого «хорошего» входа не уменьшает индекс.
func TestCalculate_Monotonic(t *testing.T) {
	base := Input{ShieldFillPercent: 40, TotalDebt: 20000, LiquidCash: 5000, StreakDays: 10, RankLevel: 20}
	baseVal := Calculate(base).Value

	better := base
	better.ShieldFillPercent = 80
	assert.GreaterOrEqual(t, Calculate(better).Value, baseVal)

	better = base
	better.TotalDebt = 10000
	assert.GreaterOrEqual(t, Calculate(better).Value, baseVal)

	better = base
	better.LiquidCash = 20000
	assert.GreaterOrEqual(t, Calculate(better).Value, baseVal)

	better = base
	better.StreakDays = 25
	assert.GreaterOrEqual(t, Calculate(better).Value, baseVal)

	better = base
	better.RankLevel = 60
	assert.GreaterOrEqual(t, Calculate(better).Value, baseVal)
}
