package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"тот же день", "2026-03-10", "2026-03-10", 0},
		{"соседние дни", "2026-03-10", "2026-03-11", 1},
		{"три дня пропуска", "2026-03-10", "2026-03-14", 4},
		{"через границу месяца", "2026-02-27", "2026-03-02", 3},
		{"через границу года", "2025-12-31", "2026-01-01", 1},
		{"пустая from", "", "2026-03-10", 0},
		{"пустая to", "2026-03-10", "", 0},
		{"битая дата", "не-дата", "2026-03-10", 0},
		{"from позже to", "2026-03-14", "2026-03-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestPluralizeDays(t *testing.T) {
	assert.Equal(t, "день", PluralizeDays(1))
	assert.Equal(t, "дня", PluralizeDays(3))
	assert.Equal(t, "дней", PluralizeDays(5))
	assert.Equal(t, "дней", PluralizeDays(11))
	assert.Equal(t, "день", PluralizeDays(21))
	assert.Equal(t, "дней", PluralizeDays(0))
}

func TestPluralizeSeconds(t *testing.T) {
	assert.Equal(t, "секунду", PluralizeSeconds(1))
	assert.Equal(t, "секунды", PluralizeSeconds(2))
	assert.Equal(t, "секунд", PluralizeSeconds(5))
	assert.Equal(t, "секунд", PluralizeSeconds(11))
	assert.Equal(t, "секунду", PluralizeSeconds(21))
}

func TestPluralizePoints(t *testing.T) {
	assert.Equal(t, "очко", PluralizePoints(1))
	assert.Equal(t, "очка", PluralizePoints(2))
	assert.Equal(t, "очков", PluralizePoints(14))
	assert.Equal(t, "очко", PluralizePoints(101))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, ClampInt(-5, 0, 100))
	assert.Equal(t, 100, ClampInt(250, 0, 100))
	assert.Equal(t, 42, ClampInt(42, 0, 100))
	assert.InDelta(t, 1.5, ClampFloat(9.9, 0, 1.5), 1e-9)
	assert.InDelta(t, 0.0, ClampFloat(-1, 0, 1.5), 1e-9)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1234.50 ₽", FormatMoney(123450))
	assert.Equal(t, "0.05 ₽", FormatMoney(5))
	assert.Equal(t, "-10.00 ₽", FormatMoney(-1000))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2 350", FormatNumber(2350))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1 000 000", FormatNumber(1000000))
}
