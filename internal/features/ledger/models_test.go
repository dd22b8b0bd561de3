package ledger

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corex.ru/progress-bot/internal/common"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw   string
		cents int64
	}{
		{"250", 25000},
		{"250.50", 25050},
		{"250,50", 25050},
		{"99.9", 9990},
		{"0.01", 1},
		{"1", 100},
		{" 42 ", 4200},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.cents, got, tt.raw)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	bad := []string{
		"", "0", "0.00", "-5", "-5.50", "-0.5", "-0,50", "+0.5", "abc", "12.345", "12.", "1e5", "12.3.4",
	}
	for _, raw := range bad {
		_, err := ParseAmount(raw)
		assert.True(t, errors.Is(err, common.ErrInvalidAmount), "%q должно быть ошибкой", raw)
	}
}

func TestValidateCategory(t *testing.T) {
	require.NoError(t, ValidateCategory(""))
	require.NoError(t, ValidateCategory("еда"))
	require.NoError(t, ValidateCategory(strings.Repeat("я", 64)))

	err := ValidateCategory(strings.Repeat("я", 65))
	assert.True(t, errors.Is(err, common.ErrCategoryTooLong))
}
