// Package ledger управляет записями расходов и доходов.
// Каждая успешная запись — это «активность дня» для движка прогресса.
// models.go описывает структуру записи и парсинг сумм.
package ledger

import (
	"strconv"
	"strings"
	"time"

	"corex.ru/progress-bot/internal/common"
)

// Виды записей леджера.
const (
	KindExpense = "expense" // Расход
	KindIncome  = "income"  // Доход
)

// maxCategoryLen — предел длины категории в записи.
const maxCategoryLen = 64

// Entry представляет одну запись леджера.
type Entry struct {
	ID          int64     `db:"id"`           // ID записи
	UserID      int64     `db:"user_id"`      // Telegram user ID
	Kind        string    `db:"kind"`         // 'expense' или 'income'
	AmountCents int64     `db:"amount_cents"` // Сумма в центах (всегда положительная)
	Category    string    `db:"category"`     // Категория, может быть пустой
	CreatedAt   time.Time `db:"created_at"`   // Время записи
}

// ParseAmount разбирает сумму из текста команды в центы.
// Принимает "250", "250.50", "250,5". Больше двух знаков после
// запятой, ноль и отрицательные значения — ошибка.
func ParseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, common.ErrInvalidAmount
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")

	// Знак отсекаем до разбора: ParseInt("-0") даёт 0, и "-0.5"
	// иначе прошла бы как положительные 50 центов.
	if strings.HasPrefix(whole, "-") || strings.HasPrefix(whole, "+") {
		return 0, common.ErrInvalidAmount
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidAmount
	}

	cents := int64(0)
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, common.ErrInvalidAmount
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, common.ErrInvalidAmount
		}
	}

	total := units*100 + cents
	if total <= 0 {
		return 0, common.ErrInvalidAmount
	}
	return total, nil
}

// ValidateCategory проверяет категорию записи.
// Пустая категория допустима.
func ValidateCategory(category string) error {
	if len([]rune(category)) > maxCategoryLen {
		return common.ErrCategoryTooLong
	}
	return nil
}
