// Package common — pluralize.go содержит вспомогательные функции
// для правильного склонения русских числительных.
// Основная логика плюрализации реализована в helpers.go,
// этот файл экспортирует дополнительные утилиты.
package common

import "fmt"

// FormatPointsDelta создаёт строку вида "+3 очка" или "-6 очков".
// Знак «+» или «-» добавляется автоматически.
//
// Примеры:
//
//	FormatPointsDelta(1)   → "+1 очко"
//	FormatPointsDelta(-6)  → "-6 очков"
func FormatPointsDelta(points int) string {
	if points >= 0 {
		return fmt.Sprintf("+%d %s", points, PluralizePoints(points))
	}
	return fmt.Sprintf("%d %s", points, PluralizePoints(points))
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	// Простая реализация для чисел до миллиарда
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	// Рекурсивно добавляем разделители
	rest := n / 1000
	last := n % 1000

	if rest > 0 {
		return fmt.Sprintf("%s %03d", FormatNumber(rest), last)
	}
	return fmt.Sprintf("%d", last)
}
