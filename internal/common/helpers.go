// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование сумм и работа
// с календарными датами.
package common

import (
	"fmt"
	"math"
	"time"
)

// DateLayout — формат календарной даты, в котором движок прогресса
// хранит дни. Сравниваем именно строки дат, а не timestamps:
// перевод часов или смена пояса не должны «откатывать» день назад.
const DateLayout = "2006-01-02"

// LoadLocationOrFixed загружает часовой пояс по имени.
// Если база зон недоступна (минимальный контейнер) — возвращаем
// фиксированный UTC+3, чтобы бот не падал на старте.
func LoadLocationOrFixed(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// TodayIn возвращает сегодняшнюю календарную дату в заданном поясе
// в формате DateLayout.
func TodayIn(loc *time.Location) string {
	return time.Now().In(loc).Format(DateLayout)
}

// DaysBetween считает количество целых календарных дней между двумя
// датами формата DateLayout (to − from).
//
// Особые случаи:
//   - пустая from → 0 (первое использование, штрафовать нечего)
//   - некорректная дата → 0 (битые данные не роняют движок)
//   - from позже to → 0 (назад во времени не ходим)
func DaysBetween(from, to string) int {
	if from == "" || to == "" {
		return 0
	}
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0
	}
	days := int(t.Sub(f).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ClampInt ограничивает целое значение диапазоном [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat ограничивает значение диапазоном [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PluralizeDays возвращает правильную форму слова «день» для числа n.
//
// Правила:
//   - 1, 21, 31 → "день"
//   - 2-4, 22-24 → "дня"
//   - 5-20, 25-30 → "дней"
func PluralizeDays(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "день"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "дня"
	}
	return "дней"
}

// PluralizeSeconds возвращает правильную форму слова «секунда».
func PluralizeSeconds(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "секунду"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "секунды"
	}
	return "секунд"
}

// PluralizePoints возвращает правильную форму слова «очко».
func PluralizePoints(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "очко"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "очка"
	}
	return "очков"
}

// PluralizeEntries возвращает правильную форму слова «запись».
func PluralizeEntries(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "запись"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "записи"
	}
	return "записей"
}

// FormatMoney форматирует сумму в копейках в читабельную строку.
// Пример: FormatMoney(123450) → "1234.50 ₽"
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d ₽", sign, cents/100, cents%100)
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для отображения дат записей в леджере.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}
