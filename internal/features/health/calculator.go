// Package health вычисляет композитный индекс финансового здоровья 0-100.
// calculator.go — чистая тотальная функция: пять независимых факторов
// с фиксированными бюджетами очков, зажатые по отдельности и сложенные.
package health

import (
	"math"

	"corex.ru/progress-bot/internal/common"
)

// Бюджеты факторов. В сумме 100.
const (
	shieldBudget      = 30 // Заполненность резервного щита
	debtBudget        = 25 // Снижение долга
	consistencyBudget = 20 // Регулярность записей (серия)
	cashBudget        = 15 // Подушка относительно долга
	rankBudget        = 10 // Вклад ранга
)

// debtCeiling — долг, при котором фактор снижения долга обнуляется.
const debtCeiling = 100000.0

// fullConsistencyDays — серия, дающая полный бюджет регулярности.
const fullConsistencyDays = 30

// Input — срез фактов для расчёта индекса.
// Финансовые поля приходят из дашборда CoreX, остальные — из движка
// прогресса; калькулятор сам ничего не запрашивает.
type Input struct {
	ShieldFillPercent float64 // Заполненность щита, 0-100
	TotalDebt         float64 // Суммарный долг, $
	LiquidCash        float64 // Ликвидные средства, $
	StreakDays        int     // Текущая серия записей
	RankLevel         int     // Уровень ранга, 1-90
}

// Breakdown — вклад каждого фактора в итоговый индекс.
type Breakdown struct {
	Shield      float64
	Debt        float64
	Consistency float64
	Cash        float64
	Rank        float64
}

// Score — итог расчёта.
type Score struct {
	Value      int       // 0-100
	Grade      string    // "A+", "A", "B", "C", "D", "F"
	MessageKey string    // Ключ мотивационного сообщения для texts
	Color      string    // Цвет оценки (hex)
	Breakdown  Breakdown // Повкладовая раскладка
}

// Calculate вычисляет индекс финансового здоровья.
// Функция тотальна: любые значения на входе (отрицательные, гигантские)
// поглощаются зажимами, паник и ошибок не бывает.
func Calculate(in Input) Score {
	var b Breakdown

	// Щит: линейно от заполненности
	b.Shield = shieldBudget * common.ClampFloat(in.ShieldFillPercent, 0, 100) / 100

	// Долг: ноль долга — полный бюджет, от $100k — ничего
	b.Debt = debtBudget * common.ClampFloat(1-in.TotalDebt/debtCeiling, 0, 1)

	// Регулярность: 30-дневная серия закрывает бюджет
	b.Consistency = consistencyBudget * common.ClampFloat(float64(in.StreakDays)/fullConsistencyDays, 0, 1)

	// Подушка. Ветка «долга нет» даёт полные 15 очков; ветка с долгом
	// нормируется целевым отношением 1.5 и упирается в потолок 10.
	// Асимметрия 15/10 — наблюдаемое поведение исходного движка,
	// сохраняем как есть, не «чиним».
	if in.TotalDebt <= 0 {
		b.Cash = cashBudget
	} else {
		ratio := in.LiquidCash / math.Max(1, in.TotalDebt)
		b.Cash = 10 * common.ClampFloat(ratio, 0, 1.5) / 1.5
	}

	// Ранг: линейный вклад уровня
	b.Rank = rankBudget * common.ClampFloat(float64(in.RankLevel), 0, 90) / 90

	total := int(b.Shield + b.Debt + b.Consistency + b.Cash + b.Rank)
	total = common.ClampInt(total, 0, 100)

	grade, msgKey, color := gradeFor(total)
	return Score{
		Value:      total,
		Grade:      grade,
		MessageKey: msgKey,
		Color:      color,
		Breakdown:  b,
	}
}

// gradeFor возвращает буквенную оценку, ключ сообщения и цвет
// по фиксированным порогам.
func gradeFor(score int) (grade, msgKey, color string) {
	switch {
	case score >= 90:
		return "A+", "grade_msg.aplus", "#2ecc71"
	case score >= 80:
		return "A", "grade_msg.a", "#27ae60"
	case score >= 65:
		return "B", "grade_msg.b", "#f1c40f"
	case score >= 50:
		return "C", "grade_msg.c", "#e67e22"
	case score >= 35:
		return "D", "grade_msg.d", "#e74c3c"
	default:
		return "F", "grade_msg.f", "#c0392b"
	}
}
