// Package streak — engine.go содержит чистые функции переходов состояния.
// Никакого I/O: запись на входе, запись на выходе. Вся работа с датами —
// строковые календарные даты, не timestamps.
package streak

import (
	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/features/rank"
)

// Evaluate выполняет ежедневную оценку записи на дату today.
//
// Алгоритм:
//  1. Если запись уже оценивалась сегодня — ничего не делаем (идемпотентно).
//  2. Иначе считаем пропуск: gapDays = today − LastObservedDate.
//     Пустая LastObservedDate → 0 (первый запуск, штрафа нет).
//  3. gapDays > 1 → штраф 2×(gapDays−1) очков с прижатием к нулю
//     и обнуление серии: пропуск есть пропуск, накопленный счёт
//     серию не спасает.
//  4. Сдвигаем LastObservedDate на сегодня, сбрасываем флаг активности.
//     LastActivityDate не трогаем — она отражает последнюю реальную запись.
func Evaluate(r Record, today string) EvalResult {
	// Уже оценивали сегодня — состояние не меняется.
	// Даты в ISO-формате, поэтому строковое сравнение >= корректно:
	// курсор наблюдения не двигается назад даже при сбое часов.
	if r.LastObservedDate >= today && r.LastObservedDate != "" {
		return EvalResult{Record: r, NewDay: false}
	}

	penalty := 0
	gapDays := common.DaysBetween(r.LastObservedDate, today)
	if gapDays > 1 {
		penalty = penaltyPerMissedDay * (gapDays - 1)
		r.EffectiveScore -= penalty
		if r.EffectiveScore < 0 {
			r.EffectiveScore = 0
		}
		r.RawStreak = 0
	}

	r.LastObservedDate = today
	r.HasActivityToday = false
	r.SchemaVersion = SchemaVersion

	return EvalResult{Record: r, NewDay: true, Penalty: penalty}
}

// RegisterActivity засчитывает сегодняшнюю активность (запись в леджере).
//
// Вторая запись в тот же день не увеличивает ни счёт, ни серию —
// не больше одного инкремента за календарный день.
func RegisterActivity(r Record, today string) ActivityResult {
	// Сегодня уже засчитано — идемпотентный выход
	if r.HasActivityToday && r.LastActivityDate == today {
		return ActivityResult{Record: r, Counted: false}
	}

	switch {
	case r.LastActivityDate == "":
		// Первая запись за всю историю
		r.EffectiveScore = 1
		r.RawStreak = 1

	default:
		gap := common.DaysBetween(r.LastActivityDate, today)
		switch {
		case gap == 1:
			// Соседний день: серия растёт
			r.EffectiveScore++
			r.RawStreak++
		case gap > 1:
			// Между последней записью и сегодня был пропуск.
			// Evaluate на прошлой сессии уже мог его оштрафовать;
			// очко за сегодняшнюю запись начисляем в любом случае,
			// а серия стартует заново с единицы.
			r.EffectiveScore++
			r.RawStreak = 1
		default:
			// gap == 0: тот же день. Сюда можно попасть только если
			// флаг HasActivityToday был сброшен вне Evaluate —
			// защитная ветка, счёт растёт, серия нет.
			r.EffectiveScore++
		}
	}

	r.LastActivityDate = today
	r.HasActivityToday = true
	r.SchemaVersion = SchemaVersion

	return ActivityResult{
		Record:    r,
		Counted:   true,
		Milestone: milestoneReached(r.RawStreak),
	}
}

// boostedScore применяет множитель платного тарифа к счёту.
// boost <= 0 трактуется как 1 (множитель выключен).
func boostedScore(score int, boost float64) int {
	if boost <= 0 {
		boost = 1
	}
	return int(float64(score) * boost)
}

// RegisterActivityWithTier — RegisterActivity плюс детекция пересечения
// границы тира. Тиры сравниваются по бустированному счёту до и после
// инкремента: именно бустированный счёт пользователь видит в ранге.
func RegisterActivityWithTier(r Record, today string, boost float64) ActivityResult {
	tierBefore := rank.TierIndex(boostedScore(r.EffectiveScore, boost))

	res := RegisterActivity(r, today)
	if !res.Counted {
		return res
	}

	tierAfter := rank.TierIndex(boostedScore(res.Record.EffectiveScore, boost))
	if tierAfter != tierBefore {
		res.TierCrossed = true
		res.NewTier = tierAfter
	}
	return res
}

// milestoneReached возвращает порог, на который серия попала точно,
// или 0, если порога нет.
func milestoneReached(streakDays int) int {
	for _, m := range Milestones {
		if streakDays == m {
			return m
		}
	}
	return 0
}
