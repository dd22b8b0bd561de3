// Package achievements — живой каталог достижений.
//
// Достижения не хранятся в базе: статус всегда пересчитывается из
// текущего снимка состояния. Упал счёт — достижение честно гаснет.
// Храповика «получил навсегда» здесь нет намеренно.
package achievements

// Snapshot — снимок состояния пользователя для оценки достижений.
// Собирается вызывающим кодом из записи прогресса, леджера и фактов CoreX.
type Snapshot struct {
	RawStreak      int
	EffectiveScore int
	RankLevel      int
	EntryCount     int64

	// Факты основного приложения. Валидны только при HasFacts.
	HasFacts          bool
	ShieldFillPercent float64
	TotalDebt         float64
	DebtsEliminated   int
	AccountCount      int
	InterestSaved     float64
}

// Achievement — одно достижение каталога.
// Key совпадает с ключами texts: "ach.<key>" и "ach.<key>.desc".
type Achievement struct {
	Key string
	// needsFacts помечает достижения, которые нельзя оценить
	// без связи с CoreX.
	needsFacts bool
	check      func(Snapshot) bool
}

// Status — результат оценки одного достижения.
// Known=false означает «оценить нельзя» (нет фактов CoreX):
// это не то же самое, что «не получено».
type Status struct {
	Key      string
	Unlocked bool
	Known    bool
}

// Catalog — полный упорядоченный список достижений.
// Порядок фиксирован: так они показываются пользователю.
var Catalog = []Achievement{
	{Key: "first_entry", check: func(s Snapshot) bool { return s.EntryCount >= 1 }},
	{Key: "week_streak", check: func(s Snapshot) bool { return s.RawStreak >= 7 }},
	{Key: "month_streak", check: func(s Snapshot) bool { return s.RawStreak >= 30 }},
	{Key: "level_10", check: func(s Snapshot) bool { return s.RankLevel >= 10 }},
	{Key: "level_45", check: func(s Snapshot) bool { return s.RankLevel >= 45 }},
	{Key: "level_90", check: func(s Snapshot) bool { return s.RankLevel >= 90 }},
	{Key: "shield_full", needsFacts: true, check: func(s Snapshot) bool { return s.ShieldFillPercent >= 100 }},
	{Key: "first_kill", needsFacts: true, check: func(s Snapshot) bool { return s.DebtsEliminated >= 1 }},
	{Key: "triple_kill", needsFacts: true, check: func(s Snapshot) bool { return s.DebtsEliminated >= 3 }},
	{Key: "debt_free", needsFacts: true, check: func(s Snapshot) bool { return s.TotalDebt <= 0 && s.DebtsEliminated >= 1 }},
	{Key: "interest_100", needsFacts: true, check: func(s Snapshot) bool { return s.InterestSaved >= 100 }},
	{Key: "interest_1000", needsFacts: true, check: func(s Snapshot) bool { return s.InterestSaved >= 1000 }},
	{Key: "connected", needsFacts: true, check: func(s Snapshot) bool { return s.AccountCount >= 2 }},
}

// Evaluate оценивает весь каталог по снимку. Чистая функция:
// одинаковый снимок — одинаковый результат, скрытого состояния нет.
func Evaluate(s Snapshot) []Status {
	out := make([]Status, 0, len(Catalog))
	for _, a := range Catalog {
		st := Status{Key: a.Key, Known: true}
		if a.needsFacts && !s.HasFacts {
			st.Known = false
		} else {
			st.Unlocked = a.check(s)
		}
		out = append(out, st)
	}
	return out
}

// CountUnlocked считает полученные достижения в результате оценки.
func CountUnlocked(statuses []Status) int {
	n := 0
	for _, st := range statuses {
		if st.Unlocked {
			n++
		}
	}
	return n
}
