package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corex.ru/progress-bot/internal/texts"
)

func statusByKey(t *testing.T, statuses []Status, key string) Status {
	t.Helper()
	for _, st := range statuses {
		if st.Key == key {
			return st
		}
	}
	t.Fatalf("достижение %q не найдено в результате", key)
	return Status{}
}

func TestEvaluate_EmptySnapshot(t *testing.T) {
	statuses := Evaluate(Snapshot{})
	require.Len(t, statuses, len(Catalog))

	for _, st := range statuses {
		assert.False(t, st.Unlocked, st.Key)
	}
}

func TestEvaluate_StreakRules(t *testing.T) {
	s := Snapshot{RawStreak: 7}
	statuses := Evaluate(s)
	assert.True(t, statusByKey(t, statuses, "week_streak").Unlocked)
	assert.False(t, statusByKey(t, statuses, "month_streak").Unlocked)

	s.RawStreak = 30
	statuses = Evaluate(s)
	assert.True(t, statusByKey(t, statuses, "week_streak").Unlocked)
	assert.True(t, statusByKey(t, statuses, "month_streak").Unlocked)
}

func TestEvaluate_LevelRules(t *testing.T) {
	tests := []struct {
		level         int
		l10, l45, l90 bool
	}{
		{9, false, false, false},
		{10, true, false, false},
		{45, true, true, false},
		{90, true, true, true},
	}
	for _, tt := range tests {
		statuses := Evaluate(Snapshot{RankLevel: tt.level})
		assert.Equal(t, tt.l10, statusByKey(t, statuses, "level_10").Unlocked, "уровень %d", tt.level)
		assert.Equal(t, tt.l45, statusByKey(t, statuses, "level_45").Unlocked, "уровень %d", tt.level)
		assert.Equal(t, tt.l90, statusByKey(t, statuses, "level_90").Unlocked, "уровень %d", tt.level)
	}
}

func TestEvaluate_FactRules(t *testing.T) {
	s := Snapshot{
		HasFacts:          true,
		ShieldFillPercent: 100,
		TotalDebt:         0,
		DebtsEliminated:   3,
		AccountCount:      2,
		InterestSaved:     1500,
	}
	statuses := Evaluate(s)
	assert.True(t, statusByKey(t, statuses, "shield_full").Unlocked)
	assert.True(t, statusByKey(t, statuses, "first_kill").Unlocked)
	assert.True(t, statusByKey(t, statuses, "triple_kill").Unlocked)
	assert.True(t, statusByKey(t, statuses, "debt_free").Unlocked)
	assert.True(t, statusByKey(t, statuses, "interest_100").Unlocked)
	assert.True(t, statusByKey(t, statuses, "interest_1000").Unlocked)
	assert.True(t, statusByKey(t, statuses, "connected").Unlocked)
}

// Один счёт есть у каждого — достижение требует минимум двух.
func TestEvaluate_ConnectedNeedsTwoAccounts(t *testing.T) {
	one := Evaluate(Snapshot{HasFacts: true, AccountCount: 1})
	assert.False(t, statusByKey(t, one, "connected").Unlocked)

	two := Evaluate(Snapshot{HasFacts: true, AccountCount: 2})
	assert.True(t, statusByKey(t, two, "connected").Unlocked)
}

// Без единого погашенного долга «свобода от долгов» не засчитывается:
// нулевой долг у нового пользователя — не победа.
func TestEvaluate_DebtFreeNeedsKill(t *testing.T) {
	statuses := Evaluate(Snapshot{HasFacts: true, TotalDebt: 0, DebtsEliminated: 0})
	assert.False(t, statusByKey(t, statuses, "debt_free").Unlocked)
}

// Без фактов CoreX фактовые достижения «неизвестны», а не «не получены».
func TestEvaluate_NoFactsMeansUnknown(t *testing.T) {
	statuses := Evaluate(Snapshot{RawStreak: 10})

	st := statusByKey(t, statuses, "shield_full")
	assert.False(t, st.Known)
	assert.False(t, st.Unlocked)

	// Локальные правила при этом оцениваются как обычно
	week := statusByKey(t, statuses, "week_streak")
	assert.True(t, week.Known)
	assert.True(t, week.Unlocked)
}

// Статус пересчитывается живьём: достижение гаснет вместе с условием.
func TestEvaluate_NoRatchet(t *testing.T) {
	unlocked := Evaluate(Snapshot{RawStreak: 7})
	assert.True(t, statusByKey(t, unlocked, "week_streak").Unlocked)

	dropped := Evaluate(Snapshot{RawStreak: 2})
	assert.False(t, statusByKey(t, dropped, "week_streak").Unlocked)
}

func TestEvaluate_NoHiddenState(t *testing.T) {
	s := Snapshot{RawStreak: 12, RankLevel: 33, EntryCount: 5, HasFacts: true, InterestSaved: 250}
	first := Evaluate(s)
	second := Evaluate(s)
	assert.Equal(t, first, second)
}

// Каждый ключ каталога имеет название и описание в текстах.
func TestCatalog_TextsComplete(t *testing.T) {
	for _, a := range Catalog {
		name := texts.Get(texts.LangRU, "ach."+a.Key)
		desc := texts.Get(texts.LangRU, "ach."+a.Key+".desc")
		assert.NotEqual(t, "ach."+a.Key, name, "нет названия для %s", a.Key)
		assert.NotEqual(t, "ach."+a.Key+".desc", desc, "нет описания для %s", a.Key)
	}
}

func TestCountUnlocked(t *testing.T) {
	statuses := Evaluate(Snapshot{RawStreak: 30, RankLevel: 45, EntryCount: 1})
	// first_entry, week_streak, month_streak, level_10, level_45
	assert.Equal(t, 5, CountUnlocked(statuses))
}
