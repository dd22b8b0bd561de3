// Package streak управляет ежедневным прогрессом пользователя:
// штрафуемым счётом, серией дней подряд и их персистентной записью.
// models.go описывает структуру данных записи прогресса.
package streak

// SchemaVersion — текущая версия формата персистентной записи.
// Версия 1 — формат старого веб-движка (поля score/streak/lastDate),
// версия 2 — текущий формат с двумя независимыми курсорами дат.
const SchemaVersion = 2

// Record — запись прогресса одного пользователя.
//
// Два независимых курсора дат — принципиальное решение:
//   - LastObservedDate штрафует отсутствие (бот «видел» пользователя,
//     а записей не было);
//   - LastActivityDate вознаграждает присутствие (реальная запись
//     в леджере).
//
// Пользователь может открыть бота и ничего не записать (награды нет,
// штраф со временем будет) и может записать расход независимо от того,
// сколько раз открывал бота (двойной награды нет). Один курсор на обе
// роли даёт либо недосчёт, либо пересчёт.
type Record struct {
	// EffectiveScore — накопленный счёт после штрафов. Никогда не
	// опускается ниже нуля: штраф прижимается к нулю, а не уходит в минус.
	EffectiveScore int `json:"effective_score"`

	// RawStreak — дней подряд без пропуска. 0 только в начальном
	// состоянии; любой пропуск > 1 дня обнуляет серию.
	RawStreak int `json:"raw_streak"`

	// LastActivityDate — календарная дата последней реальной записи
	// (формат common.DateLayout). Пустая строка — записей ещё не было.
	LastActivityDate string `json:"last_activity_date"`

	// LastObservedDate — календарная дата последней оценки записи
	// (пользователь появлялся). Монотонно не убывает.
	LastObservedDate string `json:"last_observed_date"`

	// HasActivityToday — сегодняшняя запись уже засчитана.
	// Защита от двойного инкремента в пределах одного дня.
	HasActivityToday bool `json:"has_activity_today"`

	// ReminderSentDate — дата последнего отправленного напоминания.
	// Служебное поле бота, в инвариантах движка не участвует.
	ReminderSentDate string `json:"reminder_sent_date,omitempty"`

	SchemaVersion int `json:"schema_version"`
}

// NewRecord возвращает начальную (нулевую) запись прогресса.
func NewRecord() Record {
	return Record{SchemaVersion: SchemaVersion}
}

// Milestones — пороги серии, на которых пользователь получает
// разовое поздравление.
var Milestones = []int{3, 7, 14, 30, 60, 90, 180, 365}

// penaltyPerMissedDay — штраф за каждый пропущенный день сверх первого.
const penaltyPerMissedDay = 2

// EvalResult — результат ежедневной оценки записи.
type EvalResult struct {
	Record  Record
	NewDay  bool // Наступил новый день: активности ещё нет, пора напомнить
	Penalty int  // Сколько очков снято за пропуск (0 — пропуска не было)
}

// ActivityResult — результат регистрации активности.
type ActivityResult struct {
	Record      Record
	Counted     bool // false — сегодняшняя запись уже была засчитана
	Milestone   int  // Достигнутый порог серии (0 — порога нет)
	TierCrossed bool // Пересечена граница тира ранга
	NewTier     int  // Индекс нового тира (актуален при TierCrossed)
}
