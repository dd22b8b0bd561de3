// Package texts — двуязычная таблица строк (ru/en).
// Движок прогресса возвращает стабильные ключи (названия тиров,
// званий, оценок здоровья, ачивок); человекочитаемый текст живёт
// только здесь. Это данные, а не логика.
package texts

// Lang — поддерживаемые языки.
const (
	LangRU = "ru"
	LangEN = "en"
)

var ru = map[string]string{
	// Тиры (материалы)
	"tier.cardboard": "Картон",
	"tier.wood":      "Дерево",
	"tier.stone":     "Камень",
	"tier.copper":    "Медь",
	"tier.bronze":    "Бронза",
	"tier.iron":      "Железо",
	"tier.silver":    "Серебро",
	"tier.gold":      "Золото",
	"tier.platinum":  "Платина",
	"tier.diamond":   "Алмаз",

	// Звания
	"grade.recruit":    "Новобранец",
	"grade.private":    "Рядовой",
	"grade.corporal":   "Капрал",
	"grade.sergeant":   "Сержант",
	"grade.lieutenant": "Лейтенант",
	"grade.captain":    "Капитан",
	"grade.major":      "Майор",
	"grade.colonel":    "Полковник",
	"grade.general":    "Генерал",

	// Оценки финансового здоровья
	"grade_msg.aplus": "Финансовая крепость! Так держать.",
	"grade_msg.a":     "Отличная форма — долги отступают.",
	"grade_msg.b":     "Хороший темп, не сбавляй.",
	"grade_msg.c":     "Середина пути. Серия записей поможет.",
	"grade_msg.d":     "Шатко. Начни с одной записи в день.",
	"grade_msg.f":     "Тревожно. Самое время взяться за план.",

	// Ачивки
	"ach.first_entry":        "Первый шаг",
	"ach.first_entry.desc":   "Первая запись в леджере",
	"ach.week_streak":        "Неделя в строю",
	"ach.week_streak.desc":   "Серия 7 дней подряд",
	"ach.month_streak":       "Месяц дисциплины",
	"ach.month_streak.desc":  "Серия 30 дней подряд",
	"ach.level_10":           "Десятка",
	"ach.level_10.desc":      "Достигнут 10-й уровень ранга",
	"ach.level_45":           "Экватор",
	"ach.level_45.desc":      "Достигнут 45-й уровень ранга",
	"ach.level_90":           "Вершина",
	"ach.level_90.desc":      "Максимальный 90-й уровень",
	"ach.shield_full":        "Щит спокойствия",
	"ach.shield_full.desc":   "Резервный щит заполнен на 100%",
	"ach.first_kill":         "Первая победа",
	"ach.first_kill.desc":    "Закрыт первый долг",
	"ach.triple_kill":        "Тройная победа",
	"ach.triple_kill.desc":   "Закрыто три долга",
	"ach.debt_free":          "Свобода",
	"ach.debt_free.desc":     "Долгов больше нет",
	"ach.interest_100":       "Сэкономленная сотня",
	"ach.interest_100.desc":  "Сэкономлено $100 на процентах",
	"ach.interest_1000":      "Сэкономленная тысяча",
	"ach.interest_1000.desc": "Сэкономлено $1000 на процентах",
	"ach.connected":          "Всё под контролем",
	"ach.connected.desc":     "Подключено два и более счёта",
}

var en = map[string]string{
	"tier.cardboard": "Cardboard",
	"tier.wood":      "Wood",
	"tier.stone":     "Stone",
	"tier.copper":    "Copper",
	"tier.bronze":    "Bronze",
	"tier.iron":      "Iron",
	"tier.silver":    "Silver",
	"tier.gold":      "Gold",
	"tier.platinum":  "Platinum",
	"tier.diamond":   "Diamond",

	"grade.recruit":    "Recruit",
	"grade.private":    "Private",
	"grade.corporal":   "Corporal",
	"grade.sergeant":   "Sergeant",
	"grade.lieutenant": "Lieutenant",
	"grade.captain":    "Captain",
	"grade.major":      "Major",
	"grade.colonel":    "Colonel",
	"grade.general":    "General",

	"grade_msg.aplus": "Financial fortress! Keep it up.",
	"grade_msg.a":     "Great shape — the debt is retreating.",
	"grade_msg.b":     "Good pace, don't slow down.",
	"grade_msg.c":     "Halfway there. A logging streak will help.",
	"grade_msg.d":     "Shaky. Start with one entry a day.",
	"grade_msg.f":     "Alarming. Time to work the plan.",

	"ach.first_entry":        "First Step",
	"ach.first_entry.desc":   "First ledger entry",
	"ach.week_streak":        "Week Strong",
	"ach.week_streak.desc":   "7-day streak",
	"ach.month_streak":       "Month of Discipline",
	"ach.month_streak.desc":  "30-day streak",
	"ach.level_10":           "The Ten",
	"ach.level_10.desc":      "Reached rank level 10",
	"ach.level_45":           "Halfway Line",
	"ach.level_45.desc":      "Reached rank level 45",
	"ach.level_90":           "The Summit",
	"ach.level_90.desc":      "Maximum level 90",
	"ach.shield_full":        "Peace Shield",
	"ach.shield_full.desc":   "Reserve shield filled to 100%",
	"ach.first_kill":         "First Takedown",
	"ach.first_kill.desc":    "First debt eliminated",
	"ach.triple_kill":        "Triple Takedown",
	"ach.triple_kill.desc":   "Three debts eliminated",
	"ach.debt_free":          "Freedom",
	"ach.debt_free.desc":     "No debts left",
	"ach.interest_100":       "Hundred Saved",
	"ach.interest_100.desc":  "$100 of interest saved",
	"ach.interest_1000":      "Thousand Saved",
	"ach.interest_1000.desc": "$1000 of interest saved",
	"ach.connected":          "All Connected",
	"ach.connected.desc":     "Two or more accounts linked",
}

// Get возвращает строку по ключу для заданного языка.
// Неизвестный язык → русский; неизвестный ключ → сам ключ,
// чтобы пропущенный перевод был виден, а не терялся молча.
func Get(lang, key string) string {
	var table map[string]string
	switch lang {
	case LangEN:
		table = en
	default:
		table = ru
	}
	if s, ok := table[key]; ok {
		return s
	}
	// Фоллбек на русский для неполных таблиц
	if s, ok := ru[key]; ok {
		return s
	}
	return key
}
