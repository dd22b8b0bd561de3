// Package rank преобразует эффективный счёт пользователя в ранг.
// mapper.go — чистая функция: счёт на входе, дескриптор ранга на выходе.
// Никакого состояния, никакой БД — всё, что нужно для ранга, уже в счёте.
package rank

// Система рангов: 10 материалов (тиров) × 9 воинских званий = 90 уровней.
// Стоимость одного уровня внутри тира фиксирована и растёт от тира к тиру.
// Стоимости удвоены относительно исходной прогрессии 1..10 — поздние
// уровни должны даваться заметно медленнее.
const (
	TierCount    = 10 // Количество тиров (материалов)
	GradesInTier = 9  // Количество званий внутри тира
	MaxLevel     = TierCount * GradesInTier
)

// pointsPerLevel[i] — сколько очков стоит один уровень в тире i.
var pointsPerLevel = [TierCount]int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}

// tierFloor[i] — суммарный счёт, с которого начинается тир i.
// Префиксные суммы считаем один раз при старте.
var tierFloor [TierCount + 1]int

func init() {
	total := 0
	for i := 0; i < TierCount; i++ {
		tierFloor[i] = total
		total += pointsPerLevel[i] * GradesInTier
	}
	tierFloor[TierCount] = total // = MaxScore
}

// MaxScore — счёт, при котором достигается последний (90-й) уровень.
func MaxScore() int {
	return tierFloor[TierCount]
}

// Descriptor описывает ранг, вычисленный из счёта.
// Строковые поля — стабильные ключи для таблицы локализации,
// а не готовый текст.
type Descriptor struct {
	Tier            int    // Индекс тира: 0..9
	Grade           int    // Индекс звания внутри тира: 0..8
	Level           int    // Абсолютный уровень: 1..90
	TierKey         string // Ключ названия материала ("bronze", ...)
	GradeKey        string // Ключ названия звания ("sergeant", ...)
	Emoji           string // Эмодзи тира
	Color           string // Цвет тира (hex, для внешних клиентов)
	Stars           int    // Звёздочки звания: 1..9
	ProgressPercent int    // Прогресс к следующему уровню: 0..99, на максимуме 100
	IsMax           bool   // Достигнут последний уровень последнего тира
}

// Map вычисляет дескриптор ранга по эффективному счёту.
// Отрицательный счёт прижимается к нулю: функция тотальна.
//
// Буст платного тарифа (множитель к счёту) применяет ВЫЗЫВАЮЩИЙ код
// до вызова Map — маппер про множители не знает.
func Map(effectiveScore int) Descriptor {
	if effectiveScore < 0 {
		effectiveScore = 0
	}

	// Максимальный ранг: прогресс дальше не имеет смысла
	if effectiveScore >= MaxScore() {
		return describe(TierCount-1, GradesInTier-1, 100, true)
	}

	// Ищем тир по префиксным суммам
	tier := 0
	for tier < TierCount-1 && effectiveScore >= tierFloor[tier+1] {
		tier++
	}

	// Звание внутри тира — по остатку
	inTier := effectiveScore - tierFloor[tier]
	grade := inTier / pointsPerLevel[tier]

	// Прогресс к следующему уровню: floor(100 × остаток / стоимость уровня)
	levelRemainder := inTier % pointsPerLevel[tier]
	progress := 100 * levelRemainder / pointsPerLevel[tier]

	return describe(tier, grade, progress, false)
}

// TierIndex возвращает только индекс тира для счёта.
// Используется сервисом стриков для детекции пересечения границы тира.
func TierIndex(effectiveScore int) int {
	return Map(effectiveScore).Tier
}

// describe собирает дескриптор из индексов и таблиц отображения.
func describe(tier, grade, progress int, isMax bool) Descriptor {
	return Descriptor{
		Tier:            tier,
		Grade:           grade,
		Level:           tier*GradesInTier + grade + 1,
		TierKey:         tierKeys[tier],
		GradeKey:        gradeKeys[grade],
		Emoji:           tierEmoji[tier],
		Color:           tierColors[tier],
		Stars:           grade + 1,
		ProgressPercent: progress,
		IsMax:           isMax,
	}
}
