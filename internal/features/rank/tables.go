// Package rank — tables.go содержит статические таблицы отображения:
// материалы тиров, воинские звания, эмодзи и цвета.
// Это данные, а не логика: человекочитаемые названия по этим ключам
// выдаёт пакет texts.
package rank

// tierKeys — стабильные ключи материалов, от младшего к старшему.
var tierKeys = [TierCount]string{
	"cardboard", // тир 0
	"wood",      // тир 1
	"stone",     // тир 2
	"copper",    // тир 3
	"bronze",    // тир 4
	"iron",      // тир 5
	"silver",    // тир 6
	"gold",      // тир 7
	"platinum",  // тир 8
	"diamond",   // тир 9
}

// gradeKeys — стабильные ключи званий внутри тира.
var gradeKeys = [GradesInTier]string{
	"recruit",    // звание 0, ★
	"private",    // звание 1, ★★
	"corporal",   // звание 2, ★★★
	"sergeant",   // звание 3, ★★★★
	"lieutenant", // звание 4, ★★★★★
	"captain",    // звание 5, ★★★★★★
	"major",      // звание 6, ★★★★★★★
	"colonel",    // звание 7, ★★★★★★★★
	"general",    // звание 8, ★★★★★★★★★
}

// tierEmoji — эмодзи для каждого тира.
var tierEmoji = [TierCount]string{
	"📦", "🪵", "🪨", "🟤", "🥉", "⚙️", "🥈", "🥇", "💠", "💎",
}

// TierKey возвращает стабильный ключ материала по индексу тира.
// Индекс вне диапазона прижимается к границам.
func TierKey(i int) string {
	return tierKeys[clampTier(i)]
}

// TierEmoji возвращает эмодзи тира по индексу.
func TierEmoji(i int) string {
	return tierEmoji[clampTier(i)]
}

func clampTier(i int) int {
	if i < 0 {
		return 0
	}
	if i >= TierCount {
		return TierCount - 1
	}
	return i
}

// tierColors — цвет тира в hex, для внешних клиентов (веб-дашборд).
var tierColors = [TierCount]string{
	"#b08968", // cardboard
	"#8b5a2b", // wood
	"#6c757d", // stone
	"#b87333", // copper
	"#cd7f32", // bronze
	"#71797e", // iron
	"#c0c0c0", // silver
	"#ffd700", // gold
	"#e5e4e2", // platinum
	"#b9f2ff", // diamond
}
