// Package streak — migrate.go разбирает персистентную запись прогресса
// и приводит легаси-форматы к текущему.
//
// Правила миграции только аддитивные: отсутствующие поля заполняются
// безопасными дефолтами, неизвестные лишние поля игнорируются, данные
// не выбрасываются. Совсем битая запись (не JSON, чужая структура) —
// не ошибка: движок молча начинает с нулевой записи, потеря счёта
// приемлемее падения бота.
package streak

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
)

// persistedRecord — все поля, которые когда-либо встречались в записи.
// Указатели нужны для различения «поле отсутствует» и «поле равно нулю».
type persistedRecord struct {
	SchemaVersion    int     `json:"schema_version"`
	EffectiveScore   *int    `json:"effective_score"`
	RawStreak        *int    `json:"raw_streak"`
	LastActivityDate *string `json:"last_activity_date"`
	LastObservedDate *string `json:"last_observed_date"`
	HasActivityToday *bool   `json:"has_activity_today"`
	ReminderSentDate *string `json:"reminder_sent_date"`

	// Поля первой версии веб-движка (localStorage-формат)
	LegacyScore  *int    `json:"score"`
	LegacyStreak *int    `json:"streak"`
	LegacyDate   *string `json:"lastDate"`
}

// DecodeRecord разбирает сырые байты записи в Record.
// Никогда не возвращает ошибку: любой мусор превращается
// в нулевую запись.
func DecodeRecord(data []byte) Record {
	rec := NewRecord()
	if len(data) == 0 {
		return rec
	}

	var p persistedRecord
	if err := json.Unmarshal(data, &p); err != nil {
		log.WithError(err).Warn("Битая запись прогресса, начинаем с нуля")
		return rec
	}

	// Текущие поля — основной источник
	if p.EffectiveScore != nil {
		rec.EffectiveScore = *p.EffectiveScore
	} else if p.LegacyScore != nil {
		// Легаси v1: один счёт без штрафной истории
		rec.EffectiveScore = *p.LegacyScore
	}

	if p.RawStreak != nil {
		rec.RawStreak = *p.RawStreak
	} else if p.LegacyStreak != nil {
		rec.RawStreak = *p.LegacyStreak
	}

	if p.LastActivityDate != nil {
		rec.LastActivityDate = sanitizeDate(*p.LastActivityDate)
	} else if p.LegacyDate != nil {
		rec.LastActivityDate = sanitizeDate(*p.LegacyDate)
	}

	if p.LastObservedDate != nil {
		rec.LastObservedDate = sanitizeDate(*p.LastObservedDate)
	} else {
		// В v1 курсора наблюдения не было — подставляем дату активности:
		// безопасный дефолт, штраф за прошлое не применится задним числом
		rec.LastObservedDate = rec.LastActivityDate
	}

	if p.HasActivityToday != nil {
		rec.HasActivityToday = *p.HasActivityToday
	}
	if p.ReminderSentDate != nil {
		rec.ReminderSentDate = sanitizeDate(*p.ReminderSentDate)
	}

	// Инварианты: счёт и серия не бывают отрицательными
	if rec.EffectiveScore < 0 {
		rec.EffectiveScore = 0
	}
	if rec.RawStreak < 0 {
		rec.RawStreak = 0
	}

	rec.SchemaVersion = SchemaVersion
	return rec
}

// EncodeRecord сериализует запись для сохранения.
func EncodeRecord(r Record) ([]byte, error) {
	r.SchemaVersion = SchemaVersion
	return json.Marshal(r)
}

// sanitizeDate проверяет, что строка — валидная календарная дата.
// Невалидная дата превращается в пустую: для движка это «никогда».
func sanitizeDate(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse(common.DateLayout, s); err != nil {
		return ""
	}
	return s
}
