// Package streak — handlers.go обрабатывает команду !прогресс.
// Показывает серию, счёт, текущий ранг и прогресс до следующего уровня.
package streak

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/features/rank"
	"corex.ru/progress-bot/internal/texts"
)

// Handler обрабатывает команды прогресса.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
	cfg     *config.Config
}

// NewHandler создаёт новый обработчик команд прогресса.
func NewHandler(service *Service, bot *tgbotapi.BotAPI, cfg *config.Config) *Handler {
	return &Handler{service: service, bot: bot, cfg: cfg}
}

// HandleProgress обрабатывает команду !прогресс.
//
// Формат ответа:
//
//	🔥 Твой прогресс
//	Серия: 8 дней
//	Счёт: 23 очка
//	🥉 Бронза · Сержант ★★★★ (уровень 40)
//	До следующего уровня: 50%
//	✅ Сегодняшняя запись засчитана
func (h *Handler) HandleProgress(ctx context.Context, chatID int64, userID int64) {
	rec, err := h.service.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения записи прогресса")
		h.sendMessage(chatID, "❌ Ошибка получения данных прогресса")
		return
	}

	d := rank.Map(h.service.BoostedScore(rec))
	lang := h.cfg.AppLang

	var sb strings.Builder
	sb.WriteString("🔥 Твой прогресс\n\n")
	sb.WriteString(fmt.Sprintf("Серия: %d %s\n", rec.RawStreak, common.PluralizeDays(rec.RawStreak)))
	sb.WriteString(fmt.Sprintf("Счёт: %d %s\n\n", rec.EffectiveScore, common.PluralizePoints(rec.EffectiveScore)))
	sb.WriteString(fmt.Sprintf("%s %s · %s %s (уровень %d)\n",
		d.Emoji,
		texts.Get(lang, "tier."+d.TierKey),
		texts.Get(lang, "grade."+d.GradeKey),
		strings.Repeat("★", d.Stars),
		d.Level,
	))

	if d.IsMax {
		// На максимуме подсказка о следующем ранге не показывается
		sb.WriteString("🏆 Максимальный ранг!\n")
	} else {
		sb.WriteString(fmt.Sprintf("До следующего уровня: %d%%\n", d.ProgressPercent))
	}

	sb.WriteString("\n")
	if rec.HasActivityToday {
		sb.WriteString("✅ Сегодняшняя запись засчитана")
	} else {
		sb.WriteString("📊 Сегодня ещё нет записей — запиши расход или доход")
	}

	h.sendMessage(chatID, sb.String())
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
