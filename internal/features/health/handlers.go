// Package health — handlers.go обрабатывает команду !здоровье.
// Собирает вход калькулятора из записи прогресса и фактов CoreX
// и показывает индекс с повкладовой раскладкой.
package health

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/features/dashboard"
	"corex.ru/progress-bot/internal/features/rank"
	"corex.ru/progress-bot/internal/features/streak"
	"corex.ru/progress-bot/internal/texts"
)

// Handler обрабатывает команды финансового здоровья.
type Handler struct {
	streaks *streak.Service
	facts   *dashboard.Client
	bot     *tgbotapi.BotAPI
	cfg     *config.Config
}

// NewHandler создаёт новый обработчик команд здоровья.
func NewHandler(streaks *streak.Service, facts *dashboard.Client, bot *tgbotapi.BotAPI, cfg *config.Config) *Handler {
	return &Handler{streaks: streaks, facts: facts, bot: bot, cfg: cfg}
}

// HandleHealth обрабатывает команду !здоровье.
// Без связи с CoreX индекс посчитать нельзя: финансовые факторы
// составляют большую часть бюджета, показывать огрызок нечестно.
func (h *Handler) HandleHealth(ctx context.Context, chatID int64, userID int64) {
	rec, err := h.streaks.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения записи прогресса")
		h.sendMessage(chatID, "❌ Ошибка получения данных прогресса")
		return
	}

	f, err := h.facts.Fetch(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrFactsUnavailable) {
			h.sendMessage(chatID, "📡 Данные CoreX сейчас недоступны — индекс здоровья посчитать не получится. Попробуй позже.")
			return
		}
		log.WithError(err).Error("Ошибка запроса фактов CoreX")
		h.sendMessage(chatID, "❌ Ошибка получения финансовых данных")
		return
	}

	d := rank.Map(h.streaks.BoostedScore(rec))
	score := Calculate(Input{
		ShieldFillPercent: f.ShieldFillPercent,
		TotalDebt:         f.TotalDebt,
		LiquidCash:        f.LiquidCash,
		StreakDays:        rec.RawStreak,
		RankLevel:         d.Level,
	})

	lang := h.cfg.AppLang
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💚 Финансовое здоровье: %d/100 (%s)\n\n", score.Value, score.Grade))
	sb.WriteString(fmt.Sprintf("🛡 Щит: %.1f / 30\n", score.Breakdown.Shield))
	sb.WriteString(fmt.Sprintf("💳 Долги: %.1f / 25\n", score.Breakdown.Debt))
	sb.WriteString(fmt.Sprintf("🔥 Регулярность: %.1f / 20\n", score.Breakdown.Consistency))
	sb.WriteString(fmt.Sprintf("💰 Подушка: %.1f / 15\n", score.Breakdown.Cash))
	sb.WriteString(fmt.Sprintf("🏅 Ранг: %.1f / 10\n\n", score.Breakdown.Rank))
	sb.WriteString(texts.Get(lang, score.MessageKey))

	h.sendMessage(chatID, sb.String())
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
