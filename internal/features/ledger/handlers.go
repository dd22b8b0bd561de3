// Package ledger — handlers.go обрабатывает команды:
// !расход (записать расход), !доход (записать доход), !записи (история).
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/features/rank"
	"corex.ru/progress-bot/internal/features/streak"
	"corex.ru/progress-bot/internal/texts"
)

// historyLimit — сколько записей показывает !записи.
const historyLimit = 10

// Handler обрабатывает команды леджера.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
	cfg     *config.Config
}

// NewHandler создаёт новый обработчик команд леджера.
func NewHandler(service *Service, bot *tgbotapi.BotAPI, cfg *config.Config) *Handler {
	return &Handler{service: service, bot: bot, cfg: cfg}
}

// HandleExpense обрабатывает команду !расход 250.50 [категория].
func (h *Handler) HandleExpense(ctx context.Context, chatID int64, userID int64, args []string) {
	h.handleEntry(ctx, chatID, userID, KindExpense, args)
}

// HandleIncome обрабатывает команду !доход 1000 [категория].
func (h *Handler) HandleIncome(ctx context.Context, chatID int64, userID int64, args []string) {
	h.handleEntry(ctx, chatID, userID, KindIncome, args)
}

// handleEntry — общий путь для расхода и дохода.
//
// Ответ при успехе:
//
//	✅ Расход 250.50 записан (еда)
//	🔥 Серия: 8 дней, счёт 23
func (h *Handler) handleEntry(ctx context.Context, chatID int64, userID int64, kind string, args []string) {
	if len(args) < 1 {
		h.sendMessage(chatID, "❌ Формат: сумма [категория], например: 250.50 еда")
		return
	}

	amount, err := ParseAmount(args[0])
	if err != nil {
		h.sendMessage(chatID, "❌ Сумма должна быть положительным числом, например: 250 или 99.90")
		return
	}

	category := strings.Join(args[1:], " ")

	res, err := h.service.RecordEntry(ctx, userID, kind, amount, category)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrCategoryTooLong):
			h.sendMessage(chatID, "❌ Категория слишком длинная")
		case errors.Is(err, common.ErrInvalidAmount):
			h.sendMessage(chatID, "❌ Сумма должна быть положительной")
		default:
			log.WithError(err).Error("Ошибка записи леджера")
			h.sendMessage(chatID, "❌ Ошибка сохранения записи")
		}
		return
	}

	label := "Расход"
	if kind == KindIncome {
		label = "Доход"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ %s %s записан", label, common.FormatMoney(amount)))
	if category != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", category))
	}
	sb.WriteString("\n")

	if res.Counted {
		sb.WriteString(fmt.Sprintf("🔥 Серия: %d %s, счёт %d",
			res.Record.RawStreak,
			common.PluralizeDays(res.Record.RawStreak),
			res.Record.EffectiveScore,
		))
	}

	h.sendMessage(chatID, sb.String())
	h.celebrate(chatID, res)
}

// celebrate отправляет разовые поздравления: порог серии и новый тир.
// Отдельными сообщениями, чтобы их было видно в потоке чата.
func (h *Handler) celebrate(chatID int64, res streak.ActivityResult) {
	if res.Milestone > 0 {
		h.sendMessage(chatID, fmt.Sprintf("🎉 Серия %d %s! Так держать!",
			res.Milestone, common.PluralizeDays(res.Milestone)))
	}

	if res.TierCrossed {
		h.sendMessage(chatID, fmt.Sprintf("%s Новый тир: %s!",
			rank.TierEmoji(res.NewTier),
			texts.Get(h.cfg.AppLang, "tier."+rank.TierKey(res.NewTier))))
	}
}

// HandleHistory обрабатывает команду !записи — показывает последние записи.
func (h *Handler) HandleHistory(ctx context.Context, chatID int64, userID int64) {
	entries, err := h.service.Recent(ctx, userID, historyLimit)
	if err != nil {
		log.WithError(err).Error("Ошибка получения записей")
		h.sendMessage(chatID, "❌ Ошибка получения истории записей")
		return
	}

	if len(entries) == 0 {
		h.sendMessage(chatID, "📋 Записей пока нет. Начни с !расход или !доход")
		return
	}

	loc := common.LoadLocationOrFixed(h.cfg.AppTimezone)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Последние %d %s:\n\n", len(entries), common.PluralizeEntries(len(entries))))
	for _, e := range entries {
		sign := "−"
		if e.Kind == KindIncome {
			sign = "+"
		}
		sb.WriteString(fmt.Sprintf("%s %s%s", common.FormatDateTime(e.CreatedAt, loc), sign, common.FormatMoney(e.AmountCents)))
		if e.Category != "" {
			sb.WriteString(" · " + e.Category)
		}
		sb.WriteString("\n")
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
