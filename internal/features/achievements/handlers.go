// Package achievements — handlers.go обрабатывает команду !достижения.
package achievements

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/features/dashboard"
	"corex.ru/progress-bot/internal/features/rank"
	"corex.ru/progress-bot/internal/features/streak"
	"corex.ru/progress-bot/internal/texts"
)

// EntryCounter отдаёт число записей пользователя в леджере.
type EntryCounter interface {
	CountEntries(ctx context.Context, userID int64) (int64, error)
}

// Handler обрабатывает команды достижений.
type Handler struct {
	streaks *streak.Service
	entries EntryCounter
	facts   *dashboard.Client
	bot     *tgbotapi.BotAPI
	cfg     *config.Config
}

// NewHandler создаёт новый обработчик команд достижений.
func NewHandler(streaks *streak.Service, entries EntryCounter, facts *dashboard.Client, bot *tgbotapi.BotAPI, cfg *config.Config) *Handler {
	return &Handler{streaks: streaks, entries: entries, facts: facts, bot: bot, cfg: cfg}
}

// BuildSnapshot собирает снимок состояния пользователя для оценки.
// Недоступность CoreX не ошибка: снимок просто помечается HasFacts=false,
// и фактовые достижения останутся «неизвестными».
func (h *Handler) BuildSnapshot(ctx context.Context, userID int64) (Snapshot, error) {
	rec, err := h.streaks.Get(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	count, err := h.entries.CountEntries(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		RawStreak:      rec.RawStreak,
		EffectiveScore: rec.EffectiveScore,
		RankLevel:      rank.Map(h.streaks.BoostedScore(rec)).Level,
		EntryCount:     count,
	}

	if f, err := h.facts.Fetch(ctx, userID); err == nil {
		snap.HasFacts = true
		snap.ShieldFillPercent = f.ShieldFillPercent
		snap.TotalDebt = f.TotalDebt
		snap.DebtsEliminated = f.DebtsEliminated
		snap.AccountCount = f.AccountCount
		snap.InterestSaved = f.InterestSaved
	}

	return snap, nil
}

// HandleAchievements обрабатывает команду !достижения.
func (h *Handler) HandleAchievements(ctx context.Context, chatID int64, userID int64) {
	snap, err := h.BuildSnapshot(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка сборки снимка достижений")
		h.sendMessage(chatID, "❌ Ошибка получения данных достижений")
		return
	}

	statuses := Evaluate(snap)
	lang := h.cfg.AppLang

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 Достижения: %d из %d\n\n", CountUnlocked(statuses), len(Catalog)))

	for _, st := range statuses {
		name := texts.Get(lang, "ach."+st.Key)
		switch {
		case st.Unlocked:
			sb.WriteString(fmt.Sprintf("✅ %s\n", name))
		case !st.Known:
			sb.WriteString(fmt.Sprintf("❔ %s — нужна связь с CoreX\n", name))
		default:
			desc := texts.Get(lang, "ach."+st.Key+".desc")
			sb.WriteString(fmt.Sprintf("🔒 %s — %s\n", name, desc))
		}
	}

	if !snap.HasFacts {
		sb.WriteString("\n📡 Данные CoreX недоступны, часть достижений не оценена")
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
