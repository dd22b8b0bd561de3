// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go принимает апдейты, прогоняет их через фильтры и маршрутизирует
// команды к обработчикам фич.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/bot/filters"
	"corex.ru/progress-bot/internal/bot/middleware"
	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/features/achievements"
	"corex.ru/progress-bot/internal/features/admin"
	"corex.ru/progress-bot/internal/features/health"
	"corex.ru/progress-bot/internal/features/ledger"
	"corex.ru/progress-bot/internal/features/members"
	"corex.ru/progress-bot/internal/features/streak"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	memberHandler      *members.Handler
	ledgerHandler      *ledger.Handler
	streakHandler      *streak.Handler
	healthHandler      *health.Handler
	achievementHandler *achievements.Handler
	adminHandler       *admin.Handler

	memberService *members.Service
	streakService *streak.Service

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	memberService *members.Service,
	memberHandler *members.Handler,
	streakService *streak.Service,
	streakHandler *streak.Handler,
	ledgerHandler *ledger.Handler,
	healthHandler *health.Handler,
	achievementHandler *achievements.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:                api,
		cfg:                cfg,
		chatFilter:         chatFilter,
		rateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		memberHandler:      memberHandler,
		ledgerHandler:      ledgerHandler,
		streakHandler:      streakHandler,
		healthHandler:      healthHandler,
		achievementHandler: achievementHandler,
		adminHandler:       adminHandler,
		memberService:      memberService,
		streakService:      streakService,
		parser:             NewCommandParser(),
		inflight:           make(chan struct{}, maxInFlight),
	}
}

// Close останавливает фоновые компоненты бота.
func (b *Bot) Close() {
	b.rateLimiter.Close()
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	// Обрабатываем новых участников (событие вступления)
	if update.Message != nil && update.Message.NewChatMembers != nil {
		if update.Message.Chat != nil && update.Message.Chat.ID == b.cfg.FloodChatID {
			b.memberHandler.HandleNewChatMembers(ctx, update.Message.NewChatMembers)
		}
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message

	middleware.LogMessage(message)

	// Проверяем доступ (FLOOD_CHAT_ID или DM участника)
	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	// Rate limiting: вместо молчаливого игнора говорим, когда можно снова
	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		wait := b.rateLimiter.RetryAfter(message.From.ID)
		log.WithFields(log.Fields{
			"user_id":     message.From.ID,
			"retry_after": wait,
		}).Debug("rate limited")
		seconds := int(wait.Seconds()) + 1
		b.sendMessage(message.Chat.ID, fmt.Sprintf(
			"⏳ Слишком часто. Подождите %d %s.", seconds, common.PluralizeSeconds(seconds)))
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	// EnsureMember — ошибки нельзя игнорировать, иначе потом будет "оно не работает"
	if err := b.memberService.EnsureMember(ctx, userID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureMember failed")
	}

	// Ленивая оценка дня: первое обращение пользователя приводит его
	// запись к сегодняшней дате (штраф за пропуски, сброс флага).
	if _, err := b.streakService.EvaluateToday(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EvaluateToday failed")
	}

	// В DM проверяем админ-панель
	if message.Chat.IsPrivate() {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}

	b.routeCommand(ctx, chatID, userID, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("routing command")

	switch cmd {
	case "start", "help", "помощь":
		b.sendMessage(chatID, helpText)

	case "login":
		if chatID == userID {
			b.adminHandler.HandleAdminMessage(ctx, chatID, userID, "/login "+strings.Join(args, " "))
		}

	case "расход":
		b.ledgerHandler.HandleExpense(ctx, chatID, userID, args)

	case "доход":
		b.ledgerHandler.HandleIncome(ctx, chatID, userID, args)

	case "записи":
		b.ledgerHandler.HandleHistory(ctx, chatID, userID)

	case "прогресс", "ранг":
		b.streakHandler.HandleProgress(ctx, chatID, userID)

	case "здоровье":
		if b.cfg.FeatureHealthEnabled {
			b.healthHandler.HandleHealth(ctx, chatID, userID)
		} else {
			b.sendMessage(chatID, "💚 Индекс здоровья временно отключён")
		}

	case "достижения":
		if b.cfg.FeatureAchievementsEnabled {
			b.achievementHandler.HandleAchievements(ctx, chatID, userID)
		} else {
			b.sendMessage(chatID, "🏆 Достижения временно отключены")
		}
	}
}

// helpText — ответ на !помощь.
const helpText = `Я считаю твой финансовый прогресс. Команды:
!расход 250.50 еда — записать расход
!доход 50000 зарплата — записать доход
!записи — последние записи
!прогресс — серия, счёт и ранг
!здоровье — индекс финансового здоровья
!достижения — список достижений
/login <пароль> — админ-панель (в личке)`

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение пользователю (для напоминаний).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось отправить сообщение")
	}
}

// CommandParser парсит русские команды с префиксами !, . и /.
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand разбирает текст на команду и аргументы.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
