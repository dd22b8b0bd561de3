// Package admin — handlers.go обрабатывает админ-команды в личных сообщениях.
// Поток: /login → пароль → сессия 24 часа → «статистика», «начислить».
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/features/members"
)

// stateTTL — сколько живёт состояние «ждём пароль».
const stateTTL = 5 * time.Minute

// Handler обрабатывает админ-команды.
type Handler struct {
	service       *Service
	memberService *members.Service
	bot           *tgbotapi.BotAPI

	// Кто сейчас вводит пароль (in-memory, теряется при рестарте)
	awaitingMu sync.Mutex
	awaiting   map[int64]time.Time
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, memberService *members.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service:       service,
		memberService: memberService,
		bot:           bot,
		awaiting:      make(map[int64]time.Time),
	}
}

// HandleAdminMessage обрабатывает сообщение администратора в DM.
// Возвращает true, если сообщение было админским и обработано.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID int64, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}

	text = strings.TrimSpace(text)

	// Ввод пароля после /login
	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	switch {
	case text == "/login":
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.setAwaiting(userID)
		return true

	case text == "/logout":
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("Ошибка выхода из сессии")
		}
		h.sendMessage(chatID, "👋 Сессия завершена")
		return true
	}

	// Остальные команды требуют активной сессии
	isAdminCmd := text == "статистика" || strings.HasPrefix(text, "начислить ")
	if !isAdminCmd {
		return false
	}

	if !h.service.HasActiveSession(ctx, userID) {
		log.WithError(common.ErrSessionExpired).WithField("user_id", userID).Debug("Админ-команда без сессии")
		h.sendMessage(chatID, "🔐 Сессия истекла. Войдите заново: /login")
		return true
	}

	switch {
	case text == "статистика":
		h.handleStats(ctx, chatID)

	case strings.HasPrefix(text, "начислить "):
		h.handleAdjust(ctx, chatID, strings.Fields(text)[1:])
	}

	return true
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID int64, userID int64, password string) {
	h.clearAwaiting(userID)

	err := h.service.VerifyPassword(ctx, userID, password)
	switch {
	case err == nil:
		h.sendMessage(chatID, "✅ Аутентификация успешна! Доступны: статистика, начислить @username дельта")
	case errors.Is(err, common.ErrTooManyAttempts):
		h.sendMessage(chatID, "⛔ Слишком много попыток, подождите час")
	case errors.Is(err, common.ErrWrongPassword):
		h.sendMessage(chatID, "❌ Неверный пароль")
	default:
		log.WithError(err).Error("Ошибка проверки пароля")
		h.sendMessage(chatID, "❌ Ошибка аутентификации")
	}
}

// handleStats обрабатывает команду «статистика».
func (h *Handler) handleStats(ctx context.Context, chatID int64) {
	st, err := h.service.CollectStats(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка сбора статистики")
		h.sendMessage(chatID, "❌ Ошибка сбора статистики")
		return
	}

	text := fmt.Sprintf(
		"📊 Статистика\n\nУчастников: %d\nЗаписей в леджере: %d\nАктивны сегодня: %d\nДлиннейшая серия: %d %s",
		st.Members, st.LedgerTotal, st.ActiveToday,
		st.LongestStreak, common.PluralizeDays(st.LongestStreak),
	)
	h.sendMessage(chatID, text)
}

// handleAdjust обрабатывает команду «начислить @username дельта».
// Дельта может быть отрицательной, счёт прижимается к нулю.
func (h *Handler) handleAdjust(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "❌ Формат: начислить @username дельта")
		return
	}

	username := strings.TrimPrefix(args[0], "@")
	delta, err := strconv.Atoi(args[1])
	if err != nil || delta == 0 {
		h.sendMessage(chatID, "❌ Дельта должна быть ненулевым целым числом")
		return
	}

	target, err := h.memberService.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			h.sendMessage(chatID, "❌ Пользователь не найден")
			return
		}
		log.WithError(err).Error("Ошибка поиска участника")
		h.sendMessage(chatID, "❌ Ошибка поиска участника")
		return
	}

	rec, err := h.service.AdjustScore(ctx, target.UserID, delta)
	if err != nil {
		log.WithError(err).Error("Ошибка корректировки счёта")
		h.sendMessage(chatID, "❌ Ошибка корректировки счёта")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ %s: счёт теперь %d (%s)",
		target.DisplayName(), rec.EffectiveScore, common.FormatPointsDelta(delta)))
}

// --- Состояние «ждём пароль» ---

func (h *Handler) isAwaitingPassword(userID int64) bool {
	h.awaitingMu.Lock()
	defer h.awaitingMu.Unlock()

	deadline, ok := h.awaiting[userID]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(h.awaiting, userID)
		return false
	}
	return true
}

func (h *Handler) setAwaiting(userID int64) {
	h.awaitingMu.Lock()
	defer h.awaitingMu.Unlock()
	h.awaiting[userID] = time.Now().Add(stateTTL)
}

func (h *Handler) clearAwaiting(userID int64) {
	h.awaitingMu.Lock()
	defer h.awaitingMu.Unlock()
	delete(h.awaiting, userID)
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
