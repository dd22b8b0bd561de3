// Package admin — service.go содержит логику аутентификации,
// управления сессиями и админ-операций над прогрессом.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/features/members"
	"corex.ru/progress-bot/internal/features/streak"
)

// sessionTTL — время жизни админ-сессии.
const sessionTTL = 24 * time.Hour

// maxLoginAttempts — неудачных попыток за час до блокировки.
const maxLoginAttempts = 3

// Service управляет админ-панелью.
type Service struct {
	repo    *Repository
	members *members.Service
	streaks *streak.Service
	ledger  EntryTotals
	cfg     *config.Config
}

// EntryTotals отдаёт суммарное число записей леджера.
type EntryTotals interface {
	CountAllEntries(ctx context.Context) (int64, error)
}

// NewService создаёт сервис админ-панели.
func NewService(repo *Repository, memberService *members.Service, streaks *streak.Service, ledger EntryTotals, cfg *config.Config) *Service {
	return &Service{
		repo:    repo,
		members: memberService,
		streaks: streaks,
		ledger:  ledger,
		cfg:     cfg,
	}
}

// IsAdmin проверяет, числится ли пользователь в списке администраторов.
func (s *Service) IsAdmin(userID int64) bool {
	for _, id := range s.cfg.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VerifyPassword проверяет пароль администратора с использованием Argon2id.
// Включает защиту от brute-force: 3 неудачные попытки = блокировка на 1 час.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	if !s.IsAdmin(userID) {
		return common.ErrNotAdmin
	}

	attempts, err := s.repo.GetRecentAttempts(ctx, userID, 1*time.Hour)
	if err != nil {
		return err
	}
	if attempts >= maxLoginAttempts {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)

	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Error("Ошибка записи попытки входа")
	}

	if !match {
		return common.ErrWrongPassword
	}

	token := generateSecureToken()
	session := &AdminSession{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(sessionTTL),
	}

	log.WithField("user_id", userID).Info("Администратор аутентифицирован")
	return s.repo.CreateSession(ctx, session)
}

// HasActiveSession проверяет, есть ли у пользователя активная сессия.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	session, err := s.repo.GetActiveSession(ctx, userID)
	if err != nil || session == nil {
		return false
	}
	if err := s.repo.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).Debug("Ошибка обновления активности сессии")
	}
	return true
}

// Logout деактивирует сессию администратора.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.repo.DeactivateSession(ctx, userID)
}

// AdjustScore вручную меняет эффективный счёт участника.
// Требует активной сессии: проверку делает вызывающий код.
func (s *Service) AdjustScore(ctx context.Context, targetUserID int64, delta int) (streak.Record, error) {
	return s.streaks.AdjustScore(ctx, targetUserID, delta)
}

// CollectStats собирает сводку по базе для команды «статистика».
func (s *Service) CollectStats(ctx context.Context) (Stats, error) {
	var st Stats

	memberCount, err := s.members.CountAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("ошибка подсчёта участников: %w", err)
	}
	st.Members = memberCount

	ledgerCount, err := s.ledger.CountAllEntries(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("ошибка подсчёта записей: %w", err)
	}
	st.LedgerTotal = ledgerCount

	records, err := s.streaks.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("ошибка чтения записей прогресса: %w", err)
	}
	for _, rec := range records {
		if rec.HasActivityToday {
			st.ActiveToday++
		}
		if rec.RawStreak > st.LongestStreak {
			st.LongestStreak = rec.RawStreak
		}
	}

	return st, nil
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени (защита от timing attack)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken генерирует криптографически безопасный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
