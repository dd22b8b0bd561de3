// Package ledger — service.go содержит бизнес-логику записей.
// Успешная запись леджера засчитывается движку прогресса как
// активность дня — только одна засчитывается, остальные просто копятся.
package ledger

import (
	"context"

	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/features/streak"
)

// Service управляет записями леджера.
type Service struct {
	repo    *Repository     // Репозиторий записей
	streaks *streak.Service // Движок прогресса: засчитывает активность
}

// NewService создаёт новый сервис леджера.
func NewService(repo *Repository, streaks *streak.Service) *Service {
	return &Service{repo: repo, streaks: streaks}
}

// RecordEntry валидирует и сохраняет запись, затем отдаёт активность
// движку прогресса. Возвращает результат движка: вызывающий код
// решает, поздравлять ли с порогом серии или новым тиром.
//
// Запись сохраняется даже если движок прогресса упал: потерять
// финансовую запись хуже, чем недосчитать очко.
func (s *Service) RecordEntry(ctx context.Context, userID int64, kind string, amountCents int64, category string) (streak.ActivityResult, error) {
	if err := ValidateCategory(category); err != nil {
		return streak.ActivityResult{}, err
	}

	if err := s.repo.Insert(ctx, userID, kind, amountCents, category); err != nil {
		return streak.ActivityResult{}, err
	}

	res, err := s.streaks.RegisterActivity(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).
			Error("Запись сохранена, но активность не засчитана")
		return streak.ActivityResult{}, nil
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"kind":    kind,
		"amount":  amountCents,
	}).Debug("Запись леджера сохранена")

	return res, nil
}

// Recent возвращает последние записи пользователя.
func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]*Entry, error) {
	return s.repo.Recent(ctx, userID, limit)
}

// CountEntries возвращает число записей пользователя.
// Реализует achievements.EntryCounter.
func (s *Service) CountEntries(ctx context.Context, userID int64) (int64, error) {
	return s.repo.Count(ctx, userID)
}

// CountAllEntries возвращает число записей во всей базе.
func (s *Service) CountAllEntries(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}
