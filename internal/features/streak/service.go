// Package streak — service.go содержит основную бизнес-логику прогресса.
// Сервис связывает чистый движок переходов (engine.go) с репозиторием
// и детектирует события для поздравлений: пороги серии и смену тира.
package streak

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/config"
)

// Service управляет прогрессом пользователей.
type Service struct {
	repo *Repository    // Репозиторий записей прогресса
	cfg  *config.Config // Конфигурация (буст, пороги напоминаний, пояс)
}

// NewService создаёт новый сервис прогресса.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// today возвращает сегодняшнюю календарную дату в поясе бота.
func (s *Service) today() string {
	return common.TodayIn(common.LoadLocationOrFixed(s.cfg.AppTimezone))
}

// BoostedScore применяет множитель платного тарифа к эффективному счёту.
// Применяется ДО вызова rank.Map — сам маппер про буст не знает.
func (s *Service) BoostedScore(rec Record) int {
	return boostedScore(rec.EffectiveScore, s.cfg.RankBoostMultiplier)
}

// EvaluateToday выполняет ежедневную оценку записи пользователя.
// Вызывается лениво при первом обращении пользователя за день
// и ночным обходом. Повторный вызов в тот же день — no-op.
func (s *Service) EvaluateToday(ctx context.Context, userID int64) (EvalResult, error) {
	rec, err := s.repo.Load(ctx, userID)
	if err != nil {
		return EvalResult{}, err
	}

	res := Evaluate(rec, s.today())
	if !res.NewDay {
		return res, nil
	}

	if err := s.repo.Save(ctx, userID, res.Record); err != nil {
		return EvalResult{}, err
	}

	if res.Penalty > 0 {
		log.WithFields(log.Fields{
			"user_id": userID,
			"penalty": res.Penalty,
			"score":   res.Record.EffectiveScore,
		}).Info("Штраф за пропущенные дни применён")
	}

	return res, nil
}

// RegisterActivity засчитывает активность пользователя (успешную запись
// в леджере). Сначала выполняется оценка дня — чтобы штраф за пропуск
// лёг до начисления, — затем инкремент.
//
// Заполняет поля для разовых поздравлений: достигнутый порог серии
// и пересечение границы тира (по бустированному счёту, т.к. именно
// его видит пользователь в ранге).
func (s *Service) RegisterActivity(ctx context.Context, userID int64) (ActivityResult, error) {
	rec, err := s.repo.Load(ctx, userID)
	if err != nil {
		return ActivityResult{}, err
	}

	// Приводим запись к сегодняшнему дню (штраф, сброс флага)
	rec = Evaluate(rec, s.today()).Record

	res := RegisterActivityWithTier(rec, s.today(), s.cfg.RankBoostMultiplier)
	if !res.Counted {
		return res, nil
	}

	if err := s.repo.Save(ctx, userID, res.Record); err != nil {
		return ActivityResult{}, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"score":   res.Record.EffectiveScore,
		"streak":  res.Record.RawStreak,
	}).Debug("Активность засчитана")

	return res, nil
}

// Get возвращает текущую запись прогресса пользователя.
func (s *Service) Get(ctx context.Context, userID int64) (Record, error) {
	return s.repo.Load(ctx, userID)
}

// All возвращает записи прогресса всех пользователей.
func (s *Service) All(ctx context.Context) (map[int64]Record, error) {
	return s.repo.All(ctx)
}

// Create создаёт начальную запись прогресса.
func (s *Service) Create(ctx context.Context, userID int64) error {
	return s.repo.Create(ctx, userID)
}

// AdjustScore вручную изменяет эффективный счёт пользователя
// (админская операция). Отрицательная дельта прижимается к нулю.
func (s *Service) AdjustScore(ctx context.Context, userID int64, delta int) (Record, error) {
	rec, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	rec.EffectiveScore += delta
	if rec.EffectiveScore < 0 {
		rec.EffectiveScore = 0
	}
	if err := s.repo.Save(ctx, userID, rec); err != nil {
		return Record{}, err
	}
	log.WithFields(log.Fields{
		"user_id": userID,
		"delta":   delta,
		"score":   rec.EffectiveScore,
	}).Info("Счёт скорректирован администратором")
	return rec, nil
}

// EvaluateAll проходит все записи и выполняет оценку дня.
// Запускается кроном ночью: пользователи, которые не появлялись,
// получают штраф без ожидания их следующего визита.
func (s *Service) EvaluateAll(ctx context.Context) error {
	log.Info("Запуск ночного обхода записей прогресса")

	records, err := s.repo.All(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения записей: %w", err)
	}

	today := s.today()
	penalized := 0
	for userID, rec := range records {
		res := Evaluate(rec, today)
		if !res.NewDay {
			continue
		}
		if err := s.repo.Save(ctx, userID, res.Record); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Ошибка сохранения при обходе")
			continue
		}
		if res.Penalty > 0 {
			penalized++
		}
	}

	log.WithFields(log.Fields{
		"total":     len(records),
		"penalized": penalized,
	}).Info("Ночной обход завершён")

	return nil
}

// SendReminders отправляет напоминания пользователям с длинной серией,
// у которых сегодня ещё нет записи. Не больше одного напоминания в день.
// Запускается кроном каждый час.
func (s *Service) SendReminders(ctx context.Context, sendFunc func(userID int64, text string)) error {
	records, err := s.repo.All(ctx)
	if err != nil {
		return err
	}

	today := s.today()
	for userID, rec := range records {
		if rec.RawStreak < s.cfg.StreakReminderThreshold {
			continue
		}
		if rec.HasActivityToday || rec.ReminderSentDate == today {
			continue
		}

		msg := fmt.Sprintf("⚠️ Твоя серия — %d %s! Запиши сегодняшний расход или доход, чтобы не потерять прогресс.",
			rec.RawStreak, common.PluralizeDays(rec.RawStreak))
		sendFunc(userID, msg)

		rec.ReminderSentDate = today
		if err := s.repo.Save(ctx, userID, rec); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Ошибка отметки напоминания")
		}
	}

	return nil
}
