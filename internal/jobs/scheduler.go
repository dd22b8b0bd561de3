// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ночной обход записей прогресса
// и ежечасные напоминания о серии.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/features/streak"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron          *cron.Cron
	cfg           *config.Config
	streakService *streak.Service
	sendFunc      func(userID int64, text string)
}

// NewScheduler создаёт планировщик задач в часовом поясе бота.
// Пояс тот же, что у календарных дат движка: иначе ночной обход
// может сработать «вчера» или «завтра».
func NewScheduler(cfg *config.Config, streakService *streak.Service, sendFunc func(userID int64, text string)) *Scheduler {
	loc := common.LoadLocationOrFixed(cfg.AppTimezone)
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:          c,
		cfg:           cfg,
		streakService: streakService,
		sendFunc:      sendFunc,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ночной обход в 00:05: пять минут запаса от границы суток,
	// чтобы не гоняться с ленивыми оценками на стыке дат.
	s.cron.AddFunc("5 0 * * *", func() {
		log.Info("[CRON] Ночной обход записей прогресса")
		if err := s.streakService.EvaluateAll(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка ночного обхода")
		}
	})

	// Напоминания каждый час
	if s.cfg.FeatureRemindersEnabled {
		s.cron.AddFunc("0 * * * *", func() {
			log.Debug("[CRON] Проверка напоминаний")
			if err := s.streakService.SendReminders(ctx, s.sendFunc); err != nil {
				log.WithError(err).Error("[CRON] Ошибка напоминаний")
			}
		})
	}

	s.cron.Start()
	log.WithField("timezone", s.cfg.AppTimezone).Info("Планировщик задач запущен")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
