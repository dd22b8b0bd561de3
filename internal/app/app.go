// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/bot"
	"corex.ru/progress-bot/internal/bot/filters"
	"corex.ru/progress-bot/internal/config"
	"corex.ru/progress-bot/internal/db/postgres"
	"corex.ru/progress-bot/internal/features/achievements"
	"corex.ru/progress-bot/internal/features/admin"
	"corex.ru/progress-bot/internal/features/dashboard"
	"corex.ru/progress-bot/internal/features/health"
	"corex.ru/progress-bot/internal/features/ledger"
	"corex.ru/progress-bot/internal/features/members"
	"corex.ru/progress-bot/internal/features/streak"
	"corex.ru/progress-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	memberRepo := members.NewRepository(pool)
	streakRepo := streak.NewRepository(pool)
	ledgerRepo := ledger.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы и клиенты ===
	factsClient := dashboard.NewClient(cfg.CoreXAPIURL, cfg.CoreXAPITimeout, log.StandardLogger())
	if !factsClient.Enabled() {
		log.Warn("COREX_API_URL не задан: здоровье и фактовые достижения в урезанном режиме")
	}

	streakService := streak.NewService(streakRepo, cfg)
	memberService := members.NewService(memberRepo, streakService)
	ledgerService := ledger.NewService(ledgerRepo, streakService)
	adminService := admin.NewService(adminRepo, memberService, streakService, ledgerService, cfg)

	// === 5. Обработчики ===
	memberHandler := members.NewHandler(memberService)
	streakHandler := streak.NewHandler(streakService, botAPI, cfg)
	ledgerHandler := ledger.NewHandler(ledgerService, botAPI, cfg)
	healthHandler := health.NewHandler(streakService, factsClient, botAPI, cfg)
	achievementHandler := achievements.NewHandler(streakService, ledgerService, factsClient, botAPI, cfg)
	adminHandler := admin.NewHandler(adminService, memberService, botAPI)

	// === 6. Фильтры ===
	chatFilter := filters.NewChatFilter(cfg.FloodChatID, memberService, botAPI)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		memberService, memberHandler,
		streakService, streakHandler,
		ledgerHandler,
		healthHandler,
		achievementHandler,
		adminHandler,
		chatFilter,
	)

	// === 8. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg, streakService, b.SendMessageToUser)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Members},
		{2, migration002Progress},
		{3, migration003Ledger},
		{4, migration004Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Members = `
CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255),
    joined_at TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);
CREATE INDEX IF NOT EXISTS idx_members_username ON members(username);
`

// Запись прогресса хранится одним JSONB-документом: формат версионируется
// полем schema_version внутри документа, а не миграциями схемы.
var migration002Progress = `
CREATE TABLE IF NOT EXISTS progress_records (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES members(user_id),
    record JSONB NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_progress_records_user_id ON progress_records(user_id);
`

var migration003Ledger = `
CREATE TABLE IF NOT EXISTS ledger_entries (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES members(user_id),
    kind VARCHAR(16) NOT NULL,
    amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
    category VARCHAR(64) DEFAULT '',
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_ledger_entries_user_id ON ledger_entries(user_id);
CREATE INDEX IF NOT EXISTS idx_ledger_entries_created_at ON ledger_entries(created_at DESC);
`

var migration004Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT REFERENCES members(user_id),
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    attempt_time TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
`
