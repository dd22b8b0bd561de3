// Package admin — repository.go хранит админ-сессии и журнал попыток входа.
// Сессия — это «пропуск» к командам «статистика» и «начислить»; журнал
// попыток нужен сервису, чтобы тормозить перебор пароля.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository — доступ к таблицам admin_sessions и admin_login_attempts.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSession открывает сессию после успешного ввода пароля.
// Старые сессии пользователя гасятся в той же транзакции: активная
// сессия у админа всегда ровно одна.
func (r *Repository) CreateSession(ctx context.Context, session *AdminSession) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции сессии: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1 AND is_active = TRUE`,
		session.UserID,
	); err != nil {
		return fmt.Errorf("ошибка гашения старых сессий: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO admin_sessions (user_id, session_token, expires_at, is_active)
		 VALUES ($1, $2, $3, TRUE)`,
		session.UserID, session.SessionToken, session.ExpiresAt,
	); err != nil {
		return fmt.Errorf("ошибка открытия сессии: %w", err)
	}

	return tx.Commit(ctx)
}

// GetActiveSession возвращает непросроченную сессию пользователя.
// Нет сессии — нет доступа к админ-командам: ошибка, а не nil.
func (r *Repository) GetActiveSession(ctx context.Context, userID int64) (*AdminSession, error) {
	query := `
		SELECT id, user_id, session_token, authenticated_at, expires_at, last_activity, is_active
		FROM admin_sessions
		WHERE user_id = $1 AND is_active = TRUE AND expires_at > NOW()
		LIMIT 1
	`
	var s AdminSession
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.SessionToken, &s.AuthenticatedAt,
		&s.ExpiresAt, &s.LastActivity, &s.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("активная сессия не найдена (user_id=%d): %w", userID, err)
	}
	return &s, nil
}

// DeactivateSession гасит сессию при /logout.
func (r *Repository) DeactivateSession(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1`, userID)
	return err
}

// UpdateActivity сдвигает время последней активности. Вызывается на
// каждой админ-команде, прошедшей проверку сессии.
func (r *Repository) UpdateActivity(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE admin_sessions SET last_activity = NOW() WHERE user_id = $1 AND is_active = TRUE`,
		userID)
	return err
}

// LogAttempt пишет попытку входа в журнал — и удачную, и нет.
func (r *Repository) LogAttempt(ctx context.Context, userID int64, success bool) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_login_attempts (user_id, success) VALUES ($1, $2)`, userID, success)
	return err
}

// GetRecentAttempts считает неудачные попытки входа за период.
// По этому числу сервис решает, не пора ли отвечать «слишком много попыток».
func (r *Repository) GetRecentAttempts(ctx context.Context, userID int64, period time.Duration) (int, error) {
	since := time.Now().Add(-period)
	query := `
		SELECT COUNT(*) FROM admin_login_attempts
		WHERE user_id = $1 AND success = FALSE AND attempt_time >= $2
	`
	var count int
	err := r.db.QueryRow(ctx, query, userID, since).Scan(&count)
	return count, err
}
