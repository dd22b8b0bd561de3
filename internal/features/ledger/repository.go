// Package ledger — repository.go выполняет операции с таблицей ledger_entries.
package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с записями леджера.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий леджера.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет новую запись леджера.
func (r *Repository) Insert(ctx context.Context, userID int64, kind string, amountCents int64, category string) error {
	query := `
		INSERT INTO ledger_entries (user_id, kind, amount_cents, category)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, userID, kind, amountCents, category)
	if err != nil {
		return fmt.Errorf("ошибка сохранения записи леджера: %w", err)
	}
	return nil
}

// Recent возвращает последние N записей пользователя.
func (r *Repository) Recent(ctx context.Context, userID int64, limit int) ([]*Entry, error) {
	query := `
		SELECT id, user_id, kind, amount_cents, category, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.AmountCents, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

// Count возвращает общее количество записей пользователя.
func (r *Repository) Count(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM ledger_entries WHERE user_id = $1`
	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей: %w", err)
	}
	return count, nil
}

// CountAll возвращает количество записей во всей таблице.
// Используется в админской статистике.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries`).Scan(&count)
	return count, err
}
