// Package streak — repository.go хранит записи прогресса в PostgreSQL.
// Одна строка на пользователя, сама запись — версионированный JSONB:
// так миграции формата остаются аддитивными, а битая запись лечится
// при чтении, а не валит запрос.
//
// Известное ограничение: два одновременных обновления одной записи —
// это read-modify-write без блокировки, побеждает последняя запись.
// То же самое делал веб-движок с двумя вкладками браузера; для
// некритичных игровых очков это принятый компромисс.
package streak

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицей progress_records.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий записей прогресса.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create создаёт нулевую запись прогресса для нового участника.
func (r *Repository) Create(ctx context.Context, userID int64) error {
	data, err := EncodeRecord(NewRecord())
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %w", err)
	}
	query := `
		INSERT INTO progress_records (user_id, record)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, data); err != nil {
		return fmt.Errorf("ошибка создания записи прогресса: %w", err)
	}
	return nil
}

// Load возвращает запись прогресса пользователя.
// Отсутствующая строка — не ошибка: возвращается нулевая запись.
// Легаси-формат и битые данные лечатся в DecodeRecord.
func (r *Repository) Load(ctx context.Context, userID int64) (Record, error) {
	query := `SELECT record FROM progress_records WHERE user_id = $1`
	var data []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NewRecord(), nil
		}
		return NewRecord(), fmt.Errorf("ошибка чтения записи прогресса (user_id=%d): %w", userID, err)
	}
	return DecodeRecord(data), nil
}

// Save сохраняет запись прогресса (upsert).
func (r *Repository) Save(ctx context.Context, userID int64, rec Record) error {
	data, err := EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %w", err)
	}
	query := `
		INSERT INTO progress_records (user_id, record)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET record = EXCLUDED.record, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, userID, data); err != nil {
		return fmt.Errorf("ошибка сохранения записи прогресса: %w", err)
	}
	return nil
}

// All возвращает записи всех пользователей.
// Используется ночным обходом и напоминаниями.
func (r *Repository) All(ctx context.Context) (map[int64]Record, error) {
	query := `SELECT user_id, record FROM progress_records`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей прогресса: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]Record)
	for rows.Next() {
		var userID int64
		var data []byte
		if err := rows.Scan(&userID, &data); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		out[userID] = DecodeRecord(data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
