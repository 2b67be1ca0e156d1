package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fdg312/fittrack/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage — Postgres реализация UserStorage. Документ пользователя
// лежит целиком в JSONB колонке, как в документном хранилище.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// New создаёт PostgresStorage и пользователя по умолчанию, если его нет
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	ps := &PostgresStorage{pool: pool}

	if err := ps.ensureDefaultUser(ctx); err != nil {
		return nil, err
	}

	return ps, nil
}

func (p *PostgresStorage) GetUser(ctx context.Context, id string) (*storage.User, error) {
	query := `SELECT payload FROM users WHERE id = $1`

	var payload []byte
	err := p.pool.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user storage.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, err
	}
	user.ID = id

	return &user, nil
}

func (p *PostgresStorage) SaveUser(ctx context.Context, user *storage.User) error {
	user.UpdatedAt = time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.UpdatedAt
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, payload, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	_, err = p.pool.Exec(ctx, query, user.ID, payload)
	return err
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// ensureDefaultUser создаёт документ пользователя по умолчанию, если его нет
func (p *PostgresStorage) ensureDefaultUser(ctx context.Context) error {
	now := time.Now()
	user := storage.User{
		ID:        "default",
		Gender:    storage.GenderOther,
		Goal:      storage.GoalMaintain,
		CreatedAt: now,
		UpdatedAt: now,
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`

	_, err = p.pool.Exec(ctx, query, user.ID, payload, now, now)
	return err
}
