package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/project-board/internal/domain"
)

// StatusUpdateRepository encapsulates status update persistence.
type StatusUpdateRepository interface {
	Create(ctx context.Context, update *domain.StatusUpdate) error
	GetByID(ctx context.Context, id string) (*domain.StatusUpdate, error)
	List(ctx context.Context, limit, offset int) ([]domain.StatusUpdate, error)
}

type statusUpdateRepository struct {
	pool *pgxpool.Pool
}

// NewStatusUpdateRepository instantiates repository.
func NewStatusUpdateRepository(pool *pgxpool.Pool) StatusUpdateRepository {
	return &statusUpdateRepository{pool: pool}
}

func (r *statusUpdateRepository) Create(ctx context.Context, update *domain.StatusUpdate) error {
	const query = `
        INSERT INTO status_updates (id, title, date, type, content, author_id, author_name)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		update.ID,
		update.Title,
		update.Date,
		update.Type,
		update.Content,
		update.AuthorID,
		update.AuthorName,
	).Scan(&update.CreatedAt)
}

func (r *statusUpdateRepository) GetByID(ctx context.Context, id string) (*domain.StatusUpdate, error) {
	const query = `
        SELECT id, title, date, type, content, author_id, author_name, created_at
        FROM status_updates WHERE id=$1`
	var update domain.StatusUpdate
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&update.ID,
		&update.Title,
		&update.Date,
		&update.Type,
		&update.Content,
		&update.AuthorID,
		&update.AuthorName,
		&update.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &update, nil
}

func (r *statusUpdateRepository) List(ctx context.Context, limit, offset int) ([]domain.StatusUpdate, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, title, date, type, content, author_id, author_name, created_at
        FROM status_updates ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusUpdate
	for rows.Next() {
		var update domain.StatusUpdate
		if err := rows.Scan(
			&update.ID,
			&update.Title,
			&update.Date,
			&update.Type,
			&update.Content,
			&update.AuthorID,
			&update.AuthorName,
			&update.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, update)
	}
	return result, rows.Err()
}
