package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/project-board/internal/domain"
)

// MemberRepository defines persistence access for team members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByAlias(ctx context.Context, alias string) (*domain.Member, error)
	List(ctx context.Context, search string) ([]domain.Member, error)
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (id, name, alias, job_title, role, avatar_url, password_hash, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.ID,
		member.Name,
		member.Alias,
		member.JobTitle,
		member.Role,
		member.AvatarURL,
		member.PasswordHash,
		member.Status,
	).Scan(&member.CreatedAt, &member.UpdatedAt)
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	const query = `
        UPDATE members SET name=$1, alias=$2, job_title=$3, role=$4, avatar_url=$5,
            password_hash=$6, status=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		member.Name,
		member.Alias,
		member.JobTitle,
		member.Role,
		member.AvatarURL,
		member.PasswordHash,
		member.Status,
		member.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
        SELECT id, name, alias, job_title, role, avatar_url, password_hash, status, created_at, updated_at
        FROM members WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *memberRepository) GetByAlias(ctx context.Context, alias string) (*domain.Member, error) {
	const query = `
        SELECT id, name, alias, job_title, role, avatar_url, password_hash, status, created_at, updated_at
        FROM members WHERE LOWER(alias)=LOWER($1)`
	return r.fetchSingle(ctx, query, alias)
}

func (r *memberRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Member, error) {
	var member domain.Member
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&member.ID,
		&member.Name,
		&member.Alias,
		&member.JobTitle,
		&member.Role,
		&member.AvatarURL,
		&member.PasswordHash,
		&member.Status,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns members ordered by name. A non-empty search term narrows the
// result to case-insensitive substring matches on name or alias.
func (r *memberRepository) List(ctx context.Context, search string) ([]domain.Member, error) {
	base := `
        SELECT id, name, alias, job_title, role, avatar_url, password_hash, status, created_at, updated_at
        FROM members`

	var rows pgx.Rows
	var err error
	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		rows, err = r.pool.Query(ctx, base+` WHERE LOWER(name) LIKE $1 OR LOWER(alias) LIKE $1 ORDER BY name`, pattern)
	} else {
		rows, err = r.pool.Query(ctx, base+` ORDER BY name`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Alias,
			&member.JobTitle,
			&member.Role,
			&member.AvatarURL,
			&member.PasswordHash,
			&member.Status,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}
