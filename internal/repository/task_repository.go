package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/project-board/internal/domain"
)

// TaskFilter captures board listing parameters.
type TaskFilter struct {
	Statuses   []domain.TaskStatus
	Priorities []domain.TaskPriority
	Type       *domain.TaskType
	AssigneeID *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// TaskRepository encapsulates task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListWithFilter(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	ClearAssignee(ctx context.Context, memberID string) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, title, status, custom_status_text, priority, type, tags, assignee_id,
               due_date, comments, project_links, attributes, is_milestone, subtask_ids,
               created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (id, title, status, custom_status_text, priority, type, tags, assignee_id,
                           due_date, comments, project_links, attributes, is_milestone, subtask_ids)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Status,
		task.CustomStatusText,
		task.Priority,
		task.Type,
		task.Tags,
		task.AssigneeID,
		task.DueDate,
		task.Comments,
		task.ProjectLinks,
		task.Attributes,
		task.IsMilestone,
		task.SubTaskIDs,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, status=$2, custom_status_text=$3, priority=$4, type=$5, tags=$6,
            assignee_id=$7, due_date=$8, comments=$9, project_links=$10, attributes=$11,
            is_milestone=$12, subtask_ids=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		task.Title,
		task.Status,
		task.CustomStatusText,
		task.Priority,
		task.Type,
		task.Tags,
		task.AssigneeID,
		task.DueDate,
		task.Comments,
		task.ProjectLinks,
		task.Attributes,
		task.IsMilestone,
		task.SubTaskIDs,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id=$1`, taskColumns)
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(taskFields(&task)...); err != nil {
		return nil, err
	}
	return &task, nil
}

// ClearAssignee unlinks every task assigned to the member, used when a
// member is removed so cards fall back to the placeholder.
func (r *taskRepository) ClearAssignee(ctx context.Context, memberID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE tasks SET assignee_id=NULL, updated_at=NOW() WHERE assignee_id=$1`, memberID)
	return err
}

func (r *taskRepository) ListWithFilter(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		taskColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(taskFields(&task)...); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func taskFields(task *domain.Task) []any {
	return []any{
		&task.ID,
		&task.Title,
		&task.Status,
		&task.CustomStatusText,
		&task.Priority,
		&task.Type,
		&task.Tags,
		&task.AssigneeID,
		&task.DueDate,
		&task.Comments,
		&task.ProjectLinks,
		&task.Attributes,
		&task.IsMilestone,
		&task.SubTaskIDs,
		&task.CreatedAt,
		&task.UpdatedAt,
	}
}
