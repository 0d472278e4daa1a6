package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repos can run inside a
// WithTx scope when a write has to be atomic with others.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type TodoRepo struct {
	db DBTX
}

func NewTodoRepo(db DBTX) *TodoRepo {
	return &TodoRepo{db: db}
}

type TodoInsert struct {
	UserID       string
	Text         string
	DueTime      *time.Time
	CreatedDate  string
	DisplayOrder int64
}

const todoColumns = `id, user_id, text, due_time, is_completed, completed_at, created_at, created_date, display_order`

func (r *TodoRepo) Insert(ctx context.Context, in TodoInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (user_id, text, due_time, is_completed, created_date, display_order)
		VALUES (?, ?, ?, 0, ?, ?)
	`, in.UserID, in.Text, millisPtr(in.DueTime), in.CreatedDate, in.DisplayOrder)
	if err != nil {
		return 0, fmt.Errorf("todo insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	return id, nil
}

func (r *TodoRepo) Get(ctx context.Context, id int64) (*Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	return scanTodoRow(row)
}

func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("todo list: %w", err)
	}
	defer rows.Close()

	var out []Todo
	for rows.Next() {
		t, err := scanTodoRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("todo list rows: %w", err)
	}
	return out, nil
}

// ListPastIncomplete returns incomplete todos created before the given day.
func (r *TodoRepo) ListPastIncomplete(ctx context.Context, userID, today string) ([]Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE user_id = ? AND is_completed = 0 AND created_date < ?
		ORDER BY id ASC
	`, userID, today)
	if err != nil {
		return nil, fmt.Errorf("todo past list: %w", err)
	}
	defer rows.Close()

	var out []Todo
	for rows.Next() {
		t, err := scanTodoRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("todo past rows: %w", err)
	}
	return out, nil
}

func (r *TodoRepo) SetCompleted(ctx context.Context, id int64, completedAt *time.Time) error {
	completed := 0
	if completedAt != nil {
		completed = 1
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE todos SET is_completed = ?, completed_at = ? WHERE id = ?
	`, completed, millisPtr(completedAt), id)
	if err != nil {
		return fmt.Errorf("todo set completed: %w", err)
	}
	return nil
}

func (r *TodoRepo) UpdateText(ctx context.Context, id int64, text string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE todos SET text = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("todo update text: %w", err)
	}
	return nil
}

func (r *TodoRepo) UpdateDueTime(ctx context.Context, id int64, due *time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE todos SET due_time = ? WHERE id = ?`, millisPtr(due), id)
	if err != nil {
		return fmt.Errorf("todo update due time: %w", err)
	}
	return nil
}

// UpdateCreatedDate moves a todo onto the given day (daily-reset carry over).
func (r *TodoRepo) UpdateCreatedDate(ctx context.Context, id int64, day string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE todos SET created_date = ? WHERE id = ?`, day, id)
	if err != nil {
		return fmt.Errorf("todo update created date: %w", err)
	}
	return nil
}

func (r *TodoRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("todo delete: %w", err)
	}
	return nil
}

// PendingCounts returns, per user, the number of incomplete todos.
func (r *TodoRepo) PendingCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, COUNT(*)
		FROM todos
		WHERE is_completed = 0
		GROUP BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("todo pending counts: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var user string
		var n int
		if err := rows.Scan(&user, &n); err != nil {
			return nil, fmt.Errorf("todo pending scan: %w", err)
		}
		out[user] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("todo pending rows: %w", err)
	}
	return out, nil
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*Todo, error) {
	var (
		id           int64
		userID       string
		text         string
		dueMillis    sql.NullInt64
		isCompleted  int
		compMillis   sql.NullInt64
		createdAt    time.Time
		createdDate  string
		displayOrder int64
	)

	if err := row.Scan(&id, &userID, &text, &dueMillis, &isCompleted, &compMillis, &createdAt, &createdDate, &displayOrder); err != nil {
		return nil, err
	}

	t := Todo{
		ID:           id,
		UserID:       userID,
		Text:         text,
		IsCompleted:  isCompleted != 0,
		CreatedAt:    createdAt,
		CreatedDate:  createdDate,
		DisplayOrder: displayOrder,
	}
	if dueMillis.Valid {
		v := time.UnixMilli(dueMillis.Int64)
		t.DueTime = &v
	}
	if compMillis.Valid {
		v := time.UnixMilli(compMillis.Int64)
		t.CompletedAt = &v
	}
	return &t, nil
}

func scanTodoRow(row *sql.Row) (*Todo, error) {
	t, err := scanTodo(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("todo scan: %w", err)
	}
	return t, nil
}

func scanTodoRows(rows *sql.Rows) (*Todo, error) {
	t, err := scanTodo(rows)
	if err != nil {
		return nil, fmt.Errorf("todo scan: %w", err)
	}
	return t, nil
}
