package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// storedTimeLayout is fixed width so text ordering on created_at is time
// ordering. RFC3339Nano trims trailing zeros and is only used for reading.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// conn is satisfied by *sql.DB and *sql.Tx.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type SQLRepository struct {
	db      *sql.DB
	conn    conn
	inTx    bool
	dialect dialect
}

func NewSQLRepository(db *sql.DB, driver string) (*SQLRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	d := dialect{driver: driver}
	if !d.isPostgres() {
		for _, p := range sqlitePragmas {
			if _, err := db.Exec(p); err != nil {
				return nil, fmt.Errorf("storage: pragma %q: %w", p, err)
			}
		}
	}
	return &SQLRepository{db: db, conn: db, dialect: d}, nil
}

func (r *SQLRepository) Close() error {
	return r.db.Close()
}

func (r *SQLRepository) DB() *sql.DB {
	return r.db
}

// InTx runs fn against a repository bound to one transaction. fn's error
// rolls everything back. Nested calls reuse the open transaction.
func (r *SQLRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	if err := fn(&SQLRepository{db: r.db, conn: tx, inTx: true, dialect: r.dialect}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

func (r *SQLRepository) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := r.conn.ExecContext(ctx, r.dialect.rebind(query), args...)
	if err != nil && isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return res, err
}

func (r *SQLRepository) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return r.conn.QueryRowContext(ctx, r.dialect.rebind(query), args...)
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.conn.QueryContext(ctx, r.dialect.rebind(query), args...)
}

const taskColumns = `id, user_id, title, description, status, due_date, reminder, created_at, updated_at`

func (r *SQLRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.UserID, in.Title, in.Description, in.Status, nullString(in.DueDate),
		boolInt(in.Reminder), mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.queryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.exec(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, due_date = ?, reminder = ?, updated_at = ?
		WHERE id = ?`,
		in.Title, in.Description, in.Status, nullString(in.DueDate), boolInt(in.Reminder),
		mustTime(in.UpdatedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListTasks returns tasks in creation order.
func (r *SQLRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.DueDate != "" {
		clauses = append(clauses, "due_date = ?")
		args = append(args, filter.DueDate)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

const reminderColumns = `id, user_id, task_id, title, description, clock, reminder_date, type, is_read, created_at`

func (r *SQLRepository) CreateReminder(ctx context.Context, in Reminder) error {
	_, err := r.exec(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.UserID, nullString(in.TaskID), in.Title, in.Description, in.Clock, in.Date,
		in.Type, boolInt(in.IsRead), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLRepository) GetReminder(ctx context.Context, id string) (Reminder, error) {
	row := r.queryRow(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id)
	item, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reminder{}, ErrNotFound
		}
		return Reminder{}, err
	}
	return item, nil
}

func (r *SQLRepository) UpdateReminder(ctx context.Context, in Reminder) error {
	res, err := r.exec(ctx, `
		UPDATE reminders
		SET task_id = ?, title = ?, description = ?, clock = ?, reminder_date = ?, type = ?, is_read = ?
		WHERE id = ?`,
		nullString(in.TaskID), in.Title, in.Description, in.Clock, in.Date, in.Type, boolInt(in.IsRead), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLRepository) DeleteReminder(ctx context.Context, id string) error {
	res, err := r.exec(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLRepository) ListReminders(ctx context.Context, filter ReminderListFilter) ([]Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders`
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 6)
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.TaskID != "" {
		clauses = append(clauses, "task_id = ?")
		args = append(args, filter.TaskID)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.IsRead != nil {
		clauses = append(clauses, "is_read = ?")
		args = append(args, boolInt(*filter.IsRead))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY reminder_date ASC, clock ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reminder, 0)
	for rows.Next() {
		item, scanErr := scanReminder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const userColumns = `id, first_name, last_name, email, password_hash, created_at`

func (r *SQLRepository) CreateUser(ctx context.Context, in User) error {
	_, err := r.exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.FirstName, in.LastName, strings.ToLower(in.Email), in.PasswordHash, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLRepository) GetUser(ctx context.Context, id string) (User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *SQLRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *SQLRepository) getUser(ctx context.Context, query string, arg string) (User, error) {
	var out User
	var created string
	err := r.queryRow(ctx, query, arg).Scan(&out.ID, &out.FirstName, &out.LastName, &out.Email, &out.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return User{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var due sql.NullString
	var reminder int
	var created, updated string
	if err := s.Scan(&out.ID, &out.UserID, &out.Title, &out.Description, &out.Status, &due, &reminder, &created, &updated); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Task{}, err
	}
	out.DueDate = due.String
	out.Reminder = reminder == 1
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanReminder(s scanner) (Reminder, error) {
	var out Reminder
	var taskID sql.NullString
	var isRead int
	var created string
	if err := s.Scan(&out.ID, &out.UserID, &taskID, &out.Title, &out.Description, &out.Clock, &out.Date, &out.Type, &isRead, &created); err != nil {
		return Reminder{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Reminder{}, err
	}
	out.TaskID = taskID.String
	out.IsRead = isRead == 1
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func mustTime(v time.Time) string {
	return v.UTC().Format(storedTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}
