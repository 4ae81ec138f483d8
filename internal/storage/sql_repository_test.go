package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLRepository {
	t.Helper()
	return setupRepoWithDriver(t, DriverSQLite3)
}

func setupRepoWithDriver(t *testing.T, driver string) *SQLRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todod-test.db")
	repo, err := Open(driver, dbPath)
	if err != nil {
		t.Fatalf("open %s: %v", driver, err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func seedUser(t *testing.T, repo *SQLRepository, id, email string) User {
	t.Helper()
	u := User{
		ID:           id,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    parseRFC3339(t, "2026-02-09T10:00:00Z"),
	}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestTaskCRUDAndList(t *testing.T) {
	for _, driver := range []string{DriverSQLite3, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			repo := setupRepoWithDriver(t, driver)
			ctx := context.Background()
			user := seedUser(t, repo, "user-1", "ada@example.com")
			created := parseRFC3339(t, "2026-02-09T12:00:00Z")

			task := Task{
				ID:          "task-1",
				UserID:      user.ID,
				Title:       "Write schema",
				Description: "Design storage layout",
				Status:      "pending",
				DueDate:     "2026-02-10",
				CreatedAt:   created,
				UpdatedAt:   created,
			}
			if err := repo.CreateTask(ctx, task); err != nil {
				t.Fatalf("create task: %v", err)
			}

			got, err := repo.GetTask(ctx, task.ID)
			if err != nil {
				t.Fatalf("get task: %v", err)
			}
			if got.Title != task.Title || got.Status != "pending" || got.DueDate != "2026-02-10" {
				t.Fatalf("unexpected task get result: %#v", got)
			}

			task.Title = "Write schema v2"
			task.Status = "in-progress"
			task.DueDate = ""
			task.UpdatedAt = created.Add(time.Hour)
			if err := repo.UpdateTask(ctx, task); err != nil {
				t.Fatalf("update task: %v", err)
			}

			inProgress, err := repo.ListTasks(ctx, TaskListFilter{UserID: user.ID, Status: "in-progress"})
			if err != nil {
				t.Fatalf("list tasks: %v", err)
			}
			if len(inProgress) != 1 || inProgress[0].ID != task.ID || inProgress[0].DueDate != "" {
				t.Fatalf("unexpected in-progress list: %#v", inProgress)
			}

			if err := repo.DeleteTask(ctx, task.ID); err != nil {
				t.Fatalf("delete task: %v", err)
			}
			if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got: %v", err)
			}
			if err := repo.DeleteTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
			}
		})
	}
}

func TestListTasksScopedByUserInCreationOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "one@example.com")
	seedUser(t, repo, "u2", "two@example.com")
	base := parseRFC3339(t, "2026-02-09T12:00:00Z")

	for i, spec := range []struct{ id, user string }{
		{"c", "u1"}, {"a", "u1"}, {"x", "u2"}, {"b", "u1"},
	} {
		at := base.Add(time.Duration(i) * time.Minute)
		if err := repo.CreateTask(ctx, Task{ID: spec.id, UserID: spec.user, Title: spec.id, Status: "pending", CreatedAt: at, UpdatedAt: at}); err != nil {
			t.Fatalf("create %s: %v", spec.id, err)
		}
	}

	list, err := repo.ListTasks(ctx, TaskListFilter{UserID: "u1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{}
	for _, item := range list {
		got = append(got, item.ID)
	}
	if len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected order %v", got)
	}

	page, err := repo.ListTasks(ctx, TaskListFilter{UserID: "u1", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].ID != "a" {
		t.Fatalf("unexpected page %#v", page)
	}
}

func TestListTasksOrdersWithinOneSecond(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "one@example.com")
	base := parseRFC3339(t, "2026-02-09T12:00:05Z")

	for _, c := range []struct {
		id string
		at time.Time
	}{
		{"first", base},
		{"second", base.Add(100 * time.Millisecond)},
		{"third", base.Add(120 * time.Millisecond)},
	} {
		if err := repo.CreateTask(ctx, Task{ID: c.id, UserID: "u1", Title: c.id, Status: "pending", CreatedAt: c.at, UpdatedAt: c.at}); err != nil {
			t.Fatalf("create %s: %v", c.id, err)
		}
	}

	list, err := repo.ListTasks(ctx, TaskListFilter{UserID: "u1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{}
	for _, item := range list {
		got = append(got, item.ID)
	}
	if len(got) != 3 || got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Fatalf("unexpected order %v", got)
	}
	if !list[1].CreatedAt.Equal(base.Add(100 * time.Millisecond)) {
		t.Fatalf("created_at round trip lost precision: %v", list[1].CreatedAt)
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "one@example.com")
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")
	boom := errors.New("boom")

	err := repo.InTx(ctx, func(tx Repository) error {
		if err := tx.CreateTask(ctx, Task{ID: "rolled", UserID: "u1", Title: "Rolled back", Status: "pending", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		if _, err := tx.GetTask(ctx, "rolled"); err != nil {
			t.Errorf("task not visible inside its transaction: %v", err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error back, got %v", err)
	}
	if _, err := repo.GetTask(ctx, "rolled"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected rollback, got %v", err)
	}

	err = repo.InTx(ctx, func(tx Repository) error {
		return tx.CreateTask(ctx, Task{ID: "kept", UserID: "u1", Title: "Kept", Status: "pending", CreatedAt: now, UpdatedAt: now})
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := repo.GetTask(ctx, "kept"); err != nil {
		t.Fatalf("expected committed task, got %v", err)
	}
}

func TestReminderCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "user-1", "ada@example.com")
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	task := Task{ID: "task-reminder", UserID: user.ID, Title: "Task", Status: "pending", CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	rem := Reminder{
		ID:        "rem-1",
		UserID:    user.ID,
		TaskID:    task.ID,
		Title:     "Team meeting",
		Clock:     "10:00",
		Date:      "2026-02-10",
		Type:      "email",
		CreatedAt: now,
	}
	if err := repo.CreateReminder(ctx, rem); err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	got, err := repo.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.Type != "email" || got.IsRead || got.TaskID != task.ID {
		t.Fatalf("unexpected reminder: %#v", got)
	}

	rem.Type = "sms"
	rem.IsRead = true
	if err := repo.UpdateReminder(ctx, rem); err != nil {
		t.Fatalf("update reminder: %v", err)
	}

	read := true
	items, err := repo.ListReminders(ctx, ReminderListFilter{UserID: user.ID, Type: "sms", IsRead: &read})
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	if len(items) != 1 || items[0].ID != rem.ID {
		t.Fatalf("unexpected reminder list: %#v", items)
	}

	// Deleting the task detaches the reminder rather than removing it.
	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	detached, err := repo.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("get detached reminder: %v", err)
	}
	if detached.TaskID != "" {
		t.Fatalf("expected detached reminder, got task id %q", detached.TaskID)
	}

	if err := repo.DeleteReminder(ctx, rem.ID); err != nil {
		t.Fatalf("delete reminder: %v", err)
	}
	if _, err := repo.GetReminder(ctx, rem.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestUserUniqueEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "user-1", "Ada@Example.com")

	got, err := repo.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != "user-1" || got.FirstName != "Ada" {
		t.Fatalf("unexpected user %#v", got)
	}

	err = repo.CreateUser(ctx, User{ID: "user-2", Email: "ada@example.com", PasswordHash: "x", CreatedAt: got.CreatedAt})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := repo.GetUser(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRebindPostgresPlaceholders(t *testing.T) {
	d := dialect{driver: DriverPostgres}
	got := d.rebind("SELECT * FROM tasks WHERE user_id = ? AND status = ? LIMIT ?")
	want := "SELECT * FROM tasks WHERE user_id = $1 AND status = $2 LIMIT $3"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if (dialect{driver: DriverSQLite3}).rebind("a = ?") != "a = ?" {
		t.Fatal("sqlite queries must not be rewritten")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
