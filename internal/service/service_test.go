package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// testEnv wires the services against a throwaway database.
type testEnv struct {
	taskRepo *sqlite.TaskRepository
	userRepo *sqlite.UserRepository
	auth     *AuthService
	tasks    *TaskService
	workflow *WorkflowService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	taskRepo := sqlite.NewTaskRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	depRepo := sqlite.NewDependencyRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	return &testEnv{
		taskRepo: taskRepo,
		userRepo: userRepo,
		auth:     NewAuthService(userRepo, tokenRepo),
		tasks:    NewTaskService(taskRepo, userRepo, auditRepo),
		workflow: NewWorkflowService(taskRepo, userRepo, depRepo, auditRepo),
	}
}

func (e *testEnv) seedUser(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) seedTask(t *testing.T, title string, actor *domain.User) *domain.Task {
	t.Helper()

	task, err := e.tasks.Create(CreateTaskInput{
		Title:       title,
		Description: title + " description",
		Date:        "2025-10-15",
	}, actor)
	require.NoError(t, err)
	return task
}
