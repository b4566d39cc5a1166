package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// apiSuite runs the full router against a throwaway database.
type apiSuite struct {
	t      *testing.T
	server *httptest.Server
	auth   *service.AuthService
}

// envelope mirrors the response body for assertions.
type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Errors  map[string][]string    `json:"errors"`
}

func setupAPI(t *testing.T) *apiSuite {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	server := httptest.NewServer(NewRouter(db, RouterOptions{Logger: log}))
	t.Cleanup(server.Close)

	auth := service.NewAuthService(sqlite.NewUserRepository(db), sqlite.NewTokenRepository(db))

	return &apiSuite{t: t, server: server, auth: auth}
}

// do issues a request and decodes the envelope. An empty token leaves the
// request unauthenticated.
func (s *apiSuite) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// seedManager creates a manager account directly and logs it in.
func (s *apiSuite) seedManager(email string) string {
	s.t.Helper()

	_, err := s.auth.EnsureManager("Manager", email, "manager-pass")
	require.NoError(s.t, err)

	_, token, err := s.auth.Login(email, "manager-pass")
	require.NoError(s.t, err)
	return token
}

// registerUser registers a regular user through the API and returns the token
// and user ID.
func (s *apiSuite) registerUser(name string) (string, int64) {
	s.t.Helper()

	status, env := s.do("POST", "/v1/register", "", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "password123",
	})
	require.Equal(s.t, http.StatusCreated, status)
	require.True(s.t, env.Success)

	var data struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.Token, data.User.ID
}

// createTask creates a task as the given token and returns its ID.
func (s *apiSuite) createTask(token, title string) int64 {
	s.t.Helper()

	status, env := s.do("POST", "/v1/tasks", token, map[string]string{
		"title": title,
		"date":  "2025-10-15",
	})
	require.Equal(s.t, http.StatusCreated, status)

	var task domain.Task
	require.NoError(s.t, json.Unmarshal(env.Data, &task))
	return task.ID
}

func decodeTask(t *testing.T, env envelope) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	return task
}

func decodeTasks(t *testing.T, env envelope) []domain.Task {
	t.Helper()
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	return tasks
}
