package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/messagely/messagely/internal/api/dto"
	"github.com/messagely/messagely/internal/api/middleware"
	"github.com/messagely/messagely/internal/core/service"
	"github.com/messagely/messagely/internal/infrastructure/sqlite"
	"golang.org/x/crypto/bcrypt"
)

// testEnv holds all test dependencies
type testEnv struct {
	db     *sqlite.DB
	router *gin.Engine
}

// setupTestEnv creates a test environment with in-memory SQLite database
// and the full route surface, auth middleware included.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Use in-memory SQLite database
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Create repositories
	userRepo := sqlite.NewUserRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)

	// Create services (MinCost keeps bcrypt fast in tests)
	authService := service.NewAuthService(userRepo, "test-secret", "HS256", bcrypt.MinCost, 0)
	userService := service.NewUserService(userRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo)

	// Create handlers
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	messageHandler := NewMessageHandler(messageService)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)

	authMiddleware := middleware.AuthMiddleware(authService)

	users := router.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("", userHandler.List)
		users.GET("/:username", userHandler.Get)
		users.GET("/:username/from", userHandler.MessagesFrom)
		users.GET("/:username/to", userHandler.MessagesTo)
	}

	messages := router.Group("/messages")
	messages.Use(authMiddleware)
	{
		messages.POST("", messageHandler.Send)
		messages.GET("/:id", messageHandler.Get)
		messages.POST("/:id/read", messageHandler.MarkRead)
	}

	return &testEnv{
		db:     db,
		router: router,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// makeRequest performs a request with an optional JSON body and bearer
// token and returns the response
func (env *testEnv) makeRequest(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns their token
func (env *testEnv) register(t *testing.T, username, password string) string {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/register", dto.RegisterRequest{
		Username:  username,
		Password:  password,
		FirstName: "First",
		LastName:  "Last",
		Phone:     "+10000000000",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("failed to register %s: status %d, body %s", username, w.Code, w.Body.String())
	}

	var resp dto.TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse token response: %v\nBody: %s", err, w.Body.String())
	}
	if resp.Token == "" {
		t.Fatalf("empty token for %s", username)
	}
	return resp.Token
}

// parseJSON parses the response body into out
func parseJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
}
