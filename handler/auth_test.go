package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SamSnead85/ProjectApexHealth-sub002/config"
	"github.com/SamSnead85/ProjectApexHealth-sub002/middleware"
	"github.com/gin-gonic/gin"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			TokenExpireHours: 24,
		},
		Users: []config.User{
			{Username: "reviewer1", Password: "pass123", Role: middleware.RoleReviewer},
			{Username: "admin1", Password: "adminpass", Role: middleware.RoleAdmin},
		},
	}
}

func TestLogin(t *testing.T) {
	cfg := testAuthConfig()
	handler := NewAuthHandler(cfg)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			body:           map[string]string{"username": "reviewer1", "password": "pass123"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           map[string]string{"username": "reviewer1", "password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			body:           map[string]string{"username": "nobody", "password": "pass123"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			body:           map[string]string{"username": "reviewer1"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/login", handler.Login)

			bodyBytes, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/login", bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestLoginResponseFields(t *testing.T) {
	cfg := testAuthConfig()
	handler := NewAuthHandler(cfg)

	router := gin.New()
	router.POST("/login", handler.Login)

	bodyBytes, _ := json.Marshal(map[string]string{"username": "admin1", "password": "adminpass"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Token == "" {
		t.Error("Expected non-empty token")
	}
	if resp.Username != "admin1" {
		t.Errorf("Expected username 'admin1', got '%s'", resp.Username)
	}
	if resp.Role != middleware.RoleAdmin {
		t.Errorf("Expected role '%s', got '%s'", middleware.RoleAdmin, resp.Role)
	}
	if resp.ExpiresAt == "" {
		t.Error("Expected non-empty expires_at")
	}
}

func TestGetCurrentUser(t *testing.T) {
	cfg := testAuthConfig()
	handler := NewAuthHandler(cfg)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("username", "reviewer1")
		c.Set("role", middleware.RoleReviewer)
	})
	router.GET("/me", handler.GetCurrentUser)

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["username"] != "reviewer1" {
		t.Errorf("Expected username 'reviewer1', got '%s'", resp["username"])
	}
	if resp["role"] != middleware.RoleReviewer {
		t.Errorf("Expected role '%s', got '%s'", middleware.RoleReviewer, resp["role"])
	}
}
