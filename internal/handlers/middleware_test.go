package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/access"
	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

// asRole simulates a verified token for the given role.
func asRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		setUserContext(c, &models.User{
			ID:          "test-user",
			Email:       "test@example.com",
			DisplayName: "Test User",
			Role:        role,
		})
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestRequireRoleMiddleware(t *testing.T) {
	cam := &CasdoorAuthMiddleware{}

	tests := []struct {
		name       string
		role       *models.UserRole
		required   []models.UserRole
		wantStatus int
	}{
		{"admin passes admin check", rolePtr(models.RoleAdmin), []models.UserRole{models.RoleAdmin}, http.StatusOK},
		{"admin passes any check", rolePtr(models.RoleAdmin), []models.UserRole{models.RoleStudentFull}, http.StatusOK},
		{"full passes full check", rolePtr(models.RoleStudentFull), []models.UserRole{models.RoleStudentFull}, http.StatusOK},
		{"limited fails full check", rolePtr(models.RoleStudentLimited), []models.UserRole{models.RoleStudentFull}, http.StatusForbidden},
		{"full fails admin check", rolePtr(models.RoleStudentFull), []models.UserRole{models.RoleAdmin}, http.StatusForbidden},
		{"no identity fails", nil, []models.UserRole{models.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.role != nil {
				router.Use(asRole(*tt.role))
			}
			router.GET("/protected", cam.RequireRoleMiddleware(tt.required...), okHandler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequirePageMiddleware(t *testing.T) {
	cam := &CasdoorAuthMiddleware{}

	tests := []struct {
		name       string
		role       *models.UserRole
		page       access.Page
		wantStatus int
	}{
		{"limited can chat", rolePtr(models.RoleStudentLimited), access.PageChat, http.StatusOK},
		{"limited cannot enter gallery", rolePtr(models.RoleStudentLimited), access.PageGallery, http.StatusForbidden},
		{"full can enter events", rolePtr(models.RoleStudentFull), access.PageEvents, http.StatusOK},
		{"anonymous gets 401", nil, access.PageChat, http.StatusUnauthorized},
		{"full cannot enter admin", rolePtr(models.RoleStudentFull), access.PageAdmin, http.StatusForbidden},
		{"admin can enter admin", rolePtr(models.RoleAdmin), access.PageAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.role != nil {
				router.Use(asRole(*tt.role))
			}
			router.GET("/area", cam.RequirePageMiddleware(tt.page), okHandler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/area", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestNavigationHandler(t *testing.T) {
	handler := NewAuthHandler(testLogger())

	navFor := func(role *models.UserRole) []access.NavItem {
		router := gin.New()
		if role != nil {
			router.Use(asRole(*role))
		}
		router.GET("/navigation", handler.Navigation)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/navigation", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d", w.Code)
		}

		var body struct {
			Items []access.NavItem `json:"items"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Bad body: %v", err)
		}
		return body.Items
	}

	if items := navFor(nil); len(items) != 3 {
		t.Errorf("Anonymous nav has %d items, want 3", len(items))
	}
	if items := navFor(rolePtr(models.RoleStudentLimited)); len(items) != 4 {
		t.Errorf("Limited nav has %d items, want 4", len(items))
	}
	if items := navFor(rolePtr(models.RoleAdmin)); len(items) != 9 {
		t.Errorf("Admin nav has %d items, want 9", len(items))
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", okHandler)

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Header().Get("X-Request-ID") == "" {
			t.Error("Expected a generated request id")
		}
	})

	t.Run("keeps the client id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-id-1")
		router.ServeHTTP(w, req)
		if got := w.Header().Get("X-Request-ID"); got != "client-id-1" {
			t.Errorf("X-Request-ID = %q", got)
		}
	})
}

func rolePtr(r models.UserRole) *models.UserRole { return &r }
