package access

import (
	"testing"

	"github.com/class-union/union-server/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		role          models.UserRole
		page          Page
		want          Decision
	}{
		{"anonymous home", false, "", PageHome, Allow},
		{"anonymous about", false, "", PageAbout, Allow},
		{"anonymous blog", false, "", PageBlog, Allow},
		{"anonymous gallery", false, "", PageGallery, DenyUnauthenticated},
		{"anonymous chat", false, "", PageChat, DenyUnauthenticated},
		{"anonymous admin", false, "", PageAdmin, DenyUnauthenticated},

		{"limited chat", true, models.RoleStudentLimited, PageChat, Allow},
		{"limited gallery", true, models.RoleStudentLimited, PageGallery, DenyRole},
		{"limited events", true, models.RoleStudentLimited, PageEvents, DenyRole},
		{"limited games", true, models.RoleStudentLimited, PageGames, DenyRole},
		{"limited admin", true, models.RoleStudentLimited, PageAdmin, DenyRole},
		{"limited blog", true, models.RoleStudentLimited, PageBlog, Allow},

		{"full gallery", true, models.RoleStudentFull, PageGallery, Allow},
		{"full events", true, models.RoleStudentFull, PageEvents, Allow},
		{"full games", true, models.RoleStudentFull, PageGames, Allow},
		{"full chat", true, models.RoleStudentFull, PageChat, Allow},
		{"full admin", true, models.RoleStudentFull, PageAdmin, DenyRole},
		{"full settings", true, models.RoleStudentFull, PageSettings, DenyRole},

		{"admin gallery", true, models.RoleAdmin, PageGallery, Allow},
		{"admin admin", true, models.RoleAdmin, PageAdmin, Allow},
		{"admin settings", true, models.RoleAdmin, PageSettings, Allow},
		{"admin chat", true, models.RoleAdmin, PageChat, Allow},

		{"unknown page denies", true, models.RoleAdmin, Page("billing"), DenyUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.authenticated, tt.role, tt.page)
			if got != tt.want {
				t.Errorf("Decide(%v, %q, %q) = %v, want %v",
					tt.authenticated, tt.role, tt.page, got, tt.want)
			}
		})
	}
}

func TestNavigationFor(t *testing.T) {
	t.Run("anonymous gets public sections only", func(t *testing.T) {
		items := NavigationFor(nil)
		if len(items) != 3 {
			t.Fatalf("Expected 3 items, got %d", len(items))
		}
		assertPaths(t, items, []string{"/", "/about", "/blog"})
	})

	t.Run("limited student gets chat", func(t *testing.T) {
		role := models.RoleStudentLimited
		items := NavigationFor(&role)
		assertPaths(t, items, []string{"/", "/about", "/blog", "/chat"})
	})

	t.Run("full student gets member sections", func(t *testing.T) {
		role := models.RoleStudentFull
		items := NavigationFor(&role)
		assertPaths(t, items, []string{"/", "/about", "/blog", "/gallery", "/events", "/games", "/chat"})
	})

	t.Run("admin gets everything", func(t *testing.T) {
		role := models.RoleAdmin
		items := NavigationFor(&role)
		assertPaths(t, items, []string{"/", "/about", "/blog", "/gallery", "/events", "/games", "/chat", "/admin", "/settings"})
	})
}

// Navigation must only advertise pages the gate would actually allow.
func TestNavigationMatchesPolicy(t *testing.T) {
	pageByPath := map[string]Page{
		"/":         PageHome,
		"/about":    PageAbout,
		"/blog":     PageBlog,
		"/gallery":  PageGallery,
		"/events":   PageEvents,
		"/games":    PageGames,
		"/chat":     PageChat,
		"/admin":    PageAdmin,
		"/settings": PageSettings,
	}

	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleStudentFull, models.RoleStudentLimited} {
		r := role
		for _, item := range NavigationFor(&r) {
			page, ok := pageByPath[item.Path]
			if !ok {
				t.Fatalf("Nav item %q has no page mapping", item.Path)
			}
			if got := Decide(true, role, page); got != Allow {
				t.Errorf("Role %q is shown %q but Decide returns %v", role, item.Path, got)
			}
		}
	}
}

func assertPaths(t *testing.T, items []NavItem, want []string) {
	t.Helper()
	if len(items) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(items))
	}
	for i, item := range items {
		if item.Path != want[i] {
			t.Errorf("Item %d: expected path %q, got %q", i, want[i], item.Path)
		}
	}
}
