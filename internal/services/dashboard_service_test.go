package services

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/class-union/union-server/internal/cache"
	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

type dashboardTestRepo struct {
	baseMockRepo
	dashboard *mockDashboardRepo
	users     *mockUserRepo
}

func (r *dashboardTestRepo) Dashboard() repositories.DashboardRepository { return r.dashboard }
func (r *dashboardTestRepo) User() repositories.UserRepository           { return r.users }

func newDashboardFixture() (*dashboardTestRepo, DashboardService) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := &dashboardTestRepo{
		dashboard: &mockDashboardRepo{
			users:         12,
			posts:         34,
			events:        5,
			gallery:       78,
			notifications: 190,
		},
		users: &mockUserRepo{users: map[string]*models.User{
			"u1": {ID: "u1", Email: "u1@example.com", DisplayName: "User One", Role: models.RoleAdmin},
			"u2": {ID: "u2", Email: "u2@example.com", DisplayName: "User Two", Role: models.RoleStudentLimited},
		}},
	}
	// Nil redis client: the cache degrades to a pass-through.
	service := NewDashboardService(repo, cache.NewCacheHelper(nil, cache.StatsCacheConfig.Prefix), logger)
	return repo, service
}

func TestDashboardService_Stats(t *testing.T) {
	_, service := newDashboardFixture()

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Users != 12 {
		t.Errorf("Users = %d, want 12", stats.Users)
	}
	if stats.Posts != 34 {
		t.Errorf("Posts = %d, want 34", stats.Posts)
	}
	if stats.Events != 5 {
		t.Errorf("Events = %d, want 5", stats.Events)
	}
	if stats.GalleryImages != 78 {
		t.Errorf("GalleryImages = %d, want 78", stats.GalleryImages)
	}
	if stats.Notifications != 190 {
		t.Errorf("Notifications = %d, want 190", stats.Notifications)
	}
	if stats.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestDashboardService_ExportStats(t *testing.T) {
	_, service := newDashboardFixture()

	buf, filename, err := service.ExportStats(context.Background())
	if err != nil {
		t.Fatalf("ExportStats failed: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("Expected a non-empty workbook")
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("Workbook does not look like an xlsx archive")
	}
	if filename == "" {
		t.Error("Expected a filename")
	}
}
