package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/class-union/union-server/internal/cache"
	"github.com/class-union/union-server/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

type SiteStats struct {
	Users         int64     `json:"users"`
	Posts         int64     `json:"posts"`
	Events        int64     `json:"events"`
	GalleryImages int64     `json:"gallery_images"`
	Notifications int64     `json:"notifications"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// ===== SERVICE INTERFACE =====

type DashboardService interface {
	Stats(ctx context.Context) (*SiteStats, error)
	// ExportStats renders the current stats plus the user roster as an xlsx
	// workbook.
	ExportStats(ctx context.Context) (*bytes.Buffer, string, error)
}

// ===== SERVICE IMPLEMENTATION =====

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheHelper
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, cacheHelper *cache.CacheHelper, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  cacheHelper,
		logger: logger,
	}
}

const statsCacheKey = "site"

func (s *dashboardService) Stats(ctx context.Context) (*SiteStats, error) {
	var cached SiteStats
	if err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats := &SiteStats{GeneratedAt: time.Now().UTC()}

	counts := []struct {
		name  string
		dest  *int64
		count func(context.Context) (int64, error)
	}{
		{"users", &stats.Users, s.repo.Dashboard().CountUsers},
		{"posts", &stats.Posts, s.repo.Dashboard().CountPosts},
		{"events", &stats.Events, s.repo.Dashboard().CountEvents},
		{"gallery", &stats.GalleryImages, s.repo.Dashboard().CountGalleryImages},
		{"notifications", &stats.Notifications, s.repo.Dashboard().CountNotifications},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
		*c.dest = n
	}

	// Cache failures never fail the request.
	_ = s.cache.Set(ctx, statsCacheKey, stats, cache.StatsCacheConfig.TTL)

	return stats, nil
}

func (s *dashboardService) ExportStats(ctx context.Context) (*bytes.Buffer, string, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Site Stats"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("Failed to drop default sheet", "error", err)
	}

	rows := [][]interface{}{
		{"Metric", "Count"},
		{"Users", stats.Users},
		{"Blog posts", stats.Posts},
		{"Events", stats.Events},
		{"Gallery images", stats.GalleryImages},
		{"Notifications", stats.Notifications},
		{},
		{"Generated at", stats.GeneratedAt.Format(time.RFC3339)},
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return nil, "", err
	}

	if err := s.writeUserRoster(ctx, f); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("site-stats-%s.xlsx", stats.GeneratedAt.Format("2006-01-02"))
	return buf, filename, nil
}

// writeUserRoster adds a sheet listing every profile with its role, so an
// operator can see who still needs an out-of-band promotion.
func (s *dashboardService) writeUserRoster(ctx context.Context, f *excelize.File) error {
	users, _, err := s.repo.User().List(ctx, repositories.UserFilters{})
	if err != nil {
		return fmt.Errorf("failed to list users for export: %w", err)
	}

	const sheet = "Users"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]interface{}{
		{"ID", "Email", "Display name", "Role", "Joined"},
	}
	for _, u := range users {
		rows = append(rows, []interface{}{
			u.ID, u.Email, u.DisplayName, string(u.Role), u.CreatedAt.Format(time.RFC3339),
		})
	}

	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
