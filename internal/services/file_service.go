package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/class-union/union-server/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

type UploadResponse struct {
	Success     bool   `json:"success"`
	FileID      string `json:"fileId"`
	FileURL     string `json:"fileUrl"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// ===== SERVICE INTERFACE =====

type FileService interface {
	// Store relays the upload into blob storage under
	// "{folder}/{millis}_{originalName}" and returns the public descriptor.
	Store(ctx context.Context, originalName, contentType, folder string, content io.Reader) (*UploadResponse, error)
	Open(ctx context.Context, id string) (*repositories.FileInfo, io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

// ===== SERVICE IMPLEMENTATION =====

type fileService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewFileService(repo repositories.Repository, logger *slog.Logger) FileService {
	return &fileService{
		repo:   repo,
		logger: logger,
	}
}

const defaultFolder = "general"

func (s *fileService) Store(ctx context.Context, originalName, contentType, folder string, content io.Reader) (*UploadResponse, error) {
	if originalName == "" {
		return nil, fmt.Errorf("%w: missing file name", ErrValidationFailed)
	}
	folder = sanitizeFolder(folder)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filename := fmt.Sprintf("%s/%d_%s", folder, time.Now().UnixMilli(), originalName)

	id, err := s.repo.File().Store(ctx, filename, contentType, originalName, folder, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	s.logger.Info("File stored", "file_id", id, "filename", filename, "content_type", contentType)

	return &UploadResponse{
		Success:     true,
		FileID:      id,
		FileURL:     "/api/files/" + id,
		Filename:    filename,
		ContentType: contentType,
	}, nil
}

func (s *fileService) Open(ctx context.Context, id string) (*repositories.FileInfo, io.ReadCloser, error) {
	info, reader, err := s.repo.File().Open(ctx, id)
	if err != nil {
		return nil, nil, translateRepoError(err)
	}
	return info, reader, nil
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	if err := s.repo.File().Delete(ctx, id); err != nil {
		return translateRepoError(err)
	}
	s.logger.Info("File deleted", "file_id", id)
	return nil
}

// sanitizeFolder keeps folder names flat: path separators and traversal dots
// collapse to the default bucket folder.
func sanitizeFolder(folder string) string {
	folder = strings.TrimSpace(folder)
	if folder == "" || strings.ContainsAny(folder, "/\\") || strings.Contains(folder, "..") {
		return defaultFolder
	}
	return folder
}
