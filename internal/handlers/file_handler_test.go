package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/repositories"
	"github.com/class-union/union-server/internal/services"
)

// stubFileService counts the relayed bytes without storing anything.
type stubFileService struct {
	storedBytes  int64
	originalName string
	contentType  string
	folder       string
}

func (s *stubFileService) Store(ctx context.Context, originalName, contentType, folder string, content io.Reader) (*services.UploadResponse, error) {
	n, err := io.Copy(io.Discard, content)
	if err != nil {
		return nil, err
	}
	s.storedBytes = n
	s.originalName = originalName
	s.contentType = contentType
	s.folder = folder

	return &services.UploadResponse{
		Success:     true,
		FileID:      "stub-id",
		FileURL:     "/api/files/stub-id",
		Filename:    folder + "/0_" + originalName,
		ContentType: contentType,
	}, nil
}

func (s *stubFileService) Open(ctx context.Context, id string) (*repositories.FileInfo, io.ReadCloser, error) {
	return nil, nil, repositories.ErrNotFound
}

func (s *stubFileService) Delete(ctx context.Context, id string) error { return nil }

func uploadRequest(t *testing.T, size int) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "archive.bin")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0xAB}, size)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := writer.WriteField("folder", "general"); err != nil {
		t.Fatalf("WriteField failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestFileHandler_Upload(t *testing.T) {
	t.Run("relays without a size cap", func(t *testing.T) {
		stub := &stubFileService{}
		handler := NewFileHandler(stub, testLogger())

		router := gin.New()
		router.POST("/api/upload", handler.Upload)

		// Larger than any common server-side request cap.
		const size = 33 << 20
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, size))

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, body %s", w.Code, w.Body.String())
		}
		if stub.storedBytes != size {
			t.Errorf("Relayed %d bytes, want %d", stub.storedBytes, size)
		}
		if stub.originalName != "archive.bin" {
			t.Errorf("OriginalName = %q", stub.originalName)
		}
		if stub.folder != "general" {
			t.Errorf("Folder = %q", stub.folder)
		}

		var result services.UploadResponse
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Bad body: %v", err)
		}
		if !result.Success || result.FileID != "stub-id" {
			t.Errorf("Response = %+v", result)
		}
	})

	t.Run("missing file field is a 400", func(t *testing.T) {
		handler := NewFileHandler(&stubFileService{}, testLogger())

		router := gin.New()
		router.POST("/api/upload", handler.Upload)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d", w.Code)
		}
	})
}
