package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/services"
	"github.com/class-union/union-server/internal/utils"
)

type FileHandler struct {
	BaseHandler
	fileService services.FileService
}

func NewFileHandler(fileService services.FileService, logger utils.Logger) *FileHandler {
	return &FileHandler{
		BaseHandler: NewBaseHandler(logger),
		fileService: fileService,
	}
}

// Upload relays a multipart file into blob storage. No size or type checks
// happen here; the blob store takes whatever the client sends.
// @Summary Upload file
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File content"
// @Param folder formData string false "Logical folder, defaults to general"
// @Success 200 {object} services.UploadResponse
// @Failure 400 {object} ErrorResponse
// @Router /upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file field",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	folder := c.PostForm("folder")
	contentType := fileHeader.Header.Get("Content-Type")

	h.LogRequest(c, "Uploading file",
		"original_name", fileHeader.Filename, "folder", folder, "size", fileHeader.Size)

	result, err := h.fileService.Store(c.Request.Context(), fileHeader.Filename, contentType, folder, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Download streams a stored blob back to the client
// @Summary Download file
// @Tags files
// @Param id path string true "File ID"
// @Failure 404 {object} ErrorResponse
// @Router /files/{id} [get]
func (h *FileHandler) Download(c *gin.Context) {
	info, reader, err := h.fileService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Length", strconv.FormatInt(info.Length, 10))
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.OriginalName))
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already out; all we can do is log the broken transfer.
		h.LogError(c, err, "File stream interrupted", "file_id", info.ID)
	}
}

// Delete removes a stored blob
// @Summary Delete file
// @Tags files
// @Param id path string true "File ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting file", "file_id", id)

	if err := h.fileService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted"})
}
