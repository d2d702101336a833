package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/services"
	"github.com/class-union/union-server/internal/utils"
)

type GalleryHandler struct {
	BaseHandler
	galleryService services.GalleryService
}

func NewGalleryHandler(galleryService services.GalleryService, logger utils.Logger) *GalleryHandler {
	return &GalleryHandler{
		BaseHandler:    NewBaseHandler(logger),
		galleryService: galleryService,
	}
}

// ListImages returns gallery images, newest first
// @Summary List gallery images
// @Tags gallery
// @Produce json
// @Success 200 {array} models.GalleryImage
// @Router /gallery [get]
func (h *GalleryHandler) ListImages(c *gin.Context) {
	images, err := h.galleryService.List(c.Request.Context(), parseContentFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images, "count": len(images)})
}

// AddImage registers an uploaded blob as a gallery image
// @Summary Add gallery image
// @Tags gallery
// @Accept json
// @Produce json
// @Param image body services.AddGalleryImageRequest true "Image data"
// @Success 201 {object} models.GalleryImage
// @Failure 400 {object} ErrorResponse
// @Router /gallery [post]
func (h *GalleryHandler) AddImage(c *gin.Context) {
	var req services.AddGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, ok := GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	image, err := h.galleryService.Add(c.Request.Context(), user.ID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// DeleteImage removes a gallery image and its blob
// @Summary Delete gallery image
// @Tags gallery
// @Param id path string true "Image ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting gallery image", "image_id", id)

	if err := h.galleryService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Image deleted"})
}
