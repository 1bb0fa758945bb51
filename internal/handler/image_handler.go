package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/internal/service"
	"github.com/adityakashyap5047/Evix/pkg/response"
)

// ImageHandler handles cover image search HTTP requests
type ImageHandler struct {
	imageService service.ImageService
	userService  service.UserService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService service.ImageService, userService service.UserService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		userService:  userService,
	}
}

// Search handles GET /api/v1/images?query=&page=&per_page=
func (h *ImageHandler) Search(c *gin.Context) {
	if _, ok := currentUser(c, h.userService); !ok {
		return
	}

	var query dto.ImageSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.imageService.Search(c.Request.Context(), query.Q, query.Page, query.PerPage)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}
