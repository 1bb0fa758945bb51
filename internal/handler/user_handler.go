package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/internal/service"
	"github.com/adityakashyap5047/Evix/pkg/response"
)

// UserHandler handles account HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}
	response.Success(c, toUserResponse(user))
}

// CompleteOnboarding handles POST /api/v1/users/onboarding
func (h *UserHandler) CompleteOnboarding(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	var req dto.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	updated, err := h.userService.CompleteOnboarding(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toUserResponse(updated))
}
