package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/service"
	"github.com/adityakashyap5047/Evix/pkg/middleware"
	"github.com/adityakashyap5047/Evix/pkg/response"
)

// respondError translates a service error into the response envelope.
// Conflict-class rejections surface as 400 with their message; plan and
// ownership gates as 403.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case domain.IsForbiddenError(err):
		response.Forbidden(c, err.Error())
	case domain.IsConflictError(err), domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// currentUser resolves the authenticated platform account. It writes the
// error response itself and reports whether the caller may proceed.
func currentUser(c *gin.Context, users service.UserService) (*domain.User, bool) {
	externalID, ok := middleware.GetExternalUserID(c)
	if !ok || externalID == "" {
		response.Unauthorized(c, "Authentication required")
		return nil, false
	}
	user, err := users.ResolveExternal(c.Request.Context(), externalID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}
