package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/internal/service"
	"github.com/adityakashyap5047/Evix/pkg/response"
)

// qrImageSize is the pixel size of rendered ticket QR codes
const qrImageSize = 256

// RegistrationHandler handles registration and check-in HTTP requests
type RegistrationHandler struct {
	registrationService service.RegistrationService
	userService         service.UserService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(
	registrationService service.RegistrationService,
	userService service.UserService,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		userService:         userService,
	}
}

// Register handles POST /api/v1/events/:id/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, "Event ID is required")
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reg, err := h.registrationService.Register(c.Request.Context(), eventID, user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, toRegistrationResponse(reg))
}

// Status handles GET /api/v1/events/:id/registration-status
func (h *RegistrationHandler) Status(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, "Event ID is required")
		return
	}

	reg, err := h.registrationService.Status(c.Request.Context(), eventID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := &dto.RegistrationStatusResponse{}
	if reg != nil {
		status.Registered = true
		status.TicketCode = reg.TicketCode
	}
	response.Success(c, status)
}

// ListForEvent handles GET /api/v1/events/:id/registrations
func (h *RegistrationHandler) ListForEvent(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, "Event ID is required")
		return
	}

	regs, err := h.registrationService.ListForEvent(c.Request.Context(), eventID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toRegistrationListResponse(regs))
}

// ListMine handles GET /api/v1/registrations/my
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	regs, err := h.registrationService.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toRegistrationListResponse(regs))
}

// Cancel handles DELETE /api/v1/registrations/:id
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Registration ID is required")
		return
	}

	if err := h.registrationService.Cancel(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Registration cancelled successfully"})
}

// CheckIn handles POST /api/v1/registrations/checkin
func (h *RegistrationHandler) CheckIn(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Ticket code is required")
		return
	}

	reg, err := h.registrationService.CheckIn(c.Request.Context(), user.ID, req.TicketCode)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toRegistrationResponse(reg))
}

// TicketQR handles GET /api/v1/registrations/:id/qr - renders the ticket code
// as a PNG for door scanning
func (h *RegistrationHandler) TicketQR(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Registration ID is required")
		return
	}

	reg, err := h.registrationService.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	png, err := qrcode.Encode(reg.TicketCode, qrcode.Medium, qrImageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
