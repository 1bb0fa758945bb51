package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/internal/service"
	"github.com/adityakashyap5047/Evix/pkg/middleware"
	"github.com/adityakashyap5047/Evix/pkg/response"
)

// EventHandler handles event and discovery HTTP requests
type EventHandler struct {
	eventService     service.EventService
	discoveryService service.DiscoveryService
	userService      service.UserService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(
	eventService service.EventService,
	discoveryService service.DiscoveryService,
	userService service.UserService,
) *EventHandler {
	return &EventHandler{
		eventService:     eventService,
		discoveryService: discoveryService,
		userService:      userService,
	}
}

// Create handles POST /api/v1/events - creates a new event
func (h *EventHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	req.OrganizerID = user.ID

	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, toEventResponse(event))
}

// List handles GET /api/v1/events - upcoming events. When a valid token is
// present the page is reordered with the user's interest categories first;
// ?featured=true returns the most-registered upcoming events instead.
func (h *EventHandler) List(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if c.Query("featured") == "true" {
		events, err := h.discoveryService.Featured(c.Request.Context(), query.Limit)
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, toEventListResponse(events, 1, len(events), int64(len(events))))
		return
	}

	var user *domain.User
	if externalID, ok := middleware.GetExternalUserID(c); ok {
		// Best effort: a token for an unprovisioned account degrades to the
		// anonymous listing
		if resolved, err := h.userService.ResolveExternal(c.Request.Context(), externalID); err == nil {
			user = resolved
		}
	}

	events, total, err := h.discoveryService.ForYou(c.Request.Context(), user, query.Page, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toEventListResponse(events, query.Page, query.Limit, total))
}

// ListAll handles GET /api/v1/events/all - every event including past ones
func (h *EventHandler) ListAll(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	events, total, err := h.eventService.ListAll(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toEventListResponse(events, query.Page, query.Limit, total))
}

// ListMine handles GET /api/v1/events/my - the organizer's own events
func (h *EventHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	events, total, err := h.eventService.ListMine(c.Request.Context(), user.ID, query.Page, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toEventListResponse(events, query.Page, query.Limit, total))
}

// Search handles GET /api/v1/events/search?q=&limit=
func (h *EventHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	events, err := h.eventService.Search(c.Request.Context(), query.Q, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]*dto.EventResponse, len(events))
	for i, event := range events {
		responses[i] = toEventResponse(event)
	}
	response.Success(c, responses)
}

// CategoryCounts handles GET /api/v1/events/categories/counts
func (h *EventHandler) CategoryCounts(c *gin.Context) {
	counts, err := h.eventService.CategoryCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toCategoryCountResponses(counts))
}

// ListByCategory handles GET /api/v1/events/category/:category
func (h *EventHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		response.BadRequest(c, "Category is required")
		return
	}

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	events, total, err := h.eventService.ListByCategory(c.Request.Context(), category, query.Page, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toEventListResponse(events, query.Page, query.Limit, total))
}

// ListByLocation handles GET /api/v1/events/location?city=&state=&country=
func (h *EventHandler) ListByLocation(c *gin.Context) {
	var location dto.LocationQuery
	if err := c.ShouldBindQuery(&location); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if location.IsEmpty() {
		response.BadRequest(c, "At least one of city, state or country is required")
		return
	}

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	events, total, err := h.eventService.ListByLocation(c.Request.Context(),
		location.City, location.State, location.Country, query.Page, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toEventListResponse(events, query.Page, query.Limit, total))
}

// GetBySlug handles GET /api/v1/events/:id where the path value is the slug.
// The wildcard shares its name with the sibling id-based routes.
func (h *EventHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("id")
	if slug == "" {
		response.BadRequest(c, "Slug is required")
		return
	}

	event, err := h.eventService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toEventResponse(event))
}

// Delete handles DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "ID is required")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id, user); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Event deleted successfully"})
}
