package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aydocorp/portal-api/internal/api/dto"
	"github.com/aydocorp/portal-api/internal/auth"
	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/service"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// EventsHandler exposes scheduled event endpoints.
type EventsHandler struct {
	org *service.OrgService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(orgService *service.OrgService) *EventsHandler {
	return &EventsHandler{org: orgService}
}

// List handles GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	events, err := h.org.ListEvents(c.UserContext(), principal.User.ID, principal.Role)
	if err != nil {
		return err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.NewEventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	event, err := h.org.GetEvent(c.UserContext(), c.Params("id"), principal.User.ID, principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event := &domain.Event{}
	req.ApplyTo(event)
	if err := h.org.CreateEvent(c.UserContext(), principal.User.ID, event); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Update handles PUT /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	event, err := h.org.GetEvent(c.UserContext(), c.Params("id"), principal.User.ID, principal.Role)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	// Title and start time identify the event; updates never change them.
	event.Description = req.Description
	event.Type = req.Type
	event.Location = req.Location
	event.EndTime = req.EndTime
	event.Recurring = req.Recurring
	event.RecurrencePattern = req.RecurrencePattern
	event.Capacity = req.Capacity
	event.Private = req.Private
	if err := h.org.UpdateEvent(c.UserContext(), principal.User.ID, principal.Role, event); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Delete handles DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.org.DeleteEvent(c.UserContext(), c.Params("id"), principal.User.ID, principal.Role); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Attend handles POST /events/:id/attendance.
func (h *EventsHandler) Attend(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch req.Status {
	case domain.AttendeeStatusAttending, domain.AttendeeStatusMaybe, domain.AttendeeStatusDeclined:
	default:
		return apperrors.NewValidationError("invalid attendance status", nil)
	}

	event, err := h.org.SetAttendance(c.UserContext(), c.Params("id"), principal.User.ID, req.Status, principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

func requirePrincipal(c *fiber.Ctx) *auth.Principal {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal
}
