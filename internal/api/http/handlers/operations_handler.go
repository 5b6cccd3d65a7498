package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aydocorp/portal-api/internal/api/dto"
	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/service"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// OperationsHandler exposes operation document endpoints.
type OperationsHandler struct {
	org *service.OrgService
}

// NewOperationsHandler constructs handler.
func NewOperationsHandler(orgService *service.OrgService) *OperationsHandler {
	return &OperationsHandler{org: orgService}
}

// List handles GET /operations.
func (h *OperationsHandler) List(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	operations, err := h.org.ListOperations(c.UserContext(), principal.Role)
	if err != nil {
		return err
	}
	out := make([]dto.OperationResponse, 0, len(operations))
	for i := range operations {
		out = append(out, dto.NewOperationResponse(&operations[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /operations/:id.
func (h *OperationsHandler) Get(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	operation, err := h.org.GetOperation(c.UserContext(), c.Params("id"), principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOperationResponse(operation)})
}

// Create handles POST /operations.
func (h *OperationsHandler) Create(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.OperationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	operation := &domain.Operation{}
	req.ApplyTo(operation)
	if err := h.org.CreateOperation(c.UserContext(), principal.User.ID, operation); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOperationResponse(operation)})
}

// Update handles PUT /operations/:id.
func (h *OperationsHandler) Update(c *fiber.Ctx) error {
	principal := requirePrincipal(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	operation, err := h.org.GetOperation(c.UserContext(), c.Params("id"), principal.Role)
	if err != nil {
		return err
	}

	var req dto.OperationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	// The title identifies the operation; updates never change it.
	operation.Description = req.Description
	operation.Content = req.Content
	operation.Category = req.Category
	operation.Classification = req.Classification
	operation.Attachments = req.Attachments
	operation.RelatedOperationIDs = req.RelatedOperationIDs
	operation.Version = req.Version
	operation.Status = req.Status
	operation.AllowedRoles = req.AllowedRoles
	if err := h.org.UpdateOperation(c.UserContext(), operation); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOperationResponse(operation)})
}

// Delete handles DELETE /operations/:id.
func (h *OperationsHandler) Delete(c *fiber.Ctx) error {
	if err := h.org.DeleteOperation(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
