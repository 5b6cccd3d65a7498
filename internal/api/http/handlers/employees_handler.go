package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aydocorp/portal-api/internal/api/dto"
	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/service"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// EmployeesHandler exposes roster endpoints.
type EmployeesHandler struct {
	org *service.OrgService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(orgService *service.OrgService) *EmployeesHandler {
	return &EmployeesHandler{org: orgService}
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.org.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, dto.NewEmployeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.org.GetEmployee(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee := &domain.Employee{IsActive: true}
	req.ApplyTo(employee)
	if err := h.org.CreateEmployee(c.UserContext(), employee); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	employee, err := h.org.GetEmployee(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	// The account link is fixed at creation; updates never change it.
	req.ApplyFieldsTo(employee)
	if err := h.org.UpdateEmployee(c.UserContext(), employee); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.org.DeleteEmployee(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
