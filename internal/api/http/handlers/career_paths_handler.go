package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aydocorp/portal-api/internal/api/dto"
	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/service"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// CareerPathsHandler exposes career progression endpoints.
type CareerPathsHandler struct {
	org *service.OrgService
}

// NewCareerPathsHandler constructs handler.
func NewCareerPathsHandler(orgService *service.OrgService) *CareerPathsHandler {
	return &CareerPathsHandler{org: orgService}
}

// List handles GET /career-paths.
func (h *CareerPathsHandler) List(c *fiber.Ctx) error {
	paths, err := h.org.ListCareerPaths(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.CareerPathResponse, 0, len(paths))
	for i := range paths {
		out = append(out, dto.NewCareerPathResponse(&paths[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /career-paths/:id. A department name may be passed instead
// of an id.
func (h *CareerPathsHandler) Get(c *fiber.Ctx) error {
	key := c.Params("id")
	path, err := h.org.GetCareerPath(c.UserContext(), key)
	if err != nil {
		if byDept, deptErr := h.org.GetCareerPathByDepartment(c.UserContext(), key); deptErr == nil {
			return c.JSON(fiber.Map{"data": dto.NewCareerPathResponse(byDept)})
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCareerPathResponse(path)})
}

// Create handles POST /career-paths.
func (h *CareerPathsHandler) Create(c *fiber.Ctx) error {
	var req dto.CareerPathRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	path := &domain.CareerPath{
		Department:     req.Department,
		Description:    req.Description,
		Ranks:          req.Ranks,
		Certifications: req.Certifications,
		TrainingGuides: req.TrainingGuides,
	}
	if err := h.org.CreateCareerPath(c.UserContext(), path); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCareerPathResponse(path)})
}

// Update handles PUT /career-paths/:id.
func (h *CareerPathsHandler) Update(c *fiber.Ctx) error {
	path, err := h.org.GetCareerPath(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.CareerPathRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	path.Description = req.Description
	path.Ranks = req.Ranks
	path.Certifications = req.Certifications
	path.TrainingGuides = req.TrainingGuides
	if err := h.org.UpdateCareerPath(c.UserContext(), path); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCareerPathResponse(path)})
}

// Delete handles DELETE /career-paths/:id.
func (h *CareerPathsHandler) Delete(c *fiber.Ctx) error {
	if err := h.org.DeleteCareerPath(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
