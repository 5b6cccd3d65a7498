package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/aydocorp/portal-api/internal/api/dto"
	syncpkg "github.com/aydocorp/portal-api/internal/sync"
)

// SyncHandler exposes the on-demand reconciliation endpoints. The routes are
// public: triggering a pass only pulls already-shared org documents.
type SyncHandler struct {
	syncSvc *syncpkg.Service
	cache   *syncpkg.StatusCache
}

// NewSyncHandler constructs handler.
func NewSyncHandler(syncSvc *syncpkg.Service, cache *syncpkg.StatusCache) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc, cache: cache}
}

// Employees handles GET /sync/employees.
func (h *SyncHandler) Employees(c *fiber.Ctx) error {
	return h.respond(c, h.syncSvc.SyncEmployees)
}

// CareerPaths handles GET /sync/career-paths.
func (h *SyncHandler) CareerPaths(c *fiber.Ctx) error {
	return h.respond(c, h.syncSvc.SyncCareerPaths)
}

// Events handles GET /sync/events.
func (h *SyncHandler) Events(c *fiber.Ctx) error {
	return h.respond(c, h.syncSvc.SyncEvents)
}

// Operations handles GET /sync/operations.
func (h *SyncHandler) Operations(c *fiber.Ctx) error {
	return h.respond(c, h.syncSvc.SyncOperations)
}

// All handles GET /sync/all.
func (h *SyncHandler) All(c *fiber.Ctx) error {
	results := h.syncSvc.SyncAll(c.UserContext())

	overall := true
	for _, result := range results {
		if !result.Success {
			overall = false
		}
	}
	message := "sync completed"
	if !overall {
		message = "sync completed with errors"
	}

	return c.JSON(dto.SyncAllResponse{
		Message:        message,
		OverallSuccess: overall,
		Results:        results,
	})
}

// Status handles GET /sync/status.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	statuses, err := h.cache.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.SyncStatusResponse{Statuses: statuses})
}

func (h *SyncHandler) respond(c *fiber.Ctx, run func(context.Context) (syncpkg.Result, error)) error {
	result, err := run(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.SyncResponse{Message: result.Message, Count: result.Count})
}
