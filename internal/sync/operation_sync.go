package sync

import (
	"context"
	"strings"

	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/gsuite"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// SyncOperations reconciles the operations document into the database. Title
// is the natural key; new operations are authored by the oldest admin account.
func (s *Service) SyncOperations(ctx context.Context) (Result, error) {
	if s.deps.Docs == nil || s.cfg.OperationsDocID == "" {
		return Result{}, apperrors.NewNotConfigured("operations document not configured")
	}
	if err := s.acquire(DomainOperations); err != nil {
		return Result{}, err
	}
	defer s.release(DomainOperations)

	parsed, skippedBlocks, err := s.deps.Docs.FetchOperations(ctx, s.cfg.OperationsDocID)
	if err != nil {
		return s.failure(ctx, DomainOperations, "failed to read operations document: "+err.Error(), 0, 0, 0)
	}
	skipped := len(skippedBlocks)

	existing, err := s.deps.Operations.List(ctx)
	if err != nil {
		return s.failure(ctx, DomainOperations, "failed to list operations: "+err.Error(), 0, 0, skipped)
	}
	byTitle := make(map[string]*domain.Operation, len(existing))
	for i := range existing {
		byTitle[strings.ToLower(existing[i].Title)] = &existing[i]
	}

	admin, err := s.fallbackAdmin(ctx)
	if err != nil {
		return s.failure(ctx, DomainOperations, "failed to resolve admin account: "+err.Error(), 0, 0, skipped)
	}

	var created, updated int
	missingAdmin := false
	for _, record := range parsed {
		key := strings.ToLower(strings.TrimSpace(record.Title))
		if match, ok := byTitle[key]; ok {
			applyParsedOperation(match, record)
			if err := s.deps.Operations.Update(ctx, match); err != nil {
				return s.failure(ctx, DomainOperations, "failed to update operation "+match.Title+": "+err.Error(), created, updated, skipped)
			}
			updated++
			continue
		}

		if admin == nil {
			missingAdmin = true
			continue
		}
		operation := &domain.Operation{
			Title:    strings.TrimSpace(record.Title),
			AuthorID: admin.ID,
		}
		applyParsedOperation(operation, record)
		if err := s.deps.Operations.Create(ctx, operation); err != nil {
			return s.failure(ctx, DomainOperations, "failed to create operation "+operation.Title+": "+err.Error(), created, updated, skipped)
		}
		created++
	}

	if missingAdmin {
		return s.failure(ctx, DomainOperations, "No admin user found for operation creation", created, updated, skipped)
	}

	return s.finish(ctx, Result{
		Domain:  DomainOperations,
		Success: true,
		Created: created,
		Updated: updated,
		Skipped: skipped,
		Message: "operation sync complete",
	}), nil
}

// applyParsedOperation overwrites the document-sourced whitelist. Title and
// author are never touched.
func applyParsedOperation(operation *domain.Operation, record gsuite.ParsedOperation) {
	operation.Description = record.Description
	operation.Content = record.Content
	operation.Category = domain.ParseOperationCategory(record.Category)
	operation.Classification = domain.ParseClassification(record.Classification)
	operation.Status = domain.ParseOperationStatus(record.Status)
	operation.Version = record.Version
}
