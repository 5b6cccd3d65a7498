package sync

import (
	"context"
	"strings"

	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/gsuite"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// SyncCareerPaths reconciles the career paths document into the database.
// Department name is the natural key.
func (s *Service) SyncCareerPaths(ctx context.Context) (Result, error) {
	if s.deps.Docs == nil || s.cfg.CareerPathsDocID == "" {
		return Result{}, apperrors.NewNotConfigured("career paths document not configured")
	}
	if err := s.acquire(DomainCareerPaths); err != nil {
		return Result{}, err
	}
	defer s.release(DomainCareerPaths)

	parsed, skippedBlocks, err := s.deps.Docs.FetchCareerPaths(ctx, s.cfg.CareerPathsDocID)
	if err != nil {
		return s.failure(ctx, DomainCareerPaths, "failed to read career paths document: "+err.Error(), 0, 0, 0)
	}
	skipped := len(skippedBlocks)

	existing, err := s.deps.CareerPaths.List(ctx)
	if err != nil {
		return s.failure(ctx, DomainCareerPaths, "failed to list career paths: "+err.Error(), 0, 0, skipped)
	}
	byDepartment := make(map[string]*domain.CareerPath, len(existing))
	for i := range existing {
		byDepartment[strings.ToLower(existing[i].Department)] = &existing[i]
	}

	var created, updated int
	for _, record := range parsed {
		key := strings.ToLower(strings.TrimSpace(record.Department))
		if match, ok := byDepartment[key]; ok {
			match.Description = record.Description
			match.Ranks = parsedRanks(record.Ranks)
			if err := s.deps.CareerPaths.Update(ctx, match); err != nil {
				return s.failure(ctx, DomainCareerPaths, "failed to update career path "+match.Department+": "+err.Error(), created, updated, skipped)
			}
			updated++
			continue
		}

		path := &domain.CareerPath{
			Department:  strings.TrimSpace(record.Department),
			Description: record.Description,
			Ranks:       parsedRanks(record.Ranks),
		}
		if err := s.deps.CareerPaths.Create(ctx, path); err != nil {
			return s.failure(ctx, DomainCareerPaths, "failed to create career path "+path.Department+": "+err.Error(), created, updated, skipped)
		}
		created++
	}

	return s.finish(ctx, Result{
		Domain:  DomainCareerPaths,
		Success: true,
		Created: created,
		Updated: updated,
		Skipped: skipped,
		Message: "career path sync complete",
	}), nil
}

func parsedRanks(ranks []gsuite.ParsedRank) []domain.Rank {
	out := make([]domain.Rank, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, domain.Rank{
			Title:       rank.Title,
			Description: rank.Description,
			Level:       rank.Level,
			Paygrade:    rank.Paygrade,
		})
	}
	return out
}
