package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aydocorp/portal-api/internal/config"
	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/events"
	"github.com/aydocorp/portal-api/internal/gsuite"
	"github.com/aydocorp/portal-api/internal/observability"
	"github.com/aydocorp/portal-api/internal/repository"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// EmployeeSheetSource abstracts the roster spreadsheet reader/writer.
type EmployeeSheetSource interface {
	ListAll(ctx context.Context) ([]gsuite.EmployeeRow, error)
	ReplaceAll(ctx context.Context, rows []gsuite.EmployeeRow) error
}

// OrgDocsSource abstracts the marker-delimited document reader.
type OrgDocsSource interface {
	FetchOperations(ctx context.Context, docID string) ([]gsuite.ParsedOperation, []gsuite.SkippedBlock, error)
	FetchEvents(ctx context.Context, docID string) ([]gsuite.ParsedEvent, []gsuite.SkippedBlock, error)
	FetchCareerPaths(ctx context.Context, docID string) ([]gsuite.ParsedCareerPath, []gsuite.SkippedBlock, error)
}

// Dependencies bundles what the sync service needs.
type Dependencies struct {
	Users       repository.UserRepository
	Employees   repository.EmployeeRepository
	CareerPaths repository.CareerPathRepository
	Events      repository.EventRepository
	Operations  repository.OperationRepository
	Sheet       EmployeeSheetSource // nil when the spreadsheet is not configured
	Docs        OrgDocsSource       // nil when credentials are not configured
	Cache       *StatusCache
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
}

// Service runs the per-domain reconcilers. A pass reads the full database
// collection and the full external source, matches records by natural key,
// updates a fixed whitelist of fields on matches and inserts the rest. The
// reconciler never deletes database records.
//
// Each domain is single-flight: a run is refused while the previous run of
// the same domain is still in progress, so a manual trigger cannot interleave
// with a scheduled pass.
type Service struct {
	cfg    config.GoogleConfig
	deps   Dependencies
	logger *zap.Logger

	inflight map[Domain]*atomic.Bool
}

// NewService constructs the reconciliation service.
func NewService(cfg config.GoogleConfig, deps Dependencies, logger *zap.Logger) *Service {
	inflight := make(map[Domain]*atomic.Bool, len(Domains))
	for _, d := range Domains {
		inflight[d] = &atomic.Bool{}
	}
	return &Service{cfg: cfg, deps: deps, logger: logger, inflight: inflight}
}

// acquire claims the single-flight slot for a domain.
func (s *Service) acquire(d Domain) error {
	if !s.inflight[d].CompareAndSwap(false, true) {
		return apperrors.NewConflict(string(d)+" sync already running", nil)
	}
	return nil
}

func (s *Service) release(d Domain) {
	s.inflight[d].Store(false)
}

// finish records metrics, caches the result, publishes the outcome event and
// logs. Shared tail for every domain pass.
func (s *Service) finish(ctx context.Context, result Result) Result {
	result.FinishedAt = time.Now().UTC()
	result.Count = result.Created + result.Updated

	s.deps.Metrics.RecordSyncPass(string(result.Domain), result.Success)
	if err := s.deps.Cache.Store(ctx, result); err != nil {
		s.logger.Warn("failed to cache sync result", zap.String("domain", string(result.Domain)), zap.Error(err))
	}

	if s.deps.Dispatcher != nil {
		eventType := events.EventSyncCompleted
		var payload interface{} = events.SyncCompletedPayload{
			Created: result.Created,
			Updated: result.Updated,
			Skipped: result.Skipped,
		}
		if !result.Success {
			eventType = events.EventSyncFailed
			payload = events.SyncFailedPayload{Message: result.Message}
		}
		_ = s.deps.Dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      eventType,
			Domain:    string(result.Domain),
			Timestamp: result.FinishedAt,
			Payload:   payload,
		})
	}

	s.logger.Info("sync pass finished",
		zap.String("domain", string(result.Domain)),
		zap.Bool("success", result.Success),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.String("message", result.Message),
	)
	return result
}

// fallbackAdmin returns the deterministic system account that owns records
// created during reconciliation, or nil when no admin account exists.
func (s *Service) fallbackAdmin(ctx context.Context) (*domain.User, error) {
	admin, err := s.deps.Users.FirstAdmin(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Service) failure(ctx context.Context, d Domain, message string, created, updated, skipped int) (Result, error) {
	result := s.finish(ctx, Result{
		Domain:  d,
		Success: false,
		Created: created,
		Updated: updated,
		Skipped: skipped,
		Message: message,
	})
	return result, apperrors.NewDomainError("SYNC_FAILED", message, 500, nil)
}

// SyncAll runs every configured domain sequentially. One domain's failure
// never prevents the others from running; unconfigured domains are reported
// as skipped.
func (s *Service) SyncAll(ctx context.Context) map[Domain]Result {
	runs := []struct {
		domain Domain
		run    func(context.Context) (Result, error)
	}{
		{DomainEmployees, s.SyncEmployees},
		{DomainCareerPaths, s.SyncCareerPaths},
		{DomainEvents, s.SyncEvents},
		{DomainOperations, s.SyncOperations},
	}

	results := make(map[Domain]Result, len(runs))
	for _, entry := range runs {
		result, err := entry.run(ctx)
		if err != nil {
			var domainErr *apperrors.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == "NOT_CONFIGURED" {
				results[entry.domain] = Result{
					Domain:  entry.domain,
					Success: true,
					Message: domainErr.Message + "; skipped",
				}
				continue
			}
			if result.Message == "" {
				result = Result{Domain: entry.domain, Success: false, Message: err.Error()}
			}
		}
		results[entry.domain] = result
	}
	return results
}
