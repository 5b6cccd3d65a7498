package service

import (
	"context"
	"strings"

	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/repository"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// OrgService coordinates reads and writes of org content. Reconciliation owns
// externally sourced fields; this service serves the portal's own CRUD surface.
type OrgService struct {
	employees   repository.EmployeeRepository
	careerPaths repository.CareerPathRepository
	events      repository.EventRepository
	operations  repository.OperationRepository
}

// OrgDependencies bundles repositories for the org service.
type OrgDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	CareerPathRepo repository.CareerPathRepository
	EventRepo      repository.EventRepository
	OperationRepo  repository.OperationRepository
}

// NewOrgService constructs the service.
func NewOrgService(deps OrgDependencies) *OrgService {
	return &OrgService{
		employees:   deps.EmployeeRepo,
		careerPaths: deps.CareerPathRepo,
		events:      deps.EventRepo,
		operations:  deps.OperationRepo,
	}
}

// ListEmployees returns the full roster.
func (s *OrgService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

// GetEmployee fetches a single roster entry.
func (s *OrgService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// CreateEmployee adds a roster entry.
func (s *OrgService) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	if strings.TrimSpace(employee.FullName) == "" {
		return apperrors.NewValidationError("full name is required", nil)
	}
	return s.employees.Create(ctx, employee)
}

// UpdateEmployee overwrites a roster entry.
func (s *OrgService) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	if strings.TrimSpace(employee.FullName) == "" {
		return apperrors.NewValidationError("full name is required", nil)
	}
	return s.employees.Update(ctx, employee)
}

// DeleteEmployee removes a roster entry.
func (s *OrgService) DeleteEmployee(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

// ListCareerPaths returns every department's career path.
func (s *OrgService) ListCareerPaths(ctx context.Context) ([]domain.CareerPath, error) {
	return s.careerPaths.List(ctx)
}

// GetCareerPath fetches one career path by id.
func (s *OrgService) GetCareerPath(ctx context.Context, id string) (*domain.CareerPath, error) {
	return s.careerPaths.GetByID(ctx, id)
}

// GetCareerPathByDepartment fetches one career path by department name.
func (s *OrgService) GetCareerPathByDepartment(ctx context.Context, department string) (*domain.CareerPath, error) {
	return s.careerPaths.GetByDepartment(ctx, department)
}

// CreateCareerPath adds a department career path.
func (s *OrgService) CreateCareerPath(ctx context.Context, path *domain.CareerPath) error {
	if strings.TrimSpace(path.Department) == "" {
		return apperrors.NewValidationError("department is required", nil)
	}
	return s.careerPaths.Create(ctx, path)
}

// UpdateCareerPath overwrites a career path. The department key is immutable.
func (s *OrgService) UpdateCareerPath(ctx context.Context, path *domain.CareerPath) error {
	return s.careerPaths.Update(ctx, path)
}

// DeleteCareerPath removes a career path.
func (s *OrgService) DeleteCareerPath(ctx context.Context, id string) error {
	return s.careerPaths.Delete(ctx, id)
}

// ListEvents returns events visible to the caller. Private events are only
// visible to admins, the organizer and listed attendees.
func (s *OrgService) ListEvents(ctx context.Context, viewerID string, role domain.UserRole) ([]domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Event, 0, len(all))
	for _, event := range all {
		if s.canViewEvent(&event, viewerID, role) {
			visible = append(visible, event)
		}
	}
	return visible, nil
}

// GetEvent fetches one event, enforcing private visibility.
func (s *OrgService) GetEvent(ctx context.Context, id, viewerID string, role domain.UserRole) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canViewEvent(event, viewerID, role) {
		return nil, apperrors.NewForbidden("event is private")
	}
	return event, nil
}

// CreateEvent schedules a new event owned by the caller.
func (s *OrgService) CreateEvent(ctx context.Context, organizerID string, event *domain.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if event.StartTime.IsZero() {
		return apperrors.NewValidationError("start time is required", nil)
	}
	if event.EndTime != nil && event.EndTime.Before(event.StartTime) {
		return apperrors.NewValidationError("end time precedes start time", nil)
	}
	event.OrganizerID = organizerID
	if event.Type == "" {
		event.Type = domain.EventTypeOther
	}
	return s.events.Create(ctx, event)
}

// UpdateEvent overwrites mutable event fields. Only the organizer or an admin
// may change an event.
func (s *OrgService) UpdateEvent(ctx context.Context, callerID string, role domain.UserRole, event *domain.Event) error {
	current, err := s.events.GetByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if role != domain.UserRoleAdmin && current.OrganizerID != callerID {
		return apperrors.NewForbidden("only the organizer may modify this event")
	}
	if event.EndTime != nil && event.EndTime.Before(current.StartTime) {
		return apperrors.NewValidationError("end time precedes start time", nil)
	}
	return s.events.Update(ctx, event)
}

// DeleteEvent removes an event. Only the organizer or an admin may delete.
func (s *OrgService) DeleteEvent(ctx context.Context, id, callerID string, role domain.UserRole) error {
	current, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != domain.UserRoleAdmin && current.OrganizerID != callerID {
		return apperrors.NewForbidden("only the organizer may delete this event")
	}
	return s.events.Delete(ctx, id)
}

// SetAttendance records the caller's RSVP, replacing any previous answer.
// Capacity counts ATTENDING answers only.
func (s *OrgService) SetAttendance(ctx context.Context, eventID, userID string, status domain.AttendeeStatus, role domain.UserRole) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !s.canViewEvent(event, userID, role) {
		return nil, apperrors.NewForbidden("event is private")
	}

	attending := 0
	replaced := false
	for i := range event.Attendees {
		if event.Attendees[i].UserID == userID {
			event.Attendees[i].Status = status
			replaced = true
		}
		if event.Attendees[i].Status == domain.AttendeeStatusAttending {
			attending++
		}
	}
	if !replaced {
		if status == domain.AttendeeStatusAttending && event.Capacity > 0 && attending >= event.Capacity {
			return nil, apperrors.NewConflict("event is at capacity", nil)
		}
		event.Attendees = append(event.Attendees, domain.Attendee{UserID: userID, Status: status})
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListOperations returns operations visible to the caller's role.
func (s *OrgService) ListOperations(ctx context.Context, role domain.UserRole) ([]domain.Operation, error) {
	all, err := s.operations.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Operation, 0, len(all))
	for _, operation := range all {
		if s.canViewOperation(&operation, role) {
			visible = append(visible, operation)
		}
	}
	return visible, nil
}

// GetOperation fetches one operation, enforcing classification access.
func (s *OrgService) GetOperation(ctx context.Context, id string, role domain.UserRole) (*domain.Operation, error) {
	operation, err := s.operations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canViewOperation(operation, role) {
		return nil, apperrors.NewForbidden("insufficient clearance for this operation")
	}
	return operation, nil
}

// CreateOperation adds a new operation document authored by the caller.
func (s *OrgService) CreateOperation(ctx context.Context, authorID string, operation *domain.Operation) error {
	if strings.TrimSpace(operation.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	operation.AuthorID = authorID
	if operation.Category == "" {
		operation.Category = domain.OperationCategoryGeneral
	}
	if operation.Classification == "" {
		operation.Classification = domain.ClassificationInternal
	}
	if operation.Status == "" {
		operation.Status = domain.OperationStatusDraft
	}
	if operation.Version == "" {
		operation.Version = "1.0"
	}
	return s.operations.Create(ctx, operation)
}

// UpdateOperation overwrites mutable operation fields.
func (s *OrgService) UpdateOperation(ctx context.Context, operation *domain.Operation) error {
	return s.operations.Update(ctx, operation)
}

// DeleteOperation removes an operation document.
func (s *OrgService) DeleteOperation(ctx context.Context, id string) error {
	return s.operations.Delete(ctx, id)
}

func (s *OrgService) canViewEvent(event *domain.Event, viewerID string, role domain.UserRole) bool {
	if !event.Private || role == domain.UserRoleAdmin {
		return true
	}
	if event.OrganizerID == viewerID {
		return true
	}
	for _, attendee := range event.Attendees {
		if attendee.UserID == viewerID {
			return true
		}
	}
	return false
}

// canViewOperation applies classification rules: restricted and confidential
// content is admin-only unless the caller's role is explicitly allowed.
func (s *OrgService) canViewOperation(operation *domain.Operation, role domain.UserRole) bool {
	if role == domain.UserRoleAdmin {
		return true
	}
	switch operation.Classification {
	case domain.ClassificationPublic, domain.ClassificationInternal:
		if len(operation.AllowedRoles) == 0 {
			return true
		}
	}
	for _, allowed := range operation.AllowedRoles {
		if strings.EqualFold(allowed, string(role)) {
			return true
		}
	}
	return false
}
