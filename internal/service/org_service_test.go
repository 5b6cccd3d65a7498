package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aydocorp/portal-api/internal/domain"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

type memEventRepo struct {
	events []domain.Event
	nextID int
}

func (m *memEventRepo) Create(_ context.Context, event *domain.Event) error {
	m.nextID++
	event.ID = "evt-" + strconv.Itoa(m.nextID)
	m.events = append(m.events, *event)
	return nil
}

func (m *memEventRepo) Update(_ context.Context, event *domain.Event) error {
	for i := range m.events {
		if m.events[i].ID == event.ID {
			m.events[i] = *event
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	for i := range m.events {
		if m.events[i].ID == id {
			event := m.events[i]
			return &event, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memEventRepo) GetByTitleAndStart(_ context.Context, title string, start time.Time) (*domain.Event, error) {
	for i := range m.events {
		if strings.EqualFold(m.events[i].Title, title) && m.events[i].StartTime.Equal(start) {
			event := m.events[i]
			return &event, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memEventRepo) List(_ context.Context) ([]domain.Event, error) {
	return append([]domain.Event{}, m.events...), nil
}

func (m *memEventRepo) Delete(_ context.Context, id string) error {
	for i := range m.events {
		if m.events[i].ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memOperationRepo struct {
	operations []domain.Operation
	nextID     int
}

func (m *memOperationRepo) Create(_ context.Context, op *domain.Operation) error {
	m.nextID++
	op.ID = "op-" + strconv.Itoa(m.nextID)
	m.operations = append(m.operations, *op)
	return nil
}

func (m *memOperationRepo) Update(_ context.Context, op *domain.Operation) error {
	for i := range m.operations {
		if m.operations[i].ID == op.ID {
			m.operations[i] = *op
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memOperationRepo) GetByID(_ context.Context, id string) (*domain.Operation, error) {
	for i := range m.operations {
		if m.operations[i].ID == id {
			op := m.operations[i]
			return &op, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memOperationRepo) GetByTitle(_ context.Context, title string) (*domain.Operation, error) {
	for i := range m.operations {
		if strings.EqualFold(m.operations[i].Title, title) {
			op := m.operations[i]
			return &op, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memOperationRepo) List(_ context.Context) ([]domain.Operation, error) {
	return append([]domain.Operation{}, m.operations...), nil
}

func (m *memOperationRepo) Delete(_ context.Context, id string) error {
	for i := range m.operations {
		if m.operations[i].ID == id {
			m.operations = append(m.operations[:i], m.operations[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newOrgFixture() (*OrgService, *memEventRepo, *memOperationRepo) {
	events := &memEventRepo{}
	operations := &memOperationRepo{}
	svc := NewOrgService(OrgDependencies{EventRepo: events, OperationRepo: operations})
	return svc, events, operations
}

func TestPrivateEventVisibility(t *testing.T) {
	svc, events, _ := newOrgFixture()
	events.events = []domain.Event{
		{ID: "evt-1", Title: "Open Social", StartTime: time.Now()},
		{ID: "evt-2", Title: "Officers Only", Private: true, OrganizerID: "organizer",
			Attendees: []domain.Attendee{{UserID: "invited", Status: domain.AttendeeStatusAttending}},
			StartTime: time.Now()},
	}

	visible, err := svc.ListEvents(context.Background(), "random", domain.UserRoleMember)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	visible, err = svc.ListEvents(context.Background(), "invited", domain.UserRoleMember)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	visible, err = svc.ListEvents(context.Background(), "anyone", domain.UserRoleAdmin)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	_, err = svc.GetEvent(context.Background(), "evt-2", "random", domain.UserRoleMember)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestEventCapacityEnforced(t *testing.T) {
	svc, events, _ := newOrgFixture()
	events.events = []domain.Event{{
		ID: "evt-1", Title: "Small Raid", StartTime: time.Now(), Capacity: 1,
		Attendees: []domain.Attendee{{UserID: "first", Status: domain.AttendeeStatusAttending}},
	}}

	_, err := svc.SetAttendance(context.Background(), "evt-1", "second", domain.AttendeeStatusAttending, domain.UserRoleMember)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// changing an existing answer never hits the capacity check
	event, err := svc.SetAttendance(context.Background(), "evt-1", "first", domain.AttendeeStatusDeclined, domain.UserRoleMember)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendeeStatusDeclined, event.Attendees[0].Status)

	// maybe answers do not consume capacity
	event, err = svc.SetAttendance(context.Background(), "evt-1", "second", domain.AttendeeStatusMaybe, domain.UserRoleMember)
	require.NoError(t, err)
	assert.Len(t, event.Attendees, 2)
}

func TestEventUpdateRequiresOrganizerOrAdmin(t *testing.T) {
	svc, events, _ := newOrgFixture()
	events.events = []domain.Event{{ID: "evt-1", Title: "Run", StartTime: time.Now(), OrganizerID: "owner"}}

	event, err := svc.GetEvent(context.Background(), "evt-1", "owner", domain.UserRoleMember)
	require.NoError(t, err)

	err = svc.UpdateEvent(context.Background(), "intruder", domain.UserRoleMember, event)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	require.NoError(t, svc.UpdateEvent(context.Background(), "owner", domain.UserRoleMember, event))
	require.NoError(t, svc.UpdateEvent(context.Background(), "someone-else", domain.UserRoleAdmin, event))
}

func TestOperationClassificationAccess(t *testing.T) {
	svc, _, operations := newOrgFixture()
	operations.operations = []domain.Operation{
		{ID: "op-1", Title: "Public Doctrine", Classification: domain.ClassificationPublic},
		{ID: "op-2", Title: "Internal Doctrine", Classification: domain.ClassificationInternal},
		{ID: "op-3", Title: "Restricted Doctrine", Classification: domain.ClassificationRestricted},
		{ID: "op-4", Title: "Scoped Doctrine", Classification: domain.ClassificationConfidential,
			AllowedRoles: []string{"MEMBER"}},
	}

	visible, err := svc.ListOperations(context.Background(), domain.UserRoleMember)
	require.NoError(t, err)
	titles := make([]string, 0, len(visible))
	for _, op := range visible {
		titles = append(titles, op.Title)
	}
	assert.ElementsMatch(t, []string{"Public Doctrine", "Internal Doctrine", "Scoped Doctrine"}, titles)

	visible, err = svc.ListOperations(context.Background(), domain.UserRoleAdmin)
	require.NoError(t, err)
	assert.Len(t, visible, 4)

	_, err = svc.GetOperation(context.Background(), "op-3", domain.UserRoleMember)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestCreateOperationDefaults(t *testing.T) {
	svc, _, operations := newOrgFixture()

	op := &domain.Operation{Title: "Fresh Doctrine"}
	require.NoError(t, svc.CreateOperation(context.Background(), "author-1", op))

	stored := operations.operations[0]
	assert.Equal(t, "author-1", stored.AuthorID)
	assert.Equal(t, domain.OperationCategoryGeneral, stored.Category)
	assert.Equal(t, domain.ClassificationInternal, stored.Classification)
	assert.Equal(t, domain.OperationStatusDraft, stored.Status)
	assert.Equal(t, "1.0", stored.Version)
}
