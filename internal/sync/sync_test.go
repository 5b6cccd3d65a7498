package sync

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aydocorp/portal-api/internal/config"
	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/gsuite"
	"github.com/aydocorp/portal-api/internal/observability"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "user-" + strconv.Itoa(len(f.users)+1)
	user.CreatedAt = time.Now()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range f.users {
		if strings.EqualFold(f.users[i].Email, email) {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByHandle(_ context.Context, handle string) (*domain.User, error) {
	for i := range f.users {
		if strings.EqualFold(f.users[i].Handle, handle) {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) FirstAdmin(_ context.Context) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].Role == domain.UserRoleAdmin {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	return append([]domain.User{}, f.users...), nil
}

type fakeEmployeeRepo struct {
	employees []domain.Employee
	nextID    int
}

func (f *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	f.nextID++
	employee.ID = "emp-" + strconv.Itoa(f.nextID)
	f.employees = append(f.employees, *employee)
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	for i := range f.employees {
		if f.employees[i].ID == employee.ID {
			f.employees[i] = *employee
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID == id {
			employee := f.employees[i]
			return &employee, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	return append([]domain.Employee{}, f.employees...), nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeCareerPathRepo struct {
	paths  []domain.CareerPath
	nextID int
}

func (f *fakeCareerPathRepo) Create(_ context.Context, path *domain.CareerPath) error {
	f.nextID++
	path.ID = "cp-" + strconv.Itoa(f.nextID)
	f.paths = append(f.paths, *path)
	return nil
}

func (f *fakeCareerPathRepo) Update(_ context.Context, path *domain.CareerPath) error {
	for i := range f.paths {
		if f.paths[i].ID == path.ID {
			f.paths[i] = *path
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCareerPathRepo) GetByID(_ context.Context, id string) (*domain.CareerPath, error) {
	for i := range f.paths {
		if f.paths[i].ID == id {
			path := f.paths[i]
			return &path, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCareerPathRepo) GetByDepartment(_ context.Context, department string) (*domain.CareerPath, error) {
	for i := range f.paths {
		if strings.EqualFold(f.paths[i].Department, department) {
			path := f.paths[i]
			return &path, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCareerPathRepo) List(_ context.Context) ([]domain.CareerPath, error) {
	return append([]domain.CareerPath{}, f.paths...), nil
}

func (f *fakeCareerPathRepo) Delete(_ context.Context, id string) error {
	for i := range f.paths {
		if f.paths[i].ID == id {
			f.paths = append(f.paths[:i], f.paths[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeEventRepo struct {
	events []domain.Event
	nextID int
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	f.nextID++
	event.ID = "evt-" + strconv.Itoa(f.nextID)
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	for i := range f.events {
		if f.events[i].ID == event.ID {
			f.events[i] = *event
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			event := f.events[i]
			return &event, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEventRepo) GetByTitleAndStart(_ context.Context, title string, start time.Time) (*domain.Event, error) {
	for i := range f.events {
		if strings.EqualFold(f.events[i].Title, title) && f.events[i].StartTime.Equal(start) {
			event := f.events[i]
			return &event, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEventRepo) List(_ context.Context) ([]domain.Event, error) {
	return append([]domain.Event{}, f.events...), nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeOperationRepo struct {
	operations []domain.Operation
	nextID     int
}

func (f *fakeOperationRepo) Create(_ context.Context, op *domain.Operation) error {
	f.nextID++
	op.ID = "op-" + strconv.Itoa(f.nextID)
	f.operations = append(f.operations, *op)
	return nil
}

func (f *fakeOperationRepo) Update(_ context.Context, op *domain.Operation) error {
	for i := range f.operations {
		if f.operations[i].ID == op.ID {
			f.operations[i] = *op
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeOperationRepo) GetByID(_ context.Context, id string) (*domain.Operation, error) {
	for i := range f.operations {
		if f.operations[i].ID == id {
			op := f.operations[i]
			return &op, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeOperationRepo) GetByTitle(_ context.Context, title string) (*domain.Operation, error) {
	for i := range f.operations {
		if strings.EqualFold(f.operations[i].Title, title) {
			op := f.operations[i]
			return &op, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeOperationRepo) List(_ context.Context) ([]domain.Operation, error) {
	return append([]domain.Operation{}, f.operations...), nil
}

func (f *fakeOperationRepo) Delete(_ context.Context, id string) error {
	for i := range f.operations {
		if f.operations[i].ID == id {
			f.operations = append(f.operations[:i], f.operations[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeSheet struct {
	rows      []gsuite.EmployeeRow
	written   [][]gsuite.EmployeeRow
	listErr   error
	writeErr  error
	listCalls int
}

func (f *fakeSheet) ListAll(_ context.Context) ([]gsuite.EmployeeRow, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]gsuite.EmployeeRow{}, f.rows...), nil
}

func (f *fakeSheet) ReplaceAll(_ context.Context, rows []gsuite.EmployeeRow) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, rows)
	return nil
}

type fakeDocs struct {
	operations []gsuite.ParsedOperation
	events     []gsuite.ParsedEvent
	paths      []gsuite.ParsedCareerPath
	skipped    []gsuite.SkippedBlock
	err        error
}

func (f *fakeDocs) FetchOperations(_ context.Context, _ string) ([]gsuite.ParsedOperation, []gsuite.SkippedBlock, error) {
	return f.operations, f.skipped, f.err
}

func (f *fakeDocs) FetchEvents(_ context.Context, _ string) ([]gsuite.ParsedEvent, []gsuite.SkippedBlock, error) {
	return f.events, f.skipped, f.err
}

func (f *fakeDocs) FetchCareerPaths(_ context.Context, _ string) ([]gsuite.ParsedCareerPath, []gsuite.SkippedBlock, error) {
	return f.paths, f.skipped, f.err
}

type fixture struct {
	users      *fakeUserRepo
	employees  *fakeEmployeeRepo
	paths      *fakeCareerPathRepo
	events     *fakeEventRepo
	operations *fakeOperationRepo
	sheet      *fakeSheet
	docs       *fakeDocs
	metrics    *observability.Metrics
	service    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:      &fakeUserRepo{},
		employees:  &fakeEmployeeRepo{},
		paths:      &fakeCareerPathRepo{},
		events:     &fakeEventRepo{},
		operations: &fakeOperationRepo{},
		sheet:      &fakeSheet{},
		docs:       &fakeDocs{},
		metrics:    observability.NewMetrics(),
	}
	cfg := config.GoogleConfig{
		EmployeeSpreadsheetID: "sheet-1",
		EmployeeSheetName:     "Employees",
		CareerPathsDocID:      "doc-cp",
		EventsDocID:           "doc-ev",
		OperationsDocID:       "doc-op",
	}
	f.service = NewService(cfg, Dependencies{
		Users:       f.users,
		Employees:   f.employees,
		CareerPaths: f.paths,
		Events:      f.events,
		Operations:  f.operations,
		Sheet:       f.sheet,
		Docs:        f.docs,
		Metrics:     f.metrics,
	}, zap.NewNop())
	return f
}

func (f *fixture) withAdmin() *domain.User {
	admin := domain.User{ID: "admin-1", Handle: "boss", Role: domain.UserRoleAdmin, CreatedAt: time.Now()}
	f.users.users = append(f.users.users, admin)
	return &admin
}

func TestSyncEmployeesCreatesAndUpdates(t *testing.T) {
	f := newFixture(t)
	linked := "user-9"
	f.employees.employees = []domain.Employee{{
		ID:       "emp-existing",
		UserID:   &linked,
		FullName: "Old Name",
		Rank:     "Recruit",
		IsActive: false,
	}}
	f.sheet.rows = []gsuite.EmployeeRow{
		{ID: "emp-existing", FullName: "New Name", Rank: "Captain", Department: "Logistics", IsActive: true},
		{FullName: "Fresh Face", Rank: "Recruit", IsActive: true},
	}

	result, err := f.service.SyncEmployees(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Count)

	updated, err := f.employees.GetByID(context.Background(), "emp-existing")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "Captain", updated.Rank)
	assert.True(t, updated.IsActive)
	// identity and the account link survive external overwrite
	require.NotNil(t, updated.UserID)
	assert.Equal(t, linked, *updated.UserID)

	// write-back carries the full merged roster
	require.Len(t, f.sheet.written, 1)
	assert.Len(t, f.sheet.written[0], 2)
}

func TestSyncEmployeesWriteBackIncludesDatabaseOnlyRows(t *testing.T) {
	f := newFixture(t)
	f.employees.employees = []domain.Employee{{ID: "emp-db-only", FullName: "Database Resident", IsActive: true}}
	f.sheet.rows = []gsuite.EmployeeRow{{FullName: "Sheet Person", IsActive: true}}

	result, err := f.service.SyncEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)

	require.Len(t, f.sheet.written, 1)
	names := make([]string, 0, 2)
	for _, row := range f.sheet.written[0] {
		names = append(names, row.FullName)
	}
	assert.Contains(t, names, "Database Resident")
	assert.Contains(t, names, "Sheet Person")
}

func TestSyncEmployeesWriteBackFailure(t *testing.T) {
	f := newFixture(t)
	f.sheet.rows = []gsuite.EmployeeRow{{FullName: "Someone", IsActive: true}}
	f.sheet.writeErr = errors.New("quota exceeded")

	result, err := f.service.SyncEmployees(context.Background())
	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "write-back failed")
	// the database merge itself still happened
	assert.Len(t, f.employees.employees, 1)
}

func TestSyncEmployeesNotConfigured(t *testing.T) {
	f := newFixture(t)
	f.service.cfg.EmployeeSpreadsheetID = ""

	_, err := f.service.SyncEmployees(context.Background())
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_CONFIGURED", domainErr.Code)
}

func TestSyncEmployeesIdempotent(t *testing.T) {
	f := newFixture(t)
	f.sheet.rows = []gsuite.EmployeeRow{{FullName: "Stable Person", IsActive: true}}

	first, err := f.service.SyncEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	// second pass matches by the id written back to the sheet
	f.sheet.rows = f.sheet.written[0]
	second, err := f.service.SyncEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)
	assert.Len(t, f.employees.employees, 1)
}

func TestSyncCareerPathsMatchesDepartmentCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.paths.paths = []domain.CareerPath{{ID: "cp-1", Department: "Logistics", Description: "old"}}
	f.docs.paths = []gsuite.ParsedCareerPath{
		{Department: "LOGISTICS", Description: "new", Ranks: []gsuite.ParsedRank{{Title: "Hauler", Level: 1}}},
		{Department: "Security", Description: "fresh"},
	}
	f.docs.skipped = []gsuite.SkippedBlock{{Index: 2, Reason: "career path block has too few lines"}}

	result, err := f.service.SyncCareerPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	// skipped blocks never count toward applied records
	assert.Equal(t, 2, result.Count)

	updated, err := f.paths.GetByID(context.Background(), "cp-1")
	require.NoError(t, err)
	assert.Equal(t, "Logistics", updated.Department)
	assert.Equal(t, "new", updated.Description)
	require.Len(t, updated.Ranks, 1)
	assert.Equal(t, "Hauler", updated.Ranks[0].Title)
}

func TestSyncEventsRequiresAdminForCreation(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	f.events.events = []domain.Event{{
		ID: "evt-1", Title: "Weekly Freight Run", StartTime: start,
		OrganizerID: "user-x", Description: "old",
	}}
	f.docs.events = []gsuite.ParsedEvent{
		{Title: "Weekly Freight Run", Type: "MISSION", StartTime: start, Description: "new"},
		{Title: "Brand New Event", Type: "SOCIAL", StartTime: start.Add(24 * time.Hour)},
	}

	result, err := f.service.SyncEvents(context.Background())
	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No admin user found for event creation", result.Message)
	// updates still land even when inserts are blocked
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Created)

	updated, err := f.events.GetByID(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "user-x", updated.OrganizerID)
	assert.Len(t, f.events.events, 1)
}

func TestSyncEventsCreatesWithFallbackAdmin(t *testing.T) {
	f := newFixture(t)
	admin := f.withAdmin()
	start := time.Date(2026, 4, 1, 19, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	f.docs.events = []gsuite.ParsedEvent{{
		Title: "Mining Expedition", Type: "mission", Location: "Aaron Halo",
		StartTime: start, EndTime: &end, Description: "bring lasers",
	}}

	result, err := f.service.SyncEvents(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Created)

	created, err := f.events.GetByTitleAndStart(context.Background(), "Mining Expedition", start)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, created.OrganizerID)
	assert.Equal(t, domain.EventTypeMission, created.Type)
	require.NotNil(t, created.EndTime)
}

func TestSyncOperationsUpdatePreservesTitleAndAuthor(t *testing.T) {
	f := newFixture(t)
	f.withAdmin()
	f.operations.operations = []domain.Operation{{
		ID: "op-1", Title: "Convoy Escort Doctrine", AuthorID: "user-author",
		Version: "1.0", Status: domain.OperationStatusDraft,
	}}
	f.docs.operations = []gsuite.ParsedOperation{{
		Title: "CONVOY ESCORT DOCTRINE", Category: "logistics", Classification: "internal",
		Status: "active", Version: "2.0", Description: "updated", Content: "body",
	}}

	result, err := f.service.SyncOperations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Created)

	updated, err := f.operations.GetByID(context.Background(), "op-1")
	require.NoError(t, err)
	assert.Equal(t, "Convoy Escort Doctrine", updated.Title)
	assert.Equal(t, "user-author", updated.AuthorID)
	assert.Equal(t, "2.0", updated.Version)
	assert.Equal(t, domain.OperationStatusActive, updated.Status)
	assert.Equal(t, domain.OperationCategoryLogistics, updated.Category)
}

func TestSyncOperationsRequiresAdminForCreation(t *testing.T) {
	f := newFixture(t)
	f.docs.operations = []gsuite.ParsedOperation{{
		Title: "New Doctrine", Category: "GENERAL", Classification: "INTERNAL",
		Status: "DRAFT", Version: "1.0", Description: "d", Content: "c",
	}}

	result, err := f.service.SyncOperations(context.Background())
	require.Error(t, err)
	assert.Equal(t, "No admin user found for operation creation", result.Message)
	assert.Empty(t, f.operations.operations)
}

func TestSingleFlightRefusesConcurrentPass(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.service.acquire(DomainEmployees))

	_, err := f.service.SyncEmployees(context.Background())
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// other domains are unaffected
	f.withAdmin()
	_, err = f.service.SyncOperations(context.Background())
	require.NoError(t, err)

	f.service.release(DomainEmployees)
	_, err = f.service.SyncEmployees(context.Background())
	require.NoError(t, err)
}

func TestSyncAllIsolatesFailuresAndSkipsUnconfigured(t *testing.T) {
	f := newFixture(t)
	f.withAdmin()
	f.service.cfg.EventsDocID = ""
	f.sheet.listErr = errors.New("sheet unreachable")

	results := f.service.SyncAll(context.Background())
	require.Len(t, results, 4)

	assert.False(t, results[DomainEmployees].Success)
	assert.Contains(t, results[DomainEmployees].Message, "sheet unreachable")

	assert.True(t, results[DomainEvents].Success)
	assert.Contains(t, results[DomainEvents].Message, "skipped")

	assert.True(t, results[DomainCareerPaths].Success)
	assert.True(t, results[DomainOperations].Success)
}

func TestSyncRecordsMetrics(t *testing.T) {
	f := newFixture(t)
	f.sheet.rows = []gsuite.EmployeeRow{{FullName: "Metric Person", IsActive: true}}

	_, err := f.service.SyncEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.metrics.SyncPassCount(string(DomainEmployees), true))

	f.sheet.listErr = errors.New("boom")
	_, err = f.service.SyncEmployees(context.Background())
	require.Error(t, err)
	assert.Equal(t, int64(1), f.metrics.SyncPassCount(string(DomainEmployees), false))
}
