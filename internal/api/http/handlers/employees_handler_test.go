package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aydocorp/portal-api/internal/api/dto"
	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/service"
)

type stubEmployeeRepo struct {
	employees []domain.Employee
}

func (s *stubEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	s.employees = append(s.employees, *employee)
	return nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	for i := range s.employees {
		if s.employees[i].ID == employee.ID {
			s.employees[i] = *employee
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	for i := range s.employees {
		if s.employees[i].ID == id {
			employee := s.employees[i]
			return &employee, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	return append([]domain.Employee{}, s.employees...), nil
}

func (s *stubEmployeeRepo) Delete(context.Context, string) error { return nil }

func TestUpdateEmployeeKeepsAccountLink(t *testing.T) {
	linked := "user-linked"
	employees := &stubEmployeeRepo{employees: []domain.Employee{{
		ID: "emp-1", UserID: &linked, FullName: "Jane Doe", Rank: "Intern", Department: "General",
	}}}
	org := service.NewOrgService(service.OrgDependencies{EmployeeRepo: employees})

	app := fiber.New()
	app.Put("/employees/:id", NewEmployeesHandler(org).Update)

	hijacked := "user-other"
	resp := doJSON(t, app, http.MethodPut, "/employees/emp-1", "", dto.EmployeeRequest{
		UserID:   &hijacked,
		FullName: "Jane Doe",
		Rank:     "Senior Courier",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data dto.EmployeeResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	require.NotNil(t, envelope.Data.UserID)
	assert.Equal(t, linked, *envelope.Data.UserID)
	assert.Equal(t, "Senior Courier", envelope.Data.Rank)

	stored, err := employees.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, linked, *stored.UserID)
}
