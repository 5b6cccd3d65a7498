package sync

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/gsuite"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// SyncEmployees reconciles the roster spreadsheet into the employees
// collection, then rewrites the sheet with the full merged set so the sheet
// picks up database-only rows and generated identities.
func (s *Service) SyncEmployees(ctx context.Context) (Result, error) {
	if s.deps.Sheet == nil || s.cfg.EmployeeSpreadsheetID == "" {
		return Result{}, apperrors.NewNotConfigured("employee sheet not configured")
	}
	if err := s.acquire(DomainEmployees); err != nil {
		return Result{}, err
	}
	defer s.release(DomainEmployees)

	rows, err := s.deps.Sheet.ListAll(ctx)
	if err != nil {
		return s.failure(ctx, DomainEmployees, "failed to read employee sheet: "+err.Error(), 0, 0, 0)
	}

	existing, err := s.deps.Employees.List(ctx)
	if err != nil {
		return s.failure(ctx, DomainEmployees, "failed to list employees: "+err.Error(), 0, 0, 0)
	}
	byID := make(map[string]*domain.Employee, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	var created, updated int
	for _, row := range rows {
		if match, ok := byID[row.ID]; ok {
			applyEmployeeRow(match, row)
			if err := s.deps.Employees.Update(ctx, match); err != nil {
				return s.failure(ctx, DomainEmployees, "failed to update employee "+match.ID+": "+err.Error(), created, updated, 0)
			}
			updated++
			continue
		}

		employee := &domain.Employee{IsActive: true}
		applyEmployeeRow(employee, row)
		if err := s.deps.Employees.Create(ctx, employee); err != nil {
			return s.failure(ctx, DomainEmployees, "failed to create employee "+row.FullName+": "+err.Error(), created, updated, 0)
		}
		created++
	}

	// Full-replace write-back: the merged database set, including rows that
	// only exist in the database, becomes the new sheet content.
	merged, err := s.deps.Employees.List(ctx)
	if err != nil {
		return s.failure(ctx, DomainEmployees, "failed to list merged employees: "+err.Error(), created, updated, 0)
	}
	writeRows := make([]gsuite.EmployeeRow, 0, len(merged))
	for _, employee := range merged {
		writeRows = append(writeRows, employeeToRow(employee))
	}
	if err := s.deps.Sheet.ReplaceAll(ctx, writeRows); err != nil {
		s.logger.Error("employee sheet write-back failed", zap.Error(err))
		return s.failure(ctx, DomainEmployees, "employee sheet write-back failed: "+err.Error(), created, updated, 0)
	}

	return s.finish(ctx, Result{
		Domain:  DomainEmployees,
		Success: true,
		Created: created,
		Updated: updated,
		Message: "employee sync complete",
	}), nil
}

// applyEmployeeRow overwrites the sheet-sourced whitelist. Identity and the
// account reference are never touched.
func applyEmployeeRow(employee *domain.Employee, row gsuite.EmployeeRow) {
	employee.FullName = strings.TrimSpace(row.FullName)
	employee.Backstory = row.Backstory
	employee.Rank = row.Rank
	employee.Department = row.Department
	employee.Specializations = row.Specializations
	employee.Certifications = row.Certifications
	employee.Contact = row.Contact
	employee.IsActive = row.IsActive
	employee.LastActiveAt = row.LastActiveAt
}

func employeeToRow(employee domain.Employee) gsuite.EmployeeRow {
	return gsuite.EmployeeRow{
		ID:              employee.ID,
		FullName:        employee.FullName,
		Backstory:       employee.Backstory,
		Rank:            employee.Rank,
		Department:      employee.Department,
		Specializations: employee.Specializations,
		Certifications:  employee.Certifications,
		Contact:         employee.Contact,
		IsActive:        employee.IsActive,
		LastActiveAt:    employee.LastActiveAt,
	}
}
