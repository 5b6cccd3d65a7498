package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aydocorp/portal-api/internal/domain"
)

// EmployeeRepository encapsulates roster persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, user_id, full_name, backstory, rank, department,
               specializations, certifications, contact, is_active, last_active_at,
               created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	contact, err := json.Marshal(employee.Contact)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO employees (user_id, full_name, backstory, rank, department,
            specializations, certifications, contact, is_active, last_active_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		employee.UserID,
		employee.FullName,
		employee.Backstory,
		employee.Rank,
		employee.Department,
		employee.Specializations,
		employee.Certifications,
		contact,
		employee.IsActive,
		employee.LastActiveAt,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	contact, err := json.Marshal(employee.Contact)
	if err != nil {
		return err
	}
	const query = `
        UPDATE employees SET full_name=$1, backstory=$2, rank=$3, department=$4,
            specializations=$5, certifications=$6, contact=$7, is_active=$8,
            last_active_at=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		employee.FullName,
		employee.Backstory,
		employee.Rank,
		employee.Department,
		employee.Specializations,
		employee.Certifications,
		contact,
		employee.IsActive,
		employee.LastActiveAt,
		employee.ID,
	).Scan(&employee.UpdatedAt)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanEmployee(row)
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees ORDER BY full_name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *employee)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	var contact []byte
	if err := row.Scan(
		&employee.ID,
		&employee.UserID,
		&employee.FullName,
		&employee.Backstory,
		&employee.Rank,
		&employee.Department,
		&employee.Specializations,
		&employee.Certifications,
		&contact,
		&employee.IsActive,
		&employee.LastActiveAt,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(contact) > 0 {
		if err := json.Unmarshal(contact, &employee.Contact); err != nil {
			return nil, err
		}
	}
	return &employee, nil
}
