package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aydocorp/portal-api/internal/domain"
)

// OperationRepository encapsulates operation document persistence.
type OperationRepository interface {
	Create(ctx context.Context, op *domain.Operation) error
	Update(ctx context.Context, op *domain.Operation) error
	GetByID(ctx context.Context, id string) (*domain.Operation, error)
	GetByTitle(ctx context.Context, title string) (*domain.Operation, error)
	List(ctx context.Context) ([]domain.Operation, error)
	Delete(ctx context.Context, id string) error
}

type operationRepository struct {
	pool *pgxpool.Pool
}

// NewOperationRepository instantiates repository.
func NewOperationRepository(pool *pgxpool.Pool) OperationRepository {
	return &operationRepository{pool: pool}
}

const operationColumns = `id, title, description, content, category, classification, author_id,
               attachments, related_operation_ids, version, status, allowed_roles,
               created_at, updated_at`

func (r *operationRepository) Create(ctx context.Context, op *domain.Operation) error {
	attachments, err := json.Marshal(op.Attachments)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO operations (title, description, content, category, classification,
            author_id, attachments, related_operation_ids, version, status, allowed_roles)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		op.Title,
		op.Description,
		op.Content,
		op.Category,
		op.Classification,
		op.AuthorID,
		attachments,
		op.RelatedOperationIDs,
		op.Version,
		op.Status,
		op.AllowedRoles,
	).Scan(&op.ID, &op.CreatedAt, &op.UpdatedAt)
}

func (r *operationRepository) Update(ctx context.Context, op *domain.Operation) error {
	attachments, err := json.Marshal(op.Attachments)
	if err != nil {
		return err
	}
	const query = `
        UPDATE operations SET description=$1, content=$2, category=$3, classification=$4,
            attachments=$5, related_operation_ids=$6, version=$7, status=$8,
            allowed_roles=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		op.Description,
		op.Content,
		op.Category,
		op.Classification,
		attachments,
		op.RelatedOperationIDs,
		op.Version,
		op.Status,
		op.AllowedRoles,
		op.ID,
	).Scan(&op.UpdatedAt)
}

func (r *operationRepository) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	const query = `SELECT ` + operationColumns + ` FROM operations WHERE id=$1`
	return scanOperation(r.pool.QueryRow(ctx, query, id))
}

func (r *operationRepository) GetByTitle(ctx context.Context, title string) (*domain.Operation, error) {
	const query = `SELECT ` + operationColumns + ` FROM operations WHERE LOWER(title)=LOWER($1)`
	return scanOperation(r.pool.QueryRow(ctx, query, title))
}

func (r *operationRepository) List(ctx context.Context) ([]domain.Operation, error) {
	const query = `SELECT ` + operationColumns + ` FROM operations ORDER BY title ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *op)
	}
	return result, rows.Err()
}

func (r *operationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM operations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanOperation(row pgx.Row) (*domain.Operation, error) {
	var op domain.Operation
	var attachments []byte
	if err := row.Scan(
		&op.ID,
		&op.Title,
		&op.Description,
		&op.Content,
		&op.Category,
		&op.Classification,
		&op.AuthorID,
		&attachments,
		&op.RelatedOperationIDs,
		&op.Version,
		&op.Status,
		&op.AllowedRoles,
		&op.CreatedAt,
		&op.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &op.Attachments); err != nil {
			return nil, err
		}
	}
	return &op, nil
}
