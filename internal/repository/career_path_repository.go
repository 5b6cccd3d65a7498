package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aydocorp/portal-api/internal/domain"
)

// CareerPathRepository encapsulates career path persistence.
type CareerPathRepository interface {
	Create(ctx context.Context, path *domain.CareerPath) error
	Update(ctx context.Context, path *domain.CareerPath) error
	GetByID(ctx context.Context, id string) (*domain.CareerPath, error)
	GetByDepartment(ctx context.Context, department string) (*domain.CareerPath, error)
	List(ctx context.Context) ([]domain.CareerPath, error)
	Delete(ctx context.Context, id string) error
}

type careerPathRepository struct {
	pool *pgxpool.Pool
}

// NewCareerPathRepository instantiates repository.
func NewCareerPathRepository(pool *pgxpool.Pool) CareerPathRepository {
	return &careerPathRepository{pool: pool}
}

const careerPathColumns = `id, department, description, ranks, certifications, training_guides,
               created_at, updated_at`

func (r *careerPathRepository) Create(ctx context.Context, path *domain.CareerPath) error {
	ranks, certifications, guides, err := marshalCareerPathEmbeds(path)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO career_paths (department, description, ranks, certifications, training_guides)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		path.Department,
		path.Description,
		ranks,
		certifications,
		guides,
	).Scan(&path.ID, &path.CreatedAt, &path.UpdatedAt)
}

func (r *careerPathRepository) Update(ctx context.Context, path *domain.CareerPath) error {
	ranks, certifications, guides, err := marshalCareerPathEmbeds(path)
	if err != nil {
		return err
	}
	const query = `
        UPDATE career_paths SET description=$1, ranks=$2, certifications=$3,
            training_guides=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		path.Description,
		ranks,
		certifications,
		guides,
		path.ID,
	).Scan(&path.UpdatedAt)
}

func (r *careerPathRepository) GetByID(ctx context.Context, id string) (*domain.CareerPath, error) {
	const query = `SELECT ` + careerPathColumns + ` FROM career_paths WHERE id=$1`
	return scanCareerPath(r.pool.QueryRow(ctx, query, id))
}

func (r *careerPathRepository) GetByDepartment(ctx context.Context, department string) (*domain.CareerPath, error) {
	const query = `SELECT ` + careerPathColumns + ` FROM career_paths WHERE LOWER(department)=LOWER($1)`
	return scanCareerPath(r.pool.QueryRow(ctx, query, department))
}

func (r *careerPathRepository) List(ctx context.Context) ([]domain.CareerPath, error) {
	const query = `SELECT ` + careerPathColumns + ` FROM career_paths ORDER BY department ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CareerPath
	for rows.Next() {
		path, err := scanCareerPath(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *path)
	}
	return result, rows.Err()
}

func (r *careerPathRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM career_paths WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func marshalCareerPathEmbeds(path *domain.CareerPath) ([]byte, []byte, []byte, error) {
	ranks, err := json.Marshal(path.Ranks)
	if err != nil {
		return nil, nil, nil, err
	}
	certifications, err := json.Marshal(path.Certifications)
	if err != nil {
		return nil, nil, nil, err
	}
	guides, err := json.Marshal(path.TrainingGuides)
	if err != nil {
		return nil, nil, nil, err
	}
	return ranks, certifications, guides, nil
}

func scanCareerPath(row pgx.Row) (*domain.CareerPath, error) {
	var path domain.CareerPath
	var ranks, certifications, guides []byte
	if err := row.Scan(
		&path.ID,
		&path.Department,
		&path.Description,
		&ranks,
		&certifications,
		&guides,
		&path.CreatedAt,
		&path.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(ranks) > 0 {
		if err := json.Unmarshal(ranks, &path.Ranks); err != nil {
			return nil, err
		}
	}
	if len(certifications) > 0 {
		if err := json.Unmarshal(certifications, &path.Certifications); err != nil {
			return nil, err
		}
	}
	if len(guides) > 0 {
		if err := json.Unmarshal(guides, &path.TrainingGuides); err != nil {
			return nil, err
		}
	}
	return &path, nil
}
