package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pantryHub/internal/modules/donors/domain"
)

// The pantries table must exist first; the pantry store's EnsureSchema creates it.
const schema = `
CREATE TABLE IF NOT EXISTS donors (
	id                   uuid PRIMARY KEY,
	pantry_id            uuid NOT NULL REFERENCES pantries(id) ON DELETE CASCADE,
	name                 text NOT NULL,
	email                text NOT NULL,
	phone                text NOT NULL DEFAULT '',
	organization         text NOT NULL DEFAULT '',
	preferred_categories text[] NOT NULL DEFAULT '{}',
	status               text NOT NULL DEFAULT 'active',
	created_at           timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS donors_pantry_id_idx ON donors (pantry_id);
`

const donorColumns = `id, pantry_id, name, email, phone, organization, preferred_categories, status, created_at`

// PostgresRepository stores donors in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the donors table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure donors schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByPantry(ctx context.Context, pantryID uuid.UUID) ([]domain.Donor, error) {
	query := `SELECT ` + donorColumns + ` FROM donors WHERE pantry_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, pantryID)
	if err != nil {
		return nil, fmt.Errorf("query donors: %w", err)
	}
	defer rows.Close()

	donors := make([]domain.Donor, 0)
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	return donors, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	query := `SELECT ` + donorColumns + ` FROM donors WHERE id = $1`

	d, err := scanDonor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDonorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d domain.Donor) error {
	query := `
		INSERT INTO donors (` + donorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.PantryID, d.Name, d.Email, d.Phone, d.Organization, categories(d.PreferredCategories),
		string(d.Status), d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, d domain.Donor) error {
	query := `
		UPDATE donors
		SET name = $1, email = $2, phone = $3, organization = $4, preferred_categories = $5, status = $6
		WHERE id = $7
	`
	result, err := r.db.Exec(ctx, query,
		d.Name, d.Email, d.Phone, d.Organization, categories(d.PreferredCategories), string(d.Status), d.ID,
	)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrDonorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM donors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrDonorNotFound
	}
	return nil
}

func scanDonor(row pgx.Row) (domain.Donor, error) {
	var (
		d      domain.Donor
		status string
	)
	err := row.Scan(
		&d.ID,
		&d.PantryID,
		&d.Name,
		&d.Email,
		&d.Phone,
		&d.Organization,
		&d.PreferredCategories,
		&status,
		&d.CreatedAt,
	)
	if err != nil {
		return domain.Donor{}, err
	}
	if len(d.PreferredCategories) == 0 {
		d.PreferredCategories = nil
	}
	d.Status = domain.NormalizeDonorStatus(status)
	d.CreatedAt = d.CreatedAt.UTC()
	return d, nil
}

func categories(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
