package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	hours "pantryHub/internal/modules/hours/domain"
	"pantryHub/internal/modules/pantries/domain"
)

// The hours column is json, not jsonb: jsonb reorders keys and the evaluator reports
// the first entry in the order staff wrote them.
const schema = `
CREATE TABLE IF NOT EXISTS pantries (
	id            uuid PRIMARY KEY,
	name          text NOT NULL,
	street        text NOT NULL,
	city          text NOT NULL,
	state         text NOT NULL,
	zip           text NOT NULL,
	lat           double precision NOT NULL DEFAULT 0,
	lon           double precision NOT NULL DEFAULT 0,
	hours         json,
	timezone      text NOT NULL DEFAULT '',
	contact_email text NOT NULL DEFAULT '',
	contact_phone text NOT NULL DEFAULT '',
	service_area  text[] NOT NULL DEFAULT '{}',
	status        text NOT NULL DEFAULT 'active',
	manager_id    text NOT NULL DEFAULT '',
	created_at    timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS inventory_items (
	id                  uuid PRIMARY KEY,
	pantry_id           uuid NOT NULL REFERENCES pantries(id) ON DELETE CASCADE,
	category            text NOT NULL,
	name                text NOT NULL,
	quantity            integer NOT NULL DEFAULT 0,
	unit                text NOT NULL,
	expiration_date     date,
	status              text NOT NULL DEFAULT 'available',
	is_surplus          boolean NOT NULL DEFAULT false,
	low_stock_threshold integer NOT NULL DEFAULT 10,
	notes               text NOT NULL DEFAULT '',
	last_updated        timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS inventory_items_pantry_id_idx ON inventory_items (pantry_id);
`

const pantryColumns = `id, name, street, city, state, zip, lat, lon, hours, timezone,
	contact_email, contact_phone, service_area, status, manager_id, created_at`

const itemColumns = `id, pantry_id, category, name, quantity, unit, expiration_date, status,
	is_surplus, low_stock_threshold, notes, last_updated`

// PostgresRepository stores pantries and inventory in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the tables when they do not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]domain.Pantry, error) {
	query := `SELECT ` + pantryColumns + ` FROM pantries WHERE status = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, string(domain.PantryStatusActive))
	if err != nil {
		return nil, fmt.Errorf("query pantries: %w", err)
	}
	defer rows.Close()

	pantries := make([]domain.Pantry, 0)
	for rows.Next() {
		p, err := scanPantry(rows)
		if err != nil {
			return nil, err
		}
		pantries = append(pantries, p)
	}
	return pantries, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Pantry, error) {
	query := `SELECT ` + pantryColumns + ` FROM pantries WHERE id = $1`

	p, err := scanPantry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPantryNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p domain.Pantry) error {
	raw, err := encodeHours(p.Hours)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO pantries (` + pantryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.Name, p.Street, p.City, p.State, p.Zip, p.Lat, p.Lon, raw, p.Timezone,
		p.ContactEmail, p.ContactPhone, serviceArea(p.ServiceArea), string(p.Status), p.ManagerID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pantry: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p domain.Pantry) error {
	raw, err := encodeHours(p.Hours)
	if err != nil {
		return err
	}
	query := `
		UPDATE pantries
		SET name = $1, street = $2, city = $3, state = $4, zip = $5, lat = $6, lon = $7, hours = $8,
		    timezone = $9, contact_email = $10, contact_phone = $11, service_area = $12, status = $13,
		    manager_id = $14
		WHERE id = $15
	`
	result, err := r.db.Exec(ctx, query,
		p.Name, p.Street, p.City, p.State, p.Zip, p.Lat, p.Lon, raw,
		p.Timezone, p.ContactEmail, p.ContactPhone, serviceArea(p.ServiceArea), string(p.Status),
		p.ManagerID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update pantry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPantryNotFound
	}
	return nil
}

// Inventory returns the inventory side of the repository.
func (r *PostgresRepository) Inventory() *PostgresInventory {
	return &PostgresInventory{db: r.db}
}

// PostgresInventory stores inventory items in PostgreSQL.
type PostgresInventory struct {
	db *pgxpool.Pool
}

func (r *PostgresInventory) ListByPantry(ctx context.Context, pantryID uuid.UUID) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE pantry_id = $1 ORDER BY last_updated, id`
	return r.list(ctx, query, pantryID)
}

func (r *PostgresInventory) ListByPantries(ctx context.Context, pantryIDs []uuid.UUID) (map[uuid.UUID][]domain.InventoryItem, error) {
	out := make(map[uuid.UUID][]domain.InventoryItem, len(pantryIDs))
	if len(pantryIDs) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(pantryIDs))
	for _, id := range pantryIDs {
		ids = append(ids, id.String())
	}
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE pantry_id = ANY($1::uuid[]) ORDER BY last_updated, id`
	items, err := r.list(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.PantryID] = append(out[item.PantryID], item)
	}
	return out, nil
}

func (r *PostgresInventory) Get(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresInventory) Create(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.PantryID, item.Category, item.Name, item.Quantity, item.Unit, item.ExpirationDate,
		string(item.Status), item.IsSurplus, item.LowStockThreshold, item.Notes, item.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *PostgresInventory) Update(ctx context.Context, item domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET category = $1, name = $2, quantity = $3, unit = $4, expiration_date = $5, status = $6,
		    is_surplus = $7, low_stock_threshold = $8, notes = $9, last_updated = $10
		WHERE id = $11
	`
	result, err := r.db.Exec(ctx, query,
		item.Category, item.Name, item.Quantity, item.Unit, item.ExpirationDate, string(item.Status),
		item.IsSurplus, item.LowStockThreshold, item.Notes, item.LastUpdated, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrInventoryItemNotFound
	}
	return nil
}

func (r *PostgresInventory) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrInventoryItemNotFound
	}
	return nil
}

func (r *PostgresInventory) list(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanPantry(row pgx.Row) (domain.Pantry, error) {
	var (
		p         domain.Pantry
		rawHours  []byte
		status    string
		createdAt time.Time
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Street,
		&p.City,
		&p.State,
		&p.Zip,
		&p.Lat,
		&p.Lon,
		&rawHours,
		&p.Timezone,
		&p.ContactEmail,
		&p.ContactPhone,
		&p.ServiceArea,
		&status,
		&p.ManagerID,
		&createdAt,
	)
	if err != nil {
		return domain.Pantry{}, err
	}
	if len(rawHours) > 0 {
		if err := json.Unmarshal(rawHours, &p.Hours); err != nil {
			return domain.Pantry{}, fmt.Errorf("decode hours of pantry %s: %w", p.ID, err)
		}
	}
	p.Status = domain.NormalizePantryStatus(status)
	p.CreatedAt = createdAt.UTC()
	return p, nil
}

func scanItem(row pgx.Row) (domain.InventoryItem, error) {
	var (
		item   domain.InventoryItem
		status string
	)
	err := row.Scan(
		&item.ID,
		&item.PantryID,
		&item.Category,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.ExpirationDate,
		&status,
		&item.IsSurplus,
		&item.LowStockThreshold,
		&item.Notes,
		&item.LastUpdated,
	)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	item.Status = domain.NormalizeItemStatus(status)
	item.LastUpdated = item.LastUpdated.UTC()
	return item, nil
}

// encodeHours keeps an absent schedule as SQL NULL so it reads back as absent.
func encodeHours(schedule hours.WeeklySchedule) (any, error) {
	if schedule == nil {
		return nil, nil
	}
	raw, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("encode hours: %w", err)
	}
	return string(raw), nil
}

func serviceArea(area []string) []string {
	if area == nil {
		return []string{}
	}
	return area
}
