package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

// Common errors
var (
	ErrNotFound = errors.New("record not found")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// CatalogueRepository handles catalogue record and variant persistence.
// Nested size, chassis and selection data is stored as JSON documents.
type CatalogueRepository struct {
	db DB
}

// NewCatalogueRepository creates a new catalogue repository.
func NewCatalogueRepository(db DB) *CatalogueRepository {
	return &CatalogueRepository{db: db}
}

// Create inserts a catalogue record.
func (r *CatalogueRepository) Create(ctx context.Context, rec catalogue.CatalogueRecord) error {
	sizes, err := json.Marshal(rec.Sizes)
	if err != nil {
		return fmt.Errorf("marshal sizes: %w", err)
	}
	chassis, err := json.Marshal(rec.Chassis)
	if err != nil {
		return fmt.Errorf("marshal chassis: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO catalogues (id, body_type_id, body_type_name, body_type_short_name,
			article, lead_time, notes, sizes, chassis, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.BodyType.ID, rec.BodyType.Name, rec.BodyType.ShortName,
		rec.Article, rec.LeadTime, rec.Notes, string(sizes), string(chassis), now, now,
	)
	return err
}

// List retrieves all catalogue records in insertion order.
func (r *CatalogueRepository) List(ctx context.Context) ([]catalogue.CatalogueRecord, error) {
	query := `
		SELECT id, body_type_id, body_type_name, body_type_short_name,
			article, lead_time, notes, sizes, chassis
		FROM catalogues ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []catalogue.CatalogueRecord
	for rows.Next() {
		rec, err := scanCatalogue(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetByID retrieves one catalogue record.
func (r *CatalogueRepository) GetByID(ctx context.Context, id string) (*catalogue.CatalogueRecord, error) {
	query := `
		SELECT id, body_type_id, body_type_name, body_type_short_name,
			article, lead_time, notes, sizes, chassis
		FROM catalogues WHERE id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	rec, err := scanCatalogue(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateVariant inserts a variant combination for a catalogue record.
func (r *CatalogueRepository) CreateVariant(ctx context.Context, catalogueID string, position int, v catalogue.VariantCombination) error {
	sizeData, err := json.Marshal(v.SizeData)
	if err != nil {
		return fmt.Errorf("marshal size data: %w", err)
	}
	chassisData, err := json.Marshal(v.ChassisData)
	if err != nil {
		return fmt.Errorf("marshal chassis data: %w", err)
	}
	selections, err := json.Marshal(v.VariantSelections)
	if err != nil {
		return fmt.Errorf("marshal variant selections: %w", err)
	}

	query := `
		INSERT INTO variant_combinations (combination_id, catalogue_id, size_data,
			chassis_data, variant_selections, price, base_model, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		v.CombinationID, catalogueID, string(sizeData), string(chassisData),
		string(selections), v.Price, v.BaseModel, position,
	)
	return err
}

// VariantsByCatalogue retrieves a record's variant combinations in their
// stored order.
func (r *CatalogueRepository) VariantsByCatalogue(ctx context.Context, catalogueID string) ([]catalogue.VariantCombination, error) {
	query := `
		SELECT combination_id, size_data, chassis_data, variant_selections, price, base_model
		FROM variant_combinations WHERE catalogue_id = $1 ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, catalogueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []catalogue.VariantCombination
	for rows.Next() {
		var v catalogue.VariantCombination
		var sizeData, chassisData, selections sql.NullString
		if err := rows.Scan(&v.CombinationID, &sizeData, &chassisData, &selections, &v.Price, &v.BaseModel); err != nil {
			return nil, err
		}
		if err := unmarshalColumn(sizeData, &v.SizeData); err != nil {
			return nil, fmt.Errorf("variant %s size data: %w", v.CombinationID, err)
		}
		if err := unmarshalColumn(chassisData, &v.ChassisData); err != nil {
			return nil, fmt.Errorf("variant %s chassis data: %w", v.CombinationID, err)
		}
		if err := unmarshalColumn(selections, &v.VariantSelections); err != nil {
			return nil, fmt.Errorf("variant %s selections: %w", v.CombinationID, err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func scanCatalogue(rows *sql.Rows) (catalogue.CatalogueRecord, error) {
	var rec catalogue.CatalogueRecord
	var bodyTypeID, bodyTypeName, bodyTypeShort sql.NullString
	var article, leadTime, notes, sizes, chassis sql.NullString

	if err := rows.Scan(&rec.ID, &bodyTypeID, &bodyTypeName, &bodyTypeShort,
		&article, &leadTime, &notes, &sizes, &chassis); err != nil {
		return rec, err
	}

	rec.BodyType = catalogue.TypeRef{
		ID:        bodyTypeID.String,
		Name:      bodyTypeName.String,
		ShortName: bodyTypeShort.String,
	}
	rec.Article = article.String
	rec.LeadTime = leadTime.String
	rec.Notes = notes.String

	if err := unmarshalColumn(sizes, &rec.Sizes); err != nil {
		return rec, fmt.Errorf("catalogue %s sizes: %w", rec.ID, err)
	}
	if err := unmarshalColumn(chassis, &rec.Chassis); err != nil {
		return rec, fmt.Errorf("catalogue %s chassis: %w", rec.ID, err)
	}
	return rec, nil
}

// unmarshalColumn decodes a nullable JSON column into dst, leaving dst
// untouched for NULL or empty columns.
func unmarshalColumn(col sql.NullString, dst interface{}) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}
