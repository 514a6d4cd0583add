// Package repo contains all database access logic for the tourism portal.
// Every category is a table of identical shape, so a single PlaceRepo serves
// them all; the category picks the table from a fixed whitelist.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/munifrias/turismo/internal/domain"
)

// uniqueViolation is the SQLSTATE Postgres reports for a UNIQUE constraint.
const uniqueViolation = "23505"

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlaceRepo defines the persistence operations for points of interest.
// The service layer depends on this interface so it can be tested with a mock.
type PlaceRepo interface {
	// Create inserts a new record and returns it with the DB-generated id and
	// timestamps. A duplicate slug in the same category yields domain.ErrSlugConflict.
	Create(ctx context.Context, p domain.Place) (domain.Place, error)

	// GetByID returns domain.ErrNotFound if no record has that id.
	GetByID(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error)

	// GetBySlug returns domain.ErrNotFound if no record has that slug.
	GetBySlug(ctx context.Context, c domain.Category, slug string) (domain.Place, error)

	// ListPaged returns one page of records ordered by name, and the total count.
	ListPaged(ctx context.Context, c domain.Category, p domain.PaginationParams) ([]domain.Place, int64, error)

	// Update overwrites the mutable fields of a record. Returns
	// domain.ErrNotFound if it does not exist and domain.ErrSlugConflict if
	// the new slug is held by another record.
	Update(ctx context.Context, p domain.Place) (domain.Place, error)

	// Delete removes a record. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, c domain.Category, id uuid.UUID) error

	// SlugTaken reports whether a record other than excluding holds slug.
	// Comparison is exact and case-sensitive. Pass a nil excluding on create.
	SlugTaken(ctx context.Context, c domain.Category, slug string, excluding *uuid.UUID) (bool, error)
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

const placeColumns = `id, nombre, slug, descripcion, atributos, imagenes, created_at, updated_at`

// table returns the quoted table name for c, or an error for an unknown category.
func table(c domain.Category) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	return pgx.Identifier{c.Table()}.Sanitize(), nil
}

// Create inserts a new row and returns the persisted record.
func (r *pgPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	t, err := table(p.Category)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: %w", err)
	}

	q := `
		INSERT INTO ` + t + ` (nombre, slug, descripcion, atributos, imagenes)
		VALUES (@nombre, @slug, @descripcion, @atributos, @imagenes)
		RETURNING ` + placeColumns

	row := r.db.QueryRow(ctx, q, writeArgs(p))
	result, err := scanPlace(row, p.Category)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

// GetByID retrieves a record by primary key.
func (r *pgPlaceRepo) GetByID(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error) {
	t, err := table(c)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}

	q := `SELECT ` + placeColumns + ` FROM ` + t + ` WHERE id = @id`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}), c)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a record by its public slug.
func (r *pgPlaceRepo) GetBySlug(ctx context.Context, c domain.Category, slug string) (domain.Place, error) {
	t, err := table(c)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetBySlug: %w", err)
	}

	q := `SELECT ` + placeColumns + ` FROM ` + t + ` WHERE slug = @slug`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}), c)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of records ordered by name, then slug for a
// stable order between equal names.
func (r *pgPlaceRepo) ListPaged(ctx context.Context, c domain.Category, p domain.PaginationParams) ([]domain.Place, int64, error) {
	t, err := table(c)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM `+t).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: count: %w", err)
	}

	q := `
		SELECT ` + placeColumns + `
		FROM ` + t + `
		ORDER BY nombre, slug
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		place, err := scanPlace(rows, c)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: scan: %w", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: rows: %w", err)
	}
	return places, total, nil
}

// Update overwrites the mutable fields of a record and returns the result.
func (r *pgPlaceRepo) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	t, err := table(p.Category)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Update: %w", err)
	}

	q := `
		UPDATE ` + t + `
		SET nombre      = @nombre,
		    slug        = @slug,
		    descripcion = @descripcion,
		    atributos   = @atributos,
		    imagenes    = @imagenes,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + placeColumns

	args := writeArgs(p)
	args["id"] = p.ID

	result, err := scanPlace(r.db.QueryRow(ctx, q, args), p.Category)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Update: %w", mapWriteErr(err))
	}
	return result, nil
}

// Delete removes a record by primary key.
func (r *pgPlaceRepo) Delete(ctx context.Context, c domain.Category, id uuid.UUID) error {
	t, err := table(c)
	if err != nil {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM `+t+` WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// SlugTaken runs the existence query behind the slug guard.
// A NULL @excluding matches every row.
func (r *pgPlaceRepo) SlugTaken(ctx context.Context, c domain.Category, slug string, excluding *uuid.UUID) (bool, error) {
	t, err := table(c)
	if err != nil {
		return false, fmt.Errorf("repo.PlaceRepo.SlugTaken: %w", err)
	}

	q := `
		SELECT EXISTS (
			SELECT 1 FROM ` + t + `
			WHERE slug = @slug
			  AND (@excluding::uuid IS NULL OR id <> @excluding::uuid)
		)`

	var taken bool
	err = r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug, "excluding": excluding}).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("repo.PlaceRepo.SlugTaken: %w", err)
	}
	return taken, nil
}

// writeArgs builds the named arguments shared by insert and update.
// NOT NULL columns get empty values instead of nil.
func writeArgs(p domain.Place) pgx.NamedArgs {
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return pgx.NamedArgs{
		"nombre":      p.Name,
		"slug":        p.Slug,
		"descripcion": p.Description,
		"atributos":   attrs,
		"imagenes":    images,
	}
}

// mapWriteErr turns a unique violation into domain.ErrSlugConflict; slug is
// the only unique column besides the primary key.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrSlugConflict
	}
	return err
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlace maps a single row into a domain.Place of category c.
func scanPlace(s scanner, c domain.Category) (domain.Place, error) {
	var (
		p  domain.Place
		id pgtype.UUID
	)
	err := s.Scan(&id, &p.Name, &p.Slug, &p.Description, &p.Attributes, &p.Images, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.Category = c
	return p, nil
}
