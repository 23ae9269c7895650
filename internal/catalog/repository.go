// Package catalog serves the agency's packages, add-ons and services from a
// SQLite database seeded by migrations.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/somnath11som/webeF/internal/domain"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("catalog entry not found")

// CategoryAll lists every service.
const CategoryAll = "all"

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{MigrationsTable: "catalog_schema_migrations"})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) ListPackages(ctx context.Context) ([]domain.Package, error) {
	query := `
		SELECT id, name, description, monthly, annual, popular, features
		FROM packages
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	packages := make([]domain.Package, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return packages, nil
}

func (r *Repository) GetPackage(ctx context.Context, id string) (domain.Package, error) {
	query := `
		SELECT id, name, description, monthly, annual, popular, features
		FROM packages
		WHERE id = ?
	`
	p, err := scanPackage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Package{}, fmt.Errorf("package %q: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *Repository) ListAddOns(ctx context.Context) ([]domain.AddOn, error) {
	query := `
		SELECT id, name, description, monthly, annual
		FROM addons
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query add-ons: %w", err)
	}
	defer rows.Close()

	addOns := make([]domain.AddOn, 0)
	for rows.Next() {
		var a domain.AddOn
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Monthly, &a.Annual); err != nil {
			return nil, fmt.Errorf("failed to scan add-on: %w", err)
		}
		addOns = append(addOns, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return addOns, nil
}

func (r *Repository) GetAddOn(ctx context.Context, id string) (domain.AddOn, error) {
	query := `
		SELECT id, name, description, monthly, annual
		FROM addons
		WHERE id = ?
	`
	var a domain.AddOn
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Description, &a.Monthly, &a.Annual)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AddOn{}, fmt.Errorf("add-on %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.AddOn{}, fmt.Errorf("failed to query add-on: %w", err)
	}
	return a, nil
}

// ListServices returns the services of category, or all of them for "" and
// "all".
func (r *Repository) ListServices(ctx context.Context, category string) ([]domain.Service, error) {
	query := `
		SELECT id, title, description, category, features, basic, business, corporate
		FROM services
	`
	var args []any
	if category != "" && category != CategoryAll {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return services, nil
}

func (r *Repository) GetService(ctx context.Context, id string) (domain.Service, error) {
	query := `
		SELECT id, title, description, category, features, basic, business, corporate
		FROM services
		WHERE id = ?
	`
	s, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Service{}, fmt.Errorf("service %q: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPackage(row scanner) (domain.Package, error) {
	var (
		p        domain.Package
		popular  int
		features string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Monthly, &p.Annual, &popular, &features); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan package: %w", err)
	}
	p.Popular = popular != 0
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		return p, fmt.Errorf("unmarshal package features: %w", err)
	}
	return p, nil
}

func scanService(row scanner) (domain.Service, error) {
	var (
		s                          domain.Service
		features                   string
		basic, business, corporate float64
	)
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &features, &basic, &business, &corporate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("failed to scan service: %w", err)
	}
	if err := json.Unmarshal([]byte(features), &s.Features); err != nil {
		return s, fmt.Errorf("unmarshal service features: %w", err)
	}
	s.Pricing = map[domain.Tier]float64{
		domain.TierBasic:     basic,
		domain.TierBusiness:  business,
		domain.TierCorporate: corporate,
	}
	return s, nil
}
