// Package catalog records emitted surface-brightness images in a SQLite
// database so runs can be listed and traced back to their parameters.
package catalog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned by Get for an unknown product.
var ErrNotFound = errors.New("product not found")

// Product is one emitted image.
type Product struct {
	ProductID       string
	RunID           string
	Band            string
	Path            string
	PivotAngstrom   float64
	Redshift        float64
	Airmass         float64
	Rows            int
	Cols            int
	UndefinedPixels int
	CreatedAtNs     int64
}

// Store provides persistence for products.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the catalogue at path and brings its
// schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load catalog migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	// Note: m is not closed because that would close db.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}

// NewRunID returns an identifier grouping the products of one run.
func NewRunID() string {
	return uuid.NewString()
}

// Insert records p. Empty ProductID and zero CreatedAtNs are filled in.
// Safe for concurrent use by band workers.
func (s *Store) Insert(p *Product) error {
	if p.ProductID == "" {
		p.ProductID = uuid.New().String()
	}
	if p.CreatedAtNs == 0 {
		p.CreatedAtNs = time.Now().UnixNano()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO products (
			product_id, run_id, band, path, pivot_angstrom, redshift, airmass,
			n_rows, n_cols, undefined_pixels, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ProductID, p.RunID, p.Band, p.Path, p.PivotAngstrom, p.Redshift, p.Airmass,
		p.Rows, p.Cols, p.UndefinedPixels, p.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

const selectProduct = `
	SELECT product_id, run_id, band, path, pivot_angstrom, redshift, airmass,
	       n_rows, n_cols, undefined_pixels, created_at_ns
	FROM products
`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ProductID, &p.RunID, &p.Band, &p.Path, &p.PivotAngstrom, &p.Redshift, &p.Airmass,
		&p.Rows, &p.Cols, &p.UndefinedPixels, &p.CreatedAtNs,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get retrieves a product by ID.
func (s *Store) Get(productID string) (*Product, error) {
	p, err := scanProduct(s.db.QueryRow(selectProduct+"WHERE product_id = ?", productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByRun returns the products of a run in band order.
func (s *Store) ListByRun(runID string) ([]*Product, error) {
	return s.list(selectProduct+"WHERE run_id = ? ORDER BY band", runID)
}

// ListByBand returns every product of a band, newest first.
func (s *Store) ListByBand(band string) ([]*Product, error) {
	return s.list(selectProduct+"WHERE band = ? ORDER BY created_at_ns DESC", band)
}

// ListAll returns every product, newest first.
func (s *Store) ListAll() ([]*Product, error) {
	return s.list(selectProduct + "ORDER BY created_at_ns DESC, band")
}

func (s *Store) list(query string, args ...any) ([]*Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
