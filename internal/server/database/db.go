// Package database is the bun/SQLite storage layer of the travel agency
// backend.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// BunDB wraps bun.DB and provides repository access
type BunDB struct {
	db *bun.DB

	Users     *UserRepository
	Tours     *TourRepository
	Flights   *FlightRepository
	Requests  *RequestRepository
	Employees *EmployeeRepository
	Clients   *ClientRepository
	Favorites *FavoriteRepository
}

// Option is a functional option for configuring the database
type Option func(*BunDB)

// WithDebug enables query logging for debugging
func WithDebug(enabled bool) Option {
	return func(db *BunDB) {
		if enabled {
			db.db.AddQueryHook(bundebug.NewQueryHook(
				bundebug.WithVerbose(true),
			))
			log.Info().Msg("Bun query logging enabled")
		}
	}
}

// New creates a new Bun-based database connection. Use ":memory:" for an
// in-memory database in tests.
func New(dbPath string, opts ...Option) (*BunDB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles one writer at a time; pinning the pool to a single
	// connection also keeps ":memory:" databases from splitting per-conn.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	bunDB := &BunDB{db: db}

	for _, opt := range opts {
		opt(bunDB)
	}

	bunDB.Users = NewUserRepository(db)
	bunDB.Tours = NewTourRepository(db)
	bunDB.Flights = NewFlightRepository(db)
	bunDB.Requests = NewRequestRepository(db)
	bunDB.Employees = NewEmployeeRepository(db)
	bunDB.Clients = NewClientRepository(db)
	bunDB.Favorites = NewFavoriteRepository(db)

	if err := bunDB.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("Database initialized")
	return bunDB, nil
}

// Close closes the database connection
func (db *BunDB) Close() error {
	return db.db.Close()
}

// DB returns the underlying bun.DB instance for advanced operations
func (db *BunDB) DB() *bun.DB {
	return db.db
}

// Migrate creates the schema.
func (db *BunDB) Migrate(ctx context.Context) error {
	models := []interface{}{
		(*User)(nil),
		(*Tour)(nil),
		(*TourFlight)(nil),
		(*Flight)(nil),
		(*ClientRequest)(nil),
		(*Employee)(nil),
		(*Client)(nil),
		(*Favorite)(nil),
	}

	for _, model := range models {
		if _, err := db.db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_tours_destination ON tours(destination_city)",
		"CREATE INDEX IF NOT EXISTS idx_tours_active ON tours(active)",
		"CREATE INDEX IF NOT EXISTS idx_tour_flights_tour_id ON tour_flights(tour_id)",
		"CREATE INDEX IF NOT EXISTS idx_flights_airports ON flights(departure_airport_code, arrival_airport_code)",
		"CREATE INDEX IF NOT EXISTS idx_requests_tour_id ON client_requests(tour_id)",
		"CREATE INDEX IF NOT EXISTS idx_requests_status ON client_requests(status)",
		"CREATE INDEX IF NOT EXISTS idx_requests_employee_id ON client_requests(employee_id)",
		"CREATE INDEX IF NOT EXISTS idx_requests_user_id ON client_requests(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_employees_username ON employees(username)",
		"CREATE INDEX IF NOT EXISTS idx_clients_email ON clients(email)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_user_tour ON favorites(user_id, tour_id)",
	}

	for _, idx := range indexes {
		if _, err := db.db.ExecContext(ctx, idx); err != nil {
			log.Warn().Err(err).Str("index", idx).Msg("Failed to create index (may already exist)")
		}
	}

	return nil
}

// BeginTx starts a new transaction
func (db *BunDB) BeginTx(ctx context.Context) (bun.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}
