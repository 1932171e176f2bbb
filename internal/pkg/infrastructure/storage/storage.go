package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows        = errors.New("no rows in result set")
	ErrQueryRow      = errors.New("could not execute query")
	ErrStoreFailed   = errors.New("could not store data")
	ErrNoID          = errors.New("data contains no id")
	ErrMissingTenant = errors.New("missing tenant information")
	ErrAlreadyExists = errors.New("an active alert already exists for this threshold")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.createTables(ctx)
}

func (s *Storage) createTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tenants (
			tenant		TEXT NOT NULL,
			active		BOOLEAN NOT NULL DEFAULT TRUE,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_tenants PRIMARY KEY (tenant)
		);

		CREATE TABLE IF NOT EXISTS datasources (
			datasource_id	TEXT NOT NULL,
			tenant			TEXT NOT NULL,
			url				TEXT NOT NULL,
			database_name	TEXT NOT NULL,
			username		TEXT NOT NULL,
			password		TEXT NOT NULL,
			insecure		BOOLEAN NOT NULL DEFAULT FALSE,
			created_on  	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_datasources PRIMARY KEY (datasource_id)
		);

		CREATE TABLE IF NOT EXISTS sensor_thresholds (
			threshold_id	TEXT NOT NULL,
			tenant			TEXT NOT NULL,
			device_id		TEXT NOT NULL,
			measurement		TEXT NOT NULL,
			field			TEXT NOT NULL,
			device_column	TEXT NOT NULL,
			upper_limit		NUMERIC NULL,
			lower_limit		NUMERIC NULL,
			datasource_id	TEXT NOT NULL,
			enabled			BOOLEAN NOT NULL DEFAULT TRUE,
			created_on  	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_sensor_thresholds PRIMARY KEY (threshold_id)
		);

		CREATE TABLE IF NOT EXISTS alerts (
			alert_id				TEXT NOT NULL,
			threshold_id			TEXT NOT NULL,
			tenant					TEXT NOT NULL,
			status					TEXT NOT NULL,
			breach_type				TEXT NOT NULL,
			breach_value			NUMERIC NOT NULL,
			limit_value				NUMERIC NOT NULL,
			created_at				timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			escalated_to_medium_at	timestamp with time zone NULL,
			escalated_to_high_at	timestamp with time zone NULL,
			resolved_at				timestamp with time zone NULL,
			CONSTRAINT pkey_alerts PRIMARY KEY (alert_id)
		);

		CREATE UNIQUE INDEX IF NOT EXISTS alerts_active_threshold_idx
			ON alerts (threshold_id)
			WHERE status IN ('initial', 'medium', 'high');

		CREATE INDEX IF NOT EXISTS alerts_tenant_idx ON alerts (tenant);
		CREATE INDEX IF NOT EXISTS sensor_thresholds_tenant_enabled_idx ON sensor_thresholds (tenant) WHERE enabled;
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
