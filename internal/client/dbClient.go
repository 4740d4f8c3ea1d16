package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/model"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialect hides what differs between the two supported backends. Placeholder
// style, autoincrement columns and upsert syntax are rendered by the gorm
// dialector; the rest is exposed here.
type Dialect interface {
	Name() string
	Dialector() gorm.Dialector
	// Greatest renders a SQL expression for the larger of two operands.
	Greatest(a, b string) string
	IsUniqueViolation(err error) bool
}

func NewDialect(cfg *config.Database) Dialect {
	if cfg.ResolvedDriver() == config.DriverMySQL {
		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.DBName = cfg.Name
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return &mysqlDialect{cfg: mc}
	}
	return &sqliteDialect{path: cfg.Path}
}

type sqliteDialect struct {
	path string
}

func (d *sqliteDialect) Name() string { return config.DriverSQLite }

func (d *sqliteDialect) Dialector() gorm.Dialector {
	sep := "?"
	if strings.Contains(d.path, "?") {
		sep = "&"
	}
	// foreign keys are off per connection by default in sqlite
	return sqlite.Open(d.path + sep + "_foreign_keys=on&_busy_timeout=5000")
}

func (d *sqliteDialect) Greatest(a, b string) string {
	return fmt.Sprintf("MAX(%s, %s)", a, b)
}

func (d *sqliteDialect) IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

type mysqlDialect struct {
	cfg *mysql.Config
}

func (d *mysqlDialect) Name() string { return config.DriverMySQL }

func (d *mysqlDialect) Dialector() gorm.Dialector {
	return gormmysql.Open(d.cfg.FormatDSN())
}

func (d *mysqlDialect) Greatest(a, b string) string {
	return fmt.Sprintf("GREATEST(%s, %s)", a, b)
}

func (d *mysqlDialect) IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Store is the relational store shared by every repository. Each call takes
// its own connection from the pool for the duration of the statement or
// transaction.
type Store struct {
	db      *gorm.DB
	dialect Dialect
}

func OpenStore(cfg *config.Database, gormLogger logger.Interface) (*Store, error) {
	dialect := NewDialect(cfg)

	db, err := gorm.Open(dialect.Dialector(), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if dialect.Name() == config.DriverSQLite {
		// one writer at a time; also keeps an in-memory database alive
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Store{db: db, dialect: dialect}, nil
}

// InitStore opens the configured backend and migrates every table.
func InitStore(ctx context.Context, cfg *config.Database, gormLogger logger.Interface) (*Store, error) {
	store, err := OpenStore(cfg, gormLogger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(model.Tables()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Transaction runs fn in a transaction that is committed when fn returns nil
// and rolled back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
