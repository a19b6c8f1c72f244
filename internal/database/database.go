// Package database selects and opens the gem store named by DATABASE_URL.
package database

import (
	"context"
	"fmt"
	"strings"

	"gemstone/internal/config"
	"gemstone/internal/logger"
	"gemstone/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Backend names as reported by Detect.
const (
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Detect maps a connection string to a backend name, or "" when the scheme
// is not supported.
func Detect(url string) string {
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return BackendMongo
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"):
		return BackendSQLite
	default:
		return ""
	}
}

// Open returns the store for cfg. Without a connection string, or when the
// configured store cannot be reached, it falls back to the read-only sample
// catalog so the service still starts.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) repositories.GemRepository {
	if !cfg.HasDatabase() {
		log.Warn("DATABASE_URL not set, serving sample gems")
		return repositories.NewSampleGemRepository()
	}

	backend := Detect(cfg.DatabaseURL)
	var (
		repo repositories.GemRepository
		err  error
	)
	switch backend {
	case BackendMongo:
		repo, err = openMongo(ctx, cfg)
	case BackendPostgres:
		repo, err = openGORM(postgres.Open(cfg.DatabaseURL), cfg)
	case BackendSQLite:
		repo, err = openGORM(sqlite.Open(sqliteDSN(cfg.DatabaseURL)), cfg)
	default:
		err = fmt.Errorf("unsupported DATABASE_URL scheme")
	}
	if err != nil {
		log.Warn("database unavailable, serving sample gems", "backend", backend, "error", err)
		return repositories.NewSampleGemRepository()
	}

	log.Info("database connected", "backend", backend)
	return repo
}

func openMongo(ctx context.Context, cfg *config.Config) (*repositories.MongoGemRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()

	name, err := mongoDatabaseName(cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}

	opts := options.Client().
		ApplyURI(cfg.DatabaseURL).
		SetServerSelectionTimeout(cfg.DBTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return repositories.NewMongoGemRepository(client.Database(name), cfg.DBTimeout), nil
}

// mongoDatabaseName prefers the database in the URI path over fallback.
func mongoDatabaseName(uri, fallback string) (string, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongodb uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return fallback, nil
}

func openGORM(dialector gorm.Dialector, cfg *config.Config) (*repositories.GORMGemRepository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialector.Name(), err)
	}

	repo := repositories.NewGORMGemRepository(db, cfg.DBTimeout)
	if err := repo.AutoMigrate(); err != nil {
		_ = repo.Close(context.Background())
		return nil, fmt.Errorf("failed to migrate %s: %w", dialector.Name(), err)
	}
	return repo, nil
}

func sqliteDSN(url string) string {
	return strings.TrimPrefix(url, "sqlite://")
}
