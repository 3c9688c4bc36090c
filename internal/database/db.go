package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/justsurfingit/job-portal/internal/config"
	"github.com/justsurfingit/job-portal/internal/store"
	mongostore "github.com/justsurfingit/job-portal/internal/store/mongo"
	pgstore "github.com/justsurfingit/job-portal/internal/store/postgres"
)

const connectTimeout = 30 * time.Second

// Connect opens the configured backend once and returns the store every
// handler shares for the life of the process.
func Connect(ctx context.Context, cfg config.Config, log *logrus.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoConnectionURI())
		if err != nil {
			return nil, err
		}
		log.WithField("database", cfg.DBName).Info("Connected to MongoDB")
		return mongostore.New(client, cfg.DBName, log), nil

	case config.DriverPostgres:
		db, err := ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info("Database connection established")

		s := pgstore.New(db)
		log.Info("Running Migrations...")
		if err := s.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// ConnectMongo dials uri using the stable v1 server API and verifies the
// connection with a ping against the primary.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func ConnectPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
