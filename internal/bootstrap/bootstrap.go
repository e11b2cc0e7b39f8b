// Package bootstrap wires configuration into the services shared by the API
// server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Fraud-stop/shield-wise-guard/internal/config"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/cache"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/database"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/database/repository"
	"github.com/Fraud-stop/shield-wise-guard/internal/streaming"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// Infrastructure holds the optional external connections. Any field may be
// nil when the dependency is disabled or unreachable.
type Infrastructure struct {
	DB    *database.PostgresDB
	Redis *cache.RedisCache
	NATS  *streaming.NATSPublisher
}

// Connect opens the enabled dependencies. Failures degrade to in-memory
// operation with a warning, except Postgres when it is the reference source.
func Connect(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{}

	if cfg.Database.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database, log)
		switch {
		case err != nil && cfg.Reference.Source == config.ReferenceSourcePostgres:
			return nil, fmt.Errorf("reference source unavailable: %w", err)
		case err != nil:
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
		default:
			infra.DB = db
		}
	}

	if cfg.Redis.Enabled {
		rc, err := cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, using in-memory sessions and rate limits")
		} else {
			infra.Redis = rc
		}
	}

	if cfg.NATS.Enabled {
		np, err := streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, alerts stay local to this instance")
		} else {
			infra.NATS = np
		}
	}

	return infra, nil
}

// Close releases every open connection. NATS is owned by the event bus once
// one has been created from it.
func (i *Infrastructure) Close() {
	if i.DB != nil {
		i.DB.Close()
	}
	if i.Redis != nil {
		i.Redis.Close()
	}
}

// LoadReferences builds the reference set from the configured source
func LoadReferences(ctx context.Context, cfg *config.Config, db *database.PostgresDB, log *logger.Logger) (*services.ReferenceSet, error) {
	log = log.WithComponent("reference")

	var (
		refs *services.ReferenceSet
		err  error
	)
	switch cfg.Reference.Source {
	case config.ReferenceSourceFile:
		refs, err = services.LoadReferenceFile(cfg.Reference.Path)
	case config.ReferenceSourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("reference source %q needs a database connection", cfg.Reference.Source)
		}
		repo := repository.NewReferenceRepository(db.Pool())
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		data, loadErr := repo.Load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		refs, err = services.NewReferenceSet(data)
	default:
		refs = services.DefaultReferenceSet()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reference lists: %w", err)
	}

	malicious, legitimate := refs.Counts()
	log.Info().
		Str("source", cfg.Reference.Source).
		Str("version", refs.Version()).
		Int("malicious", malicious).
		Int("legitimate", legitimate).
		Msg("reference lists loaded")

	return refs, nil
}

// NewClassifier applies the checker settings
func NewClassifier(cfg *config.Config, refs *services.ReferenceSet) *services.LinkClassifier {
	return services.NewLinkClassifier(refs, services.ClassifierOptions{
		SuspiciousKeywords: cfg.Checker.SuspiciousKeywords,
		MaxTokenLength:     cfg.Checker.MaxTokenLength,
		MaxLabels:          cfg.Checker.MaxLabels,
	})
}

// ImportReferences validates data and replaces the Postgres reference
// tables with its normalized form in one transaction
func ImportReferences(ctx context.Context, db *database.PostgresDB, data models.ReferenceData) error {
	refs, err := services.NewReferenceSet(data)
	if err != nil {
		return err
	}
	return db.WithTx(ctx, func(tx pgx.Tx) error {
		repo := repository.NewReferenceRepository(tx)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		return repo.Replace(ctx, refs.Data())
	})
}
