//go:build integration

package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Fraud-stop/shield-wise-guard/internal/config"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/database"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

func startPostgres(t *testing.T, ctx context.Context) *config.Config {
	t.Helper()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "fraudstop",
				"POSTGRES_PASSWORD": "fraudstop",
				"POSTGRES_DB":       "fraudstop",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg, err := config.LoadDefault()
	require.NoError(t, err)
	cfg.Database.Enabled = true
	cfg.Database.Host = host
	cfg.Database.Port = port.Int()
	cfg.Database.Password = "fraudstop"
	cfg.Reference.Source = config.ReferenceSourcePostgres
	return cfg
}

func TestPostgresReferenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := startPostgres(t, ctx)
	log := logger.NewNop()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	require.NoError(t, err)
	defer db.Close()

	refs, err := LoadReferences(ctx, cfg, db, log)
	require.NoError(t, err, "empty tables load as empty lists")
	malicious, legitimate := refs.Counts()
	assert.Zero(t, malicious)
	assert.Zero(t, legitimate)

	require.NoError(t, ImportReferences(ctx, db, models.ReferenceData{
		Version: "pg-1",
		KnownMalicious: []models.ReferenceEntry{
			{Domain: "HTTPS://Evil.example/login", ReportCount: 12, Category: "Banking Fraud"},
			{Domain: "evil.example"},
			{Domain: "quiet.example"},
		},
		KnownLegitimate: []string{"bank.example"},
	}))

	refs, err = LoadReferences(ctx, cfg, db, log)
	require.NoError(t, err)
	assert.Equal(t, "pg-1", refs.Version())
	assert.Equal(t, []string{"evil.example", "quiet.example"}, refs.MaliciousDomains())

	entry, ok := refs.Malicious("quiet.example")
	require.True(t, ok)
	assert.Zero(t, entry.ReportCount)

	classifier := NewClassifier(cfg, refs)
	assert.Equal(t, models.RiskLevelDangerous, classifier.Classify("evil.example").RiskLevel)
	assert.Equal(t, models.RiskLevelSafe, classifier.Classify("https://bank.example/secure").RiskLevel)

	err = ImportReferences(ctx, db, models.ReferenceData{
		KnownMalicious:  []models.ReferenceEntry{{Domain: "both.example"}},
		KnownLegitimate: []string{"both.example"},
	})
	require.Error(t, err)

	refs, err = LoadReferences(ctx, cfg, db, log)
	require.NoError(t, err)
	assert.Equal(t, "pg-1", refs.Version(), "rejected import leaves tables untouched")
}
