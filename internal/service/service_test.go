package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockroom/inventory-api/internal/events"
	"github.com/stockroom/inventory-api/internal/metrics"
	"github.com/stockroom/inventory-api/internal/repo"
	"github.com/stockroom/inventory-api/internal/search"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return repo.New(db)
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:      initTestRepo(t),
		JWTSecret: []byte("test-jwt-secret"),
		TokenTTL:  24 * time.Hour,
		Producer:  &events.Producer{},
		Metrics:   metrics.New(prometheus.NewRegistry()),
	}
}

func newTestStockService(t *testing.T) *StockService {
	t.Helper()
	return &StockService{
		Repo:     initTestRepo(t),
		Producer: &events.Producer{},
		Index:    &search.Index{},
		Metrics:  metrics.New(prometheus.NewRegistry()),
	}
}
