package database

import (
	"context"
	"testing"
	"time"

	"gemstone/internal/config"
	"gemstone/internal/logger"
	"gemstone/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		DatabaseURL:  url,
		DatabaseName: "gemstone",
		DBTimeout:    time.Second,
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"mongodb://localhost:27017", BackendMongo},
		{"mongodb+srv://user:pw@cluster0.example.net/shop", BackendMongo},
		{"postgres://user:pw@localhost:5432/gems", BackendPostgres},
		{"postgresql://localhost/gems", BackendPostgres},
		{"sqlite://gems.db", BackendSQLite},
		{"file:gems.db?cache=shared", BackendSQLite},
		{"mysql://localhost/gems", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.url))
		})
	}
}

func TestMongoDatabaseName(t *testing.T) {
	name, err := mongoDatabaseName("mongodb://localhost:27017/shop", "gemstone")
	require.NoError(t, err)
	assert.Equal(t, "shop", name)

	name, err = mongoDatabaseName("mongodb://localhost:27017", "gemstone")
	require.NoError(t, err)
	assert.Equal(t, "gemstone", name)

	_, err = mongoDatabaseName("not a uri", "gemstone")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "gems.db", sqliteDSN("sqlite://gems.db"))
	assert.Equal(t, "file:x?mode=memory", sqliteDSN("file:x?mode=memory"))
}

func TestOpen_NoURLServesSamples(t *testing.T) {
	repo := Open(context.Background(), testConfig(""), logger.Nop())
	assert.IsType(t, &repositories.SampleGemRepository{}, repo)
	assert.False(t, repo.Available())
}

func TestOpen_UnsupportedSchemeServesSamples(t *testing.T) {
	repo := Open(context.Background(), testConfig("mysql://localhost/gems"), logger.Nop())
	assert.IsType(t, &repositories.SampleGemRepository{}, repo)
}

func TestOpen_SQLite(t *testing.T) {
	url := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	repo := Open(context.Background(), testConfig(url), logger.Nop())
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	require.IsType(t, &repositories.GORMGemRepository{}, repo)
	assert.True(t, repo.Available())

	info, err := repo.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, info.Backend)
	assert.Contains(t, info.Collections, "gems")
}
