package factory

import (
	"testing"

	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("missing type", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "")
		_, err := LoadEnv()
		require.Error(t, err)
	})

	t.Run("es is not a primary store", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		_, err := LoadEnv()
		require.Error(t, err)
	})

	t.Run("search defaults to storage type", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "in_mem")
		t.Setenv("SEARCH_BACKEND", "")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, storage.InMem, cfg.Type)
		assert.Equal(t, storage.InMem, cfg.Search)
		assert.Nil(t, cfg.Pg)
	})

	t.Run("pg requires connection string", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "")
		_, err := LoadEnv()
		require.Error(t, err)
	})

	t.Run("pg with es search", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "postgres://localhost/news")
		t.Setenv("SEARCH_BACKEND", "es")
		t.Setenv("ES_ADDRESSES", "http://es1:9200,http://es2:9200")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, storage.ES, cfg.Search)
		require.NotNil(t, cfg.Es)
		assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Es.Addresses)
	})

	t.Run("invalid es bulk settings", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "postgres://localhost/news")
		t.Setenv("SEARCH_BACKEND", "es")
		t.Setenv("ES_BULK_FLUSH_INTERVAL", "later")
		_, err := LoadEnv()
		require.Error(t, err)
	})

	t.Run("mismatched search backend", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "in_mem")
		t.Setenv("SEARCH_BACKEND", "pg")
		_, err := LoadEnv()
		require.Error(t, err)
	})
}

func TestOpen_InMem(t *testing.T) {
	stores, err := Open(t.Context(), &StorageConfig{Type: storage.InMem, Search: storage.InMem})
	require.NoError(t, err)
	defer stores.Close()

	assert.NotNil(t, stores.Articles)
	assert.NotNil(t, stores.Events)
	assert.NotNil(t, stores.Keywords)
	assert.NotNil(t, stores.FullText)
	assert.Empty(t, stores.Health)
}
