package es

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkReport(t *testing.T) {
	t.Run("no failures", func(t *testing.T) {
		r := &bulkReport{}
		r.ok()
		assert.NoError(t, r.err(1))
	})

	t.Run("concurrent outcomes", func(t *testing.T) {
		r := &bulkReport{}
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if i%2 == 0 {
					r.ok()
					return
				}
				r.fail("id", errors.New("mapper_parsing_exception"))
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, r.indexed)
		assert.Equal(t, 10, r.failed)
		assert.Len(t, r.failures, maxReportedFailures)

		err := r.err(20)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "10 of 20 articles not indexed")
		assert.Contains(t, err.Error(), "mapper_parsing_exception")
	})
}

func TestItemError(t *testing.T) {
	transport := errors.New("connection reset")
	assert.ErrorIs(t, itemError(esutil.BulkIndexerResponseItem{}, transport), transport)

	var res esutil.BulkIndexerResponseItem
	res.Status = 400
	res.Error.Type = "mapper_parsing_exception"
	res.Error.Reason = "failed to parse field [location]"
	assert.EqualError(t, itemError(res, nil), "status 400: mapper_parsing_exception: failed to parse field [location]")
}

func TestBulkConfig_WithDefaults(t *testing.T) {
	got := BulkConfig{}.withDefaults()
	assert.Equal(t, BulkConfig{Workers: 4, FlushBytes: 5e+6, FlushInterval: 30 * time.Second}, got)

	custom := BulkConfig{Workers: 2, FlushBytes: 1024, FlushInterval: time.Second}
	assert.Equal(t, custom, custom.withDefaults())
}

func TestLoadClientConfigFromEnv(t *testing.T) {
	t.Setenv("ES_ADDRESSES", "http://es1:9200,,http://es2:9200")
	t.Setenv("ES_INDEX_NAME", "")
	t.Setenv("ES_BULK_WORKERS", "8")
	t.Setenv("ES_BULK_FLUSH_INTERVAL", "")

	cfg, err := LoadClientConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Addresses)
	assert.Equal(t, DefaultIndexName, cfg.IndexName)
	assert.Equal(t, 8, cfg.Bulk.Workers)
	assert.Equal(t, 30*time.Second, cfg.Bulk.FlushInterval)

	t.Setenv("ES_BULK_WORKERS", "many")
	_, err = LoadClientConfigFromEnv()
	assert.Error(t, err)
}
