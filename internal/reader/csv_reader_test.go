package reader

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReader_Read(t *testing.T) {
	csvData := `id,title,author,published
1,Go Concurrency,John Doe,2023-10-01
2,Understanding Interfaces,Jane Smith,2023-10-02`

	reader := NewCSVReader(strings.NewReader(csvData))

	records, err := reader.Read()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{
		"id":        "1",
		"title":     "Go Concurrency",
		"author":    "John Doe",
		"published": "2023-10-01",
	}, records[0])

	assert.Equal(t, map[string]string{
		"id":        "2",
		"title":     "Understanding Interfaces",
		"author":    "Jane Smith",
		"published": "2023-10-02",
	}, records[1])
}

func TestCSVReader_ReadParallel(t *testing.T) {
	csvData := `id,title,author,published
1,Go Concurrency,John Doe,2023-10-01
2,Understanding Interfaces,Jane Smith,2023-10-02
3,Intro to Channels,Alice,2023-10-03`

	ctx := t.Context()
	reader := NewCSVReader(strings.NewReader(csvData))

	resultsChan, err := reader.ReadParallel(ctx, 2)
	require.NoError(t, err)

	var results []map[string]string
	for res := range resultsChan {
		require.NoError(t, res.Err)
		results = append(results, res.Record)
	}

	assert.Len(t, results, 3)

	assert.Contains(t, results, map[string]string{
		"id":        "1",
		"title":     "Go Concurrency",
		"author":    "John Doe",
		"published": "2023-10-01",
	})
	assert.Contains(t, results, map[string]string{
		"id":        "2",
		"title":     "Understanding Interfaces",
		"author":    "Jane Smith",
		"published": "2023-10-02",
	})
	assert.Contains(t, results, map[string]string{
		"id":        "3",
		"title":     "Intro to Channels",
		"author":    "Alice",
		"published": "2023-10-03",
	})
}

func TestCSVReader_ReadParallel_CancelEarly(t *testing.T) {
	csvData := `id,title,author,published
1,Go Concurrency,John Doe,2023-10-01
2,Understanding Interfaces,Jane Smith,2023-10-02
3,Intro to Channels,Alice,2023-10-03`

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	reader := NewCSVReader(strings.NewReader(csvData))

	resultsChan, err := reader.ReadParallel(ctx, 2)
	require.NoError(t, err)

	var results []map[string]string
	for res := range resultsChan {
		require.NoError(t, res.Err)
		results = append(results, res.Record)
		if len(results) == 1 {
			cancel()
			break
		}
	}

	assert.Len(t, results, 1)
}

func TestCSVReader_ReadParallel_MalformedRow(t *testing.T) {
	csvData := `id,title,author
1,Go Concurrency,John Doe
2,OnlyTitle
3,Interfaces in Go,Alice`

	reader := NewCSVReader(strings.NewReader(csvData))

	resultsChan, err := reader.ReadParallel(t.Context(), 2)
	require.NoError(t, err)

	var validResults []map[string]string
	var errs []error
	for res := range resultsChan {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		validResults = append(validResults, res.Record)
	}

	assert.Len(t, validResults, 2)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], io.ErrUnexpectedEOF)
}

func TestCSVReader_Read_MalformedRow(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader("a,b\n1\n")).Read()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCSVReader_HeaderWithBOM(t *testing.T) {
	records, err := NewCSVReader(strings.NewReader("\ufeffid, title\n1,x\n")).Read()

	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"id": "1", "title": "x"}}, records)
}

func TestCSVReader_EmptyInput(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader("")).ReadParallel(t.Context(), 2)
	assert.Error(t, err)
}
