package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

type CSVReader struct {
	reader io.Reader
}

func NewCSVReader(reader io.Reader) *CSVReader {
	return &CSVReader{
		reader: reader,
	}
}

func newCSV(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	// row width is checked against the header so one bad line does not stop the import
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func readHeader(cr *csv.Reader) ([]string, error) {
	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return headers, nil
}

func toRecord(headers, row []string) (map[string]string, error) {
	if len(row) != len(headers) {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", io.ErrUnexpectedEOF, len(headers), len(row))
	}
	record := make(map[string]string, len(headers))
	for i, h := range headers {
		record[h] = row[i]
	}
	return record, nil
}

// Read loads the whole file. Use ReadParallel for large datasets.
func (cr *CSVReader) Read() ([]map[string]string, error) {
	csvReader := newCSV(cr.reader)

	headers, err := readHeader(csvReader)
	if err != nil {
		return nil, err
	}

	var records []map[string]string
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record, err := toRecord(headers, row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// ReadParallel streams records through workerCount goroutines. Record order is
// not preserved. The channel is closed once the file is drained or ctx is done.
func (cr *CSVReader) ReadParallel(ctx context.Context, workerCount int) (<-chan ParallelReaderResult, error) {
	if workerCount < 1 {
		workerCount = 1
	}

	csvReader := newCSV(cr.reader)
	headers, err := readHeader(csvReader)
	if err != nil {
		return nil, err
	}

	out := make(chan ParallelReaderResult)
	jobs := make(chan []string, workerCount*2)

	send := func(res ParallelReaderResult) bool {
		select {
		case out <- res:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for row := range jobs {
				record, err := toRecord(headers, row)
				if !send(ParallelReaderResult{Record: record, Err: err}) {
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)

		for {
			row, err := csvReader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				slog.Error("Error reading CSV row", "error", err)
				if !send(ParallelReaderResult{Err: err}) {
					return
				}
				continue
			}

			select {
			case jobs <- row:
			case <-ctx.Done():
				slog.Info("Context cancelled, stopping CSV read...")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}
