package collector

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/reader"
)

const defaultWorkers = 10

type ArticleCollector struct {
	Reader  reader.RawParallelReader
	Mapper  reader.Mapper
	Workers int
}

func NewArticleCollector(r reader.RawParallelReader, mapper reader.Mapper) *ArticleCollector {
	return &ArticleCollector{
		Reader:  r,
		Mapper:  mapper,
		Workers: defaultWorkers,
	}
}

// Collect maps every record the reader yields. Read and mapping failures are
// forwarded as error results and do not stop the collection.
func (ac *ArticleCollector) Collect(ctx context.Context) (<-chan Result[domain.Article], error) {
	records, err := ac.Reader.ReadParallel(ctx, ac.Workers)
	if err != nil {
		return nil, err
	}

	out := make(chan Result[domain.Article])
	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case rec, ok := <-records:
				if !ok {
					slog.Info("Reader channel closed, stopping collection")
					return
				}

				var res Result[domain.Article]
				if rec.Err != nil {
					res.Err = rec.Err
				} else {
					res.Result, res.Err = ac.Mapper.Map(rec.Record)
					if res.Err != nil {
						slog.Debug("Failed to map record to article", "error", res.Err)
					}
				}

				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
