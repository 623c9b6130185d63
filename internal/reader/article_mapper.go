package reader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/pkg/apis"
)

type Mapper interface {
	Map(record map[string]string) (domain.Article, error)
}

// ArticleMapper turns a raw dataset record into an Article following a DataMapping.
type ArticleMapper struct {
	cfg *apis.DataMapping
}

func NewArticleMapper(cfg *apis.DataMapping) (*ArticleMapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ArticleMapper{
		cfg: cfg,
	}, nil
}

// Map skips blank optional values and fails on a missing or unparsable required one.
func (m *ArticleMapper) Map(record map[string]string) (domain.Article, error) {
	article := domain.Article{}
	val := reflect.ValueOf(&article).Elem()

	for _, fm := range m.cfg.FieldMappings {
		sourceVal, ok := record[fm.Source]
		if !ok || strings.TrimSpace(sourceVal) == "" {
			if fm.Required {
				return domain.Article{}, &apis.MappingError{Message: "missing source field: " + fm.Source}
			}
			continue
		}

		err := SetField(val, strings.Split(fm.Target, "."), sourceVal, fm.SourceType, m.cfg.DateFormat)
		if err != nil {
			if fm.Required {
				return domain.Article{}, fmt.Errorf("map %s: %w", fm.Source, err)
			}
			continue
		}
	}

	if err := validateArticle(article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func validateArticle(a domain.Article) error {
	if strings.TrimSpace(a.Title) == "" {
		return &apis.MappingError{Message: "article title is empty"}
	}
	if err := a.Location.Validate(); err != nil {
		return &apis.MappingError{Message: err.Error()}
	}
	return nil
}
