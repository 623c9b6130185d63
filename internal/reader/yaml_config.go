package reader

import (
	"io"

	"github.com/DjordjeVuckovic/news-pulse/pkg/apis"
	"gopkg.in/yaml.v3"
)

type YAMLConfigLoader struct {
	reader io.Reader
}

func NewYAMLConfigLoader(reader io.Reader) *YAMLConfigLoader {
	return &YAMLConfigLoader{
		reader: reader,
	}
}

func (cl *YAMLConfigLoader) Load(validate bool) (*apis.DataMapping, error) {
	decoder := yaml.NewDecoder(cl.reader)
	decoder.KnownFields(true)

	var mapping apis.DataMapping
	if err := decoder.Decode(&mapping); err != nil {
		return nil, err
	}
	if mapping.DateFormat == "" {
		mapping.DateFormat = apis.DefaultDateFormat
	}
	if validate {
		if err := mapping.Validate(); err != nil {
			return nil, err
		}
	}
	return &mapping, nil
}
