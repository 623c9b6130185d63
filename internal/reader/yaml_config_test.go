package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/news-pulse/pkg/apis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMapping = `
kind: DataMapping
version: v1
metadata:
  name: "Local news"
dataset: local-news
fieldMappings:
  - source: "headline"
    target: "Title"
    required: true
  - source: "lat"
    sourceType: "float"
    target: "Location.Lat"
    required: true
  - source: "lon"
    sourceType: "float"
    target: "Location.Lon"
    required: true
`

func TestYAMLConfigLoader_Load(t *testing.T) {
	cfg, err := NewYAMLConfigLoader(strings.NewReader(validMapping)).Load(true)

	require.NoError(t, err)
	assert.Equal(t, apis.DataMappingKind, cfg.Kind)
	assert.Equal(t, "v1", cfg.Version)
	assert.Equal(t, "Local news", cfg.Metadata.Name)
	assert.Equal(t, "local-news", cfg.Dataset)
	assert.Equal(t, apis.DefaultDateFormat, cfg.DateFormat)
	require.Len(t, cfg.FieldMappings, 3)
	assert.Equal(t, "Location.Lat", cfg.FieldMappings[1].Target)
	assert.Equal(t, TypeFloat, cfg.FieldMappings[1].SourceType)
}

func TestYAMLConfigLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validMapping), 0o644))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	cfg, err := NewYAMLConfigLoader(file).Load(true)

	require.NoError(t, err)
	assert.Len(t, cfg.FieldMappings, 3)
}

func TestYAMLConfigLoader_UnknownField(t *testing.T) {
	content := `
kind: DataMapping
version: v1
metadata:
  name: "Invalid Mapping"
dataset: kaggle
field_mappings:
 - source: "title"
   target: "Title"
`
	_, err := NewYAMLConfigLoader(strings.NewReader(content)).Load(false)

	assert.Error(t, err)
}

func TestYAMLConfigLoader_Validate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong kind", strings.Replace(validMapping, "kind: DataMapping", "kind: Mapper", 1)},
		{"missing title", strings.Replace(validMapping, `target: "Title"`, `target: "Description"`, 1)},
		{"half a location", strings.Replace(validMapping, `target: "Location.Lon"`, `target: "SourceName"`, 1)},
		{"duplicate target", strings.Replace(validMapping, `target: "Location.Lon"`, `target: "Location.Lat"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLConfigLoader(strings.NewReader(tt.content)).Load(true)
			assert.Error(t, err)

			cfg, err := NewYAMLConfigLoader(strings.NewReader(tt.content)).Load(false)
			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}
