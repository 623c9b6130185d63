package apis

import (
	"fmt"
	"strings"
)

const (
	DataMappingKind   = "DataMapping"
	DefaultDateFormat = "2006-01-02T15:04:05Z"
)

// DataMapping describes how the columns of an imported dataset map onto Article fields.
type DataMapping struct {
	Kind          string         `json:"kind" example:"DataMapping" yaml:"kind"`
	Version       string         `json:"version" example:"v1" yaml:"version"`
	Metadata      Metadata       `json:"metadata" yaml:"metadata"`
	Dataset       string         `json:"dataset" example:"kaggle" yaml:"dataset"`
	FieldMappings []FieldMapping `json:"fieldMappings" yaml:"fieldMappings"`
	DateFormat    string         `json:"dateFormat" example:"2006-01-02T15:04:05Z" yaml:"dateFormat"`
}

type Metadata struct {
	Name        string `json:"name" example:"Kaggle Dataset" yaml:"name"`
	Description string `json:"description" example:"Mapping for Kaggle dataset fields" yaml:"description"`
}

type FieldMapping struct {
	Source     string `json:"source" example:"headline" yaml:"source"`
	SourceType string `json:"sourceType" example:"string" yaml:"sourceType"`
	// Target is a dotted Article field path, e.g. "Title" or "Location.Lat".
	Target   string `json:"target" example:"Title" yaml:"target"`
	Required bool   `json:"required" example:"true" yaml:"required"`
}

func (dm *DataMapping) Validate() error {
	if dm.Kind != DataMappingKind {
		return fmt.Errorf("kind must be %s, got %q", DataMappingKind, dm.Kind)
	}
	if dm.Version == "" {
		return fmt.Errorf("version is required")
	}
	if dm.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if dm.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}
	if len(dm.FieldMappings) == 0 {
		return fmt.Errorf("at least one field mapping is required")
	}

	targets := make(map[string]bool, len(dm.FieldMappings))
	for i, fm := range dm.FieldMappings {
		if fm.Source == "" {
			return fmt.Errorf("fieldMappings[%d] must have source defined", i)
		}
		if fm.Target == "" {
			return fmt.Errorf("fieldMappings[%d] must have target defined", i)
		}
		if targets[fm.Target] {
			return fmt.Errorf("fieldMappings[%d] maps %s more than once", i, fm.Target)
		}
		targets[fm.Target] = true
	}
	if !targets["Title"] {
		return fmt.Errorf("a mapping for Title is required")
	}
	if targets["Location.Lat"] != targets["Location.Lon"] {
		return fmt.Errorf("Location.Lat and Location.Lon must be mapped together")
	}
	return nil
}

type MappingError struct {
	Message string `json:"message" example:"missing source field: id"`
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping error: %s", strings.TrimSpace(e.Message))
}
