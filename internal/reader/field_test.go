package reader

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nested struct {
	Score float64
}

type target struct {
	Name    string
	Count   int
	Ratio   float64
	Active  bool
	Day     time.Time
	ID      uuid.UUID
	Tags    []string
	Nested  nested
	Pointer *nested
}

func set(t *testing.T, obj *target, path []string, value, sourceType string) error {
	t.Helper()
	return SetField(reflect.ValueOf(obj).Elem(), path, value, sourceType, time.RFC3339)
}

func TestSetField(t *testing.T) {
	var obj target
	id := uuid.New()

	require.NoError(t, set(t, &obj, []string{"Name"}, " go ", ""))
	require.NoError(t, set(t, &obj, []string{"Count"}, "42", TypeInt))
	require.NoError(t, set(t, &obj, []string{"Ratio"}, "0.25", TypeFloat))
	require.NoError(t, set(t, &obj, []string{"Active"}, "true", TypeBool))
	require.NoError(t, set(t, &obj, []string{"Day"}, "2024-02-29", TypeDate))
	require.NoError(t, set(t, &obj, []string{"ID"}, id.String(), TypeUUID))
	require.NoError(t, set(t, &obj, []string{"Tags"}, "a, b", TypeList))
	require.NoError(t, set(t, &obj, []string{"Nested", "Score"}, "1.5", TypeFloat))
	require.NoError(t, set(t, &obj, []string{"Pointer", "Score"}, "2.5", TypeFloat))

	assert.Equal(t, "go", obj.Name)
	assert.Equal(t, 42, obj.Count)
	assert.InDelta(t, 0.25, obj.Ratio, 1e-9)
	assert.True(t, obj.Active)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), obj.Day)
	assert.Equal(t, id, obj.ID)
	assert.Equal(t, []string{"a", "b"}, obj.Tags)
	assert.InDelta(t, 1.5, obj.Nested.Score, 1e-9)
	require.NotNil(t, obj.Pointer)
	assert.InDelta(t, 2.5, obj.Pointer.Score, 1e-9)
}

func TestSetField_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       []string
		value      string
		sourceType string
	}{
		{"unknown field", []string{"Missing"}, "x", TypeString},
		{"unknown nested field", []string{"Nested", "Missing"}, "x", TypeFloat},
		{"unknown parent", []string{"Missing", "Score"}, "x", TypeFloat},
		{"type mismatch", []string{"Name"}, "1", TypeInt},
		{"bad int", []string{"Count"}, "many", TypeInt},
		{"bad bool", []string{"Active"}, "maybe", TypeBool},
		{"bad uuid", []string{"ID"}, "nope", TypeUUID},
		{"list into string", []string{"Name"}, "a,b", TypeList},
		{"unsupported", []string{"Name"}, "x", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var obj target
			assert.Error(t, set(t, &obj, tt.path, tt.value, tt.sourceType))
		})
	}
}
