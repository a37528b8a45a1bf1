package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golemfactory/gpu-info/pkg/attribute"
)

func TestFormatIsUnknown(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("xml").IsUnknown())
	assert.True(t, Format("").IsUnknown())
}

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "yaml", "table"}, SupportedFormats())
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	defer w.Close()

	set := attribute.NewSet()
	set.Put(attribute.KeyCUDAVersion, attribute.Str("12.4"))
	set.Put(attribute.KeyQuantity, attribute.Int(1))

	require.NoError(t, w.Serialize(context.Background(), set))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "12.4", doc["golem.inf.gpu.cuda.version"])
	assert.Equal(t, float64(1), doc["golem.inf.gpu.quantity"])
}

func TestWriterJSONDeterministic(t *testing.T) {
	set := attribute.NewSet()
	set.Put(attribute.KeyCUDAVersion, attribute.Str("12.4"))
	set.Put(attribute.DeviceKey(0, attribute.FieldModel), attribute.Str("NVIDIA GeForce RTX 3090"))
	set.Put(attribute.DeviceKey(0, attribute.FieldMemoryTotal), attribute.Float64(24.0))

	var first, second bytes.Buffer
	require.NoError(t, NewWriter(FormatJSON, &first).Serialize(context.Background(), set))
	require.NoError(t, NewWriter(FormatJSON, &second).Serialize(context.Background(), set))

	assert.Equal(t, first.String(), second.String())
}

func TestWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	defer w.Close()

	set := attribute.NewSet()
	set.Put(attribute.KeyCUDAVersion, attribute.Str("12.4"))

	require.NoError(t, w.Serialize(context.Background(), set))
	assert.Contains(t, buf.String(), "golem.inf.gpu.cuda.version: \"12.4\"")
}

func TestWriterTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)
	defer w.Close()

	set := attribute.NewSet()
	set.Put(attribute.KeyCUDAVersion, attribute.Str("12.4"))
	set.Put(attribute.DeviceKey(0, attribute.FieldCUDAEnabled), attribute.Bool(true))

	require.NoError(t, w.Serialize(context.Background(), set))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "golem.inf.gpu.cuda.version")
	assert.Contains(t, out, "12.4")
	assert.Contains(t, out, "golem.inf.gpu.d0.cuda.enabled")
	assert.Contains(t, out, "true")
}

func TestWriterTableNestedStruct(t *testing.T) {
	type inner struct {
		Version string
	}
	type outer struct {
		CUDA    inner
		Devices []string
	}

	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)
	require.NoError(t, w.Serialize(context.Background(), outer{
		CUDA:    inner{Version: "12.4"},
		Devices: []string{"rtx3090"},
	}))

	out := buf.String()
	assert.Contains(t, out, "CUDA.Version")
	assert.Contains(t, out, "Devices.[0]")
}

func TestWriterTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)
	require.NoError(t, w.Serialize(context.Background(), struct{}{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestNewWriterDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("bogus"), &buf)
	require.NoError(t, w.Serialize(context.Background(), map[string]string{"a": "b"}))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s := NewFileWriterOrStdout(FormatJSON, path)

	require.NoError(t, s.Serialize(context.Background(), map[string]int{"n": 1}))
	if closer, ok := s.(Closer); ok {
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"n\": 1")
}

func TestNewFileWriterOrStdoutEmptyPath(t *testing.T) {
	s := NewFileWriterOrStdout(FormatJSON, "  ")
	w, ok := s.(*Writer)
	require.True(t, ok)
	assert.Nil(t, w.closer)
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	w := NewWriter(FormatJSON, &bytes.Buffer{})
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
