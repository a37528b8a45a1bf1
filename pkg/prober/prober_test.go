package prober

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golemfactory/gpu-info/pkg/collector"
	"github.com/golemfactory/gpu-info/pkg/gpu"
)

type fakeCollector struct {
	info *gpu.Info
	err  error
}

func (c *fakeCollector) Collect(ctx context.Context) (*gpu.Info, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.info, nil
}

type fakeFactory struct {
	collector collector.Collector
}

func (f *fakeFactory) CreateGPUCollector() (collector.Collector, error) {
	return f.collector, nil
}

func (f *fakeFactory) CreateFinder() (collector.Finder, error) {
	return nil, errors.New("not implemented")
}

type captureSerializer struct {
	captured any
}

func (s *captureSerializer) Serialize(ctx context.Context, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	s.captured = doc
	return nil
}

func testInfo() *gpu.Info {
	return &gpu.Info{
		API: gpu.API{CUDA: &gpu.CUDA{Version: "12.4", DriverVersion: "550.54.14"}},
		Devices: []gpu.Device{{
			Model: "NVIDIA GeForce RTX 3090",
			CUDA: &gpu.DeviceCUDA{
				Enabled: true,
				Cores:   10496,
				Caps:    "8.6",
			},
			Clocks: gpu.Clocks{
				GraphicsMHz: 2100,
				MemoryMHz:   9751,
				SMMHz:       2100,
			},
			Memory:   gpu.Memory{TotalGiB: 24.0},
			Quantity: 1,
		}},
	}
}

func TestProbeAttributes(t *testing.T) {
	sink := &captureSerializer{}
	p := &Prober{
		Version:    "v1.0.0",
		Factory:    &fakeFactory{collector: &fakeCollector{info: testInfo()}},
		Serializer: sink,
	}

	require.NoError(t, p.Probe(context.Background()))

	doc, ok := sink.captured.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12.4", doc["golem.inf.gpu.cuda.version"])
	assert.Equal(t, "NVIDIA GeForce RTX 3090", doc["golem.inf.gpu.d0.model"])
	assert.Equal(t, float64(1), doc["golem.inf.gpu.quantity"])
}

func TestProbeDocument(t *testing.T) {
	sink := &captureSerializer{}
	p := &Prober{
		Factory:    &fakeFactory{collector: &fakeCollector{info: testInfo()}},
		Serializer: sink,
		Mode:       ModeDocument,
	}

	require.NoError(t, p.Probe(context.Background()))

	doc, ok := sink.captured.(map[string]any)
	require.True(t, ok)

	root, ok := doc["gpu"].(map[string]any)
	require.True(t, ok, "document mode nests under a gpu root")
	cuda, ok := root["cuda"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12.4", cuda["version"])
}

func TestProbeCollectionFailureProducesNoOutput(t *testing.T) {
	sink := &captureSerializer{}
	p := &Prober{
		Factory:    &fakeFactory{collector: &fakeCollector{err: errors.New("driver not loaded")}},
		Serializer: sink,
	}

	err := p.Probe(context.Background())
	require.Error(t, err)
	assert.Nil(t, sink.captured, "failed collection must not emit partial output")
}
