// Copyright (c) 2025, Golem Factory GmbH.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prober orchestrates GPU detection and serializes the result.
package prober

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golemfactory/gpu-info/pkg/collector"
	"github.com/golemfactory/gpu-info/pkg/serializer"
)

// Mode selects the output shape of a probe.
type Mode string

const (
	// ModeAttributes emits the flat GAP-35 attribute set. This is the
	// default shape, the one provider offers publish.
	ModeAttributes Mode = "attributes"

	// ModeDocument emits the nested detection document with the device
	// groups under a "gpu" root.
	ModeDocument Mode = "document"
)

// Document is the nested output shape of ModeDocument.
type Document struct {
	GPU any `json:"gpu" yaml:"gpu"`
}

// Prober runs one GPU detection pass and serializes the result.
type Prober struct {
	// Version is the tool version, used for diagnostics.
	Version string

	// Factory creates the collector. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer writes the output. If nil, a stdout JSON serializer is used.
	Serializer serializer.Serializer

	// Mode selects the output shape. Defaults to ModeAttributes.
	Mode Mode
}

// Probe collects GPU information and serializes it. Detection is
// all-or-nothing: any failure yields an error and no output.
func (p *Prober) Probe(ctx context.Context) error {
	if p.Factory == nil {
		p.Factory = collector.NewDefaultFactory(collector.WithVersion(p.Version))
	}
	if p.Serializer == nil {
		p.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	slog.Debug("starting gpu probe", slog.String("version", p.Version), slog.String("mode", string(p.mode())))

	c, err := p.Factory.CreateGPUCollector()
	if err != nil {
		return fmt.Errorf("failed to create collector: %w", err)
	}

	info, err := c.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect gpu info: %w", err)
	}

	var out any
	switch p.mode() {
	case ModeDocument:
		out = Document{GPU: info}
	default:
		out = info.Attributes()
	}

	if err := p.Serializer.Serialize(ctx, out); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}

func (p *Prober) mode() Mode {
	if p.Mode == "" {
		return ModeAttributes
	}
	return p.Mode
}
