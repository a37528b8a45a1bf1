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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/golemfactory/gpu-info/pkg/collector"
	"github.com/golemfactory/gpu-info/pkg/prober"
	"github.com/golemfactory/gpu-info/pkg/serializer"
)

func detectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "detect",
		EnableShellCompletion: true,
		Usage:                 "Detect GPUs and print their attributes",
		Description: `Detect all available GPUs and print the result as a flat set of typed
provider offer attributes under the golem.inf.gpu namespace:

  golem.inf.gpu.cuda.version          CUDA runtime version
  golem.inf.gpu.cuda.driver.version   kernel driver version
  golem.inf.gpu.quantity              number of physical GPUs
  golem.inf.gpu.d0.model              first device model name
  golem.inf.gpu.d0.clock.graphics.mhz ... and so on per device

Identical adjacent devices collapse into one indexed group with a quantity
greater than one. Detection is all-or-nothing: if any property of any device
cannot be read, the command fails and prints nothing.

# Examples

Print attributes as JSON:
  gpuinfo detect

Include the estimated memory bandwidth:
  gpuinfo detect --unstable-props

Fail when the NVIDIA library is missing instead of reporting no GPUs:
  gpuinfo detect --force-platform cuda

Emit the nested device document instead of flat attributes:
  gpuinfo detect --document --format yaml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "document",
				Usage: "Emit the nested detection document instead of flat attributes",
			},
			unstableFlag,
			forceFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			opts := []collector.Option{
				collector.WithVersion(version),
			}
			if cmd.Bool("unstable-props") {
				opts = append(opts, collector.WithUnstableProps())
			}
			if forced := cmd.StringSlice("force-platform"); len(forced) > 0 {
				opts = append(opts, collector.WithForcedPlatforms(forced...))
			}

			mode := prober.ModeAttributes
			if cmd.Bool("document") {
				mode = prober.ModeDocument
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			p := prober.Prober{
				Version:    version,
				Factory:    collector.NewDefaultFactory(opts...),
				Serializer: ser,
				Mode:       mode,
			}

			return p.Probe(ctx)
		},
	}
}
