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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/golemfactory/gpu-info/pkg/collector"
	"github.com/golemfactory/gpu-info/pkg/serializer"
)

func findCmd() *cli.Command {
	return &cli.Command{
		Name:                  "find",
		EnableShellCompletion: true,
		Usage:                 "Find a single GPU by its vendor UUID",
		Description: `Find one GPU by its vendor UUID and print its properties.

The UUID is the identifier reported by nvidia-smi -L, in the form
GPU-<uuid>, for example:

  gpuinfo find --uuid GPU-5d3b6a4e-1f0a-4c6b-9f3e-2e8b1f0a4c6b

The command fails when no attached device matches the UUID.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "uuid",
				Aliases:  []string{"u"},
				Required: true,
				Usage:    "Device UUID in GPU-<uuid> form",
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

			id, err := parseDeviceUUID(cmd.String("uuid"))
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

			finder, err := collector.NewDefaultFactory(opts...).CreateFinder()
			if err != nil {
				return err
			}

			device, err := finder.Find(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to find device %s: %w", id, err)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			return ser.Serialize(ctx, device)
		},
	}
}
