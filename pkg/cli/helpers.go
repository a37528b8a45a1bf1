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
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/golemfactory/gpu-info/pkg/serializer"
)

// devicePrefix is the vendor prefix on NVML device identifiers.
const devicePrefix = "GPU-"

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (defaults to stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   fmt.Sprintf("Output format, one of: %s", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatJSON),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
		Value:   "info",
	}

	unstableFlag = &cli.BoolFlag{
		Name:  "unstable-props",
		Usage: "Include estimated properties such as peak memory bandwidth",
	}

	forceFlag = &cli.StringSliceFlag{
		Name:  "force-platform",
		Usage: "Fail, rather than skip, when the named platform is unavailable (can be repeated)",
	}
)

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// parseDeviceUUID validates a device identifier of the form
// GPU-<uuid>, as reported by nvidia-smi -L.
func parseDeviceUUID(id string) (string, error) {
	raw, ok := strings.CutPrefix(id, devicePrefix)
	if !ok {
		return "", fmt.Errorf("device id %q must start with %q", id, devicePrefix)
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", fmt.Errorf("device id %q is not a valid uuid: %w", id, err)
	}
	return id, nil
}

// closeSerializer releases file handles on serializers that hold them.
func closeSerializer(s serializer.Serializer) {
	if closer, ok := s.(serializer.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}
