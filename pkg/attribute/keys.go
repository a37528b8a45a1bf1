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

package attribute

import "fmt"

// Namespace is the GAP-35 key prefix shared by all GPU attributes.
const Namespace = "golem.inf.gpu"

// Global attribute keys (GAP-35).
const (
	KeyCUDAVersion       = Namespace + ".cuda.version"
	KeyCUDADriverVersion = Namespace + ".cuda.driver.version"

	// KeyQuantity is the total number of enumerated cards across all
	// device groups; zero on a host with a driver but no GPU.
	KeyQuantity = Namespace + ".quantity"
)

// Per-device field suffixes (GAP-35). A full device key is produced by
// DeviceKey, e.g. DeviceKey(0, FieldModel) -> "golem.inf.gpu.d0.model".
const (
	FieldModel           = "model"
	FieldCUDAEnabled     = "cuda.enabled"
	FieldCUDACores       = "cuda.cores"
	FieldCUDACaps        = "cuda.caps"
	FieldClockGraphics   = "clock.graphics.mhz"
	FieldClockMemory     = "clock.memory.mhz"
	FieldClockSM         = "clock.sm.mhz"
	FieldClockVideo      = "clock.video.mhz"
	FieldMemoryBandwidth = "memory.bandwidth.gib"
	FieldMemoryTotal     = "memory.total.gib"
	FieldQuantity        = "quantity"
)

// DeviceKey returns the namespaced key for a device-indexed field.
// Indices follow vendor library enumeration order and are contiguous
// for the duration of one collection.
func DeviceKey(index int, field string) string {
	return fmt.Sprintf("%s.d%d.%s", Namespace, index, field)
}
