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

package gpu

import "github.com/golemfactory/gpu-info/pkg/attribute"

// Attributes flattens the detection result into the GAP-35 attribute set.
//
// Global keys are always present; device keys are indexed by group position
// (d0, d1, ...) and are absent entirely when no device was enumerated. A host
// with a compatible driver but no GPU therefore yields only the global keys.
func (i *Info) Attributes() *attribute.Set {
	set := attribute.NewSet()

	if i.CUDA != nil {
		set.Put(attribute.KeyCUDAVersion, attribute.Str(i.CUDA.Version))
		if i.CUDA.DriverVersion != "" {
			set.Put(attribute.KeyCUDADriverVersion, attribute.Str(i.CUDA.DriverVersion))
		}
	}

	set.Put(attribute.KeyQuantity, attribute.Int(i.DeviceCount()))

	for idx, d := range i.Devices {
		set.Put(attribute.DeviceKey(idx, attribute.FieldModel), attribute.Str(d.Model))

		set.Put(attribute.DeviceKey(idx, attribute.FieldCUDAEnabled),
			attribute.Bool(d.CUDA != nil && d.CUDA.Enabled))
		if d.CUDA != nil {
			// GAP-35 publishes core-count availability, not the count itself.
			set.Put(attribute.DeviceKey(idx, attribute.FieldCUDACores),
				attribute.Bool(d.CUDA.Cores > 0))
			set.Put(attribute.DeviceKey(idx, attribute.FieldCUDACaps),
				attribute.Str(d.CUDA.Caps))
		}

		set.Put(attribute.DeviceKey(idx, attribute.FieldClockGraphics),
			attribute.Int(int(d.Clocks.GraphicsMHz)))
		set.Put(attribute.DeviceKey(idx, attribute.FieldClockMemory),
			attribute.Int(int(d.Clocks.MemoryMHz)))
		set.Put(attribute.DeviceKey(idx, attribute.FieldClockSM),
			attribute.Int(int(d.Clocks.SMMHz)))
		if d.Clocks.VideoMHz != nil {
			set.Put(attribute.DeviceKey(idx, attribute.FieldClockVideo),
				attribute.Int(int(*d.Clocks.VideoMHz)))
		}

		if d.Memory.BandwidthGiB != nil {
			set.Put(attribute.DeviceKey(idx, attribute.FieldMemoryBandwidth),
				attribute.Int(int(*d.Memory.BandwidthGiB)))
		}
		set.Put(attribute.DeviceKey(idx, attribute.FieldMemoryTotal),
			attribute.Float64(d.Memory.TotalGiB))

		set.Put(attribute.DeviceKey(idx, attribute.FieldQuantity),
			attribute.Int(d.Quantity))
	}

	return set
}

// DeviceCount returns the number of physical cards across all groups.
func (i *Info) DeviceCount() int {
	n := 0
	for _, d := range i.Devices {
		n += d.Quantity
	}
	return n
}
