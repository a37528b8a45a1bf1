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

// Info is the aggregate result of one detection: installed APIs plus the
// list of device groups.
type Info struct {
	API     `json:",inline" yaml:",inline"`
	Devices []Device `json:"device" yaml:"device"`
}

// API describes the SDKs and drivers available on the host.
type API struct {
	// CUDA is set when the NVIDIA management library is present.
	CUDA *CUDA `json:"cuda,omitempty" yaml:"cuda,omitempty"`
}

// CUDA describes the installed CUDA runtime and driver.
type CUDA struct {
	Version       string `json:"version" yaml:"version"`
	DriverVersion string `json:"driver-version,omitempty" yaml:"driver-version,omitempty"`
}

// Device describes one group of identical physical GPUs.
type Device struct {
	// Model is the product name as reported by the vendor library,
	// e.g. "NVIDIA GeForce RTX 3090".
	Model string `json:"model" yaml:"model"`

	// CUDA holds CUDA-specific attributes; nil for non-CUDA devices.
	CUDA *DeviceCUDA `json:"cuda,omitempty" yaml:"cuda,omitempty"`

	Clocks Clocks `json:"clock" yaml:"clock"`
	Memory Memory `json:"memory" yaml:"memory"`

	// Quantity is the number of identical cards in this group.
	Quantity int `json:"quantity" yaml:"quantity"`
}

// DeviceCUDA holds CUDA-specific attributes for a single device group.
type DeviceCUDA struct {
	// Enabled is true when the device is CUDA capable.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Cores is the CUDA core count; zero when the vendor library
	// does not expose it for this device.
	Cores uint32 `json:"cores" yaml:"cores"`
	// Caps is the compute capability, e.g. "8.6".
	Caps string `json:"caps" yaml:"caps"`
}

// Clocks holds the maximum clock frequencies of a device, in MHz.
type Clocks struct {
	GraphicsMHz uint32 `json:"graphics.mhz" yaml:"graphics.mhz"`
	MemoryMHz   uint32 `json:"memory.mhz" yaml:"memory.mhz"`
	SMMHz       uint32 `json:"sm.mhz" yaml:"sm.mhz"`
	// VideoMHz is the video encoder/decoder clock; nil where the
	// platform does not report one.
	VideoMHz *uint32 `json:"video.mhz,omitempty" yaml:"video.mhz,omitempty"`
}

// Memory holds the memory characteristics of a device.
type Memory struct {
	// BandwidthGiB is the estimated peak memory bandwidth in GiB/s.
	// Only populated when unstable properties are requested.
	BandwidthGiB *uint32 `json:"bandwidth.gib,omitempty" yaml:"bandwidth.gib,omitempty"`
	// TotalGiB is the total physical device memory in GiB.
	TotalGiB float64 `json:"total.gib" yaml:"total.gib"`
}

// BytesToGiB converts a byte count to GiB (bytes / 2^30).
// The conversion is exact for round powers of two.
func BytesToGiB(bytes uint64) float64 {
	return float64(bytes) / (1 << 30)
}

// Equal reports whether two device groups describe identical hardware.
func (d Device) Equal(other Device) bool {
	if d.Model != other.Model {
		return false
	}
	if (d.CUDA == nil) != (other.CUDA == nil) {
		return false
	}
	if d.CUDA != nil && *d.CUDA != *other.CUDA {
		return false
	}
	return d.Clocks.Equal(other.Clocks) && d.Memory.Equal(other.Memory)
}

// Equal reports whether two clock sets are identical.
func (c Clocks) Equal(other Clocks) bool {
	if c.GraphicsMHz != other.GraphicsMHz ||
		c.MemoryMHz != other.MemoryMHz ||
		c.SMMHz != other.SMMHz {
		return false
	}
	if (c.VideoMHz == nil) != (other.VideoMHz == nil) {
		return false
	}
	return c.VideoMHz == nil || *c.VideoMHz == *other.VideoMHz
}

// Equal reports whether two memory descriptions are identical.
func (m Memory) Equal(other Memory) bool {
	if m.TotalGiB != other.TotalGiB {
		return false
	}
	if (m.BandwidthGiB == nil) != (other.BandwidthGiB == nil) {
		return false
	}
	return m.BandwidthGiB == nil || *m.BandwidthGiB == *other.BandwidthGiB
}
