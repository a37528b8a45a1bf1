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

package cuda

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/golemfactory/gpu-info/pkg/detect"
	"github.com/golemfactory/gpu-info/pkg/gpu"
	"github.com/golemfactory/gpu-info/pkg/version"
)

// device is the slice of nvml.Device this package reads.
type device interface {
	GetIndex() (int, nvml.Return)
	GetName() (string, nvml.Return)
	GetNumGpuCores() (int, nvml.Return)
	GetCudaComputeCapability() (int, int, nvml.Return)
	GetMaxClockInfo(clockType nvml.ClockType) (uint32, nvml.Return)
	GetMemoryInfo() (nvml.Memory, nvml.Return)
	GetMemoryBusWidth() (uint32, nvml.Return)
}

// readDevice queries every published property of one GPU. Each failed read
// aborts with a *detect.DeviceQueryError naming the property, so the caller
// never merges a half-read device.
func readDevice(index int, dev device, unstable bool) (gpu.Device, error) {
	model, ret := dev.GetName()
	if ret != nvml.SUCCESS {
		return gpu.Device{}, detect.NewDeviceQueryError(index, detect.PropModel, errorFor(ret))
	}

	cuda, err := readCUDA(index, dev)
	if err != nil {
		return gpu.Device{}, err
	}

	clocks, err := readClocks(index, dev)
	if err != nil {
		return gpu.Device{}, err
	}

	memory, err := readMemory(index, dev, clocks.MemoryMHz, unstable)
	if err != nil {
		return gpu.Device{}, err
	}

	return gpu.Device{
		Model:    model,
		CUDA:     cuda,
		Clocks:   clocks,
		Memory:   memory,
		Quantity: 1,
	}, nil
}

func readCUDA(index int, dev device) (*gpu.DeviceCUDA, error) {
	cores, ret := dev.GetNumGpuCores()
	if ret != nvml.SUCCESS {
		return nil, detect.NewDeviceQueryError(index, detect.PropCUDACores, errorFor(ret))
	}

	major, minor, ret := dev.GetCudaComputeCapability()
	if ret != nvml.SUCCESS {
		return nil, detect.NewDeviceQueryError(index, detect.PropCUDACaps, errorFor(ret))
	}

	return &gpu.DeviceCUDA{
		Enabled: true,
		Cores:   uint32(cores),
		Caps:    version.NewMajorMinor(major, minor).String(),
	}, nil
}

func readClocks(index int, dev device) (gpu.Clocks, error) {
	graphics, ret := dev.GetMaxClockInfo(nvml.CLOCK_GRAPHICS)
	if ret != nvml.SUCCESS {
		return gpu.Clocks{}, detect.NewDeviceQueryError(index, detect.PropClockGraphics, errorFor(ret))
	}

	memory, ret := dev.GetMaxClockInfo(nvml.CLOCK_MEM)
	if ret != nvml.SUCCESS {
		return gpu.Clocks{}, detect.NewDeviceQueryError(index, detect.PropClockMemory, errorFor(ret))
	}

	sm, ret := dev.GetMaxClockInfo(nvml.CLOCK_SM)
	if ret != nvml.SUCCESS {
		return gpu.Clocks{}, detect.NewDeviceQueryError(index, detect.PropClockSM, errorFor(ret))
	}

	clocks := gpu.Clocks{
		GraphicsMHz: graphics,
		MemoryMHz:   memory,
		SMMHz:       sm,
	}

	// The video clock is not exposed on every card.
	video, ret := dev.GetMaxClockInfo(nvml.CLOCK_VIDEO)
	switch ret {
	case nvml.SUCCESS:
		clocks.VideoMHz = &video
	case nvml.ERROR_NOT_SUPPORTED:
	default:
		return gpu.Clocks{}, detect.NewDeviceQueryError(index, detect.PropClockVideo, errorFor(ret))
	}

	return clocks, nil
}

func readMemory(index int, dev device, memClockMHz uint32, unstable bool) (gpu.Memory, error) {
	info, ret := dev.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return gpu.Memory{}, detect.NewDeviceQueryError(index, detect.PropMemoryTotal, errorFor(ret))
	}

	memory := gpu.Memory{TotalGiB: gpu.BytesToGiB(info.Total)}

	if unstable {
		bandwidth, err := estimateBandwidth(index, dev, memClockMHz)
		if err != nil {
			return gpu.Memory{}, err
		}
		memory.BandwidthGiB = bandwidth
	}

	return memory, nil
}

// estimateBandwidth derives peak transfer rate from the memory clock and bus
// width. NVML exposes no direct equivalent of the maximum transfer rate that
// nvidia-settings reports, so this assumes the DDR data rate multiplier of 2.
// The figure is an estimate, which is why it sits behind the unstable flag.
func estimateBandwidth(index int, dev device, memClockMHz uint32) (*uint32, error) {
	busWidth, ret := dev.GetMemoryBusWidth()
	if ret == nvml.ERROR_NOT_SUPPORTED {
		return nil, nil
	}
	if ret != nvml.SUCCESS {
		return nil, detect.NewDeviceQueryError(index, detect.PropMemoryBandwidth, errorFor(ret))
	}

	const dataRate = 2
	bandwidth := memClockMHz * busWidth * dataRate / (1000 * 8)
	return &bandwidth, nil
}
