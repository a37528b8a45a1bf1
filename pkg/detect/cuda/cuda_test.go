package cuda

import (
	"testing"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golemfactory/gpu-info/pkg/detect"
)

// fakeDevice emulates an RTX 3090 by default; individual return codes can
// be overridden per property.
type fakeDevice struct {
	index    int
	name     string
	cores    int
	capMajor int
	capMinor int
	clocks   map[nvml.ClockType]uint32
	memTotal uint64
	busWidth uint32

	nameRet     nvml.Return
	coresRet    nvml.Return
	capsRet     nvml.Return
	clockRet    map[nvml.ClockType]nvml.Return
	memRet      nvml.Return
	busWidthRet nvml.Return
}

func rtx3090Device() *fakeDevice {
	return &fakeDevice{
		name:     "NVIDIA GeForce RTX 3090",
		cores:    10496,
		capMajor: 8,
		capMinor: 6,
		clocks: map[nvml.ClockType]uint32{
			nvml.CLOCK_GRAPHICS: 2100,
			nvml.CLOCK_MEM:      9751,
			nvml.CLOCK_SM:       2100,
			nvml.CLOCK_VIDEO:    1950,
		},
		memTotal: 25769803776,
		busWidth: 384,
	}
}

func (d *fakeDevice) GetIndex() (int, nvml.Return) {
	return d.index, nvml.SUCCESS
}

func (d *fakeDevice) GetName() (string, nvml.Return) {
	if d.nameRet != nvml.SUCCESS {
		return "", d.nameRet
	}
	return d.name, nvml.SUCCESS
}

func (d *fakeDevice) GetNumGpuCores() (int, nvml.Return) {
	if d.coresRet != nvml.SUCCESS {
		return 0, d.coresRet
	}
	return d.cores, nvml.SUCCESS
}

func (d *fakeDevice) GetCudaComputeCapability() (int, int, nvml.Return) {
	if d.capsRet != nvml.SUCCESS {
		return 0, 0, d.capsRet
	}
	return d.capMajor, d.capMinor, nvml.SUCCESS
}

func (d *fakeDevice) GetMaxClockInfo(clockType nvml.ClockType) (uint32, nvml.Return) {
	if ret, ok := d.clockRet[clockType]; ok && ret != nvml.SUCCESS {
		return 0, ret
	}
	return d.clocks[clockType], nvml.SUCCESS
}

func (d *fakeDevice) GetMemoryInfo() (nvml.Memory, nvml.Return) {
	if d.memRet != nvml.SUCCESS {
		return nvml.Memory{}, d.memRet
	}
	return nvml.Memory{Total: d.memTotal}, nvml.SUCCESS
}

func (d *fakeDevice) GetMemoryBusWidth() (uint32, nvml.Return) {
	if d.busWidthRet != nvml.SUCCESS {
		return 0, d.busWidthRet
	}
	return d.busWidth, nvml.SUCCESS
}

// fakeLibrary serves canned devices and tracks init/shutdown pairing.
type fakeLibrary struct {
	initRet       nvml.Return
	cudaPacked    int
	cudaRet       nvml.Return
	driverVersion string
	driverRet     nvml.Return
	devices       []*fakeDevice
	byUUID        map[string]*fakeDevice
	uuidRet       nvml.Return

	inits     int
	shutdowns int
}

func (l *fakeLibrary) Init() nvml.Return {
	l.inits++
	return l.initRet
}

func (l *fakeLibrary) Shutdown() nvml.Return {
	l.shutdowns++
	return nvml.SUCCESS
}

func (l *fakeLibrary) SystemGetDriverVersion() (string, nvml.Return) {
	if l.driverRet != nvml.SUCCESS {
		return "", l.driverRet
	}
	return l.driverVersion, nvml.SUCCESS
}

func (l *fakeLibrary) SystemGetCudaDriverVersion() (int, nvml.Return) {
	if l.cudaRet != nvml.SUCCESS {
		return 0, l.cudaRet
	}
	return l.cudaPacked, nvml.SUCCESS
}

func (l *fakeLibrary) DeviceGetCount() (int, nvml.Return) {
	return len(l.devices), nvml.SUCCESS
}

func (l *fakeLibrary) DeviceGetHandleByIndex(index int) (device, nvml.Return) {
	if index < 0 || index >= len(l.devices) {
		return nil, nvml.ERROR_INVALID_ARGUMENT
	}
	return l.devices[index], nvml.SUCCESS
}

func (l *fakeLibrary) DeviceGetHandleByUUID(uuid string) (device, nvml.Return) {
	if l.uuidRet != nvml.SUCCESS {
		return nil, l.uuidRet
	}
	if d, ok := l.byUUID[uuid]; ok {
		return d, nvml.SUCCESS
	}
	return nil, nvml.ERROR_NOT_FOUND
}

func workingLibrary(devices ...*fakeDevice) *fakeLibrary {
	return &fakeLibrary{
		cudaPacked:    12040,
		driverVersion: "550.54.14",
		devices:       devices,
	}
}

func openSession(t *testing.T, lib *fakeLibrary, flags detect.Flags) detect.Session {
	t.Helper()
	p := &Platform{lib: lib}
	session, err := p.Open(flags)
	require.NoError(t, err)
	return session
}

func TestPlatformName(t *testing.T) {
	assert.Equal(t, "cuda", NewPlatform().Name())
}

func TestOpenLibraryNotFound(t *testing.T) {
	for _, ret := range []nvml.Return{
		nvml.ERROR_LIBRARY_NOT_FOUND,
		nvml.ERROR_DRIVER_NOT_LOADED,
		nvml.ERROR_NO_PERMISSION,
		nvml.ERROR_UNKNOWN,
	} {
		p := &Platform{lib: &fakeLibrary{initRet: ret}}
		session, err := p.Open(detect.Flags{})
		assert.Nil(t, session)
		assert.ErrorIs(t, err, detect.ErrHardwareUnavailable, "return code %v", ret)
	}
}

func TestSessionAPI(t *testing.T) {
	session := openSession(t, workingLibrary(), detect.Flags{})
	defer session.Close()

	api, err := session.API()
	require.NoError(t, err)

	require.NotNil(t, api.CUDA)
	assert.Equal(t, "12.4", api.CUDA.Version)
	assert.Equal(t, "550.54.14", api.CUDA.DriverVersion)
}

func TestSessionAPIDriverVersionMandatory(t *testing.T) {
	lib := workingLibrary()
	lib.driverRet = nvml.ERROR_UNKNOWN
	session := openSession(t, lib, detect.Flags{})
	defer session.Close()

	_, err := session.API()
	assert.ErrorIs(t, err, detect.ErrHardwareUnavailable)
}

func TestSessionAPICudaVersionMandatory(t *testing.T) {
	lib := workingLibrary()
	lib.cudaRet = nvml.ERROR_UNKNOWN
	session := openSession(t, lib, detect.Flags{})
	defer session.Close()

	_, err := session.API()
	assert.ErrorIs(t, err, detect.ErrHardwareUnavailable)
}

func TestSessionDevices(t *testing.T) {
	session := openSession(t, workingLibrary(rtx3090Device()), detect.Flags{})
	defer session.Close()

	devices, err := session.Devices()
	require.NoError(t, err)
	require.Len(t, devices, 1)

	d := devices[0]
	assert.Equal(t, "NVIDIA GeForce RTX 3090", d.Model)
	require.NotNil(t, d.CUDA)
	assert.True(t, d.CUDA.Enabled)
	assert.Equal(t, uint32(10496), d.CUDA.Cores)
	assert.Equal(t, "8.6", d.CUDA.Caps)
	assert.Equal(t, uint32(2100), d.Clocks.GraphicsMHz)
	assert.Equal(t, uint32(9751), d.Clocks.MemoryMHz)
	assert.Equal(t, uint32(2100), d.Clocks.SMMHz)
	require.NotNil(t, d.Clocks.VideoMHz)
	assert.Equal(t, uint32(1950), *d.Clocks.VideoMHz)
	assert.InDelta(t, 24.0, d.Memory.TotalGiB, 0)
	assert.Equal(t, 1, d.Quantity)

	// Bandwidth only appears with the unstable flag.
	assert.Nil(t, d.Memory.BandwidthGiB)
}

func TestSessionDevicesEmpty(t *testing.T) {
	session := openSession(t, workingLibrary(), detect.Flags{})
	defer session.Close()

	devices, err := session.Devices()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestSessionDevicesBandwidthEstimate(t *testing.T) {
	session := openSession(t, workingLibrary(rtx3090Device()), detect.Flags{Unstable: true})
	defer session.Close()

	devices, err := session.Devices()
	require.NoError(t, err)
	require.Len(t, devices, 1)

	// 9751 MHz memory clock, 384-bit bus, DDR: 9751*384*2/8000 = 936.
	require.NotNil(t, devices[0].Memory.BandwidthGiB)
	assert.Equal(t, uint32(936), *devices[0].Memory.BandwidthGiB)
}

func TestSessionDevicesClockFailureNamesProperty(t *testing.T) {
	bad := rtx3090Device()
	bad.index = 1
	bad.clockRet = map[nvml.ClockType]nvml.Return{
		nvml.CLOCK_GRAPHICS: nvml.ERROR_UNKNOWN,
	}
	session := openSession(t, workingLibrary(rtx3090Device(), bad), detect.Flags{})
	defer session.Close()

	devices, err := session.Devices()
	assert.Nil(t, devices, "one bad device discards the whole read")

	var qerr *detect.DeviceQueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, 1, qerr.Index)
	assert.Equal(t, detect.PropClockGraphics, qerr.Field)
}

func TestSessionDevicesVideoClockOptional(t *testing.T) {
	d := rtx3090Device()
	d.clockRet = map[nvml.ClockType]nvml.Return{
		nvml.CLOCK_VIDEO: nvml.ERROR_NOT_SUPPORTED,
	}
	session := openSession(t, workingLibrary(d), detect.Flags{})
	defer session.Close()

	devices, err := session.Devices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Nil(t, devices[0].Clocks.VideoMHz)
}

func TestSessionDevicesBusWidthUnsupported(t *testing.T) {
	d := rtx3090Device()
	d.busWidthRet = nvml.ERROR_NOT_SUPPORTED
	session := openSession(t, workingLibrary(d), detect.Flags{Unstable: true})
	defer session.Close()

	devices, err := session.Devices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Nil(t, devices[0].Memory.BandwidthGiB)
}

func TestSessionDeviceByUUID(t *testing.T) {
	const id = "GPU-5d3b6a4e-1f0a-4c6b-9f3e-2e8b1f0a4c6b"

	lib := workingLibrary()
	lib.byUUID = map[string]*fakeDevice{id: rtx3090Device()}
	session := openSession(t, lib, detect.Flags{})
	defer session.Close()

	d, err := session.DeviceByUUID(id)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "NVIDIA GeForce RTX 3090", d.Model)

	missing, err := session.DeviceByUUID("GPU-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionCloseShutsDown(t *testing.T) {
	lib := workingLibrary()
	session := openSession(t, lib, detect.Flags{})

	require.NoError(t, session.Close())
	assert.Equal(t, 1, lib.inits)
	assert.Equal(t, 1, lib.shutdowns)
}
