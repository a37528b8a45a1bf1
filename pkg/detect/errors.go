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

package detect

import (
	stderrors "errors"
	"fmt"

	"github.com/golemfactory/gpu-info/pkg/errors"
)

// Sentinel errors. Use errors.Is to classify detection failures.
var (
	// ErrHardwareUnavailable indicates the vendor management library is
	// missing, the driver is not loaded, access was denied, or a mandatory
	// library-wide query failed. Non-retryable.
	ErrHardwareUnavailable = stderrors.New("hardware unavailable")

	// ErrNotFound indicates no device matched the requested identifier.
	ErrNotFound = stderrors.New("device not found")
)

// Device property names reported in DeviceQueryError.Field.
// These follow the GAP-35 attribute suffixes without unit qualifiers.
const (
	PropModel           = "model"
	PropCUDACores       = "cuda.cores"
	PropCUDACaps        = "cuda.caps"
	PropClockGraphics   = "clock.graphics"
	PropClockMemory     = "clock.memory"
	PropClockSM         = "clock.sm"
	PropClockVideo      = "clock.video"
	PropMemoryTotal     = "memory.total"
	PropMemoryBandwidth = "memory.bandwidth"
)

// DeviceQueryError reports a failed property read on a specific device.
// Any such failure aborts the entire collection; no partial per-device
// result is ever merged, since callers need a consistent snapshot across
// all GPUs.
type DeviceQueryError struct {
	// Index is the device position in vendor enumeration order.
	Index int
	// Field is the property that could not be read (Prop* constants).
	Field string
	// Cause is the underlying vendor library error.
	Cause error
}

// Error implements the error interface.
func (e *DeviceQueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("device %d: failed to read %s: %v", e.Index, e.Field, e.Cause)
	}
	return fmt.Sprintf("device %d: failed to read %s", e.Index, e.Field)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *DeviceQueryError) Unwrap() error {
	return e.Cause
}

// NewDeviceQueryError creates a DeviceQueryError for the given device index
// and property name.
func NewDeviceQueryError(index int, field string, cause error) *DeviceQueryError {
	return &DeviceQueryError{Index: index, Field: field, Cause: cause}
}

// NewHardwareUnavailable wraps a vendor library failure as a structured,
// classifiable hardware-unavailable error. The returned error matches
// ErrHardwareUnavailable under errors.Is.
func NewHardwareUnavailable(message string, cause error) error {
	if cause == nil {
		return errors.Wrap(errors.ErrCodeHardwareUnavailable, message, ErrHardwareUnavailable)
	}
	return errors.Wrap(errors.ErrCodeHardwareUnavailable, message,
		stderrors.Join(ErrHardwareUnavailable, cause))
}
