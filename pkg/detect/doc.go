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

// Package detect orchestrates GPU detection across vendor platforms.
//
// A Platform wraps one vendor management library; the Detector opens a
// scoped Session on each platform per detection call, reads the
// library-wide API info and every device property, then releases the
// session. No handle outlives a single call.
//
// Detection is all-or-nothing: a single failed property read aborts the
// whole collection with a *DeviceQueryError, and an absent library (or a
// failed library-wide query) surfaces as ErrHardwareUnavailable.
//
//	detector, err := detect.NewBuilder(cuda.NewPlatform()).
//		UnstableProps().
//		Build()
//	if err != nil {
//		return err
//	}
//	info, err := detector.Detect(ctx)
package detect
