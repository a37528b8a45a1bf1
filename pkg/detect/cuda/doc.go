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

// Package cuda implements the NVIDIA detection backend over NVML.
//
// Each session initializes NVML on open and shuts it down on close; no
// library state survives between detection calls. Device properties are
// read through the official go-nvml bindings, with max clock frequencies,
// total memory, CUDA core count and compute capability queried per device.
package cuda
