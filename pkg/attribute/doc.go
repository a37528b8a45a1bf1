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

// Package attribute defines the flat, typed key/value attribute set published
// for provider offers, following the GAP-35 naming specification.
//
// # Keys
//
// All keys live under the "golem.inf.gpu" namespace. Global keys describe the
// CUDA runtime and driver; per-device keys are indexed by enumeration order:
//
//	golem.inf.gpu.cuda.version          string
//	golem.inf.gpu.cuda.driver.version   string
//	golem.inf.gpu.quantity              int
//
//	golem.inf.gpu.d0.model              string
//	golem.inf.gpu.d0.cuda.enabled       bool
//	golem.inf.gpu.d0.clock.graphics.mhz int
//	golem.inf.gpu.d0.memory.total.gib   float
//	golem.inf.gpu.d0.quantity           int
//
// # Readings
//
// Values are one of: string, boolean, integer, or floating-point. The Reading
// interface keeps the map heterogeneous at runtime while the generic
// Scalar[T] wrapper keeps construction type-safe at compile time. Readings
// marshal to the bare scalar in both JSON and YAML:
//
//	set := attribute.NewSet()
//	set.Put(attribute.KeyCUDAVersion, attribute.Str("12.4"))
//	set.Put(attribute.DeviceKey(0, attribute.FieldModel), attribute.Str("NVIDIA H100"))
//	b, _ := json.Marshal(set)
//
// # Determinism
//
// Serialization emits keys in sorted order, so repeated collections of
// unchanged hardware yield byte-identical documents.
package attribute
