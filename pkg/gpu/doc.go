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

// Package gpu defines the device reading model shared by all detection
// platforms: the properties read for each physical GPU (model, CUDA
// capability, clocks, memory) and the aggregate Info document.
//
// Identical cards are collapsed into a single group with a quantity count
// (GroupDevices), and the whole document flattens into the GAP-35 attribute
// schema via Info.Attributes.
package gpu
