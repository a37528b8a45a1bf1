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

// Package cli implements the gpuinfo command line interface.
//
// Commands:
//   - detect: detect all GPUs and print their offer attributes
//   - find:   look up a single GPU by vendor UUID
//
// Output format (--format json|yaml|table) and destination (--output) are
// shared across commands; --log-level (or LOG_LEVEL) controls verbosity.
package cli
