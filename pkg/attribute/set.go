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

package attribute

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is the flat key/value map produced by one collection call.
// Keys are GAP-35 attribute names; values are typed scalar readings.
// The zero value is not usable; create instances with NewSet.
//
// Serialization is deterministic: both JSON and YAML emit keys in sorted
// order, so two collections of unchanged hardware produce byte-identical
// output.
type Set struct {
	data map[string]Reading
}

// NewSet creates an empty attribute set.
func NewSet() *Set {
	return &Set{data: make(map[string]Reading)}
}

// Put stores a reading under the given key, replacing any previous value.
func (s *Set) Put(key string, r Reading) {
	s.data[key] = r
}

// Get retrieves a reading by key, returning nil if not found.
func (s *Set) Get(key string) Reading {
	return s.data[key]
}

// Has checks if a key exists in the set.
func (s *Set) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Len returns the number of attributes in the set.
func (s *Set) Len() int {
	return len(s.data)
}

// Keys returns all keys in sorted order.
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeysWithPrefix returns all keys with the given prefix, in sorted order.
func (s *Set) KeysWithPrefix(prefix string) []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// GetString attempts to retrieve a string value, returning an error if not found or wrong type.
func (s *Set) GetString(key string) (string, error) {
	reading := s.data[key]
	if reading == nil {
		return "", fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return v, nil
}

// GetInt64 attempts to retrieve an integer value, returning an error if not found or wrong type.
func (s *Set) GetInt64(key string) (int64, error) {
	reading := s.data[key]
	if reading == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	// Handle both int64 and int
	switch v := reading.Any().(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("key %q is not an integer", key)
	}
}

// GetFloat64 attempts to retrieve a float64 value, returning an error if not found or wrong type.
func (s *Set) GetFloat64(key string) (float64, error) {
	reading := s.data[key]
	if reading == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(float64)
	if !ok {
		return 0, fmt.Errorf("key %q is not a float64", key)
	}
	return v, nil
}

// GetBool attempts to retrieve a bool value, returning an error if not found or wrong type.
func (s *Set) GetBool(key string) (bool, error) {
	reading := s.data[key]
	if reading == nil {
		return false, fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(bool)
	if !ok {
		return false, fmt.Errorf("key %q is not a bool", key)
	}
	return v, nil
}

// Equal reports whether both sets contain the same keys with the same
// underlying scalar values.
func (s *Set) Equal(other *Set) bool {
	if other == nil || len(s.data) != len(other.data) {
		return false
	}
	for k, v := range s.data {
		ov, ok := other.data[k]
		if !ok || v.Any() != ov.Any() {
			return false
		}
	}
	return true
}

// Validate checks if the set is properly formed.
func (s *Set) Validate() error {
	if len(s.data) == 0 {
		return errors.New("attribute set cannot be empty")
	}
	for k := range s.data {
		if !strings.HasPrefix(k, Namespace) {
			return fmt.Errorf("key %q is outside the %s namespace", k, Namespace)
		}
	}
	return nil
}

// MarshalJSON serializes the set as a flat JSON object.
// encoding/json sorts map keys, which keeps the output deterministic.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.data)
}

// UnmarshalJSON deserializes a flat JSON object into typed readings.
func (s *Set) UnmarshalJSON(data []byte) error {
	var tmp map[string]any
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	s.data = make(map[string]Reading, len(tmp))
	for k, v := range tmp {
		s.data[k] = ToReading(v)
	}
	return nil
}

// MarshalYAML serializes the set as a flat YAML mapping with sorted keys.
func (s *Set) MarshalYAML() (any, error) {
	out := make(map[string]Reading, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, nil
}

// UnmarshalYAML deserializes a flat YAML mapping into typed readings.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var tmp map[string]any
	if err := node.Decode(&tmp); err != nil {
		return err
	}
	s.data = make(map[string]Reading, len(tmp))
	for k, v := range tmp {
		s.data[k] = ToReading(v)
	}
	return nil
}
