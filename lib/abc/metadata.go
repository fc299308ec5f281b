// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import (
	"sort"
	"strings"
)

// MetaData is the key/value annotation attached to archives, objects
// and properties. On disk it is a single string of "key=value" pairs
// separated by ";". The zero value is empty and ready to use.
type MetaData struct {
	entries map[string]string
}

// ParseMetaData decodes the serialized form. Tokens without "=" and
// tokens with an empty key carry no information and are skipped. When
// a key repeats, the last value wins.
func ParseMetaData(serialized string) MetaData {
	if serialized == "" {
		return MetaData{}
	}
	entries := make(map[string]string)
	for _, token := range strings.Split(serialized, ";") {
		key, value, found := strings.Cut(token, "=")
		if !found || key == "" {
			continue
		}
		entries[key] = value
	}
	return MetaData{entries: entries}
}

// Get returns the value for key, or "" when absent.
func (m MetaData) Get(key string) string {
	return m.entries[key]
}

// Len returns the number of entries.
func (m MetaData) Len() int {
	return len(m.entries)
}

// Keys returns the keys in sorted order.
func (m MetaData) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Serialize returns the canonical serialized form: entries sorted by
// key, so equal metadata always serializes identically.
func (m MetaData) Serialize() string {
	var builder strings.Builder
	for i, key := range m.Keys() {
		if i > 0 {
			builder.WriteByte(';')
		}
		builder.WriteString(key)
		builder.WriteByte('=')
		builder.WriteString(m.entries[key])
	}
	return builder.String()
}
