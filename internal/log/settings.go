// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

type settings struct {
	writer  io.Writer
	level   *Level
	format  *Format
	caller  *bool
	context []contextKeyValues
}

type contextKeyValues struct {
	key    string
	values []string
}

func newSettings(options []Option) (settings settings) {
	for _, option := range options {
		option(&settings)
	}
	return settings
}

// mergeWith sets values of the receiving settings to the values of the
// other settings, wherever the other settings value is set.
// Context key values are appended to the existing ones.
func (s *settings) mergeWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}

	if other.level != nil {
		value := *other.level
		s.level = &value
	}

	if other.format != nil {
		value := *other.format
		s.format = &value
	}

	if other.caller != nil {
		value := *other.caller
		s.caller = &value
	}

	newContext := make([]contextKeyValues, 0, len(s.context)+len(other.context))
	for _, kv := range s.context {
		newContext = append(newContext, contextKeyValues{
			key:    kv.key,
			values: append([]string(nil), kv.values...),
		})
	}

	for _, otherKV := range other.context {
		merged := false
		for i := range newContext {
			if newContext[i].key == otherKV.key {
				newContext[i].values = append(newContext[i].values, otherKV.values...)
				merged = true
				break
			}
		}
		if !merged {
			newContext = append(newContext, contextKeyValues{
				key:    otherKV.key,
				values: append([]string(nil), otherKV.values...),
			})
		}
	}
	s.context = newContext
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		value := LevelInfo
		s.level = &value
	}

	if s.format == nil {
		value := FormatConsole
		s.format = &value
	}

	if s.caller == nil {
		value := false
		s.caller = &value
	}
}
