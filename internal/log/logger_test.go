// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Logger_New_child(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetFormat(FormatPlain), AddContext("pkg", "client"))
	child := parent.New(AddContext("pkg", "storage"), SetLevel(LevelDebug))

	parent.Debug("hidden")
	child.Debug("shown")

	output := buffer.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "DEBUG    shown\tpkg=client,storage\n")

	// child settings must not leak into the parent
	assert.Len(t, parent.settings.context, 1)
	assert.Equal(t, []string{"client"}, parent.settings.context[0].values)
}

func Test_Logger_Patch(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetFormat(FormatPlain))
	child := parent.New(AddContext("pkg", "rpc"))

	child.Trace("before")
	parent.Patch(SetLevel(LevelTrace))
	child.Trace("after")

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "TRACE    after\tpkg=rpc")
}

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		s          string
		level      Level
		errWrapped error
	}{
		"trace":           {s: "trace", level: LevelTrace},
		"short debug":     {s: "DBUG", level: LevelDebug},
		"numeric warn":    {s: "3", level: LevelWarn},
		"padded critical": {s: " critical ", level: LevelCritical},
		"unknown":         {s: "loud", errWrapped: ErrLevelNotRecognised},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLevel(testCase.s)

			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.Equal(t, testCase.level, level)
		})
	}
}

func Test_settings_mergeWith(t *testing.T) {
	t.Parallel()

	level := LevelError
	s := settings{
		context: []contextKeyValues{{key: "a", values: []string{"1"}}},
	}
	s.mergeWith(settings{
		level:   &level,
		context: []contextKeyValues{{key: "a", values: []string{"2"}}, {key: "b", values: []string{"3"}}},
	})

	assert.Equal(t, LevelError, *s.level)
	assert.Equal(t, []contextKeyValues{
		{key: "a", values: []string{"1", "2"}},
		{key: "b", values: []string{"3"}},
	}, s.context)
}
