// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/db47h/logicsim/internal/logging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	td := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, d := range td {
		l, err := logging.ParseLevel(d.in)
		require.NoError(t, err, d.in)
		assert.Equal(t, d.want, l)
	}
	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Warn("shown", "error", errors.New("oops"))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "err=oops")

	logging.NewNop().Error("nothing")
}
