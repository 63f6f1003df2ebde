// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractMessage(bytes []byte) (string, error) {
	type entry struct {
		Msg string `json:"msg"`
	}
	var out entry
	if err := json.Unmarshal(bytes, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

func extractLevel(bytes []byte) (string, error) {
	type entry struct {
		Level string `json:"level"`
	}
	var out entry
	if err := json.Unmarshal(bytes, &out); err != nil {
		return "", err
	}
	return out.Level, nil
}

func TestDebug(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(DebugLevel, buffer)

	logger.Debug("test debug")
	actual, err := extractMessage(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, "test debug", actual)

	lvl, err := extractLevel(buffer.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "debug", lvl)
	assert.Equal(t, DebugLevel, logger.LogLevel())
}

func TestInfo(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)

	logger.Infof("test %s", "info")
	actual, err := extractMessage(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, "test info", actual)

	lvl, err := extractLevel(buffer.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "info", lvl)
}

func TestError(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(ErrorLevel, buffer)

	logger.Error(errors.New("test error"))
	actual, err := extractMessage(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, "test error", actual)

	lvl, err := extractLevel(buffer.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "error", lvl)
}

func TestLevelFiltering(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(ErrorLevel, buffer)

	logger.Info("should be dropped")
	assert.Zero(t, buffer.Len())

	logger.Error("kept")
	assert.NotZero(t, buffer.Len())
}

func TestPanic(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(PanicLevel, buffer)
	assert.Panics(t, func() {
		logger.Panic("boom")
	})
}

func TestInvalidLevelFallsBackToDebug(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(Level(42), buffer)
	require.Equal(t, DebugLevel, logger.LogLevel())

	logger.Debug("visible")
	actual, err := extractMessage(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, "visible", actual)
}

func TestDiscardLogger(t *testing.T) {
	DiscardLogger.Info("nothing")
	assert.Equal(t, InfoLevel, DiscardLogger.LogLevel())
	assert.Len(t, DiscardLogger.LogOutput(), 1)
	assert.Panics(t, func() {
		DiscardLogger.Panicf("boom %d", 1)
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
