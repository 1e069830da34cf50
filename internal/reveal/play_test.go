// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPlay_WritesWholeText(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	text := "Scanning inbox... Found 1 request. Added to batch."
	require.NoError(t, Play(context.Background(), &buf, text, time.Microsecond))
	assert.Equal(t, text, buf.String())
}

func TestPlay_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Play(context.Background(), &buf, "", time.Millisecond))
	assert.Empty(t, buf.String())
}

func TestPlay_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	text := "this text is far too long to finish in thirty milliseconds at this pace"
	err := Play(ctx, &buf, text, 10*time.Millisecond)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, buf.Len(), len(text))
	assert.True(t, bytes.HasPrefix([]byte(text), buf.Bytes()))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPlay_WriteError(t *testing.T) {
	err := Play(context.Background(), failingWriter{}, "abc", time.Microsecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
