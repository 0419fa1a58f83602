package ioctx

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdoutRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := StdoutToContext(context.Background(), &buf)
	assert.Same(t, io.Writer(&buf), StdoutFromContext(ctx))
}

func TestStderrRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := StderrToContext(context.Background(), &buf)
	assert.Same(t, io.Writer(&buf), StderrFromContext(ctx))
}

func TestMissingWritersDiscard(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, io.Discard, StdoutFromContext(ctx))
	assert.Equal(t, io.Discard, StderrFromContext(ctx))
}
