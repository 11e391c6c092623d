// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesInputOrder(t *testing.T) {
	items := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	out, err := Map(context.Background(), Config{Threads: 4}, items, func(_ context.Context, s string) string {
		if s == "A" {
			time.Sleep(20 * time.Millisecond) // let later items finish first
		}
		return strings.ToLower(s)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, out)
}

func TestMapSingleThreadDefault(t *testing.T) {
	out, err := Map(context.Background(), Config{}, []string{"x", "y"}, func(_ context.Context, s string) string {
		return s + "!"
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x!", "y!"}, out)
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Map(ctx, Config{Threads: 2}, []string{"a", "b"}, func(_ context.Context, s string) string {
		return s
	})
	assert.ErrorIs(t, err, context.Canceled)
}
