package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReveal_EmitsGrowingPrefixes(t *testing.T) {
	ctx := context.Background()

	var got []string
	for s := range Reveal(ctx, "héllo", time.Microsecond) {
		got = append(got, s)
	}

	require.Len(t, got, 5, "one emission per rune")
	assert.Equal(t, "h", got[0])
	assert.Equal(t, "hé", got[1])
	assert.Equal(t, "héllo", got[4])
}

func TestReveal_EmptyTextClosesImmediately(t *testing.T) {
	ch := Reveal(context.Background(), "", time.Microsecond)

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must close without emissions")
	case <-time.After(time.Second):
		t.Fatal("channel never closed")
	}
}

func TestReveal_CancellationStopsTheStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := Reveal(ctx, "some long answer", 10*time.Millisecond)
	<-ch
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not stop after cancellation")
		}
	}
}
