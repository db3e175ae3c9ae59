package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSequenceNumbers(t *testing.T) {
	var s Session
	in := CompareInput{Left: "A=1\n", Right: "A=2\n", Format: FormatEnv}

	first, err := s.Compare(in)
	require.NoError(t, err)
	second, err := s.Compare(in)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)
}

func TestSessionLastRequestWins(t *testing.T) {
	var s Session

	// The newer result lands first; the older one must be discarded.
	assert.True(t, s.Accept(2))
	assert.False(t, s.Accept(1), "stale result must be discarded")
	assert.False(t, s.Accept(2), "a sequence number is accepted at most once")
	assert.True(t, s.Accept(3))
}

func TestSessionConcurrentAccept(t *testing.T) {
	var s Session
	const n = 64

	var wg sync.WaitGroup
	accepted := make([]bool, n+1)
	for seq := uint64(1); seq <= n; seq++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			accepted[seq] = s.Accept(seq)
		}(seq)
	}
	wg.Wait()

	// Whatever interleaving happened, the newest sequence number always
	// beats everything below it.
	assert.True(t, accepted[n])
	count := 0
	last := uint64(0)
	for seq := uint64(1); seq <= n; seq++ {
		if accepted[seq] {
			count++
			assert.Greater(t, seq, last)
			last = seq
		}
	}
	assert.GreaterOrEqual(t, count, 1)
}

func TestSessionCompareErrorKeepsNumbering(t *testing.T) {
	var s Session

	_, err := s.Compare(CompareInput{Left: "A=1\n", Right: "A=1\n", Format: FormatEnv})
	require.NoError(t, err)

	res, err := s.Compare(CompareInput{Left: "B=1\n", Right: "B=2\n", Format: FormatEnv})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Seq)
}
