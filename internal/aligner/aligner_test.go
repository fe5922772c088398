package aligner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffscope/diffscope/internal/aligner"
)

func TestTableComputesLCSLengths(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}

	dp := aligner.Table(a, b)

	require.Len(t, dp, 4)
	require.Len(t, dp[3], 4)
	assert.Equal(t, 2, dp[3][3], "LCS of abc/axc is ac")
	assert.Equal(t, 1, dp[1][1])
	assert.Equal(t, 0, dp[0][3])
}

func TestAlignEqualSequences(t *testing.T) {
	a := []string{"one", "two", "three"}

	pairs := aligner.Align(a, a, aligner.Options{})

	require.Len(t, pairs, 3)
	for i, p := range pairs {
		assert.Equal(t, aligner.OpMatch, p.Op)
		assert.Equal(t, i, p.A)
		assert.Equal(t, i, p.B)
	}
}

func TestAlignEmptySides(t *testing.T) {
	pairs := aligner.Align(nil, []string{"a", "b"}, aligner.Options{})
	require.Len(t, pairs, 2)
	assert.Equal(t, aligner.OpInsert, pairs[0].Op)
	assert.Equal(t, -1, pairs[0].A)
	assert.Equal(t, 0, pairs[0].B)

	pairs = aligner.Align([]string{"a", "b"}, nil, aligner.Options{})
	require.Len(t, pairs, 2)
	assert.Equal(t, aligner.OpDelete, pairs[0].Op)
	assert.Equal(t, -1, pairs[0].B)

	pairs = aligner.Align(nil, nil, aligner.Options{})
	assert.Empty(t, pairs)
}

func TestAlignInsertion(t *testing.T) {
	a := []string{"a", "c"}
	b := []string{"a", "b", "c"}

	pairs := aligner.Align(a, b, aligner.Options{})

	require.Len(t, pairs, 3)
	assert.Equal(t, aligner.OpMatch, pairs[0].Op)
	assert.Equal(t, aligner.OpInsert, pairs[1].Op)
	assert.Equal(t, 1, pairs[1].B)
	assert.Equal(t, aligner.OpMatch, pairs[2].Op)
}

func TestAlignAmbiguousStepPairsReplacement(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}

	pairs := aligner.Align(a, b, aligner.Options{PairReplacements: true})

	require.Len(t, pairs, 3)
	assert.Equal(t, aligner.OpMatch, pairs[0].Op)
	assert.Equal(t, aligner.OpReplace, pairs[1].Op)
	assert.Equal(t, 1, pairs[1].A)
	assert.Equal(t, 1, pairs[1].B)
	assert.Equal(t, aligner.OpMatch, pairs[2].Op)
}

func TestAlignWithoutPairingEmitsDeleteAndInsert(t *testing.T) {
	pairs := aligner.Align([]string{"x"}, []string{"y"}, aligner.Options{})

	require.Len(t, pairs, 2)
	assert.Equal(t, aligner.OpDelete, pairs[0].Op)
	assert.Equal(t, aligner.OpInsert, pairs[1].Op)
}

func TestAlignCoversEveryToken(t *testing.T) {
	a := []string{"p", "q", "r", "s"}
	b := []string{"q", "r", "t", "u"}

	pairs := aligner.Align(a, b, aligner.Options{})

	seenA := make(map[int]bool)
	seenB := make(map[int]bool)
	for _, p := range pairs {
		if p.A >= 0 {
			assert.False(t, seenA[p.A], "left token consumed twice")
			seenA[p.A] = true
		}
		if p.B >= 0 {
			assert.False(t, seenB[p.B], "right token consumed twice")
			seenB[p.B] = true
		}
	}
	assert.Len(t, seenA, len(a))
	assert.Len(t, seenB, len(b))
}
