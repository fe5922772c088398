// Package aligner implements longest-common-subsequence alignment over
// arbitrary token sequences. It is the single alignment primitive shared by
// the line differ and the inline differ.
package aligner

// Op identifies how one backtracked alignment step relates the two sequences.
type Op int

const (
	// OpMatch pairs equal tokens from both sequences.
	OpMatch Op = iota
	// OpDelete consumes a token from the left sequence only.
	OpDelete
	// OpInsert consumes a token from the right sequence only.
	OpInsert
	// OpReplace pairs unequal tokens from both sequences. Emitted only when
	// Options.PairReplacements is set and the table is ambiguous at the step.
	OpReplace
)

// Pair is one step of an alignment. A and B are indexes into the input
// sequences; -1 marks the side that contributes no token to the step.
type Pair struct {
	Op Op
	A  int
	B  int
}

// Options configure an alignment run.
type Options struct {
	// PairReplacements emits OpReplace when, at an unequal step, moving up
	// and moving left preserve the same subsequence length. Without it the
	// tie is broken in favor of the insertion.
	PairReplacements bool
}

// Table computes the full LCS dynamic-programming table for a and b, where
// dp[i][j] is the length of the longest common subsequence of the first i
// tokens of a and the first j tokens of b.
func Table(a, b []string) [][]int {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp
}

// Align computes the LCS alignment of a and b and backtracks it into an
// ordered sequence of pairs covering every token of both inputs.
//
// The tie-break is fixed: at an unequal step, when dp[i][j-1] >= dp[i-1][j]
// the step is taken as an insertion from b before a deletion from a. This
// determines whether adjacent insert/delete runs come out as added-then-
// removed or the reverse, so it must not change.
func Align(a, b []string, opts Options) []Pair {
	dp := Table(a, b)

	var rev []Pair
	i, j := len(a), len(b)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			rev = append(rev, Pair{Op: OpMatch, A: i - 1, B: j - 1})
			i--
			j--
		case opts.PairReplacements && i > 0 && j > 0 && dp[i][j-1] == dp[i-1][j]:
			rev = append(rev, Pair{Op: OpReplace, A: i - 1, B: j - 1})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			rev = append(rev, Pair{Op: OpInsert, A: -1, B: j - 1})
			j--
		default:
			rev = append(rev, Pair{Op: OpDelete, A: i - 1, B: -1})
			i--
		}
	}

	pairs := make([]Pair, len(rev))
	for k := range rev {
		pairs[k] = rev[len(rev)-1-k]
	}
	return pairs
}
