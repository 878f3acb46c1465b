// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package suffixtree

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForce returns every offset at which sub occurs in s.
func bruteForce(s, sub []byte) []int {
	var offsets []int
	for i := 0; i+len(sub) <= len(s); i++ {
		if bytes.Equal(s[i:i+len(sub)], sub) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pattern string
		want    []int
	}{
		{name: "repeated prefix", input: "abcabxabcd", pattern: "ab", want: []int{0, 3, 6}},
		{name: "overlapping", input: "banana", pattern: "ana", want: []int{1, 3}},
		{name: "single byte run", input: "aaaa", pattern: "aa", want: []int{0, 1, 2}},
		{name: "absent byte", input: "xyz", pattern: "q", want: nil},
		{name: "whole input", input: "banana", pattern: "banana", want: []int{0}},
		{name: "longer than input", input: "banana", pattern: "bananas", want: nil},
		{name: "mismatch mid edge", input: "abcabxabcd", pattern: "abcx", want: nil},
		{name: "ends on leaf", input: "mississippi", pattern: "ppi", want: []int{8}},
		{name: "ends on internal node", input: "mississippi", pattern: "issi", want: []int{1, 4}},
		{name: "single byte", input: "mississippi", pattern: "s", want: []int{2, 3, 5, 6}},
		{name: "empty pattern", input: "abc", pattern: "", want: nil},
		{name: "terminator in pattern", input: "abc", pattern: "c$", want: nil},
		{name: "empty input", input: "", pattern: "a", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := BuildString(tt.input)
			require.NoError(t, err)

			got := tree.SearchString(tt.pattern)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), tree.Count([]byte(tt.pattern)))
			assert.Equal(t, len(tt.want) > 0, tree.Contains([]byte(tt.pattern)))
		})
	}
}

func TestSearch_Idempotent(t *testing.T) {
	tree, err := BuildString("abcabxabcd")
	require.NoError(t, err)

	first := tree.SearchString("abc")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tree.SearchString("abc"))
	}
}

func TestSearch_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabets := []string{"ab", "abc", "acgt", "abcdefgh"}

	for round := 0; round < 200; round++ {
		alphabet := alphabets[round%len(alphabets)]
		input := randomText(rng, alphabet, rng.IntN(64))

		tree, err := Build(input)
		require.NoError(t, err)
		verify(t, tree)

		// every substring of the input, plus random probes that may miss
		for i := 0; i < len(input); i++ {
			for j := i + 1; j <= len(input) && j-i <= 8; j++ {
				sub := input[i:j]
				require.Equal(t, bruteForce(input, sub), tree.Search(sub), "input %q pattern %q", input, sub)
			}
		}
		for k := 0; k < 20; k++ {
			probe := randomText(rng, alphabet, 1+rng.IntN(6))
			require.Equal(t, bruteForce(input, probe), tree.Search(probe), "input %q pattern %q", input, probe)
		}
	}
}

// Degenerate inputs drive the deepest skip/count descents and the longest
// suffix link chains.
func TestBuild_RepetitiveInputs(t *testing.T) {
	inputs := []string{
		strings.Repeat("a", 500),
		strings.Repeat("ab", 250),
		strings.Repeat("abc", 170),
		strings.Repeat("aab", 120),
		fibonacciWord(12),
		strings.Repeat("a", 100) + "b" + strings.Repeat("a", 100),
	}

	for _, input := range inputs {
		tree, err := BuildString(input)
		require.NoError(t, err)
		verify(t, tree)

		for _, sub := range []string{"a", "aa", "ab", "ba", "aab", "abab", "b", strings.Repeat("a", 50)} {
			assert.Equal(t, bruteForce([]byte(input), []byte(sub)), tree.SearchString(sub), "pattern %q", sub)
		}
	}
}

// A first-byte match on an edge directly below the active node stands for a
// full single-byte match. Runs of one byte exercise it in every phase.
func TestBuild_FirstByteMatchOnRuns(t *testing.T) {
	for n := 1; n <= 40; n++ {
		input := strings.Repeat("z", n)
		tree, err := BuildString(input)
		require.NoError(t, err)
		verify(t, tree)

		for k := 1; k <= n; k++ {
			offsets := tree.SearchString(input[:k])
			require.Len(t, offsets, n-k+1)
			assert.Equal(t, 0, offsets[0])
			assert.Equal(t, n-k, offsets[len(offsets)-1])
		}
		assert.Nil(t, tree.SearchString(input+"z"))
	}
}

func TestSearch_ConcurrentReaders(t *testing.T) {
	input := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 20))
	tree, err := Build(input)
	require.NoError(t, err)

	patterns := []string{"the", "fox", "dog ", "o", "lazy dog the", "cat"}
	want := make(map[string][]int, len(patterns))
	for _, p := range patterns {
		want[p] = bruteForce(input, []byte(p))
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range patterns {
				assert.Equal(t, want[p], tree.SearchString(p))
			}
		}()
	}
	wg.Wait()
}

func randomText(rng *rand.Rand, alphabet string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return b
}

func fibonacciWord(n int) string {
	a, b := "a", "ab"
	for i := 0; i < n; i++ {
		a, b = b, b+a
	}
	return b
}

func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	input := randomText(rng, "acgt", 1<<16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	input := randomText(rng, "acgt", 1<<16)
	tree, err := Build(input)
	if err != nil {
		b.Fatal(err)
	}
	pattern := input[1000:1012]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(pattern)
	}
}
