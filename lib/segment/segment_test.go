// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package segment

import (
	"bytes"
	"testing"

	"lukechampine.com/frand"
)

func TestAppend_RunningIndices(t *testing.T) {
	// Chain of varying lengths, including zero-length nodes.
	lengths := []int{3, 0, 7, 1, 0, 12, 5, 2, 0, 9, 4, 1}

	first := NewChain(make([]byte, lengths[0]))
	node := first
	for _, n := range lengths[1:] {
		node = node.Append(make([]byte, n))
	}

	wantIndex := 0
	i := 0
	for s := first; s != nil; s = s.Next() {
		if s.RunningIndex() != wantIndex {
			t.Errorf("node %d: running index %d, want %d", i, s.RunningIndex(), wantIndex)
		}
		if s.Len() != lengths[i] {
			t.Errorf("node %d: length %d, want %d", i, s.Len(), lengths[i])
		}
		wantIndex += s.Len()
		i++
	}
	if i != len(lengths) {
		t.Errorf("chain has %d nodes, want %d", i, len(lengths))
	}
}

func TestNewChain_ZeroRunningIndex(t *testing.T) {
	s := NewChain([]byte("abc"))
	if s.RunningIndex() != 0 {
		t.Errorf("first node running index %d, want 0", s.RunningIndex())
	}
	if s.Next() != nil {
		t.Error("fresh node has a successor")
	}
}

func TestSegments_AliasOriginal(t *testing.T) {
	buf := []byte("left.right")
	view := SplitByte(buf, '.')

	first, err := view.First()
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	// Mutating the original must show through the segment: segments
	// are views, not copies.
	buf[0] = 'L'
	if got := string(first.Data()); got != "Left" {
		t.Errorf("segment does not alias the original: %q", got)
	}
}

func collect(t *testing.T, v SequenceView) []string {
	t.Helper()
	var out []string
	for s := range v.All() {
		out = append(out, string(s.Data()))
	}
	if len(out) != v.Count() {
		t.Fatalf("Count() is %d but chain has %d nodes", v.Count(), len(out))
	}
	return out
}

func TestSplitByte(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   byte
		want  []string
	}{
		{"no separator", "abc", '.', []string{"abc"}},
		{"empty input", "", '.', []string{""}},
		{"adjacent separators", "a..b", '.', []string{"a", "", "b"}},
		{"leading separator", ".a.b", '.', []string{"", "a", "b"}},
		{"trailing separator", "a.b.", '.', []string{"a", "b", ""}},
		{"only separators", "...", '.', []string{"", "", "", ""}},
		{"single separator", "a.b", '.', []string{"a", "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := SplitByte([]byte(tc.input), tc.sep)
			got := collect(t, view)
			if len(got) != len(tc.want) {
				t.Fatalf("got %q (count %d), want %q", got, len(got), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("segment %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSplit_Substring(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   string
		cmp   Comparison
		want  []string
	}{
		{"ordinal", "1ab2Ab3aB4ab5", "ab", CaseSensitive, []string{"1", "2Ab3aB4", "5"}},
		{"ignore case", "1ab2Ab3aB4ab5", "ab", CaseInsensitive, []string{"1", "2", "3", "4", "5"}},
		{"no occurrence", "abc", "xyz", CaseSensitive, []string{"abc"}},
		{"empty separator", "abc", "", CaseSensitive, []string{"abc"}},
		{"empty input", "", "ab", CaseSensitive, []string{""}},
		{"whole input is separator", "ab", "ab", CaseSensitive, []string{"", ""}},
		{"multi-byte adjacent", "xabaBy", "ab", CaseInsensitive, []string{"x", "", "y"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := Split([]byte(tc.input), []byte(tc.sep), tc.cmp)
			got := collect(t, view)
			if len(got) != len(tc.want) {
				t.Fatalf("got %q (count %d), want %q", got, len(got), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("segment %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSplit_CountMatchesOccurrences(t *testing.T) {
	input := []byte("a.b..c...d")
	view := SplitByte(input, '.')
	occurrences := bytes.Count(input, []byte{'.'})
	if view.Count() != occurrences+1 {
		t.Errorf("count %d, want occurrences+1 = %d", view.Count(), occurrences+1)
	}
}

func TestSplit_JoinRoundTrip(t *testing.T) {
	sep := []byte("--")
	for range 50 {
		// Random buffer over a tiny alphabet so separators actually
		// occur, including adjacent runs.
		buf := make([]byte, frand.Intn(64))
		for i := range buf {
			buf[i] = "ab-"[frand.Intn(3)]
		}
		view := Split(buf, sep, CaseSensitive)
		rejoined := view.Join(sep)
		if !bytes.Equal(rejoined, buf) {
			t.Fatalf("round trip failed: %q -> %q", buf, rejoined)
		}
		if !bytes.Equal(view.Original(), buf) {
			t.Fatal("Original does not return the input buffer")
		}
	}
}

func TestSplit_RunningIndicesSkipSeparators(t *testing.T) {
	view := Split([]byte("aa.bbb.c"), []byte("."), CaseSensitive)
	wantIndex := 0
	for s := range view.All() {
		if s.RunningIndex() != wantIndex {
			t.Errorf("running index %d, want %d", s.RunningIndex(), wantIndex)
		}
		wantIndex += s.Len()
	}
}

func TestSequenceView_ZeroValue(t *testing.T) {
	var view SequenceView
	if view.Count() != 0 {
		t.Errorf("zero view count %d, want 0", view.Count())
	}
	if _, err := view.First(); err != ErrEmptyView {
		t.Errorf("zero view First: got %v, want ErrEmptyView", err)
	}
	for range view.All() {
		t.Fatal("zero view yielded a segment")
	}
}

func TestSplit_EmptyInputYieldsOneEmptySegment(t *testing.T) {
	view := SplitByte(nil, '.')
	if view.Count() != 1 {
		t.Fatalf("count %d, want 1", view.Count())
	}
	first, err := view.First()
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if first.Len() != 0 {
		t.Errorf("segment length %d, want 0", first.Len())
	}
}
