package mediameta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func streamsWithIndices(indices ...int) []Stream {
	streams := make([]Stream, len(indices))
	for i, index := range indices {
		streams[i] = Stream{Kind: KindAudio, Index: index, Title: string(rune('a' + i))}
	}
	return streams
}

func indicesOf(streams []Stream) []int {
	out := make([]int, len(streams))
	for i, s := range streams {
		out[i] = s.Index
	}
	return out
}

func titlesOf(streams []Stream) string {
	out := ""
	for _, s := range streams {
		out += s.Title
	}
	return out
}

func TestRenumberMatroska(t *testing.T) {
	cases := []struct {
		name      string
		container string
		indices   []int
		want      []int
		order     string
	}{
		{"shift by minimum", "mkv", []int{2, 5, 9}, []int{0, 3, 7}, "abc"},
		{"non-positive falls back", "mkv", []int{0, 5, 9}, []int{0, 1, 2}, "abc"},
		{"track numbers from one", "mkv", []int{1, 2, 3}, []int{0, 1, 2}, "abc"},
		{"sorted by index", "webm", []int{3, 1, 2}, []int{0, 1, 2}, "bca"},
		{"duplicates fall back", "mkv", []int{1, 1, 2}, []int{0, 1, 2}, "abc"},
		{"negative falls back", "mkv", []int{-1, 4}, []int{0, 1}, "ab"},
		{"non-matroska is sequential", "mp4", []int{7, 3, 9}, []int{0, 1, 2}, "abc"},
		{"avi ignores probe ids", "avi", []int{0, 0, 0}, []int{0, 1, 2}, "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := renumber(tc.container, streamsWithIndices(tc.indices...))
			assert.Equal(t, tc.want, indicesOf(got))
			assert.Equal(t, tc.order, titlesOf(got))
		})
	}
}

func TestRenumberEmpty(t *testing.T) {
	assert.Empty(t, renumber("mkv", nil))
	assert.Empty(t, renumber("mp4", nil))
}
