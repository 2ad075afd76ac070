package mediameta

import "sort"

// renumber assigns final stream indices. Streams arrive grouped video,
// audio, text in discovery order.
//
// Outside the matroska family every stream is numbered from zero in that
// order. Matroska track numbers are kept, shifted so the smallest becomes
// zero, unless any of them is non-positive or repeated; then the
// sequential numbering applies. The result is sorted by index.
func renumber(container string, streams []Stream) []Stream {
	if !isMatroska(container) || !validTrackNumbers(streams) {
		for i := range streams {
			streams[i].Index = i
		}
		return streams
	}

	lowest := streams[0].Index
	for _, s := range streams[1:] {
		if s.Index < lowest {
			lowest = s.Index
		}
	}
	for i := range streams {
		streams[i].Index -= lowest
	}
	sort.SliceStable(streams, func(i, j int) bool {
		return streams[i].Index < streams[j].Index
	})
	return streams
}

func validTrackNumbers(streams []Stream) bool {
	if len(streams) == 0 {
		return false
	}
	seen := make(map[int]bool, len(streams))
	for _, s := range streams {
		if s.Index <= 0 || seen[s.Index] {
			return false
		}
		seen[s.Index] = true
	}
	return true
}
