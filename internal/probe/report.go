package probe

type StreamKind string

const (
	StreamGeneral StreamKind = "General"
	StreamVideo   StreamKind = "Video"
	StreamAudio   StreamKind = "Audio"
	StreamText    StreamKind = "Text"
	StreamImage   StreamKind = "Image"
	StreamMenu    StreamKind = "Menu"
)

type Field struct {
	Name  string
	Value string
}

type Track struct {
	Kind   StreamKind
	Fields []Field
}

// Report is one probed file: the General track plus every elementary
// track in the order the prober emitted them.
type Report struct {
	Ref     string
	General Track
	Tracks  []Track
}

// Track returns the index-th track of kind, counting only tracks of that
// kind. General is always index 0.
func (r Report) Track(kind StreamKind, index int) (Track, bool) {
	if kind == StreamGeneral {
		return r.General, index == 0
	}
	n := 0
	for _, track := range r.Tracks {
		if track.Kind != kind {
			continue
		}
		if n == index {
			return track, true
		}
		n++
	}
	return Track{}, false
}

func (r Report) Count(kind StreamKind) int {
	n := 0
	for _, track := range r.Tracks {
		if track.Kind == kind {
			n++
		}
	}
	return n
}
