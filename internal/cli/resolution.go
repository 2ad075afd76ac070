package cli

// resolutionBuckets are checked in order; a video lands in the first
// bucket either of whose dimensions it reaches. Width thresholds allow
// for cropped scope releases.
var resolutionBuckets = []struct {
	name   string
	width  int
	height int
}{
	{"4k", 3200, 1800},
	{"1080", 1700, 1000},
	{"720", 1200, 700},
	{"480", 700, 470},
}

// Resolution classifies a primary video size into a resolution bucket.
func Resolution(width, height int) string {
	for _, b := range resolutionBuckets {
		if width >= b.width || height >= b.height {
			return b.name
		}
	}
	return "sd"
}
