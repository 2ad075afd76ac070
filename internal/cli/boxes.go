package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/abema/go-mp4"

	"github.com/autobrr/go-mediameta/internal/mediameta"
)

// PrintBoxes writes the box tree of an ISO-BMFF file, then the streaming
// layout the box walker derives from it.
func PrintBoxes(r io.ReadSeeker, w io.Writer, maxMoovSize int64) error {
	_, err := mp4.ReadBoxStructure(r, func(h *mp4.ReadHandle) (interface{}, error) {
		indent := strings.Repeat("  ", len(h.Path)-1)
		fmt.Fprintf(w, "%s[%s] offset=%d size=%d\n", indent, h.BoxInfo.Type, h.BoxInfo.Offset, h.BoxInfo.Size)

		switch h.BoxInfo.Type {
		case mp4.BoxTypeMdat(), mp4.BoxTypeFree(), mp4.BoxTypeSkip():
			return nil, nil
		}
		if !h.BoxInfo.IsSupportedType() {
			return nil, nil
		}
		return h.Expand()
	})
	if err != nil {
		return fmt.Errorf("could not read box structure: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	flags := mediameta.BoxWalker{MaxMoovSize: maxMoovSize}.Walk(r)
	fmt.Fprintf(w, "\nOptimized for streaming : %s\n", yesNo(flags.Optimized))
	fmt.Fprintf(w, "64-bit chunk offsets    : %s\n", yesNo(flags.Has64bitOffsets))
	return nil
}
