package mediameta

import (
	"encoding/binary"
	"io"
)

const DefaultMaxMoovSize = 16 << 20

// co64Path is the box chain below moov that leads to 64-bit chunk offsets.
var co64Path = []string{"trak", "mdia", "minf", "stbl", "co64"}

// StreamingFlags reports where an ISO-BMFF file keeps its movie box.
type StreamingFlags struct {
	// Optimized is set when moov directly follows the first box, optionally
	// after a free box.
	Optimized       bool
	Has64bitOffsets bool
}

// BoxWalker inspects the start of an MP4 or MOV file. It never fails: a
// malformed or truncated structure simply ends the walk.
type BoxWalker struct {
	MaxMoovSize int64
}

func (w BoxWalker) Walk(r io.ReadSeeker) StreamingFlags {
	var flags StreamingFlags

	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return flags
	}
	if _, err := r.Seek(int64(binary.BigEndian.Uint32(sizeBuf[:])), io.SeekStart); err != nil {
		return flags
	}

	size, boxType, ok := readBoxHeader(r)
	if !ok {
		return flags
	}
	if boxType == "free" {
		if size < 8 {
			return flags
		}
		if _, err := r.Seek(size-8, io.SeekCurrent); err != nil {
			return flags
		}
		if size, boxType, ok = readBoxHeader(r); !ok {
			return flags
		}
	}
	if boxType != "moov" {
		return flags
	}
	flags.Optimized = true

	payload := size - 8
	if payload <= 0 {
		return flags
	}
	limit := w.MaxMoovSize
	if limit <= 0 {
		limit = DefaultMaxMoovSize
	}
	if payload > limit {
		payload = limit
	}
	buf := make([]byte, payload)
	n, _ := io.ReadFull(r, buf)
	flags.Has64bitOffsets = hasBoxPath(buf[:n], co64Path)
	return flags
}

func readBoxHeader(r io.Reader) (int64, string, bool) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, "", false
	}
	return int64(binary.BigEndian.Uint32(header[0:4])), string(header[4:8]), true
}

// hasBoxPath reports whether buf, a box payload, contains the nested chain
// of boxes named by path.
func hasBoxPath(buf []byte, path []string) bool {
	start, end := int64(0), int64(len(buf))
	for _, name := range path {
		var ok bool
		start, end, ok = findBox(buf, name, start, end)
		if !ok {
			return false
		}
	}
	return true
}

// findBox scans the sibling boxes in buf[start:end] for boxType and returns
// the bounds of its payload. A box whose declared size leaves the parent
// ends the scan.
func findBox(buf []byte, boxType string, start, end int64) (int64, int64, bool) {
	if end > int64(len(buf)) {
		end = int64(len(buf))
	}
	for start+8 <= end {
		boxSize, name, headerSize := readMP4BoxHeaderFrom(buf[:end], start)
		if headerSize == 0 || boxSize < headerSize || start+boxSize > end {
			return 0, 0, false
		}
		if name == boxType {
			return start + headerSize, start + boxSize, true
		}
		start += boxSize
	}
	return 0, 0, false
}

// readMP4BoxHeaderFrom decodes the box header at offset. A size of zero
// extends the box to the end of buf; a size of one is followed by a 64-bit
// size.
func readMP4BoxHeaderFrom(buf []byte, offset int64) (boxSize int64, boxType string, headerSize int64) {
	if offset+8 > int64(len(buf)) {
		return 0, "", 0
	}
	size32 := binary.BigEndian.Uint32(buf[offset : offset+4])
	boxType = string(buf[offset+4 : offset+8])
	if size32 == 0 {
		return int64(len(buf)) - offset, boxType, 8
	}
	if size32 == 1 {
		if offset+16 > int64(len(buf)) {
			return 0, "", 0
		}
		size64 := binary.BigEndian.Uint64(buf[offset+8 : offset+16])
		if size64 > uint64(len(buf)) {
			return 0, "", 0
		}
		return int64(size64), boxType, 16
	}
	return int64(size32), boxType, 8
}
