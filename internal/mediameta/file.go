package mediameta

import (
	"io"
	"os"
)

// File is read access to the media file being probed. It is only opened
// for MP4 and MOV containers.
type File interface {
	OpenRead() (io.ReadSeekCloser, error)
}

// OSFile is a File on the local filesystem.
type OSFile string

func (f OSFile) OpenRead() (io.ReadSeekCloser, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return nil, err
	}
	return file, nil
}
