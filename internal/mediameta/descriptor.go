package mediameta

import (
	"github.com/autobrr/go-mediameta/internal/probe"
)

// Kind is the elementary stream type. The numeric values are part of the
// JSON form.
type Kind int

const (
	KindVideo Kind = 1
	KindAudio Kind = 2
	KindText  Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "Video"
	case KindAudio:
		return "Audio"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

func (k Kind) probeKind() probe.StreamKind {
	switch k {
	case KindVideo:
		return probe.StreamVideo
	case KindAudio:
		return probe.StreamAudio
	default:
		return probe.StreamText
	}
}

// TriState is a flag the prober may leave unreported. The zero value is
// Unset and is omitted from JSON; No and Yes encode as 0 and 1.
type TriState int8

const (
	Unset TriState = iota
	No
	Yes
)

func (t TriState) IsSet() bool { return t != Unset }

// Int returns 0 or 1 for a set flag and -1 when unset.
func (t TriState) Int() int {
	switch t {
	case No:
		return 0
	case Yes:
		return 1
	default:
		return -1
	}
}

func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("1"), nil
	case No:
		return []byte("0"), nil
	default:
		return []byte("null"), nil
	}
}

func triStateOf(b bool) TriState {
	if b {
		return Yes
	}
	return No
}

// Stream is one elementary track. Fields that do not apply to its Kind
// stay at their zero value.
type Stream struct {
	Kind         Kind     `json:"streamType"`
	ID           uint64   `json:"id,omitempty"`
	Codec        string   `json:"codec,omitempty"`
	CodecID      string   `json:"codecID,omitempty"`
	Title        string   `json:"title,omitempty"`
	Language     string   `json:"language,omitempty"`
	LanguageCode string   `json:"languageCode,omitempty"`
	Bitrate      int      `json:"bitrate,omitempty"`
	Index        int      `json:"index"`
	Default      TriState `json:"default,omitempty"`
	Forced       TriState `json:"forced,omitempty"`

	// Video and audio
	Duration int64  `json:"duration,omitempty"`
	BitDepth int    `json:"bitDepth,omitempty"`
	Profile  string `json:"profile,omitempty"`

	// Video
	Width             int      `json:"width,omitempty"`
	Height            int      `json:"height,omitempty"`
	ScanType          string   `json:"scanType,omitempty"`
	Level             int      `json:"level,omitempty"`
	FrameRate         float64  `json:"frameRate,omitempty"`
	FrameRateMode     string   `json:"frameRateMode,omitempty"`
	ColorSpace        string   `json:"colorSpace,omitempty"`
	ChromaSubsampling string   `json:"chromaSubsampling,omitempty"`
	RefFrames         int      `json:"refFrames,omitempty"`
	Cabac             TriState `json:"cabac,omitempty"`
	QPel              TriState `json:"qpel,omitempty"`
	GMC               string   `json:"gmc,omitempty"`
	BVOP              TriState `json:"bvop,omitempty"`
	Orientation       int      `json:"orientation,omitempty"`
	PixelAspectRatio  string   `json:"pixelAspectRatio,omitempty"`
	PA                float64  `json:"-"`
	HasScalingMatrix  TriState `json:"hasScalingMatrix,omitempty"`
	HeaderStripping   bool     `json:"headerStripping,omitempty"`

	// Audio
	SamplingRate int    `json:"samplingRate,omitempty"`
	Channels     int    `json:"channels,omitempty"`
	BitrateMode  string `json:"bitrateMode,omitempty"`
	DialogNorm   string `json:"dialogNorm,omitempty"`

	// Text
	Format string `json:"format,omitempty"`
}

// Part is the single physical file behind a descriptor. Streams are in
// final presentation order.
type Part struct {
	Size                  int64    `json:"size,omitempty"`
	Duration              int64    `json:"duration,omitempty"`
	Container             string   `json:"container,omitempty"`
	OptimizedForStreaming bool     `json:"optimizedForStreaming"`
	Has64bitOffsets       bool     `json:"has64bitOffsets"`
	Streams               []Stream `json:"streams"`
}

// MediaDescriptor is the normalized result of one probe. It is freshly
// allocated per call and owned by the caller.
type MediaDescriptor struct {
	Container             string  `json:"container,omitempty"`
	Duration              int64   `json:"duration,omitempty"`
	Bitrate               int     `json:"bitrate,omitempty"`
	Width                 int     `json:"width,omitempty"`
	Height                int     `json:"height,omitempty"`
	VideoResolution       string  `json:"videoResolution,omitempty"`
	AspectRatio           float64 `json:"aspectRatio,omitempty"`
	VideoFrameRate        string  `json:"videoFrameRate,omitempty"`
	AudioChannels         int     `json:"audioChannels,omitempty"`
	Chaptered             bool    `json:"chaptered"`
	OptimizedForStreaming bool    `json:"optimizedForStreaming"`
	Has64bitOffsets       bool    `json:"has64bitOffsets"`
	VideoCodec            string  `json:"videoCodec,omitempty"`
	AudioCodec            string  `json:"audioCodec,omitempty"`
	Parts                 []Part  `json:"parts"`
}

// Streams returns the streams of the descriptor's only part.
func (d *MediaDescriptor) Streams() []Stream {
	if d == nil || len(d.Parts) == 0 {
		return nil
	}
	return d.Parts[0].Streams
}

// StreamsOf returns the streams of kind in presentation order.
func (d *MediaDescriptor) StreamsOf(kind Kind) []Stream {
	var out []Stream
	for _, s := range d.Streams() {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
