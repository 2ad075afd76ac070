package mediameta

import (
	"math"
	"strconv"
	"strings"
)

// ResolutionFunc classifies a primary video size into a resolution bucket
// such as "1080" or "sd".
type ResolutionFunc func(width, height int) string

// containerFacts are the General-stream values a descriptor starts from.
type containerFacts struct {
	Container string
	Duration  int64
	Size      int64
	Bitrate   int
	Chaptered bool
}

// aspectBuckets are upper bounds (exclusive) and the ratio reported below
// them. Anything wider is 2.35.
var aspectBuckets = []struct {
	below  float64
	bucket float64
}{
	{1.50, 1.33},
	{1.72, 1.66},
	{1.815, 1.78},
	{2.025, 1.85},
	{2.275, 2.20},
}

// AspectRatio buckets width/height scaled by the pixel aspect ratio. A
// zero pa is treated as square pixels.
func AspectRatio(width, height int, pa float64) float64 {
	if pa == 0 {
		pa = 1
	}
	raw := float64(width) / float64(height) * pa
	for _, b := range aspectBuckets {
		if raw < b.below {
			return b.bucket
		}
	}
	return 2.35
}

// FrameRateLabel renders a frame rate as "24p", "50i" and the like, with
// 25 and 30 reported as PAL and NTSC.
func FrameRateLabel(rate float64, scanType string) string {
	label := strconv.Itoa(int(math.Round(rate)))
	if strings.Contains(strings.ToLower(scanType), "int") {
		label += "i"
	} else {
		label += "p"
	}
	switch label {
	case "25p", "25i":
		return "PAL"
	case "30p", "30i":
		return "NTSC"
	}
	return label
}

func codecSummary(s Stream) string {
	if s.Codec != "" {
		return s.Codec
	}
	return s.CodecID
}

// assemble folds translated streams into a descriptor. The input slices
// are not modified.
func assemble(facts containerFacts, video, audio, text []Stream, resolution ResolutionFunc) *MediaDescriptor {
	video = append([]Stream(nil), video...)
	audio = append([]Stream(nil), audio...)
	text = append([]Stream(nil), text...)

	d := &MediaDescriptor{
		Container: facts.Container,
		Duration:  facts.Duration,
		Bitrate:   facts.Bitrate,
		Chaptered: facts.Chaptered,
	}

	if len(video) > 0 {
		// The first translated stream, so a skipped stream 0 promotes stream 1.
		primary := video[0]
		d.Width, d.Height = primary.Width, primary.Height
		if d.Width != 0 && d.Height != 0 {
			if resolution != nil {
				d.VideoResolution = resolution(d.Width, d.Height)
			}
			d.AspectRatio = AspectRatio(d.Width, d.Height, primary.PA)
		}
		if primary.FrameRate != 0 {
			d.VideoFrameRate = FrameRateLabel(primary.FrameRate, primary.ScanType)
		}
		d.VideoCodec = codecSummary(primary)
	}

	audioBitrate := 0
	for i := range audio {
		if audio[i].Codec == "adpcm" && d.Container == "flv" {
			audio[i].Codec = "adpcm_swf"
		}
		audioBitrate += audio[i].Bitrate
	}
	if len(audio) > 0 {
		d.AudioCodec = codecSummary(audio[0])
		d.AudioChannels = audio[0].Channels
	}

	for _, group := range [][]Stream{video, audio} {
		for _, s := range group {
			if s.Duration > d.Duration {
				d.Duration = s.Duration
			}
		}
	}

	for _, group := range [][]Stream{video, audio, text} {
		if len(group) == 1 {
			group[0].Default = No
			group[0].Forced = No
		}
	}

	if len(video) > 0 && video[0].Bitrate == 0 && d.Bitrate != 0 {
		if rest := d.Bitrate - audioBitrate; rest > 0 {
			video[0].Bitrate = rest
		}
	}

	streams := make([]Stream, 0, len(video)+len(audio)+len(text))
	streams = append(streams, video...)
	streams = append(streams, audio...)
	streams = append(streams, text...)

	d.Parts = []Part{{
		Size:      facts.Size,
		Duration:  d.Duration,
		Container: d.Container,
		Streams:   renumber(d.Container, streams),
	}}
	return d
}
