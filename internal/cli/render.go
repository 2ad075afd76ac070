package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/autobrr/go-mediameta/internal/mediameta"
)

// RenderText lays out each descriptor the way mediainfo prints a report:
// one block for the file and one per stream.
func RenderText(results []Result) string {
	var buf bytes.Buffer
	written := 0
	for _, result := range results {
		d := result.Descriptor
		if d == nil {
			continue
		}
		if written > 0 {
			buf.WriteString("\n")
		}
		written++

		writeSection(&buf, "General", generalFields(result.Path, d))
		totals := map[mediameta.Kind]int{}
		for _, s := range d.Streams() {
			totals[s.Kind]++
		}
		seen := map[mediameta.Kind]int{}
		for _, s := range d.Streams() {
			seen[s.Kind]++
			buf.WriteString("\n")
			writeSection(&buf, streamTitle(s.Kind, seen[s.Kind], totals[s.Kind]), streamFields(s))
		}
		buf.WriteString("\n")
		buf.WriteString(reportByLine())
		buf.WriteString("\n")
	}
	if written == 0 {
		return ""
	}
	output := strings.TrimRight(buf.String(), "\n")
	return output + "\n\n"
}

func reportByLine() string {
	return fmt.Sprintf("ReportBy : %s - %s", AppName, FormatVersion(appVersion))
}

type line struct {
	name  string
	value string
}

// lines drops pairs whose value is empty.
func lines(pairs ...string) []line {
	out := make([]line, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			out = append(out, line{name: pairs[i], value: pairs[i+1]})
		}
	}
	return out
}

func writeSection(buf *bytes.Buffer, title string, fields []line) {
	buf.WriteString(title)
	buf.WriteString("\n")
	for _, field := range fields {
		buf.WriteString(padRight(field.name, 41))
		buf.WriteString(": ")
		buf.WriteString(field.value)
		buf.WriteString("\n")
	}
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

func streamTitle(kind mediameta.Kind, index, total int) string {
	if total <= 1 {
		return kind.String()
	}
	return fmt.Sprintf("%s #%d", kind, index)
}

func generalFields(path string, d *mediameta.MediaDescriptor) []line {
	part := d.Parts[0]
	out := lines(
		"Complete name", path,
		"Format", d.Container,
		"File size", formatBytes(part.Size),
		"Duration", formatDuration(d.Duration),
		"Overall bit rate", formatBitrateKbps(int64(d.Bitrate)),
		"Resolution", d.VideoResolution,
		"Aspect ratio", formatAspect(d.AspectRatio),
		"Frame rate", d.VideoFrameRate,
		"Video codec", d.VideoCodec,
		"Audio codec", d.AudioCodec,
		"Audio channels", formatCount(d.AudioChannels),
		"Chaptered", yesNo(d.Chaptered),
	)
	if d.Container == "mp4" || d.Container == "mov" {
		out = append(out, lines(
			"Optimized for streaming", yesNo(d.OptimizedForStreaming),
			"64-bit chunk offsets", yesNo(d.Has64bitOffsets),
		)...)
	}
	return out
}

func streamFields(s mediameta.Stream) []line {
	out := lines(
		"Index", strconv.Itoa(s.Index),
		"ID", formatID(s.ID),
		"Codec", s.Codec,
		"Codec ID", s.CodecID,
		"Format", textFormat(s),
		"Profile", s.Profile,
		"Level", formatCount(s.Level),
		"Duration", formatDuration(s.Duration),
		"Bit rate", formatBitrateKbps(int64(s.Bitrate)),
		"Bit rate mode", s.BitrateMode,
	)
	switch s.Kind {
	case mediameta.KindVideo:
		out = append(out, lines(
			"Width", formatPixels(s.Width),
			"Height", formatPixels(s.Height),
			"Pixel aspect ratio", s.PixelAspectRatio,
			"Frame rate", formatFrameRate(s.FrameRate),
			"Frame rate mode", s.FrameRateMode,
			"Scan type", s.ScanType,
			"Color space", s.ColorSpace,
			"Chroma subsampling", s.ChromaSubsampling,
			"Bit depth", formatBits(s.BitDepth),
			"Reference frames", formatCount(s.RefFrames),
			"CABAC", triState(s.Cabac),
			"QPel", triState(s.QPel),
			"GMC", s.GMC,
			"B-VOP", triState(s.BVOP),
			"Scaling matrix", triState(s.HasScalingMatrix),
			"Orientation", formatCount(s.Orientation),
		)...)
		if s.HeaderStripping {
			out = append(out, line{name: "Header stripping", value: "Yes"})
		}
	case mediameta.KindAudio:
		out = append(out, lines(
			"Channel(s)", formatChannels(s.Channels),
			"Sampling rate", formatSamplingRate(s.SamplingRate),
			"Bit depth", formatBits(s.BitDepth),
			"Dialog normalization", s.DialogNorm,
		)...)
	}
	return append(out, lines(
		"Title", s.Title,
		"Language", formatLanguage(s.Language, s.LanguageCode),
		"Default", triState(s.Default),
		"Forced", triState(s.Forced),
	)...)
}

func textFormat(s mediameta.Stream) string {
	if s.Kind != mediameta.KindText || s.Format == s.Codec {
		return ""
	}
	return s.Format
}

func formatLanguage(name, code string) string {
	switch {
	case name == "":
		return code
	case code == "":
		return name
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

func formatID(id uint64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(id, 10)
}

func formatCount(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatPixels(n int) string {
	if n == 0 {
		return ""
	}
	return formatThousands(int64(n)) + " pixels"
}

func formatBits(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d bits", n)
}

func formatChannels(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 channel"
	}
	return fmt.Sprintf("%d channels", n)
}

func formatSamplingRate(hz int) string {
	if hz == 0 {
		return ""
	}
	khz := strconv.FormatFloat(float64(hz)/1000, 'f', -1, 64)
	return khz + " kHz"
}

func formatFrameRate(rate float64) string {
	if rate == 0 {
		return ""
	}
	return fmt.Sprintf("%.3f FPS", rate)
}

func formatAspect(ratio float64) string {
	if ratio == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f:1", ratio)
}

func triState(t mediameta.TriState) string {
	switch t {
	case mediameta.Yes:
		return "Yes"
	case mediameta.No:
		return "No"
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatBytes(size int64) string {
	if size <= 0 {
		return ""
	}
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div := float64(size)
	exp := 0
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	for div >= unit && exp < len(units) {
		div /= unit
		exp++
	}
	return fmt.Sprintf("%.2f %s", div, units[exp-1])
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}

	totalSec := ms / 1000
	if totalSec < 60 {
		return fmt.Sprintf("%d s %d ms", totalSec, ms%1000)
	}

	hours := totalSec / 3600
	minutes := (totalSec % 3600) / 60
	seconds := totalSec % 60
	if hours > 0 {
		return fmt.Sprintf("%d h %d min %d s", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d min %d s", minutes, seconds)
}

func formatBitrateKbps(kbps int64) string {
	if kbps <= 0 {
		return ""
	}
	if kbps >= 10_000 {
		return fmt.Sprintf("%.1f Mb/s", math.Round(float64(kbps)/100)/10)
	}
	return fmt.Sprintf("%s kb/s", formatThousands(kbps))
}

func formatThousands(value int64) string {
	digits := strconv.FormatInt(value, 10)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

type jsonMedia struct {
	Ref        string                     `json:"@ref"`
	Descriptor *mediameta.MediaDescriptor `json:"media,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

type jsonPayload struct {
	CreatingLibrary jsonLibrary `json:"creatingLibrary"`
	jsonMedia
}

type jsonLibrary struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

func newJSONPayload(result Result) jsonPayload {
	payload := jsonPayload{
		CreatingLibrary: jsonLibrary{Name: AppName, Version: FormatVersion(appVersion), URL: AppURL},
		jsonMedia:       jsonMedia{Ref: result.Path, Descriptor: result.Descriptor},
	}
	if result.Err != nil {
		payload.Error = result.Err.Error()
	}
	return payload
}

// RenderJSON emits one object for a single file and an array otherwise.
func RenderJSON(results []Result) (string, error) {
	var v interface{}
	if len(results) == 1 {
		v = newJSONPayload(results[0])
	} else {
		payloads := make([]jsonPayload, 0, len(results))
		for _, result := range results {
			payloads = append(payloads, newJSONPayload(result))
		}
		v = payloads
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
