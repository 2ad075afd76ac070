package mediameta

import (
	"fmt"
	"math"
	"strings"

	"github.com/autobrr/go-mediameta/internal/probe"
)

// orientations maps exact rotation degrees to orientation codes.
var orientations = map[float64]int{
	90:  9,
	180: 3,
	270: 6,
}

// translateVideo maps the index-th video stream of an opened prober.
func translateVideo(p probe.Prober, index int) Stream {
	f := streamFields(p, KindVideo, index)
	s := Stream{
		Kind:     KindVideo,
		ID:       f.getUint64("UniqueID"),
		Codec:    TranslateCodec(f.getString("Codec")),
		CodecID:  f.getString("CodecID"),
		Width:    f.getInt("Width"),
		Height:   f.getInt("Height"),
		Duration: f.getInt64("Duration"),
		Title:    f.getString("Title"),
	}
	s.LanguageCode, s.Language = resolveLanguage(f.getString("Language/String3"), f.getString("Language/String1"))

	if rate := f.biggestFromList("BitRate"); rate != 0 {
		s.Bitrate = kbps(rate)
	}
	s.ScanType = strings.ToLower(f.getString("ScanType"))
	s.RefFrames = f.getByte("Format_Settings_RefFrames")
	if profile := f.getString("Format_Profile"); profile != "" {
		s.Profile, s.Level = splitProfile(s.Codec, profile)
	}
	s.Orientation = orientations[f.getFloat("Rotation")]
	if strings.Contains(strings.ToLower(f.getString("MuxingMode")), "strip") {
		s.HeaderStripping = true
	}

	s.Cabac = f.getTriState("Format_Settings_CABAC")
	if s.Codec == "h264" {
		s.HasScalingMatrix = triStateOf(s.Level == 31 && s.Cabac != Yes)
	}

	s.FrameRateMode = strings.ToLower(f.getString("FrameRate_Mode"))
	s.FrameRate = f.getFloat("FrameRate")
	if s.FrameRate == 0 {
		s.FrameRate = f.getFloat("FrameRate_Original")
	}
	s.ColorSpace = strings.ToLower(f.getString("ColorSpace"))
	s.ChromaSubsampling = strings.ToLower(f.getString("ChromaSubsampling"))
	s.BitDepth = f.getByte("BitDepth")
	s.Index = f.getByte("ID")

	s.QPel = f.getTriState("Format_Settings_QPel")
	s.GMC = f.getString("Format_Settings_GMC")
	if bvop := f.getString("Format_Settings_BVOP"); bvop != "" && s.Codec != "mpeg1video" {
		switch bvop {
		case "No":
			s.BVOP = No
		case "1", "Yes":
			s.BVOP = Yes
		}
	}
	s.Default = f.getTriState("Default")
	s.Forced = f.getTriState("Forced")

	s.PA = f.getFloat("PixelAspectRatio")
	if original := f.getString("PixelAspectRatio_Original"); original != "" {
		if pa := parseFloat(original); pa != 0 {
			s.PA = pa
		}
	}
	s.PixelAspectRatio = pixelAspect(s.Width, s.PA)
	return s
}

// pixelAspect renders a non-square pixel aspect as "<display width>:<width>".
func pixelAspect(width int, pa float64) string {
	if pa <= 0 || pa == 1.0 || width == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", int(math.Round(float64(width)*pa)), width)
}
