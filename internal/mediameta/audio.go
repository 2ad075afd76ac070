package mediameta

import (
	"strings"

	"github.com/autobrr/go-mediameta/internal/probe"
)

// Profiles that carry no information beyond the codec itself.
var redundantAudioProfiles = map[string]bool{
	"layer 3":       true,
	"dolby digital": true,
	"pro":           true,
	"layer 2":       true,
}

type pcmLayout struct {
	settings string
	bitDepth int
}

var pcmProfiles = map[pcmLayout]string{
	{"Little / Signed", 16}:  "pcm_s16le",
	{"Big / Signed", 16}:     "pcm_s16be",
	{"Little / Unsigned", 8}: "pcm_u8",
}

func translateAudio(p probe.Prober, index int) Stream {
	f := streamFields(p, KindAudio, index)
	s := Stream{
		Kind:    KindAudio,
		ID:      f.getUint64("UniqueID"),
		CodecID: f.getString("CodecID"),
		Codec:   TranslateCodec(f.getString("Codec")),
		Title:   f.getString("Title"),
	}
	s.LanguageCode, s.Language = resolveLanguage(f.getString("Language/String3"), f.getString("Language/String1"))
	s.Duration = f.getInt64("Duration")
	if rate := f.biggestFromList("BitRate"); rate != 0 {
		s.Bitrate = kbps(rate)
	}
	s.BitDepth = f.getByte("BitDepth")

	if profile := strings.ToLower(f.getString("Format_Profile")); profile != "" {
		if !redundantAudioProfiles[profile] {
			s.Profile = profile
		}
		if strings.HasPrefix(profile, "ma") {
			s.Profile = "ma"
		}
	}
	if s.Codec == "pcm" {
		if profile, ok := pcmProfiles[pcmLayout{f.getString("Format_Settings"), s.BitDepth}]; ok {
			s.Profile = profile
		}
	}

	s.Index = f.getByte("ID")
	s.SamplingRate = f.biggestFromList("SamplingRate")
	s.Channels = f.biggestFromList("Channel(s)")
	if channels := f.biggestFromList("Channel(s)_Original"); channels != 0 {
		s.Channels = channels
	}
	s.BitrateMode = strings.ToLower(f.getString("BitRate_Mode"))
	s.DialogNorm = f.getString("dialnorm")
	if average := f.getString("dialnorm_Average"); average != "" {
		s.DialogNorm = average
	}
	s.Default = f.getTriState("Default")
	s.Forced = f.getTriState("Forced")
	return s
}
