package probe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var ErrNoTracks = errors.New("mediainfo output has no tracks")

type jsonDocument struct {
	Media *struct {
		Ref   string                       `json:"@ref"`
		Track []map[string]json.RawMessage `json:"track"`
	} `json:"media"`
}

// ParseJSON decodes a MediaInfo --Output=JSON document and rewrites its
// fields into the library vocabulary served by Prober.Get. When the
// document holds several files only the first is used.
func ParseJSON(data []byte) (Report, error) {
	data = bytes.TrimSpace(data)
	var doc jsonDocument
	if len(data) > 0 && data[0] == '[' {
		var docs []jsonDocument
		if err := json.Unmarshal(data, &docs); err != nil {
			return Report{}, fmt.Errorf("parse mediainfo JSON: %w", err)
		}
		if len(docs) == 0 {
			return Report{}, ErrNoTracks
		}
		doc = docs[0]
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return Report{}, fmt.Errorf("parse mediainfo JSON: %w", err)
	}
	if doc.Media == nil || len(doc.Media.Track) == 0 {
		return Report{}, ErrNoTracks
	}

	report := Report{Ref: doc.Media.Ref}
	for _, raw := range doc.Media.Track {
		track := decodeTrack(raw)
		libraryFields(&track)
		if track.Kind == StreamGeneral {
			report.General = track
			continue
		}
		report.Tracks = append(report.Tracks, track)
	}
	if report.General.Kind == "" {
		report.General.Kind = StreamGeneral
	}
	return report, nil
}

func decodeTrack(raw map[string]json.RawMessage) Track {
	track := Track{}
	appendStringFields(&track, raw, true)

	// Format-specific values such as AC-3 dialnorm live under "extra".
	if nested, ok := raw["extra"]; ok {
		var extra map[string]json.RawMessage
		if err := json.Unmarshal(nested, &extra); err == nil {
			appendStringFields(&track, extra, false)
		}
	}
	return track
}

func appendStringFields(track *Track, raw map[string]json.RawMessage, top bool) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var value string
		if err := json.Unmarshal(raw[name], &value); err != nil {
			continue
		}
		switch {
		case top && name == "@type":
			track.Kind = StreamKind(value)
		case !top && track.Has(name):
		default:
			track.Fields = append(track.Fields, Field{Name: name, Value: value})
		}
	}
}

// videoCodecNames maps JSON "Format" values to the legacy "Codec" names
// the library API reports.
var videoCodecNames = map[string]string{
	"MPEG-4 Visual":  "MPEG-4V",
	"MPEG Video/1":   "MPEG-1V",
	"MPEG Video/2":   "MPEG-2V",
	"Sorenson Spark": "Sorenson H263",
	"VP6":            "On2 VP6",
}

var audioCodecNames = map[string]string{
	"AC-3":                   "AC3",
	"E-AC-3":                 "EAC3",
	"MPEG Audio/1/Layer 2":   "MPA1L2",
	"MPEG Audio/1/Layer 3":   "MPA1L3",
	"MPEG Audio/2/Layer 3":   "MPA2L3",
	"MPEG Audio/2.5/Layer 3": "MPA2.5L3",
}

func libraryFields(track *Track) {
	if seconds := track.Get("Duration"); seconds != "" {
		if ms, ok := secondsToMillis(seconds); ok {
			track.Set("Duration", ms)
		}
	}

	switch track.Kind {
	case StreamGeneral:
		if !track.Has("BitRate") && track.Has("OverallBitRate") {
			track.Set("BitRate", track.Get("OverallBitRate"))
		}
		return
	case StreamVideo, StreamAudio, StreamText:
	default:
		return
	}

	if !track.Has("Codec") {
		if codec := legacyCodec(*track); codec != "" {
			track.Set("Codec", codec)
		}
	}
	if profile := track.Get("Format_Profile"); profile != "" && !strings.Contains(profile, "@") {
		if level := track.Get("Format_Level"); level != "" {
			if level[0] >= '0' && level[0] <= '9' {
				track.Set("Format_Profile", profile+"@L"+level)
			} else {
				track.Set("Format_Profile", profile+"@"+level)
			}
		}
	}
	if !track.Has("Format_Settings") {
		endianness, sign := track.Get("Format_Settings_Endianness"), track.Get("Format_Settings_Sign")
		if endianness != "" && sign != "" {
			track.Set("Format_Settings", endianness+" / "+sign)
		}
	}
	if channels := track.Get("Channels"); channels != "" && !track.Has("Channel(s)") {
		track.Set("Channel(s)", channels)
	}
	if channels := track.Get("Channels_Original"); channels != "" && !track.Has("Channel(s)_Original") {
		track.Set("Channel(s)_Original", channels)
	}
	if code := track.Get("Language"); code != "" {
		code3, name := describeLanguage(code)
		if code3 != "" && !track.Has("Language/String3") {
			track.Set("Language/String3", code3)
		}
		if name != "" && !track.Has("Language/String1") {
			track.Set("Language/String1", name)
		}
	}
}

func legacyCodec(track Track) string {
	format := track.Get("Format")
	if format == "" {
		return ""
	}
	switch track.Kind {
	case StreamVideo:
		key := format
		if version := versionNumber(track.Get("Format_Version")); format == "MPEG Video" && version != "" {
			key = format + "/" + version
		}
		if name, ok := videoCodecNames[key]; ok {
			return name
		}
	case StreamAudio:
		if format == "MPEG Audio" {
			key := format + "/" + versionNumber(track.Get("Format_Version")) + "/" + track.Get("Format_Profile")
			if name, ok := audioCodecNames[key]; ok {
				return name
			}
		}
		if features := track.Get("Format_AdditionalFeatures"); format == "AAC" && features != "" {
			return format + " " + strings.ReplaceAll(features, " ", "-")
		}
		if name, ok := audioCodecNames[format]; ok {
			return name
		}
	}
	return format
}

// versionNumber turns "Version 2" or "2" into "2".
func versionNumber(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.LastIndexByte(value, ' '); i >= 0 {
		value = value[i+1:]
	}
	return value
}

func secondsToMillis(value string) (string, bool) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || seconds < 0 {
		return "", false
	}
	return strconv.FormatInt(int64(math.Round(seconds*1000)), 10), true
}

// describeLanguage resolves a MediaInfo language code ("en", "en-US",
// "jpn") to its ISO 639-2/T code and English display name.
func describeLanguage(code string) (string, string) {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return "", ""
	}
	primary := strings.ToLower(strings.SplitN(code, "-", 2)[0])
	if primary == "und" {
		return "", ""
	}
	base, err := language.ParseBase(primary)
	if err != nil {
		return "", ""
	}
	name := display.English.Languages().Name(language.Make(base.String()))
	return base.ISO3(), name
}
