package mediameta

import "strings"

type alias struct {
	match string
	value string
}

// codecIDs maps lower-cased prober codec tokens to canonical codecs.
var codecIDs = map[string]string{
	"161":                "wmav2",
	"162":                "wmapro",
	"2":                  "adpcm_ms",
	"55":                 "mp3",
	"a_aac":              "aac",
	"a_aac/mpeg4/lc/sbr": "aac",
	"a_ac3":              "ac3",
	"a_flac":             "flac",
	"aac lc":             "aac",
	"aac lc-sbr":         "aac",
	"aac lc-sbr-ps":      "aac",
	"avc":                "h264",
	"avc1":               "h264",
	"div3":               "msmpeg4",
	"divx":               "mpeg4",
	"dts":                "dca",
	"dts-hd":             "dca",
	"dx50":               "mpeg4",
	"flv1":               "flv",
	"mp42":               "msmpeg4v2",
	"mp43":               "msmpeg4",
	"mpa1l2":             "mp2",
	"mpa1l3":             "mp3",
	"mpa2.5l3":           "mp3",
	"mpa2l3":             "mp3",
	"mpeg-1v":            "mpeg1video",
	"mpeg-2v":            "mpeg2video",
	"mpeg-4v":            "mpeg4",
	"mpg4":               "msmpeg4v1",
	"on2 vp6":            "vp6f",
	"sorenson h263":      "flv",
	"v_mpeg2":            "mpeg2",
	"v_mpeg4/iso/asp":    "mpeg4",
	"v_mpeg4/iso/avc":    "h264",
	"vc-1":               "vc1",
	"xvid":               "mpeg4",
}

// Contains-match tables. Order matters: the first match wins.
var (
	fileContainers = []alias{
		{"cdxa/mpeg-ps", "mpeg"},
		{"divx", "avi"},
		{"flash video", "flv"},
		{"mpeg video", "mpeg"},
		{"mpeg-4", "mp4"},
		{"mpeg-ps", "mpeg"},
		{"realmedia", "rm"},
		{"windows media", "asf"},
		{"matroska", "mkv"},
	}

	subtitleFormats = []alias{
		{"c608", "eia-608"},
		{"c708", "eia-708"},
		{"s_ass", "ass"},
		{"s_hdmv/pgs", "pgs"},
		{"s_ssa", "ssa"},
		{"s_text/ass", "ass"},
		{"s_text/ssa", "ssa"},
		{"s_text/usf", "usf"},
		{"s_text/utf8", "srt"},
		{"s_usf", "usf"},
		{"s_vobsub", "vobsub"},
		{"subp", "vobsub"},
		{"s_image/bmp", "bmp"},
	}

	code3Aliases = []alias{
		{"ces", "cz"},
		{"deu", "ger"},
		{"fra", "fre"},
		{"ron", "rum"},
	}

	languageAliases = []alias{
		{"dutch", "Nederlands"},
	}
)

// matroskaFamily lists containers whose probe-reported stream indices are
// meaningful.
var matroskaFamily = map[string]bool{
	"mkv":  true,
	"webm": true,
}

func firstContained(table []alias, value string) (string, bool) {
	for _, entry := range table {
		if strings.Contains(value, entry.match) {
			return entry.value, true
		}
	}
	return "", false
}

// TranslateCodec normalizes a prober codec token. Unknown tokens come
// back lower-cased.
func TranslateCodec(codec string) string {
	codec = strings.ToLower(codec)
	if canonical, ok := codecIDs[codec]; ok {
		return canonical
	}
	return codec
}

// TranslateContainer maps a prober container format name such as
// "MPEG-4" or "Matroska" to its short name.
func TranslateContainer(container string) string {
	container = strings.ToLower(container)
	if short, ok := firstContained(fileContainers, container); ok {
		return short
	}
	return container
}

// SubtitleFormat derives a text stream's format from its codec id, or
// from its format name for Apple text tracks. It returns "" when neither
// is recognized.
func SubtitleFormat(codecID, format string) string {
	if codecID != "" {
		if f, ok := firstContained(subtitleFormats, strings.ToLower(codecID)); ok {
			return f
		}
	}
	if strings.EqualFold(format, "Apple Text") {
		return "ttxt"
	}
	return ""
}

func isMatroska(container string) bool {
	return matroskaFamily[container]
}
