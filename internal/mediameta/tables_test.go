package mediameta

import (
	"strings"
	"testing"
)

func TestTranslateCodecTable(t *testing.T) {
	if len(codecIDs) != 36 {
		t.Fatalf("codec table has %d entries", len(codecIDs))
	}
	for token, want := range codecIDs {
		for _, variant := range []string{token, strings.ToUpper(token)} {
			if got := TranslateCodec(variant); got != want {
				t.Fatalf("TranslateCodec(%q)=%q want %q", variant, got, want)
			}
		}
	}
}

func TestTranslateCodecPassThrough(t *testing.T) {
	cases := map[string]string{
		"HEVC":   "hevc",
		"Opus":   "opus",
		"":       "",
		"V_AV1":  "v_av1",
		"AVC":    "h264",
		"DTS-HD": "dca",
		"A_AC3":  "ac3",
		"Vc-1":   "vc1",
	}
	for input, want := range cases {
		if got := TranslateCodec(input); got != want {
			t.Fatalf("TranslateCodec(%q)=%q want %q", input, got, want)
		}
	}
}

func TestTranslateContainer(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"MPEG-4", "mp4"},
		{"Matroska", "mkv"},
		{"CDXA/MPEG-PS", "mpeg"},
		{"MPEG-PS", "mpeg"},
		{"Flash Video", "flv"},
		{"Windows Media", "asf"},
		{"RealMedia", "rm"},
		{"DivX", "avi"},
		{"AVI", "avi"},
		{"WebM", "webm"},
		{"QuickTime", "quicktime"},
	}
	for _, tc := range cases {
		if got := TranslateContainer(tc.input); got != tc.want {
			t.Fatalf("TranslateContainer(%q)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestSubtitleFormat(t *testing.T) {
	cases := []struct {
		codecID string
		format  string
		want    string
	}{
		{"S_TEXT/UTF8", "UTF-8", "srt"},
		{"S_TEXT/ASS", "ASS", "ass"},
		{"S_HDMV/PGS", "PGS", "pgs"},
		{"S_VOBSUB", "VobSub", "vobsub"},
		{"c608", "EIA-608", "eia-608"},
		{"", "Apple text", "ttxt"},
		{"tx3g", "Apple Text", "ttxt"},
		{"tx3g", "Timed Text", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := SubtitleFormat(tc.codecID, tc.format); got != tc.want {
			t.Fatalf("SubtitleFormat(%q, %q)=%q want %q", tc.codecID, tc.format, got, tc.want)
		}
	}
}

func TestLanguageResolution(t *testing.T) {
	cases := []struct {
		code3    string
		full     string
		wantCode string
		wantName string
	}{
		{"eng", "English", "eng", "english"},
		{"deu", "German", "ger", "german"},
		{"fra", "", "fre", "french"},
		{"ces", "Czech", "cz", "czech"},
		{"ron", "", "rum", "romanian"},
		{"nld", "Dutch", "nld", "Nederlands"},
		{"ZHO", "", "zho", "chinese"},
		{"isl", "", "isl", "icelandic"},
		{"tgk", "", "tgk", "tajik"},
		{"zul", "", "zul", "zulu"},
		{"xyz", "Klingon", "xyz", "klingon"},
		{"", "Dutch", "", "Nederlands"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		code, name := resolveLanguage(tc.code3, tc.full)
		if code != tc.wantCode || name != tc.wantName {
			t.Fatalf("resolveLanguage(%q, %q)=(%q, %q) want (%q, %q)", tc.code3, tc.full, code, name, tc.wantCode, tc.wantName)
		}
	}
}

func TestLanguageTableNamesAreClean(t *testing.T) {
	if len(languages) < 180 {
		t.Fatalf("language table has %d rows", len(languages))
	}
	for _, entry := range languages {
		if entry.name != strings.ToLower(strings.TrimSpace(entry.name)) || strings.ContainsRune(entry.name, '\u200e') {
			t.Fatalf("bad name %q", entry.name)
		}
		if len(entry.code2) != 2 || len(entry.code3) != 3 {
			t.Fatalf("bad codes for %q: %q %q", entry.name, entry.code2, entry.code3)
		}
	}
}
