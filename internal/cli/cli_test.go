package cli

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rjeczalik/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/go-mediameta/internal/mediameta"
)

const reportJSON = `{
  "media": {
    "@ref": "/media/movie.mkv",
    "track": [
      {"@type": "General", "Format": "Matroska", "Duration": "5400.000", "OverallBitRate": "4500000", "FileSize": "3037500000"},
      {"@type": "Video", "ID": "1", "Format": "AVC", "Format_Profile": "High", "Format_Level": "4.1",
       "CodecID": "V_MPEG4/ISO/AVC", "Width": "1920", "Height": "1080", "FrameRate": "23.976", "ScanType": "Progressive"},
      {"@type": "Audio", "ID": "2", "Format": "AC-3", "CodecID": "A_AC3", "BitRate": "640000", "Channels": "6",
       "SamplingRate": "48000", "Language": "en", "Default": "Yes"},
      {"@type": "Audio", "ID": "3", "Format": "AAC", "CodecID": "A_AAC", "BitRate": "128000", "Channels": "2",
       "Language": "ja", "Default": "No"},
      {"@type": "Text", "ID": "4", "Format": "UTF-8", "CodecID": "S_TEXT/UTF8", "Language": "en", "Title": "Full"}
    ]
  }
}`

func writeReport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(reportJSON), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), append([]string{"mediameta"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunJSONFromReport(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--Report="+writeReport(t), "--Output=JSON", "/media/movie.mkv")
	require.Equal(t, exitOK, code, stderr)

	var payload struct {
		Ref   string                    `json:"@ref"`
		Media mediameta.MediaDescriptor `json:"media"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "/media/movie.mkv", payload.Ref)
	assert.Equal(t, "mkv", payload.Media.Container)
	assert.Equal(t, int64(5_400_000), payload.Media.Duration)
	assert.Equal(t, "1080", payload.Media.VideoResolution)
	assert.Equal(t, "24p", payload.Media.VideoFrameRate)
	assert.Equal(t, "ac3", payload.Media.AudioCodec)
	require.Len(t, payload.Media.Parts, 1)
	require.Len(t, payload.Media.Parts[0].Streams, 4)
	assert.Equal(t, "high", payload.Media.Parts[0].Streams[0].Profile)
	assert.Equal(t, 41, payload.Media.Parts[0].Streams[0].Level)
	assert.Equal(t, "jpn", payload.Media.Parts[0].Streams[2].LanguageCode)
	assert.Contains(t, stdout, `"default": 1`)
}

func TestRunTextFromReport(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "out.txt")
	code, stdout, stderr := runCLI(t, "--report="+writeReport(t), "--LogFile="+logFile, "/media/movie.mkv")
	require.Equal(t, exitOK, code, stderr)

	for _, want := range []string{
		"General\n",
		"Complete name                            : /media/movie.mkv\n",
		"Format                                   : mkv\n",
		"File size                                : 2.83 GiB\n",
		"Duration                                 : 1 h 30 min 0 s\n",
		"Overall bit rate                         : 4 500 kb/s\n",
		"Aspect ratio                             : 1.78:1\n",
		"\nVideo\n",
		"Width                                    : 1 920 pixels\n",
		"\nAudio #1\n",
		"Channel(s)                               : 6 channels\n",
		"Sampling rate                            : 48 kHz\n",
		"\nAudio #2\n",
		"Language                                 : japanese (jpn)\n",
		"\nText\n",
		"Codec                                    : srt\n",
		"ReportBy : go-mediameta - ",
	} {
		assert.Contains(t, stdout, want)
	}
	assert.NotContains(t, stdout, "Optimized for streaming", "mkv has no box layout")

	saved, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, stdout, string(saved))
}

func TestRunStats(t *testing.T) {
	code, _, stderr := runCLI(t, "--Report="+writeReport(t), "--Stats", "/media/movie.mkv")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr, `mediameta_probes_total{result="ok"} 1`)
	assert.Contains(t, stderr, "mediameta_probe_duration_seconds count=1")
}

func TestRunArguments(t *testing.T) {
	code, stdout, _ := runCLI(t)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stdout, "--help")

	code, stdout, _ = runCLI(t, "--Help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "--Report=...")

	code, stdout, _ = runCLI(t, "--version")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "go-mediameta, "))

	code, stdout, _ = runCLI(t, "--Help-Config")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "MEDIAMETA_PROBE_TIMEOUT")

	code, _, stderr := runCLI(t, "--Output=XML", "a.mkv")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "output format not implemented: XML")

	code, _, stderr = runCLI(t, "--Timeout=soon", "a.mkv")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "invalid timeout")

	code, _, stderr = runCLI(t, "--Frobnicate", "a.mkv")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "unknown option --Frobnicate")
}

func TestRunMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-mediainfo")
	code, stdout, stderr := runCLI(t, "--MediaInfo="+missing, "a.mkv")
	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "a.mkv: prober could not open file")
}

func TestSetupOverrides(t *testing.T) {
	env, err := Setup(Options{Timeout: "45s", MediaInfo: "/opt/mediainfo", Verbose: true}, &bytes.Buffer{})
	require.NoError(t, err)
	defer env.Session.Close()

	assert.Equal(t, "45s", env.Config.ProbeTimeout.String())
	assert.Equal(t, "/opt/mediainfo", env.Config.MediaInfoBin)
	assert.Equal(t, "verbose", env.Config.LogLevel)

	_, err = Setup(Options{Timeout: "-1s"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Setup(Options{ReportPath: filepath.Join(t.TempDir(), "missing.json")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestProbeFilesStopsOnCancel(t *testing.T) {
	env, err := Setup(Options{ReportPath: writeReport(t)}, &bytes.Buffer{})
	require.NoError(t, err)
	defer env.Session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ProbeFiles(ctx, env.Session, []string{"a.mkv", "b.mkv"})
	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
}

func TestResolution(t *testing.T) {
	cases := []struct {
		width, height int
		want          string
	}{
		{3840, 2160, "4k"},
		{3840, 1600, "4k"},
		{1920, 1080, "1080"},
		{1920, 800, "1080"},
		{1440, 1080, "1080"},
		{1280, 720, "720"},
		{1280, 536, "720"},
		{720, 480, "480"},
		{640, 480, "480"},
		{640, 360, "sd"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Resolution(tc.width, tc.height), "%dx%d", tc.width, tc.height)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "1 000", formatThousands(1000))
	assert.Equal(t, "12 345 678", formatThousands(12345678))

	assert.Equal(t, "", formatBytes(0))
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.00 KiB", formatBytes(2048))
	assert.Equal(t, "1.50 MiB", formatBytes(3<<19))

	assert.Equal(t, "", formatDuration(0))
	assert.Equal(t, "640 ms", formatDuration(640))
	assert.Equal(t, "5 s 20 ms", formatDuration(5020))
	assert.Equal(t, "2 min 5 s", formatDuration(125_000))
	assert.Equal(t, "2 h 0 min 1 s", formatDuration(7_201_000))

	assert.Equal(t, "640 kb/s", formatBitrateKbps(640))
	assert.Equal(t, "9 999 kb/s", formatBitrateKbps(9999))
	assert.Equal(t, "25.4 Mb/s", formatBitrateKbps(25_380))

	assert.Equal(t, "44.1 kHz", formatSamplingRate(44100))
	assert.Equal(t, "Audio #2", streamTitle(mediameta.KindAudio, 2, 3))
	assert.Equal(t, "Text", streamTitle(mediameta.KindText, 1, 1))
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", FormatVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", FormatVersion("v1.2.3"))
	assert.Equal(t, "dev", FormatVersion("dev"))
	assert.Equal(t, "", FormatVersion(""))
}

func TestWriteStatsSkipsIdleSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "things_total", Help: "things"}, []string{"kind"})
	reg.MustRegister(counter)
	counter.WithLabelValues("a").Add(2)
	counter.WithLabelValues("b")

	var buf bytes.Buffer
	require.NoError(t, WriteStats(reg, &buf))
	assert.Equal(t, "things_total{kind=\"a\"} 2\n", buf.String())
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.mkv", "a.avi", "notes.txt", "sub/c.webm"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	env, err := Setup(Options{ReportPath: writeReport(t)}, &bytes.Buffer{})
	require.NoError(t, err)
	defer env.Session.Close()

	var out bytes.Buffer
	n, err := Scan(context.Background(), env.Session, root, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	var first scanLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, filepath.Join(root, "a.avi"), first.Path)
	require.NotNil(t, first.Descriptor)
	assert.Equal(t, "mkv", first.Descriptor.Container)
	assert.Contains(t, lines[2], "c.webm")
}

type fakeEvent struct {
	event notify.Event
	path  string
}

func (e fakeEvent) Event() notify.Event { return e.event }
func (e fakeEvent) Path() string        { return e.path }
func (e fakeEvent) Sys() interface{}    { return nil }

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	root := t.TempDir()
	movie := filepath.Join(root, "movie.mkv")
	removed := filepath.Join(root, "removed.mkv")
	vanished := filepath.Join(root, "vanished.mp4")
	require.NoError(t, os.WriteFile(movie, nil, 0o644))
	require.NoError(t, os.WriteFile(removed, nil, 0o644))

	env, err := Setup(Options{ReportPath: writeReport(t)}, &bytes.Buffer{})
	require.NoError(t, err)
	defer env.Session.Close()

	events := make(chan notify.EventInfo)
	out := &lockedBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int)
	go func() {
		n, err := Watch(ctx, env.Session, events, 50*time.Millisecond, out)
		assert.NoError(t, err)
		done <- n
	}()

	events <- fakeEvent{event: notify.Create, path: filepath.Join(root, "notes.txt")}
	events <- fakeEvent{event: notify.Create, path: removed}
	events <- fakeEvent{event: notify.Remove, path: removed}
	events <- fakeEvent{event: notify.Create, path: vanished}
	events <- fakeEvent{event: notify.Create, path: movie}
	events <- fakeEvent{event: notify.Write, path: movie}

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "movie.mkv")
	}, time.Second, 5*time.Millisecond)
	cancel()
	assert.Equal(t, 1, <-done)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	var got scanLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, movie, got.Path)
	require.NotNil(t, got.Descriptor)
}

func TestWatchNonPositiveSettle(t *testing.T) {
	env, err := Setup(Options{ReportPath: writeReport(t)}, &bytes.Buffer{})
	require.NoError(t, err)
	defer env.Session.Close()

	for _, settle := range []time.Duration{0, -time.Second} {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		var n int
		require.NotPanics(t, func() {
			n, err = Watch(ctx, env.Session, make(chan notify.EventInfo), settle, &bytes.Buffer{})
		})
		cancel()
		assert.NoError(t, err)
		assert.Zero(t, n)
	}
}

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"b.mkv": now.Add(-time.Second),
		"a.mkv": now.Add(-2 * time.Second),
		"c.mkv": now,
	}
	assert.Equal(t, []string{"a.mkv", "b.mkv"}, settled(pending, now, time.Second))
}

func box(boxType string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	out := make([]byte, 8, 8+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(body)))
	copy(out[4:8], boxType)
	return append(out, body...)
}

func TestPrintBoxes(t *testing.T) {
	ftyp := box("ftyp", []byte("isom\x00\x00\x02\x00isomiso2"))
	co64 := box("co64", []byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 0})
	moov := box("moov", box("trak", box("mdia", box("minf", box("stbl", co64)))))
	mdat := box("mdat", make([]byte, 16))
	file := bytes.Join([][]byte{ftyp, moov, mdat}, nil)

	var out bytes.Buffer
	require.NoError(t, PrintBoxes(bytes.NewReader(file), &out, 0))

	text := out.String()
	assert.Contains(t, text, "[ftyp] offset=0 size=24\n")
	assert.Contains(t, text, "[moov] offset=24 size=")
	assert.Contains(t, text, "\n          [co64] offset=")
	assert.Contains(t, text, "[mdat] offset=")
	assert.Contains(t, text, "Optimized for streaming : Yes\n")
	assert.Contains(t, text, "64-bit chunk offsets    : Yes\n")
}
