package mediameta

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/autobrr/go-mediameta/internal/logger"
	"github.com/autobrr/go-mediameta/internal/mediameta"
	"github.com/autobrr/go-mediameta/internal/metrics"
	"github.com/autobrr/go-mediameta/internal/probe"
)

// Types
type Kind = mediameta.Kind
type TriState = mediameta.TriState
type Stream = mediameta.Stream
type Part = mediameta.Part
type MediaDescriptor = mediameta.MediaDescriptor
type Session = mediameta.Session
type Option = mediameta.Option
type ProberFactory = mediameta.ProberFactory
type ResolutionFunc = mediameta.ResolutionFunc
type File = mediameta.File
type OSFile = mediameta.OSFile
type BoxWalker = mediameta.BoxWalker
type StreamingFlags = mediameta.StreamingFlags

type Prober = probe.Prober
type StreamKind = probe.StreamKind
type Report = probe.Report
type Track = probe.Track
type Metrics = metrics.Metrics
type Logger = logger.Logger

// Constants
const (
	KindVideo = mediameta.KindVideo
	KindAudio = mediameta.KindAudio
	KindText  = mediameta.KindText

	Unset = mediameta.Unset
	No    = mediameta.No
	Yes   = mediameta.Yes

	StreamGeneral = probe.StreamGeneral
	StreamVideo   = probe.StreamVideo
	StreamAudio   = probe.StreamAudio
	StreamText    = probe.StreamText

	DefaultTimeout = mediameta.DefaultTimeout
)

// Errors
var (
	ErrNoFile     = mediameta.ErrNoFile
	ErrOpen       = mediameta.ErrOpen
	ErrTimeout    = mediameta.ErrTimeout
	ErrFault      = mediameta.ErrFault
	ErrUnreadable = mediameta.ErrUnreadable
	ErrClosed     = mediameta.ErrClosed
)

// Session
func NewSession(factory ProberFactory, opts ...Option) *Session {
	return mediameta.NewSession(factory, opts...)
}

func WithTimeout(d time.Duration) Option { return mediameta.WithTimeout(d) }

func WithLogger(l Logger) Option { return mediameta.WithLogger(l) }

func WithMetrics(m *Metrics) Option { return mediameta.WithMetrics(m) }

func WithResolution(fn ResolutionFunc) Option { return mediameta.WithResolution(fn) }

func WithMaxMoovSize(n int64) Option { return mediameta.WithMaxMoovSize(n) }

// Probers
func NewCLIProber(binary string) *probe.CLIProber {
	return probe.NewCLIProber(binary)
}

func NewStaticProber(report Report) *probe.StaticProber {
	return probe.NewStaticProber(report)
}

func ParseJSON(data []byte) (Report, error) {
	return probe.ParseJSON(data)
}

func ReadReport(path string) (Report, error) {
	return probe.ReadReport(path)
}

// Metrics
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	return metrics.New(reg, namespace)
}

// Lookup tables
func TranslateCodec(codec string) string {
	return mediameta.TranslateCodec(codec)
}

func TranslateContainer(format string) string {
	return mediameta.TranslateContainer(format)
}

func SubtitleFormat(codecID, format string) string {
	return mediameta.SubtitleFormat(codecID, format)
}

func LanguageFromCode3(code3, full string) string {
	return mediameta.LanguageFromCode3(code3, full)
}

func AspectRatio(width, height int, pa float64) float64 {
	return mediameta.AspectRatio(width, height, pa)
}

func FrameRateLabel(rate float64, scanType string) string {
	return mediameta.FrameRateLabel(rate, scanType)
}
