package probe

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Prober is the raw media-probing capability. Every value it returns is
// untyped text; callers own all parsing and validation.
//
// A Prober is not safe for concurrent use. Open binds it to one file until
// Close; Get on an unopened prober returns "".
type Prober interface {
	Open(ctx context.Context, path string) bool
	Get(kind StreamKind, index int, field string) string
	Close() error
}

// StaticProber serves Get from an already parsed Report, regardless of
// the path passed to Open.
type StaticProber struct {
	mu     sync.Mutex
	report Report
	opened bool
}

func NewStaticProber(report Report) *StaticProber {
	return &StaticProber{report: report}
}

func (p *StaticProber) Open(ctx context.Context, _ string) bool {
	if ctx.Err() != nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opened = true
	return true
}

func (p *StaticProber) Get(kind StreamKind, index int, field string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return ""
	}
	return reportValue(p.report, kind, index, field)
}

func (p *StaticProber) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opened = false
	return nil
}

// reportValue implements the counting fields every MediaInfo General track
// answers even when the document omits them.
func reportValue(report Report, kind StreamKind, index int, field string) string {
	track, ok := report.Track(kind, index)
	if !ok {
		return ""
	}
	if value := track.Get(field); value != "" || kind != StreamGeneral {
		return value
	}
	counted, ok := strings.CutSuffix(field, "Count")
	if !ok {
		return ""
	}
	switch StreamKind(counted) {
	case StreamVideo, StreamAudio, StreamText, StreamImage, StreamMenu:
		if n := report.Count(StreamKind(counted)); n > 0 {
			return strconv.Itoa(n)
		}
	}
	return ""
}
