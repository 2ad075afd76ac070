package probe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

const DefaultBinary = "mediainfo"

// CLIProber runs the MediaInfo command line tool once per Open and serves
// Get from its JSON output. Cancelling the Open context kills the child.
type CLIProber struct {
	Binary string

	mu     sync.Mutex
	report *Report
	err    error
}

func NewCLIProber(binary string) *CLIProber {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLIProber{Binary: binary}
}

func (p *CLIProber) Open(ctx context.Context, path string) bool {
	report, err := p.run(ctx, path)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	if err != nil {
		p.report = nil
		return false
	}
	p.report = &report
	return true
}

func (p *CLIProber) run(ctx context.Context, path string) (Report, error) {
	cmd := exec.CommandContext(ctx, p.Binary, "--Output=JSON", path)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return Report{}, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Report{}, fmt.Errorf("%s %q: %w: %s", p.Binary, path, err, msg)
		}
		return Report{}, fmt.Errorf("%s %q: %w", p.Binary, path, err)
	}
	return ParseJSON(out)
}

func (p *CLIProber) Get(kind StreamKind, index int, field string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.report == nil {
		return ""
	}
	return reportValue(*p.report, kind, index, field)
}

func (p *CLIProber) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.report = nil
	return nil
}

// Err returns the failure of the last Open, if any.
func (p *CLIProber) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// ReadReport loads a saved MediaInfo --Output=JSON document.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	report, err := ParseJSON(data)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}
