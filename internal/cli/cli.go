package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/autobrr/go-mediameta/internal/config"
	"github.com/autobrr/go-mediameta/internal/logger"
	"github.com/autobrr/go-mediameta/internal/mediameta"
	"github.com/autobrr/go-mediameta/internal/metrics"
	"github.com/autobrr/go-mediameta/internal/probe"
)

const (
	exitOK    = 0
	exitError = 1
)

type Options struct {
	Output     string
	LogFile    string
	Bom        bool
	ConfigPath string
	Timeout    string
	MediaInfo  string
	ReportPath string
	Verbose    bool
	Stats      bool
}

func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}

	program := programName(args[0])
	opts := Options{}
	files := make([]string, 0)

	for i := 1; i < len(args); i++ {
		original := args[i]
		normalized := normalizeArg(original)

		switch {
		case normalized == "--help" || normalized == "-h":
			Help(program, stdout)
			return exitOK
		case normalized == "--help-output":
			HelpOutput(program, stdout)
			return exitOK
		case normalized == "--help-config":
			HelpConfig(stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--help-"):
			fmt.Fprintln(stdout, "No help available yet")
			return exitOK
		case normalized == "--version":
			Version(stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--output="):
			if value, ok := valueAfterEqual(original); ok && value != "" {
				opts.Output = value
			} else {
				HelpOutput(program, stdout)
				return exitError
			}
		case strings.HasPrefix(normalized, "--logfile="):
			opts.LogFile, _ = valueAfterEqual(original)
		case normalized == "--bom":
			opts.Bom = true
		case strings.HasPrefix(normalized, "--config="):
			opts.ConfigPath, _ = valueAfterEqual(original)
		case strings.HasPrefix(normalized, "--timeout="):
			opts.Timeout, _ = valueAfterEqual(original)
		case strings.HasPrefix(normalized, "--mediainfo="):
			opts.MediaInfo, _ = valueAfterEqual(original)
		case strings.HasPrefix(normalized, "--report="):
			opts.ReportPath, _ = valueAfterEqual(original)
		case normalized == "--verbose" || normalized == "-v":
			opts.Verbose = true
		case normalized == "--stats":
			opts.Stats = true
		case normalized == "--":
			continue
		case strings.HasPrefix(normalized, "-"):
			fmt.Fprintf(stderr, "unknown option %s\n", original)
			return exitError
		default:
			files = append(files, original)
		}
	}

	if len(files) == 0 {
		return Usage(program, stdout)
	}

	if opts.Output != "" && !strings.EqualFold(opts.Output, "Text") && !strings.EqualFold(opts.Output, "JSON") {
		fmt.Fprintf(stderr, "output format not implemented: %s\n", opts.Output)
		return exitError
	}

	env, err := Setup(opts, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}
	defer env.Session.Close()

	if opts.Bom {
		writeBOM(stdout, stderr)
	}

	results := ProbeFiles(ctx, env.Session, files)
	var output string
	if strings.EqualFold(opts.Output, "JSON") {
		output, err = RenderJSON(results)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
	} else {
		output = RenderText(results)
	}

	if output != "" {
		fmt.Fprint(stdout, output)
	}
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", result.Path, result.Err)
		}
	}

	if opts.LogFile != "" {
		if err := writeLogFile(opts.LogFile, output, opts.Bom); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
	}

	if opts.Stats {
		if err := WriteStats(env.Registry, stderr); err != nil {
			fmt.Fprintln(stderr, err.Error())
		}
	}

	for _, result := range results {
		if result.Descriptor != nil {
			return exitOK
		}
	}
	return exitError
}

// Env is a ready probe session with the registry its metrics live in.
type Env struct {
	Config   *config.Config
	Session  *mediameta.Session
	Registry *prometheus.Registry
}

// Setup loads configuration, applies command line overrides and builds the
// session. Log output goes to logOut.
func Setup(opts Options, logOut io.Writer) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Timeout != "" {
		timeout, err := time.ParseDuration(opts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", opts.Timeout, err)
		}
		cfg.ProbeTimeout = timeout
	}
	if opts.MediaInfo != "" {
		cfg.MediaInfoBin = opts.MediaInfo
	}
	if opts.Verbose {
		cfg.LogLevel = "verbose"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	logger.SetOutput(logOut)

	factory := func() probe.Prober { return probe.NewCLIProber(cfg.MediaInfoBin) }
	if opts.ReportPath != "" {
		report, err := probe.ReadReport(opts.ReportPath)
		if err != nil {
			return nil, err
		}
		factory = func() probe.Prober { return probe.NewStaticProber(report) }
	}

	reg := prometheus.NewRegistry()
	session := mediameta.NewSession(factory,
		mediameta.WithTimeout(cfg.ProbeTimeout),
		mediameta.WithMaxMoovSize(cfg.MaxMoovSize),
		mediameta.WithMetrics(metrics.New(reg, cfg.MetricsPrefix)),
		mediameta.WithResolution(Resolution),
	)
	return &Env{Config: cfg, Session: session, Registry: reg}, nil
}

// Result is the outcome of probing one path. Exactly one of Descriptor
// and Err is set.
type Result struct {
	Path       string
	Descriptor *mediameta.MediaDescriptor
	Err        error
}

// ProbeFiles probes each path in order through the shared session.
func ProbeFiles(ctx context.Context, session *mediameta.Session, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		d, err := session.Probe(ctx, path, mediameta.OSFile(path))
		results = append(results, Result{Path: path, Descriptor: d, Err: err})
		if ctx.Err() != nil {
			break
		}
	}
	return results
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func normalizeArg(arg string) string {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		eq = len(arg)
	}

	lower := strings.ToLower(arg[:eq])
	return lower + arg[eq:]
}

func valueAfterEqual(arg string) (string, bool) {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		return "", false
	}
	return arg[eq+1:], true
}

func writeBOM(stdout, stderr io.Writer) {
	if runtime.GOOS != "windows" {
		return
	}

	bom := []byte{0xEF, 0xBB, 0xBF}
	_, _ = stdout.Write(bom)
	_, _ = stderr.Write(bom)
}

func writeLogFile(path, output string, includeBOM bool) error {
	data := []byte(output)
	if includeBOM && runtime.GOOS == "windows" {
		data = append([]byte{0xEF, 0xBB, 0xBF}, data...)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	return nil
}
