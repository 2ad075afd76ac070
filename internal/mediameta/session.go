package mediameta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/autobrr/go-mediameta/internal/logger"
	"github.com/autobrr/go-mediameta/internal/metrics"
	"github.com/autobrr/go-mediameta/internal/probe"
)

const DefaultTimeout = 5 * time.Minute

var (
	ErrNoFile     = errors.New("no file to probe")
	ErrOpen       = errors.New("prober could not open file")
	ErrTimeout    = errors.New("probe timed out")
	ErrFault      = errors.New("probe faulted")
	ErrUnreadable = errors.New("file is unreadable")
	ErrClosed     = errors.New("session is closed")
)

// ProberFactory builds a fresh prober. It is called lazily, and again
// after a prober has been discarded.
type ProberFactory func() probe.Prober

type Option func(*Session)

func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithResolution sets the classifier for the descriptor's resolution
// bucket. Without one the bucket stays empty.
func WithResolution(fn ResolutionFunc) Option {
	return func(s *Session) { s.resolution = fn }
}

func WithMaxMoovSize(n int64) Option {
	return func(s *Session) {
		if n > 0 {
			s.walker.MaxMoovSize = n
		}
	}
}

// Session runs probes one at a time against a single prober. Probers are
// fragile: one that times out or faults is thrown away and rebuilt on the
// next call. Share one Session per process to keep probing exclusive.
type Session struct {
	factory    ProberFactory
	timeout    time.Duration
	log        logger.Logger
	metrics    *metrics.Metrics
	resolution ResolutionFunc
	walker     BoxWalker

	slot   *semaphore.Weighted
	prober probe.Prober // guarded by slot
	closed bool         // guarded by slot
}

func NewSession(factory ProberFactory, opts ...Option) *Session {
	s := &Session{
		factory: factory,
		timeout: DefaultTimeout,
		log:     logger.Get("Probe"),
		walker:  BoxWalker{MaxMoovSize: DefaultMaxMoovSize},
		slot:    semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type outcome struct {
	descriptor *MediaDescriptor
	err        error
}

// Probe extracts the descriptor of the media at path. file is opened only
// for MP4 and MOV containers, to inspect the box layout.
//
// A nil descriptor is always paired with an error: ErrNoFile, ErrOpen,
// ErrTimeout, ErrFault, ErrUnreadable, ErrClosed or the context's error.
func (s *Session) Probe(ctx context.Context, path string, file File) (*MediaDescriptor, error) {
	if file == nil {
		return nil, ErrNoFile
	}
	if err := s.slot.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.slot.Release(1)
	if s.closed {
		return nil, ErrClosed
	}

	id := uuid.NewString()
	start := time.Now()
	s.log.Emit(logger.DEBUG, "[%s] probing %s", id, path)

	d, result, err := s.run(ctx, id, path, file)
	s.metrics.RecordProbe(result, time.Since(start).Seconds())
	if err != nil {
		s.log.Emit(logger.WARNING, "[%s] no metadata for %s: %v", id, path, err)
		return nil, err
	}

	s.log.Emit(logger.SUCCESS, "[%s] %s: %s with %d streams in %s", id, path, d.Container, len(d.Streams()), time.Since(start).Round(time.Millisecond))
	return d, nil
}

func (s *Session) run(ctx context.Context, id, path string, file File) (*MediaDescriptor, string, error) {
	if s.prober == nil {
		prober, err := s.newProber()
		if err != nil {
			return nil, metrics.ResultFault, err
		}
		s.prober = prober
		s.log.Emit(logger.NEW, "[%s] created prober", id)
	}
	prober := s.prober

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", ErrFault, r)}
			}
		}()
		d, err := s.extract(workCtx, prober, id, path)
		done <- outcome{descriptor: d, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	var out outcome
	select {
	case out = <-done:
	case <-timer.C:
		cancel()
		s.discard(id, prober)
		return nil, metrics.ResultTimeout, fmt.Errorf("%w after %s: %s", ErrTimeout, s.timeout, path)
	case <-ctx.Done():
		cancel()
		s.discard(id, prober)
		return nil, metrics.ResultCanceled, ctx.Err()
	}

	switch {
	case out.err == nil:
		closeQuietly(prober)
	case errors.Is(out.err, ErrFault):
		s.discard(id, prober)
		return nil, metrics.ResultFault, out.err
	case ctx.Err() != nil:
		s.discard(id, prober)
		return nil, metrics.ResultCanceled, ctx.Err()
	default:
		closeQuietly(prober)
		return nil, metrics.ResultAbsent, out.err
	}

	d := out.descriptor
	if d.Container == "mp4" || d.Container == "mov" {
		if err := s.walkBoxes(id, d, file); err != nil {
			return nil, metrics.ResultAbsent, err
		}
	}
	return d, metrics.ResultOK, nil
}

func (s *Session) newProber() (p probe.Prober, err error) {
	if s.factory == nil {
		return nil, fmt.Errorf("%w: no prober factory", ErrFault)
	}
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: prober factory: %v", ErrFault, r)
		}
	}()
	if p = s.factory(); p == nil {
		return nil, fmt.Errorf("%w: prober factory returned nil", ErrFault)
	}
	return p, nil
}

// discard drops the prober for good. The worker may still be using it, so
// Close runs without waiting.
func (s *Session) discard(id string, p probe.Prober) {
	s.prober = nil
	s.metrics.RecordReset()
	s.log.Emit(logger.REMOVE, "[%s] discarded prober", id)
	go closeQuietly(p)
}

func closeQuietly(p probe.Prober) {
	defer func() { _ = recover() }()
	_ = p.Close()
}

func (s *Session) walkBoxes(id string, d *MediaDescriptor, file File) error {
	r, err := file.OpenRead()
	if err != nil {
		s.metrics.RecordBoxWalk("unreadable")
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer r.Close()

	flags := s.walker.Walk(r)
	d.OptimizedForStreaming = flags.Optimized
	d.Has64bitOffsets = flags.Has64bitOffsets
	d.Parts[0].OptimizedForStreaming = flags.Optimized
	d.Parts[0].Has64bitOffsets = flags.Has64bitOffsets

	switch {
	case flags.Has64bitOffsets:
		s.metrics.RecordBoxWalk("co64")
	case flags.Optimized:
		s.metrics.RecordBoxWalk("moov_first")
	default:
		s.metrics.RecordBoxWalk("not_optimized")
	}
	s.log.Emit(logger.VERBOSE, "[%s] box walk: optimized=%t co64=%t", id, flags.Optimized, flags.Has64bitOffsets)
	return nil
}

// Close closes the prober and rejects further probes. It waits for a
// running probe to finish.
func (s *Session) Close() error {
	if err := s.slot.Acquire(context.Background(), 1); err != nil {
		return err
	}
	defer s.slot.Release(1)

	s.closed = true
	if s.prober == nil {
		return nil
	}
	err := s.prober.Close()
	s.prober = nil
	return err
}
