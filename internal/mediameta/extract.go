package mediameta

import (
	"context"
	"fmt"
	"strings"

	"github.com/autobrr/go-mediameta/internal/logger"
	"github.com/autobrr/go-mediameta/internal/probe"
)

type translator func(probe.Prober, int) Stream

// maxStreams bounds the per-kind count a prober may report. Stream
// indices are byte-sized, so anything larger is a corrupt report.
const maxStreams = 255

// extract opens path with p and builds its descriptor. It runs on the
// session's worker goroutine and checks ctx between streams.
func (s *Session) extract(ctx context.Context, p probe.Prober, id, path string) (*MediaDescriptor, error) {
	if !p.Open(ctx, path) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrOpen, path)
	}

	general := generalFields(p)
	facts := containerFacts{
		Container: TranslateContainer(general.getString("Format")),
		Duration:  general.getInt64("Duration"),
		Size:      general.getInt64("FileSize"),
		Chaptered: general.getInt("MenuCount") > 0,
	}
	if rate := general.getInt("BitRate"); rate != 0 {
		facts.Bitrate = kbps(rate)
	}
	if strings.EqualFold(general.getString("CodecID"), "qt") {
		facts.Container = "mov"
	}

	video, err := s.translateAll(ctx, id, p, KindVideo, general.getInt("VideoCount"), translateVideo)
	if err != nil {
		return nil, err
	}
	audio, err := s.translateAll(ctx, id, p, KindAudio, general.getInt("AudioCount"), translateAudio)
	if err != nil {
		return nil, err
	}
	text, err := s.translateAll(ctx, id, p, KindText, general.getInt("TextCount"), translateText)
	if err != nil {
		return nil, err
	}

	return assemble(facts, video, audio, text, s.resolution), nil
}

func (s *Session) translateAll(ctx context.Context, id string, p probe.Prober, kind Kind, count int, translate translator) ([]Stream, error) {
	if count > maxStreams {
		return nil, fmt.Errorf("%w: %d %s streams reported", ErrFault, count, kind)
	}
	var streams []Stream
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stream, ok := s.translateOne(id, p, kind, i, translate); ok {
			streams = append(streams, stream)
		}
	}
	return streams, nil
}

// translateOne contains a fault in a single stream so the rest of the
// file is still described.
func (s *Session) translateOne(id string, p probe.Prober, kind Kind, index int, translate translator) (stream Stream, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Emit(logger.ERROR, "[%s] skipping %s stream %d: %v", id, kind, index, r)
			s.metrics.RecordSkippedStream(strings.ToLower(kind.String()))
			ok = false
		}
	}()
	return translate(p, index), true
}
