package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rjeczalik/notify"

	"github.com/autobrr/go-mediameta/internal/logger"
	"github.com/autobrr/go-mediameta/internal/mediameta"
)

var log = logger.Get("Scan")

var mediaExtensions = map[string]bool{
	".asf":  true,
	".avi":  true,
	".divx": true,
	".flv":  true,
	".m2ts": true,
	".m4a":  true,
	".m4v":  true,
	".mka":  true,
	".mkv":  true,
	".mov":  true,
	".mp4":  true,
	".mpeg": true,
	".mpg":  true,
	".ogm":  true,
	".rm":   true,
	".rmvb": true,
	".ts":   true,
	".vob":  true,
	".webm": true,
	".wmv":  true,
}

func isMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

type scanLine struct {
	Path       string                     `json:"path"`
	Descriptor *mediameta.MediaDescriptor `json:"descriptor,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

// Scan probes every media file below root in lexical order and writes one
// JSON line per file. It returns the number of files described.
func Scan(ctx context.Context, session *mediameta.Session, root string, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	described := 0
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !isMediaFile(path) {
			return nil
		}

		ok, err := probeLine(ctx, session, path, enc)
		if ok {
			described++
		}
		return err
	})
	return described, err
}

func probeLine(ctx context.Context, session *mediameta.Session, path string, enc *json.Encoder) (bool, error) {
	out := scanLine{Path: path}
	d, err := session.Probe(ctx, path, mediameta.OSFile(path))
	if err != nil {
		out.Error = err.Error()
	} else {
		out.Descriptor = d
	}
	return err == nil, enc.Encode(out)
}

const watchEvents = notify.Create | notify.Write | notify.Rename | notify.Remove

// DefaultSettle is the quiet period Watch uses when given none.
const DefaultSettle = 5 * time.Second

// WatchDir subscribes to file system events below root and hands them to
// Watch until ctx is cancelled.
func WatchDir(ctx context.Context, session *mediameta.Session, root string, settle time.Duration, w io.Writer) (int, error) {
	events := make(chan notify.EventInfo, 64)
	if err := notify.Watch(filepath.Join(root, "..."), events, watchEvents); err != nil {
		return 0, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	defer notify.Stop(events)

	log.Emit(logger.INFO, "Watching %s for new media\n", root)
	return Watch(ctx, session, events, settle, w)
}

// Watch probes media files named by events once no further event has
// touched them for settle, writing one JSON line each like Scan. Files that
// are gone by then are dropped. A non-positive settle means DefaultSettle.
// It returns the number of files described when ctx is cancelled.
func Watch(ctx context.Context, session *mediameta.Session, events <-chan notify.EventInfo, settle time.Duration, w io.Writer) (int, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	enc := json.NewEncoder(w)
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settle)
	defer ticker.Stop()

	described := 0
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return described, nil
			}
			path := ev.Path()
			if !isMediaFile(path) {
				continue
			}
			if ev.Event() == notify.Remove {
				delete(pending, path)
				continue
			}
			pending[path] = time.Now()
		case now := <-ticker.C:
			for _, path := range settled(pending, now, settle) {
				delete(pending, path)
				if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
					continue
				}
				ok, err := probeLine(ctx, session, path, enc)
				if err != nil {
					return described, err
				}
				if ok {
					described++
				}
			}
		case <-ctx.Done():
			return described, nil
		}
	}
}

func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	return ready
}
