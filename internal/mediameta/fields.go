package mediameta

import (
	"math"
	"strconv"
	"strings"

	"github.com/autobrr/go-mediameta/internal/probe"
)

// fields reads one stream's values from a prober. Every accessor treats
// unparseable text as the zero value.
type fields struct {
	prober probe.Prober
	kind   probe.StreamKind
	index  int
}

func streamFields(p probe.Prober, kind Kind, index int) fields {
	return fields{prober: p, kind: kind.probeKind(), index: index}
}

func generalFields(p probe.Prober) fields {
	return fields{prober: p, kind: probe.StreamGeneral}
}

func (f fields) getString(name string) string {
	return strings.TrimSpace(f.prober.Get(f.kind, f.index, name))
}

func (f fields) getInt(name string) int {
	n, err := strconv.Atoi(f.getString(name))
	if err != nil {
		return 0
	}
	return n
}

func (f fields) getInt64(name string) int64 {
	n, err := strconv.ParseInt(f.getString(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (f fields) getUint64(name string) uint64 {
	n, err := strconv.ParseUint(f.getString(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (f fields) getByte(name string) int {
	n, err := strconv.ParseUint(f.getString(name), 10, 8)
	if err != nil {
		return 0
	}
	return int(n)
}

func (f fields) getFloat(name string) float64 {
	return parseFloat(f.getString(name))
}

// biggestFromList reads a slash separated list such as "64000/128000"
// and returns its largest integer.
func (f fields) biggestFromList(name string) int {
	return biggestFromList(f.getString(name))
}

// getTriState maps "yes" to Yes, any other present value to No and an
// absent field to Unset.
func (f fields) getTriState(name string) TriState {
	value := f.getString(name)
	if value == "" {
		return Unset
	}
	return triStateOf(strings.EqualFold(value, "yes"))
}

func parseFloat(value string) float64 {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func biggestFromList(list string) int {
	biggest := 0
	for _, item := range strings.Split(list, "/") {
		if n, err := strconv.Atoi(strings.TrimSpace(item)); err == nil && n > biggest {
			biggest = n
		}
	}
	return biggest
}

// kbps converts bit/s to kbit/s, rounding to the nearest integer.
func kbps(bitsPerSecond int) int {
	return int(math.Round(float64(bitsPerSecond) / 1000))
}
