// Package quincas remixes audio: it cuts samples out of a track,
// time-stretches them, lays them onto a silent timeline at offsets,
// and renders the result as mp3.
package quincas

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// atempo only accepts factors in [0.5, 2.0]; ratios outside that range
// are split into a chain of filters.
const (
	atempoMin = 0.5
	atempoMax = 2.0
)

// AtempoChain decomposes a tempo ratio into atempo-legal factors whose
// product is the ratio.
func AtempoChain(ratio float64) ([]float64, error) {
	if ratio <= 0 {
		return nil, fmt.Errorf("quincas: tempo ratio must be positive, got %g", ratio)
	}
	var factors []float64
	for ratio > atempoMax {
		factors = append(factors, atempoMax)
		ratio /= atempoMax
	}
	for ratio < atempoMin {
		factors = append(factors, atempoMin)
		ratio /= atempoMin
	}
	return append(factors, ratio), nil
}

// Cut writes the [start, end) span of src to out.
func Cut(src, out string, start, end time.Duration) error {
	if start < 0 || end <= start {
		return fmt.Errorf("quincas: invalid sample span [%s, %s)", start, end)
	}
	err := ffmpeg.Input(src, ffmpeg.KwArgs{"ss": seconds(start), "t": seconds(end - start)}).
		Output(out, ffmpeg.KwArgs{"c:a": "pcm_s16le"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("quincas: cut %s: %w", src, err)
	}
	return nil
}

// Stretch rewrites src to out with its tempo scaled by ratio. A ratio
// above 1 speeds the sample up.
func Stretch(src, out string, ratio float64) error {
	factors, err := AtempoChain(ratio)
	if err != nil {
		return err
	}

	stream := ffmpeg.Input(src)
	for _, f := range factors {
		stream = stream.Filter("atempo", ffmpeg.Args{fmt.Sprintf("%.6f", f)})
	}
	err = stream.
		Output(out, ffmpeg.KwArgs{"c:a": "pcm_s16le"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("quincas: stretch %s by %g: %w", src, ratio, err)
	}
	return nil
}

// Event places a sample file on the timeline.
type Event struct {
	Path     string
	Offset   time.Duration
	Duration time.Duration
}

// Timeline is a set of samples overlaid on silence.
type Timeline struct {
	Events []Event
}

// Add appends an event.
func (t *Timeline) Add(path string, offset, duration time.Duration) {
	t.Events = append(t.Events, Event{Path: path, Offset: offset, Duration: duration})
}

// TotalDuration is the end of the latest event.
func (t *Timeline) TotalDuration() time.Duration {
	var total time.Duration
	for _, ev := range t.Events {
		if end := ev.Offset + ev.Duration; end > total {
			total = end
		}
	}
	return total
}

// Render overlays every event onto a silent mono base track and writes
// the mix to out as mp3.
func (t *Timeline) Render(out string) error {
	if len(t.Events) == 0 {
		return fmt.Errorf("quincas: timeline has no events")
	}
	total := t.TotalDuration()

	base := ffmpeg.Input("anullsrc=channel_layout=mono:sample_rate=44100",
		ffmpeg.KwArgs{"f": "lavfi", "t": seconds(total)})

	streams := []*ffmpeg.Stream{base}
	for _, ev := range t.Events {
		in := ffmpeg.Input(ev.Path)
		if ev.Offset > 0 {
			in = in.Filter("adelay", ffmpeg.Args{},
				ffmpeg.KwArgs{"delays": ev.Offset.Milliseconds(), "all": 1})
		}
		streams = append(streams, in)
	}

	mixed := ffmpeg.Filter(streams, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
		"inputs":             len(streams),
		"duration":           "first",
		"dropout_transition": 0,
	})

	log.Info("rendering timeline", "events", len(t.Events), "duration", total, "out", out)
	err := mixed.
		Output(out, ffmpeg.KwArgs{"c:a": "libmp3lame", "b:a": "192k"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("quincas: render %s: %w", out, err)
	}
	return nil
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
