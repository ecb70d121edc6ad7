// Package video assembles the per-trend picture carousel into the final
// mp4, crossfading between images over the mixed audio track.
package video

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"uqbar/config"
)

// xfade transition cycle applied between consecutive images.
var transitions = []string{
	"fade", "wipeleft", "wiperight", "slideleft", "slideright",
	"circleopen", "circleclose", "radial", "smoothleft", "smoothright",
}

// Options parameterizes a carousel render. Zero values fall back to the
// production defaults from config.
type Options struct {
	TimeEachPic float64
	TotalSecs   float64
	Transition  float64
	FPS         int
	Width       int
	Height      int
}

func (o *Options) defaults() {
	if o.TimeEachPic <= 0 {
		o.TimeEachPic = config.TimeEachPic
	}
	if o.TotalSecs <= 0 {
		o.TotalSecs = config.TotalDuration
	}
	if o.Transition <= 0 {
		o.Transition = config.TransitionDuration
	}
	if o.FPS <= 0 {
		o.FPS = config.VideoFPS
	}
	if o.Width <= 0 {
		o.Width = config.VideoWidth
	}
	if o.Height <= 0 {
		o.Height = config.VideoHeight
	}
}

// Create renders the carousel mp4 from the image set and the audio
// track. Images repeat cyclically until the target duration is covered;
// the audio loops and is trimmed to the same length.
func Create(imagePaths []string, audioPath, outPath string, opts Options) error {
	if len(imagePaths) < config.MinImagesPerClip {
		return fmt.Errorf("carousel: need at least %d images, have %d",
			config.MinImagesPerClip, len(imagePaths))
	}
	opts.defaults()

	clips := int(math.Ceil(opts.TotalSecs / opts.TimeEachPic))
	if clips < len(imagePaths) {
		clips = len(imagePaths)
	}
	clipDur := opts.TimeEachPic + opts.Transition

	streams := make([]*ffmpeg.Stream, 0, clips)
	for i := 0; i < clips; i++ {
		img := imagePaths[i%len(imagePaths)]
		s := ffmpeg.Input(img, ffmpeg.KwArgs{
			"loop":      1,
			"t":         fmt.Sprintf("%.3f", clipDur),
			"framerate": opts.FPS,
		}).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", opts.Width, opts.Height)},
				ffmpeg.KwArgs{"force_original_aspect_ratio": "decrease"}).
			Filter("pad", ffmpeg.Args{
				fmt.Sprintf("%d", opts.Width),
				fmt.Sprintf("%d", opts.Height),
				"(ow-iw)/2",
				"(oh-ih)/2",
			}).
			Filter("setsar", ffmpeg.Args{"1"}).
			Filter("format", ffmpeg.Args{config.PixelFormat})
		streams = append(streams, s)
	}

	merged := streams[0]
	for i := 1; i < len(streams); i++ {
		offset := float64(i) * opts.TimeEachPic
		merged = ffmpeg.Filter(
			[]*ffmpeg.Stream{merged, streams[i]},
			"xfade",
			ffmpeg.Args{},
			ffmpeg.KwArgs{
				"transition": transitions[(i-1)%len(transitions)],
				"duration":   fmt.Sprintf("%.3f", opts.Transition),
				"offset":     fmt.Sprintf("%.3f", offset),
			},
		)
	}

	total := float64(len(streams))*opts.TimeEachPic + opts.Transition
	audio := ffmpeg.Input(audioPath, ffmpeg.KwArgs{"stream_loop": -1})

	err := ffmpeg.Output(
		[]*ffmpeg.Stream{merged, audio},
		outPath,
		ffmpeg.KwArgs{
			"t":        fmt.Sprintf("%.3f", total),
			"c:v":      config.VideoCodec,
			"crf":      config.VideoCRF,
			"preset":   config.VideoPreset,
			"c:a":      config.AudioCodec,
			"b:a":      config.AudioBitrate,
			"pix_fmt":  config.PixelFormat,
			"r":        opts.FPS,
			"movflags": "+faststart",
			"shortest": "",
		},
	).OverWriteOutput().Run()
	if err != nil {
		return fmt.Errorf("carousel: ffmpeg: %w", err)
	}

	log.Info("carousel rendered", "out", outPath, "images", len(imagePaths),
		"clips", clips, "duration_s", total)
	return nil
}

// TransitionFor returns the transition used between image i and i+1.
func TransitionFor(i int) string {
	if i < 0 {
		i = 0
	}
	return transitions[i%len(transitions)]
}
