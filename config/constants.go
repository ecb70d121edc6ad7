package config

import "time"

// Trend fetching
const (
	TrendsRSSURL     = "https://trends.google.com/trending/rss?geo=US"
	DefaultVolume    = 10000.0
	FetchTimeout     = 30 * time.Second
	TrendDirPrefix   = "trend_"
	PicsSubdir       = "pics"
	VidsSubdir       = "vids"
	AudioSubdir      = "audi"
	CheckpointPrefix = "trends_"
)

// PaywallDomains are sources whose articles are flagged and skipped when
// extracting full text. Common hard/soft paywalls.
var PaywallDomains = map[string]bool{
	"nytimes.com":        true,
	"wsj.com":            true,
	"ft.com":             true,
	"economist.com":      true,
	"bloomberg.com":      true,
	"washingtonpost.com": true,
	"theatlantic.com":    true,
	"newyorker.com":      true,
	"times.com":          true,
	"thetimes.co.uk":     true,
	"telegraph.co.uk":    true,
}

// LLM prompting
const (
	DefaultModelAlias = "allenai_31"
	BigRulerWidth     = 170
	SmallRulerWidth   = 25
	TTSPromptWords    = 12000
	ImagePromptWords  = 10
	MoodPromptWords   = 60
	LLMMaxRetries     = 5
	LLMRetryBase      = 2 * time.Second
)

// Image pipeline
const (
	WgetTries        = 10
	WgetTimeoutSecs  = 10
	DownloadUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DedupThreshold   = 0.95
	MinImagesPerClip = 2
)

// Audio
const (
	PiperModel = "en_US-lessac-medium"
)

// Video assembly
const (
	VideoWidth         = 1920
	VideoHeight        = 1080
	VideoFPS           = 30
	TimeEachPic        = 3.0
	TotalDuration      = 300.0
	TransitionDuration = 0.75
	VideoCodec         = "libx264"
	VideoCRF           = 18
	VideoPreset        = "medium"
	AudioCodec         = "aac"
	AudioBitrate       = "192k"
	PixelFormat        = "yuv420p"
)

// YouTube
const (
	YouTubeCategoryID = "25" // News & Politics
	MaxTitleLength    = 100
)
