package types

import (
	"fmt"
	"time"
)

// UTC offsets (hours) used to render local datetime strings on a TrendList.
const (
	OffsetDefault = -8
	OffsetUSEast  = -5
	OffsetBrazil  = -3
)

// MaxNewsItems is the number of related news slots kept per trend.
const MaxNewsItems = 3

// NewsItem is one news article related to a trend.
type NewsItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Paywall bool   `json:"paywall_flag"`
}

// Trend is a single trending-topic record. Fields are filled in
// progressively as pipeline stages run.
type Trend struct {
	Title         string     `json:"title"`
	Volume        float64    `json:"volume"`
	PictureSource string     `json:"picture_source,omitempty"`
	News          []NewsItem `json:"news_items,omitempty"`

	// Per-trend asset directories, created at fetch time.
	ContentDir string `json:"content_dir,omitempty"`
	PicsDir    string `json:"pics_dir,omitempty"`
	VidsDir    string `json:"vids_dir,omitempty"`
	AudioDir   string `json:"audio_dir,omitempty"`

	// Prompts sent to the LLM and their raw responses.
	TTSQuery      string `json:"tts_prompt_query,omitempty"`
	TTSResponse   string `json:"tts_prompt_response,omitempty"`
	ImageQuery    string `json:"image_prompt_query,omitempty"`
	ImageResponse string `json:"image_prompt_response,omitempty"`
	MoodQuery     string `json:"mood_prompt_query,omitempty"`
	MoodResponse  string `json:"mood_prompt_response,omitempty"`

	// Extracted article text feeding the narration prompt.
	NewsText string `json:"news_text,omitempty"`

	// Heuristic image search queries (precision first, recall fallback).
	PrecisionQuery string `json:"precision_query,omitempty"`
	RecallQuery    string `json:"recall_query,omitempty"`

	// Mood prediction outputs.
	MoodScores    map[string]float64 `json:"mood_scores,omitempty"`
	MusicCategory int                `json:"music_category,omitempty"`
	MusicBrief    string             `json:"music_brief,omitempty"`

	// Image links found by the search stage, downloaded by the next one.
	ImageLinks []string `json:"image_links,omitempty"`

	// Produced artifacts.
	ImagePaths []string `json:"image_paths,omitempty"`
	AudioPath  string   `json:"audio_path,omitempty"`
	MusicPath  string   `json:"music_path,omitempty"`
	VideoPath  string   `json:"video_path,omitempty"`
	Thumbnail  string   `json:"thumbnail,omitempty"`
	YouTubeID  string   `json:"youtube_id,omitempty"`
}

// AddNews appends a news item, silently dropping items beyond the slot limit.
func (t *Trend) AddNews(item NewsItem) {
	if len(t.News) >= MaxNewsItems {
		return
	}
	t.News = append(t.News, item)
}

// ReadableNews returns the news items not flagged as paywalled.
func (t *Trend) ReadableNews() []NewsItem {
	out := make([]NewsItem, 0, len(t.News))
	for _, n := range t.News {
		if !n.Paywall {
			out = append(out, n)
		}
	}
	return out
}

// DatetimeParts are the components of a rendered local datetime.
type DatetimeParts struct {
	Year   string `json:"year"`
	Month  string `json:"month"`
	Day    string `json:"day"`
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
}

// TrendList is an ordered collection of trends plus shared run metadata.
type TrendList struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	DatetimeUTC string `json:"datetime_utc,omitempty"`
	DatetimeBR  string `json:"datetime_br,omitempty"`
	DatetimeUS  string `json:"datetime_us,omitempty"`

	DatetimeUTCParts DatetimeParts `json:"datetime_utc_parts,omitempty"`
	DatetimeBRParts  DatetimeParts `json:"datetime_br_parts,omitempty"`
	DatetimeUSParts  DatetimeParts `json:"datetime_us_parts,omitempty"`

	Items []*Trend `json:"items"`
}

// SetDatetimes renders the shared datetime strings and parts from a UTC
// publication time, applying the fixed local offsets.
func (tl *TrendList) SetDatetimes(utc time.Time) {
	utc = utc.UTC()
	def := utc.Add(time.Duration(OffsetDefault) * time.Hour)
	us := utc.Add(time.Duration(OffsetUSEast) * time.Hour)
	br := utc.Add(time.Duration(OffsetBrazil) * time.Hour)

	tl.DatetimeUTC = def.Format("2006-01-02 15:04")
	tl.DatetimeUS = us.Format("2006-01-02 15:04")
	tl.DatetimeBR = br.Format("2006-01-02 15:04")
	tl.DatetimeUTCParts = partsOf(def)
	tl.DatetimeUSParts = partsOf(us)
	tl.DatetimeBRParts = partsOf(br)
}

func partsOf(t time.Time) DatetimeParts {
	return DatetimeParts{
		Year:   fmt.Sprintf("%04d", t.Year()),
		Month:  fmt.Sprintf("%02d", int(t.Month())),
		Day:    fmt.Sprintf("%02d", t.Day()),
		Hour:   fmt.Sprintf("%02d", t.Hour()),
		Minute: fmt.Sprintf("%02d", t.Minute()),
	}
}
