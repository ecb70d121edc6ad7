// Package runner drives the thirteen-stage news-video pipeline, writing
// a checkpoint after every stage so any prefix can be replayed from disk.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"uqbar/acta/archive"
	"uqbar/acta/audio"
	"uqbar/acta/images"
	"uqbar/acta/keywords"
	"uqbar/acta/llm"
	"uqbar/acta/mood"
	"uqbar/acta/newstext"
	"uqbar/acta/prompt"
	"uqbar/acta/trends"
	"uqbar/acta/upload"
	"uqbar/acta/video"
	"uqbar/config"
	"uqbar/types"
)

// MaxImagesPerTrend caps how many search results are fetched per trend.
const MaxImagesPerTrend = 30

// Reporter receives stage transitions and log lines; serve mode plugs
// its state manager in here. A nil Reporter is a no-op.
type Reporter interface {
	SetStage(stage string)
	Log(format string, args ...any)
	Fail(err error)
}

// Publisher emits stage events to an external bus (Kafka in serve
// mode). A nil Publisher is a no-op.
type Publisher interface {
	Publish(ctx context.Context, runID, stage, status string) error
}

// Uploader publishes a rendered video; implemented by upload.Uploader.
type Uploader interface {
	Upload(videoPath string, meta upload.Metadata) (string, error)
}

// Deps are the optional collaborators a Runner can be wired with. Any
// nil dependency downgrades its stage to a logged no-op or fallback.
type Deps struct {
	LLM       *llm.Client
	Seen      *trends.SeenFilter
	Embedder  images.ImageEmbedder
	Uploader  Uploader
	Archive   archive.Store
	Reporter  Reporter
	Publisher Publisher
}

// Runner executes the pipeline over a shared TrendList.
type Runner struct {
	cfg      *config.Config
	deps     Deps
	searcher *images.Searcher
	tl       *types.TrendList
}

func New(cfg *config.Config, deps Deps) *Runner {
	return &Runner{
		cfg:      cfg,
		deps:     deps,
		searcher: images.NewSearcher(),
	}
}

// TrendList exposes the current list, for callers inspecting a finished run.
func (r *Runner) TrendList() *types.TrendList { return r.tl }

// Run executes the stages selected by the toggles. A disabled stage
// loads its checkpoint instead; a failing stage stops the run.
func (r *Runner) Run(ctx context.Context, toggles Toggles) error {
	if err := os.MkdirAll(r.cfg.WorkDir, 0o755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	for n := 1; n <= toggles.Until; n++ {
		name := StageNames[n]

		if !toggles.Run[n] {
			tl, err := types.LoadCheckpoint(r.cfg.WorkDir, strconv.Itoa(n))
			if err != nil {
				r.fail(err)
				return err
			}
			r.tl = tl
			r.logf("loaded checkpoint for stage %d (%s)", n, name)
			continue
		}

		r.setStage(name)
		r.publish(ctx, name, "running")

		if err := r.stage(n)(ctx); err != nil {
			wrapped := fmt.Errorf("stage %d (%s): %w", n, name, err)
			r.publish(ctx, name, "failed")
			r.fail(wrapped)
			return wrapped
		}

		if err := types.SaveCheckpoint(r.cfg.WorkDir, strconv.Itoa(n), r.tl); err != nil {
			r.fail(err)
			return err
		}
		r.publish(ctx, name, "done")
	}

	r.setStage("complete")
	return nil
}

func (r *Runner) stage(n int) func(context.Context) error {
	switch n {
	case 1:
		return r.fetch
	case 2:
		return r.newsText
	case 3:
		return r.narration
	case 4:
		return r.imageQueries
	case 5:
		return r.moodStage
	case 6:
		return r.imageSearch
	case 7:
		return r.imageDownload
	case 8:
		return r.imageProcess
	case 9:
		return r.tts
	case 10:
		return r.music
	case 11:
		return r.metadata
	case 12:
		return r.videoStage
	case 13:
		return r.uploadStage
	}
	return func(context.Context) error { return fmt.Errorf("unknown stage %d", n) }
}

func (r *Runner) fetch(ctx context.Context) error {
	tl, err := trends.Fetch(ctx, config.TrendsRSSURL, r.cfg.WorkDir)
	if err != nil {
		return err
	}
	tl.Items = r.deps.Seen.Filter(tl.Items)
	if len(tl.Items) == 0 {
		return fmt.Errorf("all fetched trends were already seen")
	}
	r.tl = tl
	r.logf("fetched %d trends, run %s", len(tl.Items), tl.RunID)
	return nil
}

func (r *Runner) newsText(ctx context.Context) error {
	newstext.ExtractAll(r.tl.Items)

	total := len(r.tl.Items)
	var transcript strings.Builder
	for i, trend := range r.tl.Items {
		trend.TTSQuery = prompt.Narration(trend)
		transcript.WriteString(prompt.Transcript("TREND", trend.TTSQuery, i+1, total))
	}
	return r.writeTranscript("tts_prompts.txt", transcript.String())
}

func (r *Runner) narration(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		if r.deps.LLM == nil {
			// Without a model the extracted article text itself becomes
			// the narration script.
			trend.TTSResponse = trend.NewsText
			if trend.TTSResponse == "" {
				log.Warn("no LLM and no news text; narration empty", "trend", trend.Title)
			} else {
				r.logf("no LLM configured, narrating news text for %q", trend.Title)
			}
			continue
		}

		resp, err := r.deps.LLM.Complete(ctx, trend.TTSQuery)
		if err != nil {
			return fmt.Errorf("narration for %q: %w", trend.Title, err)
		}
		trend.TTSResponse = prompt.ExtractCodeBlock(resp)
		r.logf("narration ready for %q (%d chars)", trend.Title, len(trend.TTSResponse))
	}
	return nil
}

func (r *Runner) imageQueries(ctx context.Context) error {
	total := len(r.tl.Items)
	var transcript strings.Builder

	for i, trend := range r.tl.Items {
		// Branch B always runs: heuristic queries from the news titles.
		var titles []string
		for _, n := range trend.News {
			titles = append(titles, n.Title)
		}
		if q, err := keywords.Build(titles, keywords.DefaultConfig()); err == nil {
			trend.PrecisionQuery = q.Precision
			trend.RecallQuery = q.Recall
		} else {
			log.Warn("keyword queries unavailable", "trend", trend.Title, "err", err)
		}

		// Branch A asks the LLM for a compact query when available.
		piece := trend.TTSResponse
		if piece == "" {
			piece = trend.NewsText
		}
		trend.ImageQuery = prompt.ImageQuery(piece)
		transcript.WriteString(prompt.Transcript("IMAGE", trend.ImageQuery, i+1, total))

		if r.deps.LLM != nil && piece != "" {
			resp, err := r.deps.LLM.Complete(ctx, trend.ImageQuery)
			if err != nil {
				return fmt.Errorf("image query for %q: %w", trend.Title, err)
			}
			trend.ImageResponse = strings.TrimSpace(prompt.ExtractCodeBlock(resp))
		}
	}
	return r.writeTranscript("image_prompts.txt", transcript.String())
}

func (r *Runner) moodStage(ctx context.Context) error {
	total := len(r.tl.Items)
	var transcript strings.Builder

	for i, trend := range r.tl.Items {
		piece := trend.TTSResponse
		if piece == "" {
			piece = trend.NewsText
		}
		trend.MoodQuery = prompt.Mood(piece)
		transcript.WriteString(prompt.Transcript("MOOD", trend.MoodQuery, i+1, total))

		item := types.NewMoodItem(map[string]float64{"neutral": 1.0})
		if r.deps.LLM != nil && piece != "" {
			resp, err := r.deps.LLM.Complete(ctx, trend.MoodQuery)
			if err != nil {
				return fmt.Errorf("mood paragraph for %q: %w", trend.Title, err)
			}
			trend.MoodResponse = prompt.ExtractCodeBlock(resp)

			scoresResp, err := r.deps.LLM.Complete(ctx,
				prompt.EmotionScores(trend.MoodResponse, types.MoodLabels))
			if err != nil {
				return fmt.Errorf("mood scores for %q: %w", trend.Title, err)
			}
			parsed, err := mood.ParseScores(prompt.ExtractCodeBlock(scoresResp))
			if err != nil {
				log.Warn("mood scores unparseable, defaulting to neutral",
					"trend", trend.Title, "err", err)
			} else {
				parsed.Softmax()
				item = parsed
			}
		}

		choice := mood.ChooseMusicStyle(item)
		trend.MoodScores = item.Map()
		trend.MusicCategory = choice.CategoryID
		trend.MusicBrief = choice.AudioBrief
		r.logf("music category for %q: %d (%s)", trend.Title, choice.CategoryID, choice.CategoryName)
	}
	return r.writeTranscript("mood_prompts.txt", transcript.String())
}

func (r *Runner) imageSearch(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		for _, query := range []string{trend.ImageResponse, trend.PrecisionQuery, trend.RecallQuery} {
			if query == "" {
				continue
			}
			links, err := r.searcher.Links(ctx, query, MaxImagesPerTrend)
			if err != nil {
				log.Warn("image search failed", "trend", trend.Title, "query", query, "err", err)
				continue
			}
			if len(links) > 0 {
				trend.ImageLinks = links
				break
			}
		}
		if len(trend.ImageLinks) == 0 {
			log.Warn("no image links found", "trend", trend.Title)
		}
	}
	return nil
}

func (r *Runner) imageDownload(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		n := images.Download(ctx, trend.ImageLinks, trend.PicsDir)
		r.logf("downloaded %d/%d images for %q", n, len(trend.ImageLinks), trend.Title)
	}
	return nil
}

func (r *Runner) imageProcess(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		if _, err := images.Normalize(ctx, trend.PicsDir); err != nil {
			return err
		}
		trend.ImagePaths = images.Dedup(ctx, r.deps.Embedder, trend.PicsDir)
	}
	return nil
}

func (r *Runner) tts(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		if trend.TTSResponse == "" {
			log.Warn("no narration text, skipping tts", "trend", trend.Title)
			continue
		}
		wav := filepath.Join(trend.AudioDir, "narration.wav")
		if err := audio.Synthesize(ctx, trend.TTSResponse, wav); err != nil {
			return err
		}
		trend.AudioPath = wav
	}
	return nil
}

func (r *Runner) music(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		if trend.AudioPath == "" {
			continue
		}
		track, err := audio.PickTrack(r.cfg.MusicDir, trend.MusicCategory)
		if err != nil {
			log.Warn("keeping narration without music bed", "trend", trend.Title, "err", err)
			continue
		}
		mixed := filepath.Join(trend.AudioDir, "track.m4a")
		if err := audio.Mix(trend.AudioPath, track, mixed); err != nil {
			return err
		}
		trend.MusicPath = track
		trend.AudioPath = mixed
	}
	return nil
}

func (r *Runner) metadata(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		if len(trend.ImagePaths) > 0 {
			trend.Thumbnail = trend.ImagePaths[0]
		}
	}
	return nil
}

func (r *Runner) videoStage(ctx context.Context) error {
	for _, trend := range r.tl.Items {
		if len(trend.ImagePaths) < config.MinImagesPerClip {
			log.Warn("too few images, skipping video", "trend", trend.Title,
				"images", len(trend.ImagePaths))
			continue
		}
		if trend.AudioPath == "" {
			log.Warn("no audio track, skipping video", "trend", trend.Title)
			continue
		}
		out := filepath.Join(trend.VidsDir, "final.mp4")
		if err := video.Create(trend.ImagePaths, trend.AudioPath, out, video.Options{}); err != nil {
			return err
		}
		trend.VideoPath = out
	}
	return nil
}

func (r *Runner) uploadStage(ctx context.Context) error {
	if r.deps.Uploader != nil {
		for _, trend := range r.tl.Items {
			if trend.VideoPath == "" {
				continue
			}
			meta := upload.GenerateMetadata(trend, r.tl.DatetimeUS)
			id, err := r.deps.Uploader.Upload(trend.VideoPath, meta)
			if err != nil {
				return err
			}
			trend.YouTubeID = id
		}
	} else {
		r.logf("no uploader configured, videos stay local")
	}

	if r.deps.Archive != nil && r.cfg.S3Bucket != "" {
		if err := archive.Run(ctx, r.deps.Archive, r.cfg.S3Bucket, r.tl.RunID, r.cfg.WorkDir); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) writeTranscript(name, content string) error {
	path := filepath.Join(r.cfg.WorkDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write transcript %s: %w", path, err)
	}
	return nil
}

func (r *Runner) setStage(stage string) {
	log.Info("stage", "name", stage)
	if r.deps.Reporter != nil {
		r.deps.Reporter.SetStage(stage)
	}
}

func (r *Runner) logf(format string, args ...any) {
	log.Info(fmt.Sprintf(format, args...))
	if r.deps.Reporter != nil {
		r.deps.Reporter.Log(format, args...)
	}
}

func (r *Runner) fail(err error) {
	log.Error("pipeline failed", "err", err)
	if r.deps.Reporter != nil {
		r.deps.Reporter.Fail(err)
	}
}

func (r *Runner) publish(ctx context.Context, stage, status string) {
	if r.deps.Publisher == nil || r.tl == nil {
		return
	}
	if err := r.deps.Publisher.Publish(ctx, r.tl.RunID, stage, status); err != nil {
		log.Warn("stage event publish failed", "stage", stage, "err", err)
	}
}
