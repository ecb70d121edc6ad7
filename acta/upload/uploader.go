// Package upload publishes rendered trend videos to YouTube.
package upload

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"uqbar/config"
	"uqbar/types"
)

// Metadata is the snippet written to a published video.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
	Thumbnail   string
}

// Uploader wraps an authenticated YouTube Data API service.
type Uploader struct {
	service *youtube.Service
	privacy string
}

// New builds an uploader from a service-account JSON file.
func New(ctx context.Context, serviceAccountFile, privacy string) (*Uploader, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	if privacy == "" {
		privacy = "unlisted"
	}
	return &Uploader{service: service, privacy: privacy}, nil
}

// Upload inserts the video and returns its YouTube id.
func (u *Uploader) Upload(videoPath string, meta Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat video: %w", err)
	}
	log.Info("uploading video", "path", videoPath,
		"size_mb", fmt.Sprintf("%.2f", float64(info.Size())/(1024*1024)))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           u.privacy,
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, video).Media(file)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}

	if meta.Thumbnail != "" {
		if err := u.setThumbnail(resp.Id, meta.Thumbnail); err != nil {
			log.Warn("thumbnail upload failed", "video", resp.Id, "err", err)
		}
	}

	log.Info("uploaded", "url", "https://youtube.com/watch?v="+resp.Id)
	return resp.Id, nil
}

func (u *Uploader) setThumbnail(videoID, thumbPath string) error {
	f, err := os.Open(thumbPath)
	if err != nil {
		return fmt.Errorf("open thumbnail: %w", err)
	}
	defer f.Close()

	if _, err := u.service.Thumbnails.Set(videoID).Media(f).Do(); err != nil {
		return fmt.Errorf("set thumbnail: %w", err)
	}
	return nil
}

// GenerateMetadata derives the snippet for a trend from its title, its
// news sources, and the run timestamp.
func GenerateMetadata(trend *types.Trend, datetimeUS string) Metadata {
	title := strings.TrimSpace(trend.Title)
	if title == "" {
		title = "Trending now"
	}
	title = title + " | Acta Diurna"
	if len(title) > config.MaxTitleLength {
		title = title[:config.MaxTitleLength-3] + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", trend.Title)
	if datetimeUS != "" {
		fmt.Fprintf(&b, "Recorded %s (US East)\n\n", datetimeUS)
	}
	if len(trend.News) > 0 {
		b.WriteString("Sources:\n")
		for _, n := range trend.News {
			if n.URL == "" {
				continue
			}
			fmt.Fprintf(&b, "- %s\n", n.URL)
		}
	}
	b.WriteString("\n#news #trending")

	tags := []string{"news", "trending", "daily news"}
	if trend.Title != "" {
		tags = append(tags, strings.ToLower(trend.Title))
	}

	return Metadata{
		Title:       title,
		Description: b.String(),
		Tags:        tags,
		CategoryID:  config.YouTubeCategoryID,
		Thumbnail:   trend.Thumbnail,
	}
}
