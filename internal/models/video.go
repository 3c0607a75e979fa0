package models

// Video represents a harvested YouTube video record.
//
// Tags is the comma-joined tag list ("" when the video has none).
// DurationSeconds is always whole seconds, never the raw ISO-8601 string.
// Caption is the API's "true"/"false" flag, defaulting to "false".
type Video struct {
	ID              string `json:"video_id"`
	Title           string `json:"video_title"`
	Description     string `json:"video_description"`
	ChannelID       string `json:"channel_id"`
	Tags            string `json:"video_tags"`
	PublishedAt     string `json:"video_pubdate"`
	ViewCount       int64  `json:"video_viewcount"`
	LikeCount       int64  `json:"video_likecount"`
	FavoriteCount   int64  `json:"video_favoritecount"`
	CommentCount    int64  `json:"video_commentcount"`
	DurationSeconds int64  `json:"video_duration"`
	Thumbnail       string `json:"video_thumbnails"`
	Caption         string `json:"video_caption"`
}
