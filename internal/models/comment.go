package models

// Comment represents a harvested top-level comment record.
//
// ChannelID is the channel under which harvesting was invoked, propagated by
// the caller rather than re-derived from the comment payload.
type Comment struct {
	ID          string `json:"comment_id"`
	Text        string `json:"comment_text"`
	AuthorName  string `json:"comment_authorname"`
	PublishedAt string `json:"published_date"`
	VideoID     string `json:"video_id"`
	ChannelID   string `json:"channel_id"`
}
