package models

// Channel represents a harvested YouTube channel record.
type Channel struct {
	ID              string `json:"channel_id"`
	Name            string `json:"channel_name"`
	Description     string `json:"channel_des"`
	UploadsPlaylist string `json:"channel_playid"`
	ViewCount       int64  `json:"channel_viewcount"`
	SubscriberCount int64  `json:"channel_subcount"`
}
