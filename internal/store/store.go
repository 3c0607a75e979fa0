// Package store persists harvested channel, video and comment records into a
// local file-backed SQLite database. Harvested rows are immutable: a record
// whose natural ID is already present is skipped and reported, never merged.
package store

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/yt-harvest/internal/models"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle. One Store is shared by all operations; each
// logical insert or query runs on its own connection from the pool.
type Store struct {
	db *sql.DB
}

// InsertResult reports the per-batch outcome of an insert operation.
type InsertResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// createTables creates the three harvest tables if they don't exist.
// Natural IDs are the primary keys; re-running is a no-op.
func (s *Store) createTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS channels (
			channel_name TEXT,
			channel_id TEXT PRIMARY KEY,
			channel_des TEXT,
			channel_playid TEXT,
			channel_viewcount INTEGER,
			channel_subcount INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS videos (
			video_id TEXT PRIMARY KEY,
			video_title TEXT,
			video_description TEXT,
			channel_id TEXT,
			video_tags TEXT,
			video_pubdate TEXT,
			video_viewcount INTEGER,
			video_likecount INTEGER,
			video_favoritecount INTEGER,
			video_commentcount INTEGER,
			video_duration INTEGER,
			video_thumbnails TEXT,
			video_caption TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			comment_id TEXT PRIMARY KEY,
			comment_text TEXT,
			comment_authorname TEXT,
			published_date TEXT,
			video_id TEXT,
			channel_id TEXT
		)`,
	}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// InsertChannels appends new channel rows. Duplicate channel IDs are counted
// as skipped. An empty batch is a no-op.
func (s *Store) InsertChannels(channels []models.Channel) (InsertResult, error) {
	var result InsertResult
	for _, ch := range channels {
		res, err := s.db.Exec(
			`INSERT OR IGNORE INTO channels
				(channel_name, channel_id, channel_des, channel_playid, channel_viewcount, channel_subcount)
				VALUES (?, ?, ?, ?, ?, ?)`,
			ch.Name, ch.ID, ch.Description, ch.UploadsPlaylist, ch.ViewCount, ch.SubscriberCount,
		)
		if err != nil {
			return result, fmt.Errorf("failed to insert channel %s: %w", ch.ID, err)
		}
		if inserted(res) {
			result.Inserted++
		} else {
			log.Printf("Channel %s already exists. Skipping insertion.", ch.ID)
			result.Skipped++
		}
	}
	return result, nil
}

// InsertVideos appends new video rows. Duplicate video IDs are counted as
// skipped. An empty batch is a no-op.
func (s *Store) InsertVideos(videos []models.Video) (InsertResult, error) {
	var result InsertResult
	for _, v := range videos {
		res, err := s.db.Exec(
			`INSERT OR IGNORE INTO videos
				(video_id, video_title, video_description, channel_id, video_tags, video_pubdate,
				 video_viewcount, video_likecount, video_favoritecount, video_commentcount,
				 video_duration, video_thumbnails, video_caption)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Title, v.Description, v.ChannelID, v.Tags, v.PublishedAt,
			v.ViewCount, v.LikeCount, v.FavoriteCount, v.CommentCount,
			v.DurationSeconds, v.Thumbnail, v.Caption,
		)
		if err != nil {
			return result, fmt.Errorf("failed to insert video %s: %w", v.ID, err)
		}
		if inserted(res) {
			result.Inserted++
		} else {
			log.Printf("Video %s already exists. Skipping insertion.", v.ID)
			result.Skipped++
		}
	}
	return result, nil
}

// InsertComments appends new comment rows. Duplicate comment IDs are counted
// as skipped. An empty batch is a no-op.
func (s *Store) InsertComments(comments []models.Comment) (InsertResult, error) {
	var result InsertResult
	for _, c := range comments {
		res, err := s.db.Exec(
			`INSERT OR IGNORE INTO comments
				(comment_id, comment_text, comment_authorname, published_date, video_id, channel_id)
				VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Text, c.AuthorName, c.PublishedAt, c.VideoID, c.ChannelID,
		)
		if err != nil {
			return result, fmt.Errorf("failed to insert comment %s: %w", c.ID, err)
		}
		if inserted(res) {
			result.Inserted++
		} else {
			log.Printf("Comment %s already exists. Skipping insertion.", c.ID)
			result.Skipped++
		}
	}
	return result, nil
}

func inserted(res sql.Result) bool {
	n, err := res.RowsAffected()
	return err == nil && n > 0
}

// GetChannel returns the stored channel row for id, or (nil, nil) when the
// channel has not been harvested yet.
func (s *Store) GetChannel(id string) (*models.Channel, error) {
	row := s.db.QueryRow(
		`SELECT channel_name, channel_id, channel_des, channel_playid, channel_viewcount, channel_subcount
			FROM channels WHERE channel_id = ?`, id)

	var ch models.Channel
	err := row.Scan(&ch.Name, &ch.ID, &ch.Description, &ch.UploadsPlaylist, &ch.ViewCount, &ch.SubscriberCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read channel %s: %w", id, err)
	}
	return &ch, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
