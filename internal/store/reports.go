package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSelection reports a report or table name outside the fixed menu.
var ErrInvalidSelection = errors.New("store: invalid selection")

// ReportResult holds the rows of one executed report. Every value is rendered
// as text for display.
type ReportResult struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Report pairs the human-readable question with its fixed SQL. The menu is
// closed: no user-supplied predicates ever reach the database.
type Report struct {
	Question string
	SQL      string
}

var reports = map[string]Report{
	"video_channel_names": {
		Question: "What are the names of all the videos and their corresponding channels?",
		SQL: `SELECT videos.video_title, channels.channel_name
			FROM videos
			JOIN channels ON channels.channel_id = videos.channel_id`,
	},
	"most_videos_per_channel": {
		Question: "Which channels have the most number of videos, and how many videos do they have?",
		SQL: `SELECT channels.channel_name, COUNT(videos.video_id) AS video_count
			FROM videos
			JOIN channels ON channels.channel_id = videos.channel_id
			GROUP BY channels.channel_name
			ORDER BY video_count DESC`,
	},
	"top10_viewed_videos": {
		Question: "What are the top 10 most viewed videos and their respective channels?",
		SQL: `SELECT videos.video_title, channels.channel_name
			FROM videos
			JOIN channels ON channels.channel_id = videos.channel_id
			ORDER BY videos.video_viewcount DESC
			LIMIT 10`,
	},
	"comments_per_video": {
		Question: "How many comments were made on each video, and what are their corresponding video names?",
		SQL: `SELECT videos.video_title, COUNT(comments.comment_id) AS comment_count
			FROM videos
			JOIN comments ON videos.video_id = comments.video_id
			GROUP BY videos.video_title`,
	},
	"most_liked_video": {
		Question: "Which videos have the highest number of likes, and what are their corresponding channel names?",
		SQL: `SELECT videos.video_title, channels.channel_name
			FROM videos
			JOIN channels ON channels.channel_id = videos.channel_id
			ORDER BY videos.video_likecount DESC
			LIMIT 1`,
	},
	"likes_per_video": {
		Question: "What is the total number of likes for each video, and what are their corresponding video names?",
		SQL: `SELECT videos.video_title, SUM(videos.video_likecount) AS total_likes
			FROM videos
			GROUP BY videos.video_title`,
	},
	"views_per_channel": {
		Question: "What is the total number of views for each channel, and what are their corresponding channel names?",
		SQL: `SELECT channels.channel_name, SUM(videos.video_viewcount) AS total_views
			FROM videos
			JOIN channels ON channels.channel_id = videos.channel_id
			GROUP BY channels.channel_name`,
	},
	"channels_published_2022": {
		Question: "What are the names of all the channels that have published videos in the year 2022?",
		SQL: `SELECT DISTINCT channels.channel_name
			FROM channels
			JOIN videos ON channels.channel_id = videos.channel_id
			WHERE strftime('%Y', videos.video_pubdate) = '2022'`,
	},
	"avg_duration_per_channel": {
		Question: "What is the average duration of all videos in each channel, and what are their corresponding channel names?",
		SQL: `SELECT channels.channel_name, AVG(videos.video_duration) AS average_duration
			FROM videos
			JOIN channels ON videos.channel_id = channels.channel_id
			GROUP BY channels.channel_name`,
	},
	"most_commented_video": {
		Question: "Which videos have the highest number of comments, and what are their corresponding channel names?",
		SQL: `SELECT videos.video_title, channels.channel_name
			FROM videos
			JOIN channels ON videos.channel_id = channels.channel_id
			ORDER BY videos.video_commentcount DESC
			LIMIT 1`,
	},
}

// ReportNames lists the selection menu in stable order.
func ReportNames() []string {
	names := make([]string, 0, len(reports))
	for name := range reports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReportQuestion returns the human-readable question behind a selection name.
func ReportQuestion(name string) (string, bool) {
	r, ok := reports[name]
	return r.Question, ok
}

// RunReport executes one named report. An unknown name yields an empty result
// plus ErrInvalidSelection.
func (s *Store) RunReport(name string) (*ReportResult, error) {
	report, ok := reports[name]
	if !ok {
		return &ReportResult{}, fmt.Errorf("report %q: %w", name, ErrInvalidSelection)
	}
	return s.runQuery(report.SQL)
}

// tableQueries is the allowlist for the table-view mode; the harvest tables
// only, never arbitrary names.
var tableQueries = map[string]string{
	"channels": `SELECT * FROM channels`,
	"videos":   `SELECT * FROM videos`,
	"comments": `SELECT * FROM comments`,
}

// DumpTable renders one of the three harvest tables in full.
func (s *Store) DumpTable(name string) (*ReportResult, error) {
	query, ok := tableQueries[name]
	if !ok {
		return &ReportResult{}, fmt.Errorf("table %q: %w", name, ErrInvalidSelection)
	}
	return s.runQuery(query)
}

func (s *Store) runQuery(query string) (*ReportResult, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &ReportResult{Columns: columns, Rows: [][]string{}}
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(sql.NullString)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if ns := v.(*sql.NullString); ns.Valid {
				row[i] = ns.String
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return result, nil
}
