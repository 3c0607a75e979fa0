package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yt-harvest/internal/models"
)

func seedReportData(t *testing.T, s *Store) {
	t.Helper()
	_, err := s.InsertChannels([]models.Channel{
		{ID: "C1", Name: "Tech Talks", ViewCount: 1000},
		{ID: "C2", Name: "Cooking", ViewCount: 500},
	})
	require.NoError(t, err)

	_, err = s.InsertVideos([]models.Video{
		{ID: "v1", Title: "Go Generics", ChannelID: "C1", ViewCount: 100, LikeCount: 10, CommentCount: 2, DurationSeconds: 600, PublishedAt: "2022-03-04T05:06:07Z"},
		{ID: "v2", Title: "Go Modules", ChannelID: "C1", ViewCount: 300, LikeCount: 30, CommentCount: 5, DurationSeconds: 300, PublishedAt: "2023-01-01T00:00:00Z"},
		{ID: "v3", Title: "Pasta", ChannelID: "C2", ViewCount: 50, LikeCount: 5, CommentCount: 1, DurationSeconds: 120, PublishedAt: "2022-07-08T00:00:00Z"},
	})
	require.NoError(t, err)

	_, err = s.InsertComments([]models.Comment{
		{ID: "c1", Text: "nice", VideoID: "v1", ChannelID: "C1"},
		{ID: "c2", Text: "thanks", VideoID: "v2", ChannelID: "C1"},
		{ID: "c3", Text: "yum", VideoID: "v3", ChannelID: "C2"},
	})
	require.NoError(t, err)
}

func TestReportNamesClosedMenu(t *testing.T) {
	names := ReportNames()
	assert.Len(t, names, 10)
	assert.Contains(t, names, "views_per_channel")
	assert.Contains(t, names, "top10_viewed_videos")

	question, ok := ReportQuestion("views_per_channel")
	require.True(t, ok)
	assert.Contains(t, question, "total number of views")
}

func TestRunReportInvalidSelection(t *testing.T) {
	s := newTestStore(t)

	result, err := s.RunReport("drop_tables")
	assert.ErrorIs(t, err, ErrInvalidSelection)
	require.NotNil(t, result)
	assert.Empty(t, result.Rows, "empty result set accompanies the invalid-selection signal")
}

func TestRunReportViewsPerChannel(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	result, err := s.RunReport("views_per_channel")
	require.NoError(t, err)
	assert.Equal(t, []string{"channel_name", "total_views"}, result.Columns)
	require.Len(t, result.Rows, 2)

	totals := map[string]string{}
	for _, row := range result.Rows {
		totals[row[0]] = row[1]
	}
	assert.Equal(t, "400", totals["Tech Talks"], "sums both videos' view counts")
	assert.Equal(t, "50", totals["Cooking"])
}

func TestRunReportMostVideosPerChannel(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	result, err := s.RunReport("most_videos_per_channel")
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, []string{"Tech Talks", "2"}, result.Rows[0], "ordered by video count descending")
}

func TestRunReportChannelsPublished2022(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	result, err := s.RunReport("channels_published_2022")
	require.NoError(t, err)
	require.Len(t, result.Rows, 2, "both channels published in 2022; the 2023 upload does not duplicate C1")
}

func TestRunReportCommentsPerVideo(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	result, err := s.RunReport("comments_per_video")
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)
	counts := map[string]string{}
	for _, row := range result.Rows {
		counts[row[0]] = row[1]
	}
	assert.Equal(t, "1", counts["Go Generics"])
}

func TestRunReportMostLikedVideo(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	result, err := s.RunReport("most_liked_video")
	require.NoError(t, err)
	require.Len(t, result.Rows, 1, "fixed top-1 ordering")
	assert.Equal(t, []string{"Go Modules", "Tech Talks"}, result.Rows[0])
}

func TestRunReportOnEmptyStore(t *testing.T) {
	s := newTestStore(t)

	result, err := s.RunReport("top10_viewed_videos")
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}

func TestDumpTable(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	result, err := s.DumpTable("channels")
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)

	_, err = s.DumpTable("sqlite_master")
	assert.ErrorIs(t, err, ErrInvalidSelection, "only the three harvest tables are exposed")
}
