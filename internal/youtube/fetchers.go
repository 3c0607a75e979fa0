package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yt-harvest/internal/models"
	"google.golang.org/api/youtube/v3"
)

var (
	// ErrNoUploadsPlaylist reports a channel whose uploads playlist cannot be
	// resolved. Distinct from a channel that simply has zero videos.
	ErrNoUploadsPlaylist = errors.New("youtube: uploads playlist not found")

	// ErrCommentsDisabled reports a video with comments turned off.
	ErrCommentsDisabled = errors.New("youtube: comments disabled")
)

// FetchChannel fetches snippet, content details and statistics for one
// channel. An empty result set is ErrNotFound, never an empty-but-valid
// record.
func (c *Client) FetchChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	op := fmt.Sprintf("channels.list(%s)", channelID)
	response, err := withRetry(c, op, func() (*youtube.ChannelListResponse, error) {
		return c.service.Channels.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(channelID).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}
	if len(response.Items) == 0 {
		c.notify("No channel data found for ID: %s", channelID)
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}

	item := response.Items[0]
	channel := &models.Channel{ID: item.Id}
	if item.Snippet != nil {
		channel.Name = item.Snippet.Title
		channel.Description = item.Snippet.Description
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		channel.UploadsPlaylist = item.ContentDetails.RelatedPlaylists.Uploads
	}
	if item.Statistics != nil {
		channel.ViewCount = int64(item.Statistics.ViewCount)
		// Hidden subscriber counts come back as 0, which is what we store.
		channel.SubscriberCount = int64(item.Statistics.SubscriberCount)
	}
	return channel, nil
}

// ListChannelVideoIDs enumerates every video ID in a channel's uploads
// playlist, in playlist order. When the uploads playlist cannot be resolved
// the result is empty plus ErrNoUploadsPlaylist. A terminal failure mid-
// pagination returns the IDs gathered so far together with the error.
func (c *Client) ListChannelVideoIDs(ctx context.Context, channelID string) ([]string, error) {
	op := fmt.Sprintf("channels.list(contentDetails, %s)", channelID)
	response, err := withRetry(c, op, func() (*youtube.ChannelListResponse, error) {
		return c.service.Channels.List([]string{"contentDetails"}).
			Id(channelID).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}
	if len(response.Items) == 0 ||
		response.Items[0].ContentDetails == nil ||
		response.Items[0].ContentDetails.RelatedPlaylists == nil ||
		response.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		c.notify("No content details found for channel ID: %s", channelID)
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNoUploadsPlaylist)
	}
	playlistID := response.Items[0].ContentDetails.RelatedPlaylists.Uploads

	return collectPages(func(pageToken string) (page[string], error) {
		op := fmt.Sprintf("playlistItems.list(%s)", playlistID)
		resp, err := withRetry(c, op, func() (*youtube.PlaylistItemListResponse, error) {
			call := c.service.PlaylistItems.List([]string{"snippet"}).
				PlaylistId(playlistID).
				MaxResults(maxResultsPerPage).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			return call.Do()
		})
		if err != nil {
			return page[string]{}, err
		}
		var ids []string
		for _, item := range resp.Items {
			if item.Snippet != nil && item.Snippet.ResourceId != nil {
				ids = append(ids, item.Snippet.ResourceId.VideoId)
			}
		}
		return page[string]{items: ids, nextToken: resp.NextPageToken}, nil
	})
}

// FetchVideoDetails fetches detail records for the given video IDs in batches
// of up to 50 per call, preserving input order. A batch that comes back empty
// or unavailable is reported and skipped without aborting the remaining
// batches; an unclassified error aborts with the records gathered so far.
func (c *Client) FetchVideoDetails(ctx context.Context, videoIDs []string) ([]models.Video, error) {
	var videos []models.Video
	for start := 0; start < len(videoIDs); start += maxResultsPerPage {
		end := start + maxResultsPerPage
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batch := videoIDs[start:end]

		op := fmt.Sprintf("videos.list(batch of %d)", len(batch))
		response, err := withRetry(c, op, func() (*youtube.VideoListResponse, error) {
			return c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
				Id(batch...).
				Context(ctx).
				Do()
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return videos, err
		}
		if len(response.Items) == 0 {
			c.notify("No data returned for video batch starting at %s", batch[0])
			continue
		}
		for _, item := range response.Items {
			videos = append(videos, normalizeVideo(item))
		}
	}
	return videos, nil
}

func normalizeVideo(item *youtube.Video) models.Video {
	v := models.Video{
		ID:      item.Id,
		Caption: "false",
	}
	if item.Snippet != nil {
		v.Title = item.Snippet.Title
		v.Description = item.Snippet.Description
		v.ChannelID = item.Snippet.ChannelId
		v.Tags = strings.Join(item.Snippet.Tags, ", ")
		v.PublishedAt = item.Snippet.PublishedAt
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			v.Thumbnail = item.Snippet.Thumbnails.Default.Url
		}
	}
	if item.Statistics != nil {
		v.ViewCount = int64(item.Statistics.ViewCount)
		v.LikeCount = int64(item.Statistics.LikeCount)
		v.FavoriteCount = int64(item.Statistics.FavoriteCount)
		v.CommentCount = int64(item.Statistics.CommentCount)
	}
	if item.ContentDetails != nil {
		v.DurationSeconds = ParseDuration(item.ContentDetails.Duration)
		if item.ContentDetails.Caption != "" {
			v.Caption = item.ContentDetails.Caption
		}
	}
	return v
}

// FetchComments fetches every top-level comment thread for each video in
// turn. channelID is stamped onto every record as the channel under which
// harvesting was invoked. A video with comments disabled contributes zero
// records; any other failure stops that video's pagination, keeps what was
// gathered and moves on. One video's failure never aborts the batch.
func (c *Client) FetchComments(ctx context.Context, videoIDs []string, channelID string) []models.Comment {
	var comments []models.Comment
	for _, videoID := range videoIDs {
		videoComments, err := c.fetchVideoComments(ctx, videoID, channelID)
		comments = append(comments, videoComments...)
		if err != nil {
			switch {
			case errors.Is(err, ErrCommentsDisabled):
				c.notify("Comments are disabled for video ID: %s. Skipping.", videoID)
			case errors.Is(err, ErrNotFound):
				// Already notified by the client; nothing to keep.
			default:
				c.notify("Stopping comment fetch for video %s: %v", videoID, err)
			}
		}
	}
	return comments
}

func (c *Client) fetchVideoComments(ctx context.Context, videoID, channelID string) ([]models.Comment, error) {
	return collectPages(func(pageToken string) (page[models.Comment], error) {
		op := fmt.Sprintf("commentThreads.list(%s)", videoID)
		resp, err := withRetry(c, op, func() (*youtube.CommentThreadListResponse, error) {
			call := c.service.CommentThreads.List([]string{"snippet"}).
				VideoId(videoID).
				MaxResults(maxResultsPerPage).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			return call.Do()
		})
		if err != nil {
			return page[models.Comment]{}, err
		}
		var items []models.Comment
		for _, thread := range resp.Items {
			if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil ||
				thread.Snippet.TopLevelComment.Snippet == nil {
				continue
			}
			snippet := thread.Snippet.TopLevelComment.Snippet
			items = append(items, models.Comment{
				ID:          thread.Id,
				Text:        snippet.TextDisplay,
				AuthorName:  snippet.AuthorDisplayName,
				PublishedAt: snippet.PublishedAt,
				VideoID:     videoID,
				ChannelID:   channelID,
			})
		}
		return page[models.Comment]{items: items, nextToken: resp.NextPageToken}, nil
	})
}
