package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yt-harvest/internal/models"
	"github.com/yt-harvest/internal/store"
	"github.com/yt-harvest/internal/youtube"
)

// Harvester exposes the harvesting pipeline and the report menu over HTTP.
type Harvester struct {
	client *youtube.Client
	store  *store.Store
}

// NewHarvester creates the HTTP handler set around an API client and a store.
func NewHarvester(client *youtube.Client, st *store.Store) *Harvester {
	return &Harvester{
		client: client,
		store:  st,
	}
}

// RegisterRoutes attaches all endpoints to the router.
func (h *Harvester) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/channel/:id", h.GetChannel)

	router.POST("/harvest/channel/:id", h.HarvestChannel)
	router.POST("/harvest/channel/:id/videos", h.HarvestVideos)
	router.POST("/harvest/channel/:id/comments", h.HarvestComments)

	router.GET("/reports", h.ListReports)
	router.GET("/reports/:name", h.RunReport)
	router.GET("/tables/:name", h.DumpTable)
}

// GetChannel returns the stored channel record for an ID, fetching and
// persisting it on a store miss.
func (h *Harvester) GetChannel(c *gin.Context) {
	channelID := c.Param("id")

	channel, err := h.store.GetChannel(channelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if channel != nil {
		c.JSON(http.StatusOK, channel)
		return
	}

	log.Printf("Channel %s not found in store, fetching from YouTube API", channelID)
	channel, err = h.client.FetchChannel(c.Request.Context(), channelID)
	if err != nil {
		if errors.Is(err, youtube.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.InsertChannels([]models.Channel{*channel}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, channel)
}

// HarvestChannel fetches one channel's metadata and persists it.
func (h *Harvester) HarvestChannel(c *gin.Context) {
	channelID := c.Param("id")

	channel, err := h.client.FetchChannel(c.Request.Context(), channelID)
	if err != nil {
		if errors.Is(err, youtube.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no channel data found for ID: " + channelID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.store.InsertChannels([]models.Channel{*channel})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channel":  channel,
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
	})
}

// HarvestVideos enumerates a channel's uploads, fetches detail records in
// batches and persists them. A mid-pagination failure persists what was
// gathered and flags the response as partial.
func (h *Harvester) HarvestVideos(c *gin.Context) {
	channelID := c.Param("id")

	videoIDs, enumErr := h.client.ListChannelVideoIDs(c.Request.Context(), channelID)
	if enumErr != nil && len(videoIDs) == 0 {
		if errors.Is(enumErr, youtube.ErrNoUploadsPlaylist) || errors.Is(enumErr, youtube.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": enumErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": enumErr.Error()})
		return
	}
	if enumErr != nil {
		log.Printf("Video enumeration for %s is partial: %v", channelID, enumErr)
	}

	videos, fetchErr := h.client.FetchVideoDetails(c.Request.Context(), videoIDs)
	if fetchErr != nil {
		log.Printf("Video detail fetch for %s is partial: %v", channelID, fetchErr)
	}

	result, err := h.store.InsertVideos(videos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channel_id": channelID,
		"video_ids":  len(videoIDs),
		"fetched":    len(videos),
		"inserted":   result.Inserted,
		"skipped":    result.Skipped,
		"partial":    enumErr != nil || fetchErr != nil,
	})
}

// HarvestComments enumerates a channel's uploads and fetches the comment
// threads of every video, one video at a time. Videos with comments disabled
// contribute nothing and never abort the batch.
func (h *Harvester) HarvestComments(c *gin.Context) {
	channelID := c.Param("id")

	videoIDs, enumErr := h.client.ListChannelVideoIDs(c.Request.Context(), channelID)
	if enumErr != nil && len(videoIDs) == 0 {
		if errors.Is(enumErr, youtube.ErrNoUploadsPlaylist) || errors.Is(enumErr, youtube.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": enumErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": enumErr.Error()})
		return
	}

	comments := h.client.FetchComments(c.Request.Context(), videoIDs, channelID)

	result, err := h.store.InsertComments(comments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channel_id": channelID,
		"video_ids":  len(videoIDs),
		"fetched":    len(comments),
		"inserted":   result.Inserted,
		"skipped":    result.Skipped,
		"partial":    enumErr != nil,
	})
}

// ListReports returns the closed report menu with the question behind each name.
func (h *Harvester) ListReports(c *gin.Context) {
	names := store.ReportNames()
	menu := make([]gin.H, 0, len(names))
	for _, name := range names {
		question, _ := store.ReportQuestion(name)
		menu = append(menu, gin.H{"name": name, "question": question})
	}
	c.JSON(http.StatusOK, menu)
}

// RunReport executes one named report.
func (h *Harvester) RunReport(c *gin.Context) {
	name := c.Param("name")
	result, err := h.store.RunReport(name)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid selection: " + name})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// DumpTable renders one of the harvest tables for inspection.
func (h *Harvester) DumpTable(c *gin.Context) {
	name := c.Param("name")
	result, err := h.store.DumpTable(name)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown table: " + name})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
