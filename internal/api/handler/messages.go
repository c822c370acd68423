package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"duetchat/backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryTake = 50
	defaultMediaTake   = 6
	maxUploadBytes     = 50 << 20
)

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// ChatHistory returns a page of the room's messages, oldest first.
func (h *Handler) ChatHistory(c *gin.Context) {
	coupleID := c.Param("coupleId")
	skip := queryInt(c, "skip", 0)
	take := queryInt(c, "take", defaultHistoryTake)

	history, err := h.Store.GetChatHistory(coupleID, skip, take)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// MediaHistory returns a page of the room's image and video messages, newest
// first, for the profile grid.
func (h *Handler) MediaHistory(c *gin.Context) {
	coupleID := c.Param("coupleId")
	skip := queryInt(c, "skip", 0)
	take := queryInt(c, "take", defaultMediaTake)

	mediaMsgs, err := h.Store.GetMediaMessages(coupleID, skip, take)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media"})
		return
	}
	c.JSON(http.StatusOK, mediaMsgs)
}

// Partner resolves the couple member other than the given user.
func (h *Handler) Partner(c *gin.Context) {
	partner, err := h.Store.GetPartner(c.Param("coupleId"), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up partner"})
		return
	}
	if partner == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}
	c.JSON(http.StatusOK, partner)
}

// UploadMessage accepts a media upload, persists it as a message and pushes it
// into the room through the hub, which applies the same offline push fallback
// as a realtime send.
func (h *Handler) UploadMessage(c *gin.Context) {
	file, err := c.FormFile("file")
	coupleID := c.PostForm("coupleId")
	senderID := c.PostForm("senderId")
	if err != nil || coupleID == "" || senderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File, coupleId, and senderId are required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 50MB limit"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") &&
		!strings.HasPrefix(contentType, "video/") &&
		!strings.HasPrefix(contentType, "audio/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	stored, err := h.Files.Save(file, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	msgType := models.MessageType(strings.ToUpper(c.PostForm("type")))
	switch msgType {
	case models.MessageTypeImage, models.MessageTypeVideo, models.MessageTypeAudio:
	default:
		switch {
		case strings.HasPrefix(contentType, "video/"):
			msgType = models.MessageTypeVideo
		case strings.HasPrefix(contentType, "audio/"):
			msgType = models.MessageTypeAudio
		default:
			msgType = models.MessageTypeImage
		}
	}

	msg := &models.Message{
		CoupleID:    coupleID,
		SenderID:    senderID,
		Content:     stored.URL,
		Type:        msgType,
		DriveFileID: &stored.ID,
	}
	if replyTo := c.PostForm("replyToId"); replyTo != "" {
		if id, err := strconv.ParseUint(replyTo, 10, 32); err == nil {
			replyID := uint(id)
			msg.ReplyToID = &replyID
			msg.ReplyToContent = optionalForm(c, "replyToContent")
			msg.ReplyToSenderID = optionalForm(c, "replyToSenderId")
			msg.ReplyToType = optionalForm(c, "replyToType")
		}
	}

	if err := h.Store.CreateMessage(msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}
	if err := h.Store.TouchCouple(coupleID, time.Now()); err != nil {
		log.Printf("Failed to update last activity for couple %s: %v", coupleID, err)
	}

	h.Hub.BroadcastNewMessage(coupleID, msg)
	c.JSON(http.StatusOK, msg)
}

func optionalForm(c *gin.Context, key string) *string {
	if v := c.PostForm(key); v != "" {
		return &v
	}
	return nil
}
