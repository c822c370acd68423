package handler

import (
	"log"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
)

const pairCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newPairCode() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = pairCodeChars[rand.Intn(len(pairCodeChars))]
	}
	return string(code)
}

type generateCodeRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// GeneratePairCode issues a short-lived code the partner can redeem to form
// the couple.
func (h *Handler) GeneratePairCode(c *gin.Context) {
	var req generateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	user, err := h.Store.GetUserByID(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.CoupleID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already in a couple"})
		return
	}

	code := newPairCode()
	if err := h.Store.SavePairCode(code, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store pairing code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

type joinCoupleRequest struct {
	UserID string `json:"userId" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// JoinCouple redeems a pairing code and creates the couple for both users.
func (h *Handler) JoinCouple(c *gin.Context) {
	var req joinCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and code are required"})
		return
	}

	joiner, err := h.Store.GetUserByID(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if joiner == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if joiner.CoupleID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already in a couple"})
		return
	}

	ownerID, err := h.Store.LookupPairCode(req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up pairing code"})
		return
	}
	if ownerID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid pairing code"})
		return
	}
	if ownerID == joiner.ID {
		c.JSON(http.StatusConflict, gin.H{"error": "You cannot pair with yourself"})
		return
	}

	owner, err := h.Store.GetUserByID(ownerID)
	if err != nil || owner == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid pairing code"})
		return
	}
	if owner.CoupleID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already in a couple"})
		return
	}

	couple, err := h.Store.CreateCoupleFor(owner.ID, joiner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create couple"})
		return
	}
	if err := h.Store.DeletePairCode(req.Code); err != nil {
		// The code expires on its own; losing the delete is not fatal.
		log.Printf("Failed to delete redeemed pairing code %s: %v", req.Code, err)
	}

	full, err := h.Store.GetCoupleByID(couple.ID)
	if err != nil || full == nil {
		c.JSON(http.StatusOK, couple)
		return
	}
	c.JSON(http.StatusOK, full)
}

// CoupleStatus reports the user's pairing state and, when paired, the couple
// with both members and the active theme.
func (h *Handler) CoupleStatus(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	user, err := h.Store.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{"user": user}
	if user.CoupleID != nil {
		couple, err := h.Store.GetCoupleByID(*user.CoupleID)
		if err == nil && couple != nil {
			resp["couple"] = couple
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListThemeTemplates returns the stock themes.
func (h *Handler) ListThemeTemplates(c *gin.Context) {
	templates, err := h.Store.ListThemeTemplates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list themes"})
		return
	}
	c.JSON(http.StatusOK, templates)
}

type updateThemeRequest struct {
	TemplateID uint `json:"templateId" binding:"required"`
}

// UpdateCoupleTheme applies a theme template to the couple and injects a
// themeChanged event into the room through the hub.
func (h *Handler) UpdateCoupleTheme(c *gin.Context) {
	coupleID := c.Param("id")

	var req updateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "templateId is required"})
		return
	}

	template, err := h.Store.GetThemeTemplate(req.TemplateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up theme"})
		return
	}
	if template == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme template not found"})
		return
	}

	if err := h.Store.SetCoupleTheme(coupleID, template.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update theme"})
		return
	}

	h.Hub.BroadcastTheme(coupleID, template)
	c.JSON(http.StatusOK, template)
}
