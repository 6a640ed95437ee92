package handlers

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillswap/signaling-server/internal/models"
	"github.com/skillswap/signaling-server/internal/redis"
)

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // Removed ambiguous chars

// SessionAPI serves the scheduling metadata around the signaling core.
type SessionAPI struct {
	store      *redis.Store
	sessionTTL time.Duration
	log        *zap.Logger
}

// NewSessionAPI creates the session metadata handlers.
func NewSessionAPI(store *redis.Store, sessionTTL time.Duration, log *zap.Logger) *SessionAPI {
	return &SessionAPI{store: store, sessionTTL: sessionTTL, log: log}
}

// Create handles POST /api/sessions (requires authentication).
func (a *SessionAPI) Create(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endsAt must be after startsAt"})
		return
	}

	creatorName := ""
	if v, ok := c.Get("display_name"); ok {
		creatorName, _ = v.(string)
	}

	session := models.Session{
		ID:             uuid.New().String(),
		Code:           generateJoinCode(),
		CreatorID:      userID.(string),
		CreatorName:    creatorName,
		PartnerID:      req.PartnerID,
		SkillOffered:   req.SkillOffered,
		SkillRequested: req.SkillRequested,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		CreatedAt:      time.Now(),
	}

	if err := a.store.SaveSession(c.Request.Context(), &session, a.sessionTTL); err != nil {
		a.log.Error("failed to store session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	a.log.Info("session created",
		zap.String("session", session.ID),
		zap.String("code", session.Code),
		zap.String("creator", session.CreatorID))

	c.JSON(http.StatusCreated, models.CreateSessionResponse{
		SessionID: session.ID,
		Code:      session.Code,
	})
}

// Get handles GET /api/sessions/:sessionId by join code or id (public).
func (a *SessionAPI) Get(c *gin.Context) {
	session, err := a.store.LookupSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	// Live count comes from the presence mirror, not from this store
	session.ParticipantCount = int(a.store.PeerCount(c.Request.Context(), session.ID))

	c.JSON(http.StatusOK, session)
}

// Delete handles DELETE /api/sessions/:sessionId (creator only).
func (a *SessionAPI) Delete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	session, err := a.store.LookupSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if session.CreatorID != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the session creator can delete the session"})
		return
	}

	a.store.DeleteSession(c.Request.Context(), session)

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

// generateJoinCode generates a random session join code
func generateJoinCode() string {
	code := make([]byte, models.JoinCodeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		code[i] = codeChars[n.Int64()]
	}
	return string(code)
}
