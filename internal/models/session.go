package models

import "time"

// JoinCodeLength is the length of the short shareable join code.
const JoinCodeLength = 6

// Session is the scheduling metadata for one skill-swap session. It lives
// in Redis with a TTL; the live room state belongs to the signaling
// coordinator and is never stored here.
type Session struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"` // Short, shareable join code (e.g. "KTN4P2")
	CreatorID      string    `json:"creatorId"`
	CreatorName    string    `json:"creatorName,omitempty"`
	PartnerID      string    `json:"partnerId,omitempty"`
	SkillOffered   string    `json:"skillOffered,omitempty"`
	SkillRequested string    `json:"skillRequested,omitempty"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	CreatedAt      time.Time `json:"createdAt"`

	// ParticipantCount is filled from the presence mirror on reads.
	ParticipantCount int `json:"participantCount"`
}

// CreateSessionRequest is the request body for creating a session.
type CreateSessionRequest struct {
	PartnerID      string    `json:"partnerId" binding:"required"`
	SkillOffered   string    `json:"skillOffered"`
	SkillRequested string    `json:"skillRequested"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	EndsAt         time.Time `json:"endsAt" binding:"required"`
}

// CreateSessionResponse is the response for creating a session.
type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}
