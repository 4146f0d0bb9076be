package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
)

// userIDHeader carries the caller's identity. Authentication happens at the
// gateway; this service only reads the forwarded id.
const userIDHeader = "X-Sharer-User-Id"

// callerID extracts the caller's user id from the identity header.
func callerID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader(userIDHeader)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError("missing " + userIDHeader + " header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("invalid " + userIDHeader + " header")
	}
	return id, nil
}
