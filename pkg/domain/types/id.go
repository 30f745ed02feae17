package types

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// VideoID is a YouTube video identifier extracted from a user-supplied URL
type VideoID string

// Validate checks if the VideoID is well-formed
func (v VideoID) Validate() error {
	if v == "" {
		return goerr.New("video ID is empty")
	}
	if strings.ContainsAny(string(v), " \t\n/?&=") {
		return goerr.New("video ID contains invalid characters", goerr.V("id", string(v)))
	}
	return nil
}

func (v VideoID) String() string {
	return string(v)
}

// SessionID identifies one user session and its isolated knowledge base
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Validate checks if the SessionID is well-formed
func (s SessionID) Validate() error {
	if s == "" {
		return goerr.New("session ID is empty")
	}
	if _, err := uuid.Parse(string(s)); err != nil {
		return goerr.Wrap(err, "invalid session ID format", goerr.V("id", string(s)))
	}
	return nil
}

func (s SessionID) String() string {
	return string(s)
}
