package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedState is returned when a redirect state cannot be decoded.
var ErrMalformedState = errors.New("malformed verification state")

// VerificationRequest is the context of one verification attempt.
// It is carried through the identity provider redirect as VerificationState.
type VerificationRequest struct {
	Address   string `json:"address"`
	ReturnURI string `json:"returnUri,omitempty"`
}

// EncodeState serializes req into the opaque state parameter.
// The result is attacker-visible and must not be treated as authenticated.
func EncodeState(req VerificationRequest) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(req); err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// DecodeState parses a state parameter echoed back by the identity provider.
func DecodeState(state string) (VerificationRequest, error) {
	var req VerificationRequest
	if state == "" {
		return req, ErrMalformedState
	}
	if err := json.Unmarshal([]byte(state), &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if req.Address == "" {
		return req, fmt.Errorf("%w: missing address", ErrMalformedState)
	}
	return req, nil
}
