package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
)

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

type validatedUser struct {
	UserID string `json:"user_id"`
}

// RemoteValidator delegates token validation to the user service.
type RemoteValidator struct {
	url    string
	client *http.Client
}

// NewRemoteValidator creates a validator posting tokens to url.
func NewRemoteValidator(url string, timeout time.Duration) clients.TokenValidator {
	return &RemoteValidator{url: url, client: &http.Client{Timeout: timeout}}
}

var _ clients.TokenValidator = (*RemoteValidator)(nil)

func (v *RemoteValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	payload, err := json.Marshal(validateRequest{Token: token})
	if err != nil {
		return "", fmt.Errorf("failed to encode token validation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create token validation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token validation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token validation response: %w", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return "", fmt.Errorf("token validation service returned HTTP %d", resp.StatusCode)
	}

	var out validateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: malformed validation response", apperrors.ErrUnauthorized)
	}
	if out.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: validation returned status %d", apperrors.ErrUnauthorized, out.StatusCode)
	}

	var user validatedUser
	body := out.Body
	// The body may itself be a JSON encoded string.
	var inner string
	if err := json.Unmarshal(body, &inner); err == nil {
		body = json.RawMessage(inner)
	}
	if err := json.Unmarshal(body, &user); err != nil || user.UserID == "" {
		return "", fmt.Errorf("%w: validation response has no user_id", apperrors.ErrUnauthorized)
	}
	return user.UserID, nil
}
