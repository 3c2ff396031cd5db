// Package client is the HTTP client for the MediView API: the auth service
// that issues bearer tokens and the resource endpoints the dashboards read.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mediview-health/mediview/pkg/domain"
)

// SignupRequest is the payload for the combined signup-and-login call.
// Validation tags are enforced client-side before any network traffic.
type SignupRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required"`
	Address        string `json:"address" validate:"required"`
	DateOfBirth    string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	RegisteredDate string `json:"registeredDate" validate:"required,datetime=2006-01-02"`
	Password       string `json:"password" validate:"required,min=8"`
	Role           string `json:"role" validate:"required,oneof=ADMIN STAFF PATIENT"`
}

// Client is the MediView API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a new API client. token may be empty for a visitor who has not
// logged in yet.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zap.NewNop(),
	}
}

// SetLogger installs a debug logger for request tracing.
func (c *Client) SetLogger(log *zap.Logger) {
	if log != nil {
		c.log = log
	}
}

// SetToken replaces the bearer token on this client. Called from the UI
// event loop after login, signup, and logout, so there is no concurrent
// writer.
func (c *Client) SetToken(token string) {
	c.token = token
}

// WithToken returns a copy of the client carrying the given token. Used for
// the profile fetch that follows a login, before the shared client has been
// updated.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// authResponse is the only thing either auth call yields; the role claim is
// determined separately (profile fetch after login, form choice on signup).
type authResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	return resp.Token, nil
}

// SignupAndLogin registers a new account and returns its bearer token.
func (c *Client) SignupAndLogin(ctx context.Context, req SignupRequest) (string, error) {
	var resp authResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/signup-and-login", req, &resp); err != nil {
		return "", fmt.Errorf("client.SignupAndLogin: %w", err)
	}
	return resp.Token, nil
}

// GetProfile returns the authenticated user's account, including the role
// claim the session store persists.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/profile", &u); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &u, nil
}

// ListUsers returns all registered accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var users []domain.User
	if err := c.get(ctx, "/api/users?"+params.Encode(), &users); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return users, nil
}

// ListPatients returns patient cards for staff views.
func (c *Client) ListPatients(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var patients []domain.Patient
	if err := c.get(ctx, "/api/patients?"+params.Encode(), &patients); err != nil {
		return nil, fmt.Errorf("client.ListPatients: %w", err)
	}
	return patients, nil
}

// ListStudies fetches imaging studies across all patients, optionally
// filtered by modality. Staff only.
func (c *Client) ListStudies(ctx context.Context, modality string, limit, offset int) ([]domain.ImagingStudy, error) {
	params := url.Values{}
	if modality != "" {
		params.Set("modality", modality)
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var studies []domain.ImagingStudy
	if err := c.get(ctx, "/api/studies?"+params.Encode(), &studies); err != nil {
		return nil, fmt.Errorf("client.ListStudies: %w", err)
	}
	return studies, nil
}

// MyStudies fetches the authenticated patient's own imaging studies.
func (c *Client) MyStudies(ctx context.Context, limit, offset int) ([]domain.ImagingStudy, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var studies []domain.ImagingStudy
	if err := c.get(ctx, "/api/studies/mine?"+params.Encode(), &studies); err != nil {
		return nil, fmt.Errorf("client.MyStudies: %w", err)
	}
	return studies, nil
}

// StudyViewerURL returns the browser viewer link for a study. The study's
// own viewer_url wins when the server provides one.
func (c *Client) StudyViewerURL(study domain.ImagingStudy) string {
	if study.ViewerURL != "" {
		return study.ViewerURL
	}
	return c.baseURL + "/viewer/" + url.PathEscape(study.ID.String())
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug("request",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(start)))

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
