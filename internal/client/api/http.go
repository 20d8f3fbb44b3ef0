package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sightpass/sightpass/internal/client/models"
	"github.com/sightpass/sightpass/internal/client/store"
	"github.com/sightpass/sightpass/internal/imagex"
	"github.com/sightpass/sightpass/internal/logging"
)

const apiPrefix = "/api/v1"

// HTTPClient is the net/http implementation of Client. The bearer token is
// read from the persisted store on every request; requests never carry a
// token when none is stored.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   store.Store
	log     logging.Logger

	// onUnauthorized runs once per 401 response, after the store purge.
	// The application wires it to drop the in-memory session and send the
	// user back to the unauthenticated entry point.
	onUnauthorized func()
}

func NewHTTPClient(baseURL string, timeout time.Duration, st store.Store, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/") + apiPrefix,
		http:    &http.Client{Timeout: timeout},
		store:   st,
		log:     log.With("component", "api"),
	}
}

// SetUnauthorizedHandler installs the cross-cutting 401 reaction. It is not
// invoked per call site; any operation hitting a 401 triggers it.
func (c *HTTPClient) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	token, err := c.store.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read stored token", "error", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do executes the request and decodes a 2xx JSON body into out (out may be
// nil for empty responses). Non-2xx responses are classified: 401 purges the
// persisted session and yields ErrUnauthorized, everything else becomes an
// *APIError carrying the server's detail text.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(req.Context())
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) handleUnauthorized(ctx context.Context) {
	c.log.Info(ctx, "token rejected, purging stored session")
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to purge stored session", "error", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// readDetail extracts the {"detail": "..."} message from an error body.
func readDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// postMultipart submits fields as multipart form data. Used by the
// photo-bearing endpoints, which do not accept JSON bodies.
func (c *HTTPClient) postMultipart(ctx context.Context, path string, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to encode form field %s: %w", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp models.AuthResponse
	if err := c.postJSON(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) FaceLogin(ctx context.Context, email, imageBase64 string) (*models.AuthResponse, error) {
	fields := map[string]string{
		"email":             email,
		"face_image_base64": imagex.StripDataURL(imageBase64),
	}

	var resp models.AuthResponse
	if err := c.postMultipart(ctx, "/auth/face/login", fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var u models.User
	if err := c.postJSON(ctx, "/users/", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetMe(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) EnrollFace(ctx context.Context, imageBase64 string) (*models.FaceEnrollResponse, error) {
	fields := map[string]string{
		"face_image_base64": imagex.StripDataURL(imageBase64),
	}

	var resp models.FaceEnrollResponse
	if err := c.postMultipart(ctx, "/auth/face/enroll", fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) TestFace(ctx context.Context, email, imageBase64 string) (*models.FaceTestResponse, error) {
	fields := map[string]string{
		"email":             email,
		"face_image_base64": imagex.StripDataURL(imageBase64),
	}

	var resp models.FaceTestResponse
	if err := c.postMultipart(ctx, "/auth/face/test", fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	path := fmt.Sprintf("/users/?skip=%d&limit=%d", skip, limit)
	if err := c.get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), "", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
