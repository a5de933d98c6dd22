package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a Galleria server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		config: &Config{
			Endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
			Token:    cfg.Token,
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the normalized server URL.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// SetToken replaces the bearer token used by authenticated calls.
func (c *Client) SetToken(token string) {
	c.config.Token = token
}

// Signup creates an account and returns its bearer token.
func (c *Client) Signup(ctx context.Context, username, email, password string) (string, error) {
	body, err := json.Marshal(signupRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/signup", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doText(req)
}

// Login exchanges a username and password for a fresh bearer token.
// Tokens issued earlier for the same user stop working.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/login", http.NoBody)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(username, password)

	return c.doText(req)
}

// CreateGallery creates a gallery owned by the token's user.
func (c *Client) CreateGallery(ctx context.Context, name, description string) (*Gallery, error) {
	body, err := json.Marshal(galleryRequest{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("create gallery: %w", err)
	}

	req, err := c.newAuthRequest(ctx, http.MethodPost, "/api/gallery", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var g Gallery
	if err := c.doJSON(req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetGallery fetches one gallery by id.
func (c *Client) GetGallery(ctx context.Context, id string) (*Gallery, error) {
	if id == "" {
		return nil, fmt.Errorf("get gallery: %w", ErrEmptyID)
	}

	req, err := c.newAuthRequest(ctx, http.MethodGet, galleryPath(id), http.NoBody)
	if err != nil {
		return nil, err
	}

	var g Gallery
	if err := c.doJSON(req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGallery applies a partial update to a gallery.
func (c *Client) UpdateGallery(ctx context.Context, id string, update GalleryUpdate) (*Gallery, error) {
	if id == "" {
		return nil, fmt.Errorf("update gallery: %w", ErrEmptyID)
	}

	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("update gallery: %w", err)
	}

	req, err := c.newAuthRequest(ctx, http.MethodPut, galleryPath(id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var g Gallery
	if err := c.doJSON(req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGallery deletes a gallery together with its pictures.
func (c *Client) DeleteGallery(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete gallery: %w", ErrEmptyID)
	}

	req, err := c.newAuthRequest(ctx, http.MethodDelete, galleryPath(id), http.NoBody)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// ListGalleries lists the token user's galleries.
// If opts.All is true, paginates through all results.
func (c *Client) ListGalleries(ctx context.Context, opts ListOptions) (*GalleryList, error) {
	return listPages[Gallery](ctx, c, "/api/gallery", opts)
}

// UploadPicture uploads a local image into a gallery.
// The file is streamed; it is never held in memory.
func (c *Client) UploadPicture(ctx context.Context, galleryID string, opts UploadOptions) (*Picture, error) {
	if galleryID == "" {
		return nil, fmt.Errorf("upload picture: %w", ErrEmptyID)
	}
	if opts.LocalPath == "" {
		return nil, fmt.Errorf("upload picture: %w", ErrEmptyPath)
	}

	file, err := os.Open(opts.LocalPath) //#nosec G304 -- LocalPath is user-provided input
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	name := opts.Name
	if name == "" {
		name = filepath.Base(opts.LocalPath)
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = detectContentType(opts.LocalPath)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(mw, file, filepath.Base(opts.LocalPath), contentType, name, opts.Description))
	}()

	req, err := c.newAuthRequest(ctx, http.MethodPost, galleryPath(galleryID)+"/pic", pr)
	if err != nil {
		_ = pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var p Picture
	if err := c.doJSON(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadPictures uploads each path in turn, collecting one result per file.
func (c *Client) UploadPictures(ctx context.Context, galleryID string, paths []string, description string) ([]UploadResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("upload pictures: %w", ErrEmptyPath)
	}

	results := make([]UploadResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		pic, err := c.UploadPicture(ctx, galleryID, UploadOptions{LocalPath: path, Description: description})
		results = append(results, UploadResult{LocalPath: path, Picture: pic, Err: err})
	}
	return results, nil
}

// ListPictures lists the pictures of a gallery.
// If opts.All is true, paginates through all results.
func (c *Client) ListPictures(ctx context.Context, galleryID string, opts ListOptions) (*PictureList, error) {
	if galleryID == "" {
		return nil, fmt.Errorf("list pictures: %w", ErrEmptyID)
	}
	return listPages[Picture](ctx, c, galleryPath(galleryID)+"/pic", opts)
}

// DeletePictures deletes pictures from a gallery.
// Continues on error, collecting results for all ids.
func (c *Client) DeletePictures(ctx context.Context, galleryID string, picIDs []string) ([]DeleteResult, error) {
	if len(picIDs) == 0 {
		return nil, ErrNoIDs
	}

	results := make([]DeleteResult, 0, len(picIDs))
	for _, id := range picIDs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		err := c.DeletePicture(ctx, galleryID, id)
		results = append(results, DeleteResult{ID: id, Deleted: err == nil, Err: err})
	}
	return results, nil
}

// DeletePicture deletes one picture and its stored image.
func (c *Client) DeletePicture(ctx context.Context, galleryID, picID string) error {
	if galleryID == "" || picID == "" {
		return fmt.Errorf("delete picture: %w", ErrEmptyID)
	}

	path := galleryPath(galleryID) + "/pic/" + url.PathEscape(picID)
	req, err := c.newAuthRequest(ctx, http.MethodDelete, path, http.NoBody)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

func listPages[T any](ctx context.Context, c *Client, path string, opts ListOptions) (*Page[T], error) {
	page := max(opts.Page, 1)

	first, err := listPage[T](ctx, c, path, page, opts.PageSize)
	if err != nil || !opts.All {
		return first, err
	}

	all := first
	for current := first; current.HasMore() && len(current.Items) > 0; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page++
		current, err = listPage[T](ctx, c, path, page, first.PageSize)
		if err != nil {
			return nil, err
		}
		all.Items = append(all.Items, current.Items...)
	}

	all.Page = 1
	all.PageSize = len(all.Items)
	return all, nil
}

func listPage[T any](ctx context.Context, c *Client, path string, page, pageSize int) (*Page[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		query.Set("pagesize", strconv.Itoa(pageSize))
	}

	req, err := c.newAuthRequest(ctx, http.MethodGet, path+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}

	var result Page[T]
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	if result.Items == nil {
		result.Items = []T{}
	}
	return &result, nil
}

func writeUploadForm(mw *multipart.Writer, file io.Reader, filename, contentType, name, description string) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     "image",
		"filename": filename,
	}))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	if err := mw.WriteField("name", name); err != nil {
		return err
	}
	if description != "" {
		if err := mw.WriteField("desc", description); err != nil {
			return err
		}
	}
	return mw.Close()
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.Endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (c *Client) newAuthRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if err := c.config.ValidateWithAuth(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	return req, nil
}

// doJSON executes req and decodes a 2xx body into out. A nil out discards the body.
func (c *Client) doJSON(req *http.Request, out any) error {
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) doText(req *http.Request) (string, error) {
	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseServerError(resp.StatusCode, body)
	}
	return body, nil
}

func galleryPath(id string) string {
	return "/api/gallery/" + url.PathEscape(id)
}

// detectContentType returns MIME type based on file extension.
func detectContentType(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "application/octet-stream"
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}

	return mimeType
}

// parseServerError decodes the server's {"error","message"} body.
// Bodies that are not JSON are kept verbatim as the message.
func parseServerError(statusCode int, body []byte) error {
	serr := &ServerError{StatusCode: statusCode}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		serr.Code = payload.Error
		serr.Message = payload.Message
	} else {
		serr.Message = strings.TrimSpace(string(body))
	}

	return serr
}

// ServerError represents an error response from the server.
type ServerError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServerError) Error() string {
	msg := "server error: " + strconv.Itoa(e.StatusCode)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += " - " + e.Message
	}
	return msg
}

// Is reports whether target matches this error.
// It matches if target is a *ServerError with the same StatusCode.
func (e *ServerError) Is(target error) bool {
	var t *ServerError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrInvalidInput is returned when the server rejects the request body or parameters (400).
	ErrInvalidInput = &ServerError{StatusCode: http.StatusBadRequest}

	// ErrUnauthorized is returned when the token or login credentials are rejected (401).
	ErrUnauthorized = &ServerError{StatusCode: http.StatusUnauthorized}

	// ErrNotFound is returned when the requested resource does not exist (404).
	ErrNotFound = &ServerError{StatusCode: http.StatusNotFound}

	// ErrConflict is returned when a username or email is already taken (409).
	ErrConflict = &ServerError{StatusCode: http.StatusConflict}

	// ErrPayloadTooLarge is returned when an upload exceeds the server limit (413).
	ErrPayloadTooLarge = &ServerError{StatusCode: http.StatusRequestEntityTooLarge}
)
