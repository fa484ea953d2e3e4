// Package imagehost uploads images to an external image host and returns
// their public URLs.
package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotConfigured is returned by NoopUploader.
var ErrNotConfigured = errors.New("image host is not configured")

// ErrUploadFailed is wrapped by every failed upload to the remote host.
var ErrUploadFailed = errors.New("image upload failed")

// =============================================================================
// Uploader Interface
// =============================================================================

// Upload is a stored image.
type Upload struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

// Uploader stores an image and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (Upload, error)
}

// =============================================================================
// Cloudinary Client Implementation
// =============================================================================

// Config holds configuration for the Cloudinary client.
type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Timeout      time.Duration
}

// DefaultConfig returns default image host configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://api.cloudinary.com",
		UploadPreset: "portfolio-preset",
		Timeout:      60 * time.Second,
	}
}

// Configured reports whether cfg names a cloud to upload to.
func (c Config) Configured() bool {
	return c.CloudName != "" && c.UploadPreset != ""
}

// CloudinaryClient implements Uploader with unsigned preset uploads.
type CloudinaryClient struct {
	baseURL      string
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
}

// NewCloudinaryClient creates a new Cloudinary upload client.
func NewCloudinaryClient(cfg Config) *CloudinaryClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}

	return &CloudinaryClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// New returns a Cloudinary client when cfg is configured and a NoopUploader otherwise.
func New(cfg Config) Uploader {
	if !cfg.Configured() {
		return NewNoopUploader()
	}
	return NewCloudinaryClient(cfg)
}

// uploadResponse is the subset of the Cloudinary upload response we use.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload streams r to the host as a multipart form. There is no retry.
func (c *CloudinaryClient) Upload(ctx context.Context, filename string, r io.Reader) (Upload, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeForm(mw, filename, c.uploadPreset, r))
	}()

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		pr.Close()
		return Upload{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		pr.Close()
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Upload{}, fmt.Errorf("%w: host returned %d with unreadable body", ErrUploadFailed, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return Upload{}, fmt.Errorf("%w: host returned %d: %s", ErrUploadFailed, resp.StatusCode, msg)
	}
	if out.SecureURL == "" {
		return Upload{}, fmt.Errorf("%w: response has no secure_url", ErrUploadFailed)
	}

	return Upload{
		URL:      out.SecureURL,
		PublicID: out.PublicID,
		Width:    out.Width,
		Height:   out.Height,
		Format:   out.Format,
		Bytes:    out.Bytes,
	}, nil
}

func writeForm(mw *multipart.Writer, filename, preset string, r io.Reader) error {
	if err := mw.WriteField("upload_preset", preset); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}

// =============================================================================
// No-Op Uploader (for development/testing)
// =============================================================================

// NoopUploader rejects every upload with ErrNotConfigured.
type NoopUploader struct{}

// NewNoopUploader creates a no-op uploader.
func NewNoopUploader() *NoopUploader {
	return &NoopUploader{}
}

// Upload returns ErrNotConfigured.
func (u *NoopUploader) Upload(ctx context.Context, filename string, r io.Reader) (Upload, error) {
	return Upload{}, ErrNotConfigured
}
