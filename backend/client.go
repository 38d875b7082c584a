package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/zhlive"
	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxBodySize bounds response bodies, audio included.
const maxBodySize = 32 << 20

// Client implements zhlive.Backend over HTTP JSON.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	maxBody int64
	logger  *zap.SugaredLogger
}

// Config holds configuration for the HTTP client.
type Config struct {
	BaseURL    string             // Service root (e.g., "http://localhost:5000")
	Timeout    time.Duration      // Per-request timeout (default: 10s)
	HTTPClient *http.Client       // Custom HTTP client (optional)
	Logger     *zap.SugaredLogger // Request logging (optional)
}

// New creates a new HTTP backend client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		timeout: timeout,
		maxBody: maxBodySize,
		logger:  logger,
	}
}

// Translate calls /translate.
func (c *Client) Translate(ctx context.Context, req zhlive.TranslateRequest) (*zhlive.TranslationResult, error) {
	resp, err := c.post(ctx, EndpointTranslate, req)
	if err != nil {
		return nil, err
	}

	res, err := resp.json(EndpointTranslate)
	if err != nil {
		return nil, err
	}

	return &zhlive.TranslationResult{
		SourceText:    res.Get("source_text").String(),
		Translation:   res.Get("translation").String(),
		Pronunciation: res.Get("pronunciation").String(),
	}, nil
}

// Speak calls /speak and returns the audio bytes.
func (c *Client) Speak(ctx context.Context, req zhlive.SpeakRequest) (*zhlive.Audio, error) {
	resp, err := c.post(ctx, EndpointSpeak, req)
	if err != nil {
		return nil, err
	}

	if resp.isJSON() || !resp.ok() {
		if _, err := resp.json(EndpointSpeak); err != nil {
			return nil, err
		}
		return nil, &zhlive.BackendError{Endpoint: EndpointSpeak, Message: "expected audio, got JSON"}
	}

	if len(resp.body) == 0 {
		return nil, &zhlive.BackendError{Endpoint: EndpointSpeak, Message: "empty audio"}
	}

	return &zhlive.Audio{
		Data:        resp.body,
		ContentType: resp.contentType,
	}, nil
}

// Share calls /share and returns the share link.
func (c *Client) Share(ctx context.Context, req zhlive.ShareRequest) (string, error) {
	resp, err := c.post(ctx, EndpointShare, req)
	if err != nil {
		return "", err
	}

	res, err := resp.json(EndpointShare)
	if err != nil {
		return "", err
	}

	url := res.Get("share_url").String()
	if url == "" {
		return "", &zhlive.BackendError{Endpoint: EndpointShare, Message: "response has no share_url"}
	}
	return url, nil
}

// response is a fully read HTTP response.
type response struct {
	status      int
	contentType string
	body        []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r *response) isJSON() bool {
	return strings.HasPrefix(r.contentType, "application/json")
}

// json parses the body as JSON. An error field wins over the status code,
// since the service reports its own failures with a 500 and a JSON body.
func (r *response) json(endpoint string) (gjson.Result, error) {
	if !gjson.ValidBytes(r.body) {
		if !r.ok() {
			return gjson.Result{}, &zhlive.TransportError{Endpoint: endpoint, StatusCode: r.status}
		}
		return gjson.Result{}, &zhlive.TransportError{
			Endpoint:   endpoint,
			StatusCode: r.status,
			Cause:      errors.New("invalid JSON response"),
		}
	}

	res := gjson.ParseBytes(r.body)
	if msg := res.Get("error"); msg.Exists() && msg.String() != "" {
		return gjson.Result{}, &zhlive.BackendError{Endpoint: endpoint, Message: msg.String()}
	}

	if !r.ok() {
		return gjson.Result{}, &zhlive.TransportError{Endpoint: endpoint, StatusCode: r.status}
	}
	return res, nil
}

// post sends payload as JSON and reads the whole response.
func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) (*response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &zhlive.TransportError{Endpoint: endpoint, Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &zhlive.TransportError{Endpoint: endpoint, Cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")
	req.Header.Set("User-Agent", zhlive.UserAgent())
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debugw("backend request failed", "endpoint", endpoint, "requestID", requestID, "error", err)
		return nil, &zhlive.TransportError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	body, err := readBody(resp, c.maxBody)
	if err != nil {
		return nil, &zhlive.TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode, Cause: err}
	}

	c.logger.Debugw("backend request",
		"endpoint", endpoint,
		"requestID", requestID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start).String(),
	)

	return &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}, nil
}

// readBody reads the response body, undoing br or gzip content encoding.
// Bodies longer than limit are an error rather than being cut short.
func readBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = resp.Body

	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case "", "identity":
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}

	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return body, nil
}

// Verify Client implements Backend
var _ Backend = (*Client)(nil)
