// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bgremove removes image backgrounds through a remote service.
//
// Service is the interface the editor depends on. Client implements it over
// HTTP against a remove.bg compatible endpoint: the image is posted as a PNG
// in the multipart field "image_file", authenticated with the X-Api-Key
// header, and the response body is decoded as the cut-out image.
//
// Client rate-limits outgoing requests, collapses concurrent requests for
// identical pixels into one, and caches results by content hash.
package bgremove

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	// Response decoders.
	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"github.com/gogpu/ggedit/internal/logx"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Client defaults.
const (
	DefaultEndpoint = "https://api.remove.bg/v1.0/removebg"
	DefaultTimeout  = 60 * time.Second
	DefaultInterval = time.Second
	defaultBurst    = 2

	// maxErrorBody bounds how much of a failed response is kept.
	maxErrorBody = 4 << 10
)

// ErrNoImage reports a removal that succeeded without returning an image.
var ErrNoImage = errors.New("bgremove: service returned no image")

// Service removes the background of an image.
type Service interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}

// ServiceError reports a failed removal.
type ServiceError struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	// Body is the start of the error response, if any.
	Body string
	Err  error
}

func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("bgremove: status %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("bgremove: service returned %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("bgremove: service returned %d", e.StatusCode)
	case e.Err != nil:
		return "bgremove: " + e.Err.Error()
	}
	return "bgremove: request failed"
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Client is an HTTP Service. It is safe for concurrent use.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
	results  *cache.Cache
	inflight singleflight.Group
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds a shared request, which runs detached from the
// contexts of the callers waiting on it. The default is DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateInterval allows one request per d, with a small burst.
// A zero interval disables limiting.
func WithRateInterval(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, defaultBurst)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), defaultBurst)
	}
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Every(DefaultInterval), defaultBurst),
		results:  cache.New(30*time.Minute, 1*time.Hour),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remove uploads img and returns the service's result. Identical images
// share one request; a caller whose ctx ends stops waiting for it, but the
// request keeps running for the others and its result is cached.
func (c *Client) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ServiceError{Err: err}
	}
	var body bytes.Buffer
	if err := png.Encode(&body, img); err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("encode upload: %w", err)}
	}
	sum := sha256.Sum256(body.Bytes())
	key := hex.EncodeToString(sum[:])

	if v, ok := c.results.Get(key); ok {
		logx.Logger().Debug("bgremove: cache hit", "key", key[:12])
		return v.(image.Image), nil
	}

	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		if v, ok := c.results.Get(key); ok {
			return v, nil
		}
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		out, err := c.post(sctx, body.Bytes())
		if err != nil {
			return nil, err
		}
		c.results.SetDefault(key, out)
		return out, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, &ServiceError{Err: ctx.Err()}
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		logx.Logger().Debug("bgremove: shared in-flight request", "key", key[:12])
	}

	out, ok := res.Val.(image.Image)
	if !ok {
		return nil, &ServiceError{Err: fmt.Errorf("unexpected return type from singleflight: %T", res.Val)}
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, pngData []byte) (image.Image, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ServiceError{Err: err}
	}

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("image_file", "image.png")
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	if _, err := fw.Write(pngData); err != nil {
		return nil, &ServiceError{Err: err}
	}
	if err := mw.WriteField("size", "auto"); err != nil {
		return nil, &ServiceError{Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &ServiceError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &form)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "image/png, image/*")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ServiceError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	logx.Logger().Info("bgremove: background removed",
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"elapsed", time.Since(start))
	return img, nil
}

var _ Service = (*Client)(nil)
