package bgremove

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// cutout replies with a transparent image of the uploaded size.
func cutout(t *testing.T, hits *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("X-Api-Key = %q", got)
		}
		f, _, err := r.FormFile("image_file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		in, err := png.Decode(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, image.NewNRGBA(in.Bounds()))
	}
}

func newTestClient(url string) *Client {
	return NewClient("secret", WithEndpoint(url), WithRateInterval(0))
}

func TestRemoveSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(cutout(t, &hits))
	defer srv.Close()

	out, err := newTestClient(srv.URL).Remove(context.Background(), solid(6, 4, color.White))
	if err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 4 {
		t.Errorf("size = %v", out.Bounds())
	}
	if _, _, _, a := out.At(1, 1).RGBA(); a != 0 {
		t.Errorf("alpha = %d, want transparent", a)
	}
}

func TestRemoveCachesByContent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(cutout(t, &hits))
	defer srv.Close()
	c := newTestClient(srv.URL)

	for i := 0; i < 3; i++ {
		if _, err := c.Remove(context.Background(), solid(3, 3, color.White)); err != nil {
			t.Fatal(err)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1 for identical pixels", n)
	}
	if _, err := c.Remove(context.Background(), solid(3, 3, color.Black)); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hits = %d, want 2 after new content", n)
	}
}

func TestRemoveConcurrentIdentical(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(cutout(t, &hits))
	defer srv.Close()
	c := newTestClient(srv.URL)
	img := solid(8, 8, color.White)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Remove(context.Background(), img); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}
}

func TestRemoveServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusForbidden, `{"errors":[{"title":"Invalid API key"}]}`},
		{"rate limited", http.StatusTooManyRequests, "slow down"},
		{"not an image", http.StatusOK, "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Remove(context.Background(), solid(2, 2, color.White))
			var se *ServiceError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *ServiceError", err)
			}
			if se.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.status)
			}
		})
	}
}

func TestRemoveFailureNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	var hits atomic.Int32
	ok := cutout(t, &hits)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		ok(w, r)
	}))
	defer srv.Close()
	c := newTestClient(srv.URL)
	img := solid(2, 2, color.White)

	if _, err := c.Remove(context.Background(), img); err == nil {
		t.Fatal("expected failure")
	}
	fail.Store(false)
	if _, err := c.Remove(context.Background(), img); err != nil {
		t.Errorf("retry after failure: %v", err)
	}
}

func TestRemoveCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient("secret", WithEndpoint(srv.URL)).Remove(ctx, solid(2, 2, color.White))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRemoveOutlivesCanceledCaller(t *testing.T) {
	var hits atomic.Int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	handler := cutout(t, &hits)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		handler(w, r)
	}))
	defer srv.Close()
	c := newTestClient(srv.URL)
	img := solid(5, 5, color.White)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.Remove(ctx, img)
		first <- err
	}()
	<-arrived
	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled caller error = %v, want context.Canceled", err)
	}
	close(release)

	out, err := c.Remove(context.Background(), img)
	if err != nil {
		t.Fatalf("second caller error = %v", err)
	}
	if out.Bounds().Dx() != 5 {
		t.Errorf("size = %v", out.Bounds())
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want the shared request to finish once", n)
	}
}

func TestWithTimeoutBoundsSharedRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient("secret", WithEndpoint(srv.URL), WithRateInterval(0), WithTimeout(50*time.Millisecond))
	_, err := c.Remove(context.Background(), solid(2, 2, color.White))
	var se *ServiceError
	if !errors.As(err, &se) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want ServiceError wrapping context.DeadlineExceeded", err)
	}
}
