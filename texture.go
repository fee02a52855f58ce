package scratchoff

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // overlay textures are usually photos
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

// errEmptyTexture is the result of a decoded image with no pixels.
var errEmptyTexture = errors.New("scratchoff: texture has zero size")

// Texture is an overlay image that becomes available asynchronously. It
// completes exactly once, with either an image or an error; consumers poll it
// from their own update loop.
type Texture struct {
	done chan struct{}
	once sync.Once
	img  image.Image
	err  error
}

func newTexture() *Texture {
	return &Texture{done: make(chan struct{})}
}

// TextureFromImage returns an already completed Texture.
func TextureFromImage(img image.Image) *Texture {
	t := newTexture()
	t.complete(img, nil)
	return t
}

// FailedTexture returns a Texture that completed with err.
func FailedTexture(err error) *Texture {
	t := newTexture()
	t.complete(nil, err)
	return t
}

// PendingTexture returns a Texture and the function that completes it. Calls
// after the first are ignored.
func PendingTexture() (*Texture, func(image.Image, error)) {
	t := newTexture()
	return t, t.complete
}

func (t *Texture) complete(img image.Image, err error) {
	t.once.Do(func() {
		if err == nil && (img == nil || img.Bounds().Empty()) {
			err = errEmptyTexture
		}
		if err != nil {
			img = nil
		}
		t.img, t.err = img, err
		close(t.done)
	})
}

// Done is closed once the texture has completed.
func (t *Texture) Done() <-chan struct{} {
	return t.done
}

// Ready reports, without blocking, whether the texture has completed.
func (t *Texture) Ready() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Result returns the completed image or error. Both are nil while loading.
func (t *Texture) Result() (image.Image, error) {
	if !t.Ready() {
		return nil, nil
	}
	return t.img, t.err
}

// LoadTexture starts loading src in the background. src is an http(s) URL or
// a file path. Failures complete the texture with an error; they are never
// fatal to the caller.
func LoadTexture(ctx context.Context, src string) *Texture {
	t := newTexture()
	go func() {
		img, err := fetchImage(ctx, src)
		t.complete(img, err)
	}()
	return t
}

func fetchImage(ctx context.Context, src string) (image.Image, error) {
	rc, err := openSource(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}

func openSource(ctx context.Context, src string) (io.ReadCloser, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", src, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", src, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}
