package scratchoff

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitTexture(t *testing.T, tex *Texture) (image.Image, error) {
	t.Helper()
	select {
	case <-tex.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("texture did not complete")
	}
	return tex.Result()
}

func TestTextureFromImage(t *testing.T) {
	tex := TextureFromImage(solidImage(4, 4, color.White))
	if !tex.Ready() {
		t.Fatal("completed texture not ready")
	}
	img, err := tex.Result()
	if err != nil || img == nil {
		t.Errorf("Result = (%v, %v), want image", img, err)
	}
}

func TestTextureEmptyImage(t *testing.T) {
	_, err := TextureFromImage(image.NewRGBA(image.Rect(0, 0, 0, 0))).Result()
	if !errors.Is(err, errEmptyTexture) {
		t.Errorf("err = %v, want errEmptyTexture", err)
	}
	if _, err := TextureFromImage(nil).Result(); !errors.Is(err, errEmptyTexture) {
		t.Errorf("nil image err = %v, want errEmptyTexture", err)
	}
}

func TestFailedTexture(t *testing.T) {
	cause := errors.New("boom")
	img, err := FailedTexture(cause).Result()
	if img != nil || !errors.Is(err, cause) {
		t.Errorf("Result = (%v, %v), want (nil, boom)", img, err)
	}
}

func TestPendingTextureCompletesOnce(t *testing.T) {
	tex, complete := PendingTexture()
	if tex.Ready() {
		t.Fatal("pending texture ready")
	}
	if img, err := tex.Result(); img != nil || err != nil {
		t.Error("pending texture returned a result")
	}

	complete(solidImage(2, 2, color.White), nil)
	complete(nil, errors.New("late"))

	img, err := tex.Result()
	if err != nil || img == nil {
		t.Errorf("second completion overrode the first: (%v, %v)", img, err)
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTextureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foil.png")
	writePNG(t, path, solidImage(8, 6, color.RGBA{R: 200, G: 160, B: 40, A: 255}))

	img, err := waitTexture(t, LoadTexture(context.Background(), path))
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}
}

func TestLoadTextureMissingFile(t *testing.T) {
	_, err := waitTexture(t, LoadTexture(context.Background(), filepath.Join(t.TempDir(), "missing.png")))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadTextureHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foil.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, solidImage(3, 3, color.White))
	}))
	defer srv.Close()

	img, err := waitTexture(t, LoadTexture(context.Background(), srv.URL+"/foil.png"))
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("width = %d, want 3", img.Bounds().Dx())
	}

	if _, err := waitTexture(t, LoadTexture(context.Background(), srv.URL+"/gone.png")); err == nil {
		t.Error("expected error for a 404")
	}
}

func TestLoadTextureUndecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := waitTexture(t, LoadTexture(context.Background(), path)); err == nil {
		t.Error("expected decode error")
	}
}
