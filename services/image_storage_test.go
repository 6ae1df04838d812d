package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func pngFileHeader(t *testing.T, width, height int) *multipart.FileHeader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("files", "photo.png")
	part.Write(buf.Bytes())
	w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["files"][0]
}

func TestLocalImageStorageSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalImageStorage(dir, "/images/")
	ctx := context.Background()

	url, err := storage.Save(ctx, pngFileHeader(t, 600, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "/images/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("unexpected url %q", url)
	}

	name := filepath.Base(url)
	thumb, err := imaging.Open(filepath.Join(dir, "thumb", name))
	if err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("expected 300x200 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}

	if err := storage.Remove(ctx, url); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatalf("expected original to be removed, got %v", err)
	}
	// foreign urls are ignored
	if err := storage.Remove(ctx, "https://res.cloudinary.com/x/image/upload/v1/a.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLocalImageStorageRejectsNonImages(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("files", "notes.txt")
	part.Write([]byte("not an image"))
	w.Close()
	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}

	if _, err := NewLocalImageStorage(t.TempDir(), "/images").Save(context.Background(), req.MultipartForm.File["files"][0]); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCloudinaryPublicID(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1740564293/properties/abc.jpg": "properties/abc",
		"https://res.cloudinary.com/demo/image/upload/abc.png":                        "abc",
		"/images/abc.jpg": "",
	}
	for url, want := range cases {
		if got := cloudinaryPublicID(url); got != want {
			t.Fatalf("%s: expected %q, got %q", url, want, got)
		}
	}
}
