package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbnailWidth = 300

// ImageStorage persists uploaded property photos and returns their public URL.
type ImageStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, url string) error
}

// LocalImageStorage writes <dir>/<id>.jpg and <dir>/thumb/<id>.jpg and
// serves both under urlPrefix.
type LocalImageStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalImageStorage(dir, urlPrefix string) *LocalImageStorage {
	return &LocalImageStorage{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *LocalImageStorage) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := uuid.NewString() + ".jpg"
	thumbDir := filepath.Join(s.dir, "thumb")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(s.dir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return s.urlPrefix + "/" + fileName, nil
}

func (s *LocalImageStorage) Remove(_ context.Context, url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return nil
	}
	fileName := path.Base(url)
	for _, p := range []string{filepath.Join(s.dir, fileName), filepath.Join(s.dir, "thumb", fileName)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CloudinaryImageStorage uploads to a Cloudinary folder.
type CloudinaryImageStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryImageStorage(cld *cloudinary.Cloudinary, folder string) *CloudinaryImageStorage {
	return &CloudinaryImageStorage{cld: cld, folder: folder}
}

func (s *CloudinaryImageStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Remove derives the public id from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v123/<folder>/<id>.jpg.
func (s *CloudinaryImageStorage) Remove(ctx context.Context, url string) error {
	publicID := cloudinaryPublicID(url)
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

func cloudinaryPublicID(url string) string {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) > 1 && strings.HasPrefix(parts[0], "v") {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}
