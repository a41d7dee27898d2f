package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// thumbnailWidth is the width of the derived listing thumbnail.
const thumbnailWidth = 300

// uploadStore writes portfolio images to the uploads directory and derives a
// thumbnail for each.
type uploadStore struct {
	dir    string
	logger zerolog.Logger
}

func newUploadStore(dir string) uploadStore {
	return uploadStore{
		dir:    dir,
		logger: log.With().Str("handlerName", "uploadStore").Logger(),
	}
}

// savedUpload describes a stored image: Name is the on-disk file name, URL
// the serving path.
type savedUpload struct {
	Name string
	URL  string
}

// Save stores the optional image file of a multipart request. Returns
// (nil, nil) when the field is absent so callers can treat the image as
// optional.
func (u uploadStore) Save(r *http.Request, field string) (*savedUpload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, err
	}

	// timestamp prefix keeps concurrent uploads of the same file name apart
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	fullPath := filepath.Join(u.dir, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		return nil, err
	}

	u.makeThumbnail(fullPath, name)

	return &savedUpload{Name: name, URL: "/uploads/" + name}, nil
}

// makeThumbnail derives a fixed-width thumbnail next to the original.
// Failure is logged, never fatal: the original image still serves.
func (u uploadStore) makeThumbnail(fullPath, name string) {
	img, err := imaging.Open(fullPath)
	if err != nil {
		u.logger.Warn().Err(err).Str("file", name).Msg("skipping thumbnail for undecodable image")
		return
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(u.dir, "thumb_"+name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		u.logger.Warn().Err(err).Str("file", name).Msg("saving thumbnail failed")
	}
}
