package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reflet/internal/imaging"
	"github.com/reflet/internal/storage"
	"github.com/rs/zerolog"
)

const (
	MediaFolderProducts = "products"
	MediaFolderGallery  = "gallery"
	MediaFolderProjects = "projects"
	MediaFolderContent  = "content"

	mediaCacheControl = "3600"
	mediaListLimit    = 200
	thumbsDir         = "thumbs"
)

// MediaFolders lists the folders of the media library.
var MediaFolders = []string{MediaFolderProducts, MediaFolderGallery, MediaFolderProjects, MediaFolderContent}

var ErrInvalidFolder = errors.New("dossier inconnu")

// MediaService stores images through the pipeline into the object store.
type MediaService struct {
	store    storage.Store
	pipeline *imaging.Pipeline
	logger   zerolog.Logger
	now      func() time.Time
}

// MediaUpload is one file to store.
type MediaUpload struct {
	Folder    string
	File      imaging.File
	Body      io.Reader
	Thumbnail bool
	// Optimize lowers the quality step by step until the image fits DefaultTargetSizeKB.
	Optimize bool
}

// MediaAsset describes a stored image.
type MediaAsset struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	Folder       string    `json:"folder"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewMediaService creates a MediaService.
func NewMediaService(store storage.Store, pipeline *imaging.Pipeline, logger zerolog.Logger) *MediaService {
	if pipeline == nil {
		pipeline = imaging.New()
	}
	return &MediaService{store: store, pipeline: pipeline, logger: logger, now: time.Now}
}

// Pipeline returns the image pipeline uploads go through.
func (s *MediaService) Pipeline() *imaging.Pipeline { return s.pipeline }

// NormalizeFolder maps "" to the content folder and rejects unknown folders.
func NormalizeFolder(folder string) (string, error) {
	folder = strings.ToLower(strings.Trim(strings.TrimSpace(folder), "/"))
	if folder == "" {
		return MediaFolderContent, nil
	}
	for _, f := range MediaFolders {
		if f == folder {
			return folder, nil
		}
	}
	return "", ErrInvalidFolder
}

// Upload validates, resizes and stores an image, plus an optional square thumbnail.
func (s *MediaService) Upload(ctx context.Context, in MediaUpload) (*MediaAsset, error) {
	folder, err := NormalizeFolder(in.Folder)
	if err != nil {
		return nil, err
	}
	if err := s.pipeline.Validate(in.File); err != nil {
		return nil, err
	}

	// the source is read once and decoded twice when a thumbnail is requested
	raw, err := io.ReadAll(io.LimitReader(in.Body, s.pipeline.MaxBytes()+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > s.pipeline.MaxBytes() {
		return nil, imaging.ErrTooLarge
	}

	blob, err := s.encode(raw, in.Optimize)
	if err != nil {
		return nil, err
	}

	var thumb imaging.Blob
	if in.Thumbnail {
		thumb, err = s.pipeline.CreateThumbnail(bytes.NewReader(raw), imaging.DefaultThumbnailSize, imaging.DefaultThumbnailQuality)
		if err != nil {
			return nil, err
		}
	}

	name := s.objectName(blob.Format.Extension)
	objectPath := storage.JoinPath(folder, name)
	opts := storage.UploadOptions{ContentType: blob.Format.MediaType, CacheControl: mediaCacheControl}
	if err := s.store.Upload(ctx, objectPath, blob.Reader(), opts); err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectPath, err)
	}

	asset := &MediaAsset{
		Path:      objectPath,
		Name:      name,
		Folder:    folder,
		URL:       s.store.PublicURL(objectPath),
		Width:     blob.Width,
		Height:    blob.Height,
		Size:      int64(blob.Size()),
		CreatedAt: s.now(),
	}

	if in.Thumbnail {
		thumbPath := storage.JoinPath(path.Join(folder, thumbsDir), name)
		thumbOpts := storage.UploadOptions{ContentType: thumb.Format.MediaType, CacheControl: mediaCacheControl}
		if err := s.store.Upload(ctx, thumbPath, thumb.Reader(), thumbOpts); err != nil {
			if rmErr := s.store.Remove(ctx, objectPath); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("path", objectPath).Msg("failed to remove image after thumbnail upload failure")
			}
			return nil, fmt.Errorf("upload %s: %w", thumbPath, err)
		}
		asset.ThumbnailURL = s.store.PublicURL(thumbPath)
	}

	s.logger.Info().Str("path", objectPath).Int("bytes", blob.Size()).Msg("media uploaded")
	return asset, nil
}

func (s *MediaService) encode(raw []byte, optimize bool) (imaging.Blob, error) {
	if optimize {
		res, err := s.pipeline.CompressProgressive(bytes.NewReader(raw), imaging.DefaultTargetSizeKB, imaging.DefaultMinQuality)
		if err != nil {
			return imaging.Blob{}, err
		}
		s.logger.Debug().Float64("quality", res.Quality).Int("attempts", res.Attempts).Msg("image optimized")
		return res.Blob, nil
	}
	return s.pipeline.ResizeAndCompress(bytes.NewReader(raw), imaging.DefaultMaxWidth, imaging.DefaultMaxHeight, imaging.DefaultQuality)
}

// List returns the images of one folder, or of every folder followed by the root
// when folder is empty. Each folder is listed newest first and search filters by
// name without regard to case.
func (s *MediaService) List(ctx context.Context, folder, search string) ([]MediaAsset, error) {
	var folders []string
	if strings.TrimSpace(folder) == "" {
		folders = append(append(folders, MediaFolders...), "")
	} else {
		f, err := NormalizeFolder(folder)
		if err != nil {
			return nil, err
		}
		folders = []string{f}
	}

	search = strings.ToLower(strings.TrimSpace(search))
	assets := make([]MediaAsset, 0)
	for _, f := range folders {
		objects, err := s.store.List(ctx, f, storage.ListOptions{Limit: mediaListLimit, SortBy: storage.SortByCreatedAt, Desc: true})
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", f, err)
		}
		for _, obj := range objects {
			if search != "" && !strings.Contains(strings.ToLower(obj.Name), search) {
				continue
			}
			objectPath := storage.JoinPath(f, obj.Name)
			assets = append(assets, MediaAsset{
				Path:      objectPath,
				Name:      obj.Name,
				Folder:    f,
				URL:       s.store.PublicURL(objectPath),
				Size:      obj.Size,
				CreatedAt: obj.CreatedAt,
			})
		}
	}
	return assets, nil
}

// Remove deletes an object and its thumbnail when one exists.
func (s *MediaService) Remove(ctx context.Context, objectPath string) error {
	cleaned, err := storage.CleanPath(objectPath)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, cleaned); err != nil {
		return err
	}

	dir, name := path.Split(cleaned)
	if dir != "" && path.Base(strings.TrimSuffix(dir, "/")) != thumbsDir {
		thumbPath := storage.JoinPath(path.Join(dir, thumbsDir), name)
		if err := s.store.Remove(ctx, thumbPath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.Warn().Err(err).Str("path", thumbPath).Msg("failed to remove thumbnail")
		}
	}
	return nil
}

func (s *MediaService) objectName(ext string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), random, ext)
}
