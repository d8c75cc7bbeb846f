// Package media handles binary uploads for product, category, shop,
// avatar, and offer imagery. Objects land in Cloud Storage under an
// entity folder and are served from their public URLs.
package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/shoplane/shoplane-backend/pkg/config"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/storage/gcs"
)

// ObjectStore is the storage surface the service uploads through.
type ObjectStore interface {
	Upload(ctx context.Context, objectName, contentType string, payload []byte) (string, error)
	DeleteObject(ctx context.Context, objectName string) error
}

// UploadInput carries one upload request.
type UploadInput struct {
	Folder      Folder
	Filename    string
	ContentType string
	Data        []byte
}

// UploadResult points at the stored object.
type UploadResult struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

// Service stores and removes media objects.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, objectName string) error
}

type service struct {
	store    ObjectStore
	maxBytes int
}

// NewService wires the media service against an object store.
func NewService(store ObjectStore, cfg config.MediaConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "object store required")
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "max upload size must be positive")
	}
	return &service{store: store, maxBytes: cfg.MaxUploadMB * 1024 * 1024}, nil
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if !ValidFolder(input.Folder) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown upload folder, expected one of %s", strings.Join(Folders(), ", ")))
	}
	if len(input.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upload payload is empty")
	}
	if len(input.Data) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("upload exceeds the %d MB limit", s.maxBytes/(1024*1024)))
	}
	mediaType, err := sniffMimeType(input.ContentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse content type")
	}
	if !allowedForFolder(input.Folder, mediaType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("content type %s is not allowed for %s uploads", mediaType, input.Folder))
	}

	objectName := gcs.ObjectPath(string(input.Folder), input.Filename)
	url, err := s.store.Upload(ctx, objectName, mediaType, input.Data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload media object")
	}
	return &UploadResult{ObjectName: objectName, URL: url}, nil
}

func (s *service) Delete(ctx context.Context, objectName string) error {
	name := strings.TrimSpace(objectName)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "object name required")
	}
	folder, _, found := strings.Cut(name, "/")
	if !found || !ValidFolder(Folder(folder)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "object name is outside the media folders")
	}
	if err := s.store.DeleteObject(ctx, name); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete media object")
	}
	return nil
}
