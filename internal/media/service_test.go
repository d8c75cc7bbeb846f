package media

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/shoplane-backend/pkg/config"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
)

type fakeObjectStore struct {
	uploads map[string][]byte
	deleted []string
	err     error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploads: map[string][]byte{}}
}

func (f *fakeObjectStore) Upload(_ context.Context, objectName, _ string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads[objectName] = payload
	return "https://storage.googleapis.com/shoplane-media/" + objectName, nil
}

func (f *fakeObjectStore) DeleteObject(_ context.Context, objectName string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, objectName)
	return nil
}

func newTestService(t *testing.T, store ObjectStore) Service {
	t.Helper()
	svc, err := NewService(store, config.MediaConfig{MaxUploadMB: 1})
	require.NoError(t, err)
	return svc
}

func TestUploadStoresUnderFolder(t *testing.T) {
	store := newFakeObjectStore()
	svc := newTestService(t, store)

	result, err := svc.Upload(context.Background(), UploadInput{
		Folder:      FolderProducts,
		Filename:    "chair.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	})
	require.NoError(t, err)

	assert.Regexp(t, `^products/\d+-[0-9a-f]{8}\.png$`, result.ObjectName)
	assert.Contains(t, result.URL, result.ObjectName)
	assert.Len(t, store.uploads, 1)
}

func TestUploadRejectsUnknownFolder(t *testing.T) {
	svc := newTestService(t, newFakeObjectStore())

	_, err := svc.Upload(context.Background(), UploadInput{
		Folder:      Folder("invoices"),
		Filename:    "a.png",
		ContentType: "image/png",
		Data:        []byte("x"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	svc := newTestService(t, newFakeObjectStore())

	_, err := svc.Upload(context.Background(), UploadInput{
		Folder:      FolderAvatars,
		Filename:    "me.jpg",
		ContentType: "image/jpeg",
		Data:        bytes.Repeat([]byte("a"), 1024*1024+1),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUploadRejectsDisallowedContentType(t *testing.T) {
	svc := newTestService(t, newFakeObjectStore())

	_, err := svc.Upload(context.Background(), UploadInput{
		Folder:      FolderShops,
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Data:        []byte("x"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUploadParsesContentTypeParameters(t *testing.T) {
	store := newFakeObjectStore()
	svc := newTestService(t, store)

	_, err := svc.Upload(context.Background(), UploadInput{
		Folder:      FolderCategories,
		Filename:    "logo.webp",
		ContentType: "IMAGE/WEBP; charset=binary",
		Data:        []byte("x"),
	})
	require.NoError(t, err)
}

func TestUploadStoreFailure(t *testing.T) {
	store := newFakeObjectStore()
	store.err = assert.AnError
	svc := newTestService(t, store)

	_, err := svc.Upload(context.Background(), UploadInput{
		Folder:      FolderProducts,
		Filename:    "a.png",
		ContentType: "image/png",
		Data:        []byte("x"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestDeleteChecksObjectName(t *testing.T) {
	store := newFakeObjectStore()
	svc := newTestService(t, store)

	require.NoError(t, svc.Delete(context.Background(), "products/123-abcd1234.png"))
	assert.Equal(t, []string{"products/123-abcd1234.png"}, store.deleted)

	err := svc.Delete(context.Background(), "secrets/key.pem")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	err = svc.Delete(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
