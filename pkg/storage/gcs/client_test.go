package gcs

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newStubClient(fn roundTripFunc) *Client {
	return &Client{
		httpClient:    &http.Client{Transport: fn},
		defaultBucket: "shoplane-media",
		tokenSource: &tokenSource{
			token:  "stub-token",
			expiry: time.Now().Add(time.Hour),
			fetch: func(context.Context) (string, time.Time, error) {
				return "stub-token", time.Now().Add(time.Hour), nil
			},
		},
	}
}

func TestObjectPathConvention(t *testing.T) {
	name := ObjectPath("products", "photo.PNG")
	pattern := regexp.MustCompile(`^products/\d+-[0-9a-f]{8}\.PNG$`)
	if !pattern.MatchString(name) {
		t.Fatalf("object path %q does not match convention", name)
	}

	fallback := ObjectPath("avatars", "noext")
	if !strings.HasSuffix(fallback, ".bin") {
		t.Fatalf("expected .bin fallback extension, got %q", fallback)
	}
}

func TestUploadSuccess(t *testing.T) {
	var gotAuth, gotURL string
	client := newStubClient(func(req *http.Request) (*http.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		gotURL = req.URL.String()
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	publicURL, err := client.Upload(context.Background(), "products/1-abc.png", "image/png", []byte("data"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if gotAuth != "Bearer stub-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if !strings.Contains(gotURL, "uploadType=media") {
		t.Fatalf("unexpected upload url %q", gotURL)
	}
	want := "https://storage.googleapis.com/shoplane-media/products/1-abc.png"
	if publicURL != want {
		t.Fatalf("unexpected public url %q", publicURL)
	}
}

func TestUploadServerError(t *testing.T) {
	client := newStubClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusForbidden, Status: "403 Forbidden", Body: http.NoBody}, nil
	})

	if _, err := client.Upload(context.Background(), "avatars/1-abc.png", "image/png", nil); err == nil {
		t.Fatal("expected upload error on 403")
	}
}

func TestDeleteObjectSuccess(t *testing.T) {
	client := newStubClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodDelete {
			t.Fatalf("unexpected method %s", req.Method)
		}
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody}, nil
	})

	if err := client.DeleteObject(context.Background(), "products/1-abc.png"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestDeleteObjectNotFound(t *testing.T) {
	client := newStubClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found", Body: http.NoBody}, nil
	})

	if err := client.DeleteObject(context.Background(), "products/missing.png"); err != nil {
		t.Fatalf("missing object should not error, got %v", err)
	}
}
