package media

import (
	"fmt"
	"mime"
	"sort"
	"strings"
)

// Folder names media uploads by the entity they belong to. The folder
// becomes the object's path prefix in the bucket.
type Folder string

const (
	FolderProducts   Folder = "products"
	FolderCategories Folder = "categories"
	FolderShops      Folder = "shops"
	FolderAvatars    Folder = "avatars"
	FolderOffers     Folder = "offers"
)

var imageTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

var allowedTypesByFolder = map[Folder][]string{
	FolderProducts:   imageTypes,
	FolderCategories: imageTypes,
	FolderShops:      imageTypes,
	FolderAvatars:    imageTypes,
	FolderOffers:     imageTypes,
}

// ValidFolder reports whether the folder is a known upload target.
func ValidFolder(folder Folder) bool {
	_, ok := allowedTypesByFolder[folder]
	return ok
}

// Folders lists the known upload folders, sorted.
func Folders() []string {
	out := make([]string, 0, len(allowedTypesByFolder))
	for folder := range allowedTypesByFolder {
		out = append(out, string(folder))
	}
	sort.Strings(out)
	return out
}

func sniffMimeType(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("content type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("content type invalid: %w", err)
	}
	return strings.ToLower(mediaType), nil
}

func allowedForFolder(folder Folder, mediaType string) bool {
	for _, allowed := range allowedTypesByFolder[folder] {
		if allowed == mediaType {
			return true
		}
	}
	return false
}
