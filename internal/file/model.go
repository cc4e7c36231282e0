package file

import (
	"net/http"
	"time"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/apperror"
)

var (
	ErrNotFound   = apperror.New(http.StatusNotFound, "file not found")
	ErrTooLarge   = apperror.New(http.StatusBadRequest, "file exceeds the maximum allowed size")
	ErrNotAnImage = apperror.New(http.StatusBadRequest, "file must be an image")
	ErrEmptyFile  = apperror.New(http.StatusBadRequest, "uploaded file is empty")
)

// File represents an uploaded blob, currently always an owner avatar.
type File struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
