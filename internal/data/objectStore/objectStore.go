package objectStore

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// ObjectStore keeps the original uploaded files. Put returns the public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key string, localPath string, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// BuildKey names an object "<courseId>/<unix-ms>-<filename>" with spaces in the filename replaced by dashes.
func BuildKey(courseId, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	name = strings.Join(strings.Fields(name), "-")
	return fmt.Sprintf("%s/%d-%s", courseId, now.UnixMilli(), name)
}

func joinURL(base, key string) string {
	if base == "" {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + key
}
