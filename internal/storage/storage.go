// Package storage puts uploaded report files into an object store and
// removes them again by handle.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore stores file bytes and returns a public URL plus the handle
// needed to delete the object later.
type ObjectStore interface {
	Put(ctx context.Context, data []byte, opts PutOptions) (*Object, error)
	Delete(ctx context.Context, handle string) error
}

type PutOptions struct {
	Folder      string
	FileName    string
	ContentType string
}

type Object struct {
	URL    string
	Handle string
}

var now = time.Now

// ObjectKey builds folder/yyyy/mm/dd/<uuid><ext>. The extension comes from
// the original file name, falling back to the content type.
func ObjectKey(folder, fileName, contentType string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" && contentType != "" {
		if m := mimetype.Lookup(contentType); m != nil {
			ext = m.Extension()
		}
	}

	d := now().UTC()
	key := fmt.Sprintf("%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}
	return key
}
