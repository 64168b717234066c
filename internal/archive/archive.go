// Package archive stores normalization runs as JSON objects so raw model
// output can be reviewed against the note that was produced from it.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"fisionote/internal/port"
)

// ObjectArchive writes records to object storage under
// <prefix>/yyyy/mm/dd/<id>.json.
type ObjectArchive struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewObjectArchive creates an archive backed by the given storage.
func NewObjectArchive(storage port.ObjectStorage, bucket, prefix string) *ObjectArchive {
	return &ObjectArchive{storage: storage, bucket: bucket, prefix: prefix}
}

// Key returns the object key for a record.
func (a *ObjectArchive) Key(record *port.ArchiveRecord) string {
	ts := record.CreatedAt.UTC()
	return path.Join(a.prefix, ts.Format("2006"), ts.Format("01"), ts.Format("02"), record.ID.String()+".json")
}

func (a *ObjectArchive) Save(ctx context.Context, record *port.ArchiveRecord) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshaling archive record: %w", err)
	}

	key := a.Key(record)
	if _, err := a.storage.Upload(ctx, port.UploadInput{
		Bucket:      a.bucket,
		Key:         key,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	}); err != nil {
		return "", fmt.Errorf("uploading archive record %s: %w", key, err)
	}
	return key, nil
}

// Nop discards every record. It is used when archiving is disabled.
type Nop struct{}

func (Nop) Save(context.Context, *port.ArchiveRecord) (string, error) { return "", nil }
