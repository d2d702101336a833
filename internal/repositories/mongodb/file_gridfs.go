package mongodb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/class-union/union-server/internal/repositories"
)

// FileGridFS is the blob store behind the file relay. Blobs live in a GridFS
// bucket; the content type and upload metadata ride along in the file
// document's metadata field.
type FileGridFS struct {
	bucket *gridfs.Bucket
}

type fileMetadata struct {
	ContentType  string    `bson:"contentType"`
	OriginalName string    `bson:"originalName"`
	Folder       string    `bson:"folder"`
	UploadedAt   time.Time `bson:"uploadedAt"`
}

func NewFileGridFS(db *mongo.Database, bucketName string) (repositories.FileRepository, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to create gridfs bucket: %w", err)
	}
	return &FileGridFS{bucket: bucket}, nil
}

func (f *FileGridFS) Store(ctx context.Context, filename, contentType, originalName, folder string, content io.Reader) (string, error) {
	f.applyDeadline(ctx)

	opts := options.GridFSUpload().SetMetadata(fileMetadata{
		ContentType:  contentType,
		OriginalName: originalName,
		Folder:       folder,
		UploadedAt:   time.Now().UTC(),
	})

	id, err := f.bucket.UploadFromStream(filename, content, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return id.Hex(), nil
}

func (f *FileGridFS) Open(ctx context.Context, id string) (*repositories.FileInfo, io.ReadCloser, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, nil, err
	}

	f.applyDeadline(ctx)

	stream, err := f.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, repositories.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	file := stream.GetFile()
	info := &repositories.FileInfo{
		ID:          id,
		Filename:    file.Name,
		ContentType: "application/octet-stream",
		Length:      file.Length,
		UploadedAt:  file.UploadDate,
	}

	if len(file.Metadata) > 0 {
		var meta fileMetadata
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
			if meta.ContentType != "" {
				info.ContentType = meta.ContentType
			}
			info.OriginalName = meta.OriginalName
			info.Folder = meta.Folder
		}
	}

	return info, stream, nil
}

// Delete removes the blob. Not idempotent: a missing id is ErrNotFound, and
// callers decide whether to swallow that.
func (f *FileGridFS) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	f.applyDeadline(ctx)

	if err := f.bucket.Delete(oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// applyDeadline propagates a context deadline onto the bucket; the v1 gridfs
// API does not accept contexts directly.
func (f *FileGridFS) applyDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = f.bucket.SetReadDeadline(deadline)
		_ = f.bucket.SetWriteDeadline(deadline)
	}
}
