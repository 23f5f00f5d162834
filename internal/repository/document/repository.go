package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/simoilconte/Bensine/internal/model"
)

const metaContentType = "contentType"

type repository struct {
	bucket *mongo.GridFSBucket
}

// NewDocumentRepository stores blobs in the named GridFS bucket of db.
func NewDocumentRepository(db *mongo.Database, bucket string) *repository {
	return &repository{
		bucket: db.GridFSBucket(options.GridFSBucket().SetName(bucket)),
	}
}

func (r *repository) Upload(ctx context.Context, p model.UploadFileParams) (*model.FileInfo, error) {
	const op = "document.repository.Upload"

	id, err := r.bucket.UploadFromStream(ctx, p.Name, p.Body,
		options.GridFSUpload().SetMetadata(bson.D{{Key: metaContentType, Value: p.ContentType}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stream, err := r.bucket.OpenDownloadStream(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s stat: %w", op, err)
	}
	defer stream.Close()

	info := fileInfo(stream.GetFile())
	return &info, nil
}

// Open returns the blob with its metadata. The caller closes Body.
func (r *repository) Open(ctx context.Context, fileID string) (*model.OpenedFile, error) {
	const op = "document.repository.Open"

	oid, err := bson.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, model.ErrDocumentNotFound
	}

	stream, err := r.bucket.OpenDownloadStream(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return nil, model.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.OpenedFile{Info: fileInfo(stream.GetFile()), Body: stream}, nil
}

func (r *repository) Delete(ctx context.Context, fileID string) error {
	const op = "document.repository.Delete"

	oid, err := bson.ObjectIDFromHex(fileID)
	if err != nil {
		return model.ErrDocumentNotFound
	}

	if err := r.bucket.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return model.ErrDocumentNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func fileInfo(f *mongo.GridFSFile) model.FileInfo {
	info := model.FileInfo{
		Name:       f.Name,
		Size:       f.Length,
		UploadedAt: f.UploadDate,
	}

	if oid, ok := f.ID.(bson.ObjectID); ok {
		info.ID = oid.Hex()
	} else {
		info.ID = fmt.Sprint(f.ID)
	}

	if ct, ok := f.Metadata.Lookup(metaContentType).StringValueOK(); ok {
		info.ContentType = ct
	}

	return info
}
