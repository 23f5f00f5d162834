package model

import (
	"io"
	"time"
)

// FileInfo describes a stored blob.
type FileInfo struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

type UploadFileParams struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// OpenedFile must be closed by the caller.
type OpenedFile struct {
	Info FileInfo
	Body io.ReadCloser
}
