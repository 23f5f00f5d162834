package http

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/simoilconte/Bensine/internal/model"
)

const (
	maxUploadBytes = 20 << 20
	uploadField    = "file"
)

type upload struct {
	file        multipart.File
	name        string
	contentType string
}

func (u *upload) Body() io.Reader { return u.file }

func (u *upload) Close() error { return u.file.Close() }

// readUpload pulls the single "file" part out of a multipart request.
func readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, model.Invalid("malformed upload: %v", err)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, model.Invalid("missing %q part", uploadField)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &upload{file: file, name: header.Filename, contentType: contentType}, nil
}
