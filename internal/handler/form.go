package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mehendichic/mehendi-chic/internal/service"
)

// maxFormMemory bounds the in-memory part of multipart parsing. Oversized
// uploads still parse (spilling to disk) so the image service can reject
// them with its descriptive size error instead of an opaque parse failure.
const maxFormMemory = 32 << 20

// formImageFile extracts the optional "image" part of a multipart form.
// It returns (nil, nil) when no file was attached.
func formImageFile(r *http.Request) (*service.ImageFile, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read image part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	// Prefer the declared type; fall back to sniffing the bytes.
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &service.ImageFile{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
