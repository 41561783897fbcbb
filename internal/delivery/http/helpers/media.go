package helpers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"deptevents/internal/domain"
)

// MediaFromDataURI decodes a "data:<type>;base64,<payload>" string into a MediaFile.
// An empty uri yields nil.
func MediaFromDataURI(name, uri string) (*domain.MediaFile, error) {
	if uri == "" {
		return nil, nil
	}
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%s must be a data URI", name)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%s must be a base64 data URI", name)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base64 payload", name)
	}
	return &domain.MediaFile{
		Filename:    name,
		ContentType: strings.TrimSuffix(meta, ";base64"),
		Content:     bytes.NewReader(raw),
	}, nil
}

// FormMedia returns the uploaded file in field, or nil when the field was left empty
// or the form is not multipart.
// The returned close function must be called once the content is consumed.
func FormMedia(r *http.Request, field string) (*domain.MediaFile, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("read %s upload: %w", field, err)
	}
	if header.Size == 0 {
		file.Close()
		return nil, func() {}, nil
	}
	return &domain.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, func() { file.Close() }, nil
}
