package fieldschema

import (
	"context"
	"mime/multipart"
	"path"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// File describes an uploaded file. Records carry it for fields declared
// with [TypeFile].
type File struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// FileFromHeader describes a multipart upload.
func FileFromHeader(h *multipart.FileHeader) File {
	return File{
		Filename:    h.Filename,
		Size:        h.Size,
		ContentType: h.Header.Get("Content-Type"),
	}
}

// Ext returns the lower-cased extension without its dot, or "" when the
// name has none.
func (f File) Ext() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(f.Filename), "."))
}

type fileRule struct {
	extensions []string
	maxSize    int64
}

// newFile binds file(allowed_extensions=[], max_size=0). Empty or zero
// arguments disable the corresponding check.
func newFile(a Args) (Validator, error) {
	if err := a.Expect(2, "allowed_extensions", "max_size"); err != nil {
		return nil, err
	}
	exts, err := a.Strings(0, "allowed_extensions")
	if err != nil {
		return nil, err
	}
	for i := range exts {
		exts[i] = strings.ToLower(strings.TrimPrefix(exts[i], "."))
	}
	maxSize, err := a.Int64(1, "max_size", 0)
	if err != nil {
		return nil, err
	}
	return fileRule{extensions: exts, maxSize: maxSize}, nil
}

func (r fileRule) Validate(_ context.Context, value any, _ *Env) error {
	var f File
	switch v := value.(type) {
	case File:
		f = v
	case *File:
		if v == nil {
			return validation.NewError("validation_file_invalid", "Invalid file.")
		}
		f = *v
	default:
		return validation.NewError("validation_file_invalid", "Invalid file.")
	}
	if len(r.extensions) > 0 && !slices.Contains(r.extensions, f.Ext()) {
		return validation.NewError("validation_file_extension", "Invalid file extension.")
	}
	if r.maxSize > 0 && f.Size > r.maxSize {
		return validation.NewError("validation_file_size", "File size is too large.")
	}
	return nil
}

func (r fileRule) Describe(prop *openapi3.Schema) {
	if len(r.extensions) > 0 {
		appendDescription(prop, "Allowed extensions: "+strings.Join(r.extensions, ", ")+".")
	}
}

