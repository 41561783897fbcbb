package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// MaxJSONBody bounds API request bodies. Media travels inline as data URIs,
// so this is sized for a video rather than a form.
const MaxJSONBody = 64 << 20

// Validator is implemented by request DTOs that check themselves after decoding.
// An empty result means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes a JSON body into dest, rejecting unknown fields, then
// runs dest's Validate if it has one. On failure it has already written the error
// response and the caller must return.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "missing request body")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		writeDecodeError(w, err)
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		WriteJSONError(w, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
	case errors.Is(err, io.EOF):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "missing request body")
	default:
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	}
}
