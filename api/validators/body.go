package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	pkgerrors "github.com/angelmondragon/receipt-processor/pkg/errors"
)

// MaxBodyBytes caps request bodies decoded by DecodeJSONBody.
const MaxBodyBytes = 1 << 20

// DecodeJSONBody decodes a single JSON document into dest. Shape errors
// (bad syntax, wrong JSON types, trailing data, oversize bodies) come back as
// CodeValidation; field rules are left to the domain parser.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return invalidBody(err)
	}
	if decoder.More() {
		return invalidBody(errors.New("body must contain a single JSON object"))
	}
	return nil
}

func invalidBody(err error) *pkgerrors.Error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	detail := err.Error()
	switch {
	case errors.Is(err, io.EOF):
		detail = "body is empty"
	case errors.As(err, &syntaxErr):
		detail = fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		detail = fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &maxErr):
		detail = fmt.Sprintf("body exceeds %d bytes", maxErr.Limit)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "The receipt is invalid.").
		WithDetails(map[string]string{"body": detail})
}
