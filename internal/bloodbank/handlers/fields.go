package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// Fields is a submitted body as a lookup of named optional keys. Absent keys
// read as nil.
type Fields map[string]any

// Get returns the value for name as received, or nil when it is absent.
// JSON numbers come back as their literal text.
func (f Fields) Get(name string) any {
	v, ok := f[name]
	if !ok {
		return nil
	}
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return v
}

// errMalformedBody is returned for a JSON body that is not a single object, or
// any body over maxBodyBytes.
var errMalformedBody = errors.New("malformed request body")

// readFields decodes a JSON object body, or the form body for any other
// content type. A JSON null reads as no fields, like an empty form.
func readFields(r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		return readJSONFields(r.Body)
	}

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		log.Debugf("unreadable form body: %v", err)
		return Fields{}, nil
	}

	f := Fields{}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			f[k] = v[0]
		}
	}
	return f, nil
}

func readJSONFields(body io.Reader) (Fields, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", errMalformedBody)
	}
	if m == nil {
		return Fields{}, nil
	}
	return Fields(m), nil
}
