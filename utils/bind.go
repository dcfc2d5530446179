package utils

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/2HgO/subscriber-requests-go/errors"
	"github.com/2HgO/subscriber-requests-go/types/requests"
	"github.com/gorilla/schema"
)

const maxBodyBytes = 1 << 20

type BodyKind int

const (
	UnsupportedBody BodyKind = iota
	JSONBody
	FormBody
)

// ClassifyBody reports how the body of r is decoded. A request without a
// Content-Type is read as JSON.
func ClassifyBody(r *http.Request) BodyKind {
	contentType := r.Header.Get("Content-Type")
	if strings.TrimSpace(contentType) == "" {
		return JSONBody
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return UnsupportedBody
	}
	switch {
	case mediaType == "application/json",
		strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"):
		return JSONBody
	case mediaType == "application/x-www-form-urlencoded":
		return FormBody
	default:
		return UnsupportedBody
	}
}

var formBinder = schema.NewDecoder()

func init() {
	formBinder.IgnoreUnknownKeys(true)
}

// Bind reads a JSON or form-encoded create request from the body of r.
func Bind(w http.ResponseWriter, r *http.Request, req *requests.CreateSubscriberRequest) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	switch ClassifyBody(r) {
	case FormBody:
		return bindForm(r, req)
	case UnsupportedBody:
		return errors.NewUnsupportedMediaTypeError(r.Header.Get("Content-Type"))
	}

	bodyData, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.HandleBindError(err)
	}
	if len(bodyData) == 0 {
		return errors.HandleBindError(io.EOF)
	}
	if err = json.Unmarshal(bodyData, req); err != nil {
		return errors.HandleBindError(err)
	}
	if *req == nil {
		return errors.NewValidationError("request body must be a JSON object")
	}

	req.ResolveAliases()
	return nil
}

func bindForm(r *http.Request, req *requests.CreateSubscriberRequest) error {
	if err := r.ParseForm(); err != nil {
		return errors.HandleBindError(err)
	}
	if len(r.PostForm) == 0 {
		return errors.HandleBindError(io.EOF)
	}

	form := new(requests.CreateSubscriberForm)
	if err := formBinder.Decode(form, r.PostForm); err != nil {
		return errors.HandleBindError(err)
	}

	data, err := form.Request()
	if err != nil {
		return errors.HandleBindError(err)
	}
	*req = data
	return nil
}
