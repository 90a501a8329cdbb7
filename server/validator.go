package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

const apiPrefix = "/api/"

// Fault is a protocol violation. It is returned to the client as plain text
// with Status.
type Fault struct {
	Status  int
	Message string
}

func (f *Fault) Error() string { return f.Message }

func badRequest(format string, args ...any) *Fault {
	return &Fault{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

type knownKey struct {
	canonical string
	optional  bool
}

// Validator enforces Alpaca's exact-case rules on request paths and form
// keys. Keys are looked up by their lowercase form.
type Validator struct {
	strict bool
	keys   map[string]knownKey
	logger *zap.Logger
}

// NewValidator returns a validator knowing only ClientID and
// ClientTransactionID. Route parameters are added with Declare.
func NewValidator(strict bool, logger *zap.Logger) *Validator {
	v := &Validator{strict: strict, keys: make(map[string]knownKey), logger: logger}
	v.declare(keyClientID, true)
	v.declare(keyClientTransactionID, true)
	return v
}

// Declare adds a required key.
func (v *Validator) Declare(key string) { v.declare(key, false) }

func (v *Validator) declare(key string, optional bool) {
	lower := strings.ToLower(key)
	if k, ok := v.keys[lower]; ok && k.optional {
		return
	}
	v.keys[lower] = knownKey{canonical: key, optional: optional}
}

// Check validates r before routing. In strict mode a violation is returned
// as a *Fault and wrong-case optional form keys are rewritten to their
// canonical spelling with the value 0. In lenient mode nothing is rejected
// and API paths are lowercased.
func (v *Validator) Check(r *http.Request) *Fault {
	if !strings.HasPrefix(strings.ToLower(r.URL.Path), apiPrefix) {
		return nil
	}
	if !v.strict {
		r.URL.Path = strings.ToLower(r.URL.Path)
		r.URL.RawPath = ""
		return nil
	}
	if f := v.check(r); f != nil {
		v.logger.Warn("request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.String("reason", f.Message),
		)
		return f
	}
	return nil
}

func (v *Validator) check(r *http.Request) *Fault {
	if strings.IndexFunc(r.URL.Path, unicode.IsUpper) >= 0 {
		return badRequest("URL capitalization error: the path %s must be lowercase", r.URL.Path)
	}

	switch r.Method {
	case http.MethodGet:
		if r.ContentLength > 0 || len(r.TransferEncoding) > 0 {
			return badRequest("GET request for %s carries a form body; GET parameters must be in the query string", r.URL.Path)
		}
		return nil
	case http.MethodPut:
		if r.URL.RawQuery != "" {
			return badRequest("PUT request for %s carries query parameters; PUT parameters must be form encoded", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			return badRequest("form body of %s could not be parsed: %v", r.URL.Path, err)
		}
		return v.checkForm(r.URL.Path, r.PostForm, r.Form)
	}
	return nil
}

// checkForm matches every submitted key against the known-key table. A
// wrong-case optional key is dropped, and reads as 0 unless the canonical
// spelling was also sent.
func (v *Validator) checkForm(path string, post, all url.Values) *Fault {
	for key := range post {
		known, ok := v.keys[strings.ToLower(key)]
		switch {
		case !ok:
			return badRequest("Unknown form key %q in PUT %s", key, path)
		case key == known.canonical:
		case known.optional:
			post.Del(key)
			all.Del(key)
			if !post.Has(known.canonical) {
				post.Set(known.canonical, "0")
				all.Set(known.canonical, "0")
			}
		default:
			return badRequest("Form capitalization error: expected key %q, received %q", known.canonical, key)
		}
	}
	return nil
}
