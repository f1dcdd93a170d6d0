package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"blog-api/internal/httpx"
	"blog-api/internal/observability"

	"github.com/go-chi/chi/v5"
)

const (
	MsgBodyRequired   = "Request body is required"
	MsgMalformedInput = "Malformed input"
)

// MaxBodyBytes caps the body a gate will decode.
const MaxBodyBytes = 1 << 20

type ctxKey Target

// Body validates the request body. JSON and form bodies are accepted; an
// empty body, a JSON null or any other content type counts as absent.
func Body[T any](schema Schema[T]) func(http.Handler) http.Handler {
	return gate(TargetBody, schema, decodeBody)
}

// Query validates the query string. A key given once is a string, a key
// given more than once is a []string.
func Query[T any](schema Schema[T]) func(http.Handler) http.Handler {
	return gate(TargetQuery, schema, func(r *http.Request) (any, *Error) {
		return collapse(r.URL.Query()), nil
	})
}

// Params validates the named chi URL parameters.
func Params[T any](schema Schema[T], names ...string) func(http.Handler) http.Handler {
	return gate(TargetParams, schema, func(r *http.Request) (any, *Error) {
		values := make(map[string]any, len(names))
		for _, name := range names {
			if v := chi.URLParam(r, name); v != "" {
				values[name] = v
			}
		}
		return values, nil
	})
}

// BodyValue returns the value stored by Body.
func BodyValue[T any](r *http.Request) T {
	return value[T](r.Context(), TargetBody)
}

// QueryValue returns the value stored by Query.
func QueryValue[T any](r *http.Request) T {
	return value[T](r.Context(), TargetQuery)
}

// ParamsValue returns the value stored by Params.
func ParamsValue[T any](r *http.Request) T {
	return value[T](r.Context(), TargetParams)
}

func value[T any](ctx context.Context, target Target) T {
	v, _ := ctx.Value(ctxKey(target)).(T)
	return v
}

func gate[T any](target Target, schema Schema[T], decode func(*http.Request) (any, *Error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, verr := decode(r)
			if verr != nil {
				writeError(w, r, verr)
				return
			}

			res := schema(raw)
			if !res.OK() {
				writeError(w, r, NewError(target, res.Issues))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey(target), res.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, e *Error) {
	observability.ValidationFailures.WithLabelValues(string(e.Target)).Inc()
	observability.FromContext(r.Context()).Debug("request rejected",
		"target", e.Target,
		"field", e.Field,
		"message", e.Message,
	)
	httpx.WriteJSON(w, http.StatusBadRequest, e)
}

func decodeBody(r *http.Request) (any, *Error) {
	required := &Error{Message: MsgBodyRequired, Target: TargetBody}
	malformed := &Error{Message: MsgMalformedInput, Target: TargetBody}

	contentType := r.Header.Get("Content-Type")
	if r.Body == nil || r.Body == http.NoBody || contentType == "" {
		return nil, required
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, required
	}

	switch mediaType {
	case "application/json":
		data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
		if err != nil || len(data) > MaxBodyBytes {
			return nil, malformed
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, required
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, malformed
		}
		if v == nil {
			return nil, required
		}
		return v, nil

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, malformed
		}
		if len(r.PostForm) == 0 {
			return nil, required
		}
		return collapse(r.PostForm), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(MaxBodyBytes); err != nil {
			return nil, malformed
		}
		if r.MultipartForm == nil || len(r.MultipartForm.Value) == 0 {
			return nil, required
		}
		return collapse(r.MultipartForm.Value), nil

	default:
		return nil, required
	}
}

func collapse(values map[string][]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			out[k] = vs[0]
		default:
			out[k] = vs
		}
	}
	return out
}
