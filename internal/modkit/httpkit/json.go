package httpkit

import (
	"net/http"

	"shipmate/internal/platform/net/http/bind"
)

// PostJSON mounts a POST handler with strict-decoded, validated JSON input
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, jsonHandler(fn))
}

// PutJSON mounts a PUT handler with strict-decoded, validated JSON input
func PutJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Put(path, jsonHandler(fn))
}

func jsonHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(req *http.Request) Response {
		in, err := bind.JSON[T](req)
		if err != nil {
			return Error(err)
		}
		out, err := fn(req, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
