// Package httpkit provides handler and routing helpers that alias the platform http package.
// Use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "shipmate/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *http.Request) Response) Handler {
	return phttp.Handle(h)
}

// Param returns a URL parameter from the request
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }
