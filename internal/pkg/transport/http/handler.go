package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/exception"
)

var ErrInvalidBody = exception.New(http.StatusBadRequest, "invalid request body")

// MakeHandlerFunc serves e over HTTP, encoding failures with ErrorResponse.
func MakeHandlerFunc(
	e endpoint.Endpoint,
	dec kithttp.DecodeRequestFunc,
	enc kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	return kithttp.NewServer(e, dec, enc,
		kithttp.ServerErrorEncoder(ErrorResponse),
	).ServeHTTP
}

// DecodeRequest decodes a JSON body into T and runs its Bind hook.
func DecodeRequest[T any, PT interface {
	*T
	render.Binder
}](_ context.Context, r *http.Request) (interface{}, error) {
	req := PT(new(T))

	if err := render.DecodeJSON(r.Body, req); err != nil {
		return nil, ErrInvalidBody.WithCause(err)
	}

	if err := req.Bind(r); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, appErr
		}

		return nil, ErrInvalidBody.WithCause(err)
	}

	return req, nil
}

// NoRequest is the decoder of endpoints that take no input.
func NoRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return struct{}{}, nil
}
