// Adapts typed handler functions to http.Handler.

// Package server implements the HTTP boundary: router, typed handler
// wrapper, and middleware.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	"github.com/partsd/partsd/internal/server/dto"
)

// validator is implemented by request types that check their own fields.
type validator interface {
	Validate() error
}

// Wrap wraps a typed handler function as an http.Handler.
// The function must have signature: func(context.Context, In) (*Out, error)
// where In can be unmarshalled from a JSON body and Out is a struct. Path
// and query parameters are extracted into struct fields tagged `path:"name"`
// and `query:"name"`. If In implements Validate, it runs before the handler.
//
// Example:
//
//	type GetPartRequest struct {
//	    ID string `path:"id"`
//	}
//
//	func (h *PartsHandler) Get(ctx context.Context, req GetPartRequest) (*GetPartResponse, error)
func Wrap[In any, Out any](fn func(context.Context, In) (*Out, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		body, err := io.ReadAll(r.Body)
		if err2 := r.Body.Close(); err == nil {
			err = err2
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to read request body", "err", err)
			writeError(w, dto.BadRequest("Failed to read request body"))
			return
		}
		var input In
		if len(body) > 0 {
			d := json.NewDecoder(bytes.NewReader(body))
			d.DisallowUnknownFields()
			if err := d.Decode(&input); err != nil {
				slog.ErrorContext(ctx, "Failed to decode request body", "err", err)
				writeError(w, dto.BadRequest("Invalid request body"))
				return
			}
		}

		populatePathParams(r, &input)
		populateQueryParams(r, &input)

		if v, ok := any(&input).(validator); ok {
			if err := v.Validate(); err != nil {
				writeHandlerError(ctx, w, err)
				return
			}
		}

		output, err := fn(ctx, input)
		if err != nil {
			writeHandlerError(ctx, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(output); err != nil {
			slog.ErrorContext(ctx, "Failed to encode response", "err", err)
		}
	})
}

// writeHandlerError maps a handler error onto the wire. Unexpected errors
// degrade to a generic 500; their detail stays in the log.
func writeHandlerError(ctx context.Context, w http.ResponseWriter, err error) {
	var apiErr *dto.APIError
	if !errors.As(err, &apiErr) {
		apiErr = dto.Internal("Internal server error")
	}
	slog.ErrorContext(ctx, "Handler error", "err", err, "statusCode", apiErr.StatusCode(), "code", apiErr.Code())
	writeError(w, apiErr)
}

// writeError writes an APIError as the standard JSON error payload.
func writeError(w http.ResponseWriter, apiErr *dto.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode())
	resp := dto.ErrorResponse{Error: dto.ErrorBody{Code: apiErr.Code(), Message: apiErr.Message()}}
	_ = json.NewEncoder(w).Encode(resp)
}

// populatePathParams extracts path parameters from the request and populates
// struct fields tagged with `path:"paramName"`.
func populatePathParams(r *http.Request, input any) {
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Ptr {
		return
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return
	}

	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("path")
		if tag == "" {
			continue
		}
		paramValue := r.PathValue(tag)
		if paramValue == "" {
			continue
		}
		if field.Type.Kind() == reflect.String {
			elem.Field(i).SetString(paramValue)
		}
	}
}

// populateQueryParams extracts query parameters from the request and
// populates struct fields tagged with `query:"paramName"`. Non-numeric
// values for int fields are ignored, leaving the zero value.
func populateQueryParams(r *http.Request, input any) {
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Ptr {
		return
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return
	}

	query := r.URL.Query()
	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("query")
		if tag == "" {
			continue
		}
		paramValue := query.Get(tag)
		if paramValue == "" {
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			elem.Field(i).SetString(paramValue)
		case reflect.Int:
			if intVal, err := strconv.Atoi(paramValue); err == nil {
				elem.Field(i).SetInt(int64(intVal))
			}
		default:
			// Other field kinds are not used by any request type.
		}
	}
}
