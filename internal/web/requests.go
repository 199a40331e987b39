package web

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/KosherDir/internal/core"
)

// errInvalidRequest prefixes every request decoding or validation failure so
// core.MapError reports it as REQ002.
var errInvalidRequest = errors.New("invalid request")

// errNoFile is returned when an upload form has no file part.
var errNoFile = errors.New("no file provided")

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %v", errInvalidRequest, err)
}

// filterRequest updates one filter field, or replaces the whole state when
// Field is empty.
type filterRequest struct {
	Field   string         `json:"field" validate:"omitempty,max=32"`
	Value   string         `json:"value" validate:"max=200"`
	Filters *filterPayload `json:"filters,omitempty"`
}

// filterPayload is the full filter state as sent by the page form or an API client.
type filterPayload struct {
	City     string `json:"city" validate:"max=200"`
	Type     string `json:"type" validate:"max=200"`
	Activity string `json:"activity" validate:"max=200"`
	Search   string `json:"search" validate:"max=200"`
	Provider string `json:"provider" validate:"max=200"`
	Region   string `json:"region" validate:"max=200"`
	Category string `json:"category" validate:"max=200"`
}

func (p filterPayload) toFilters() core.Filters {
	return core.Filters{
		City:     strings.TrimSpace(p.City),
		Type:     strings.TrimSpace(p.Type),
		Activity: strings.TrimSpace(p.Activity),
		Search:   strings.TrimSpace(p.Search),
		Provider: strings.TrimSpace(p.Provider),
		Region:   strings.TrimSpace(p.Region),
		Category: strings.TrimSpace(p.Category),
	}
}

// payloadFromValues reads filter fields from query or form values. ok is false
// when none of the fields is present.
func payloadFromValues(values url.Values) (p filterPayload, ok bool) {
	for _, field := range core.FilterFields() {
		if values.Has(string(field)) {
			ok = true
			break
		}
	}
	return filterPayload{
		City:     values.Get(string(core.FilterCity)),
		Type:     values.Get(string(core.FilterType)),
		Activity: values.Get(string(core.FilterActivity)),
		Search:   values.Get(string(core.FilterSearch)),
		Provider: values.Get(string(core.FilterProvider)),
		Region:   values.Get(string(core.FilterRegion)),
		Category: values.Get(string(core.FilterCategory)),
	}, ok
}

// loadRequest asks the server to load a new origin.
type loadRequest struct {
	Origin string `json:"origin" validate:"required,max=2048"`
}

// decodeFilterRequest reads a filter update from a JSON or form body.
func (s *Server) decodeFilterRequest(r *http.Request) (filterRequest, error) {
	var req filterRequest
	if isJSONBody(r) {
		if err := decodeJSON(r, &req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, invalidRequest(err)
		}
		req.Field = r.PostForm.Get("field")
		req.Value = r.PostForm.Get("value")
		if req.Field == "" {
			p, _ := payloadFromValues(r.PostForm)
			req.Filters = &p
		}
	}

	if req.Field == "" && req.Filters == nil {
		return req, invalidRequest(errors.New("field or filters is required"))
	}
	if err := s.validateStruct(req); err != nil {
		return req, err
	}
	return req, nil
}

// decodeLoadRequest reads a load request from a JSON or form body.
func (s *Server) decodeLoadRequest(r *http.Request) (loadRequest, error) {
	var req loadRequest
	if isJSONBody(r) {
		if err := decodeJSON(r, &req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, invalidRequest(err)
		}
		req.Origin = r.PostForm.Get("origin")
	}
	req.Origin = strings.TrimSpace(req.Origin)

	if err := s.validateStruct(req); err != nil {
		return req, err
	}
	if err := core.CheckLocalOrigin(req.Origin); err != nil {
		return req, err
	}
	return req, nil
}

// validateStruct runs the struct's validate tags and flattens the failures
// into one invalid-request error.
func (s *Server) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidRequest(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return invalidRequest(errors.New(strings.Join(msgs, ", ")))
}

func isJSONBody(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
