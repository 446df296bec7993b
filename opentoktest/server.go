package opentoktest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/jonwraymond/opentok/credentials"
	"github.com/jonwraymond/opentok/token"
)

// Response is a canned reply.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

// JSON returns a JSON reply.
func JSON(status int, body string) Response {
	return Response{Status: status, ContentType: "application/json", Body: body}
}

// XML returns an XML reply.
func XML(status int, body string) Response {
	return Response{Status: status, ContentType: "application/xml", Body: body}
}

// Text returns a plain text reply.
func Text(status int, body string) Response {
	return Response{Status: status, ContentType: "text/plain; charset=utf-8", Body: body}
}

// Request is a recorded call.
type Request struct {
	Method string
	// Path is the escaped path without the leading slash.
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
	Claims   *token.ProjectClaims
}

// Target returns Path and RawQuery joined the way a composed request
// renders them.
func (r Request) Target() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

// Server is an httptest server standing in for the platform.
type Server struct {
	URL string

	srv   *httptest.Server
	creds credentials.Credentials

	mu       sync.Mutex
	replies  map[string]Response
	requests []Request
}

// NewServer starts a server that accepts JWTs signed for creds.
func NewServer(creds credentials.Credentials) *Server {
	s := &Server{
		creds:   creds,
		replies: make(map[string]Response),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	s.URL = s.srv.URL
	return s
}

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// Reply registers resp for method and path. Path has no leading slash and
// no query.
func (s *Server) Reply(method, path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[routeKey(method, path)] = resp
}

// Requests returns every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec := Request{
		Method:   r.Method,
		Path:     strings.TrimPrefix(r.URL.EscapedPath(), "/"),
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	}

	claims, err := token.ParseProjectToken(r.Header.Get("X-OPENTOK-AUTH"), s.creds)
	rec.Claims = claims

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	resp, ok := s.replies[routeKey(rec.Method, rec.Path)]
	s.mu.Unlock()

	switch {
	case err != nil:
		resp = errorResponse(http.StatusUnauthorized, "invalid authentication token: "+err.Error())
	case !ok:
		resp = errorResponse(http.StatusNotFound, fmt.Sprintf("no route for %s %s", rec.Method, rec.Path))
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, resp.Body)
}

func errorResponse(status int, msg string) Response {
	body, _ := json.Marshal(struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{status, msg})
	return JSON(status, string(body))
}

func routeKey(method, path string) string {
	return method + " " + strings.TrimPrefix(path, "/")
}
