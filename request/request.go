package request

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Header names and media types used by composed requests.
const (
	HeaderContentType = "Content-type"
	MediaTypeJSON     = "application/json"
	MediaTypeForm     = "application/x-www-form-urlencoded"
)

// Param is one query parameter. Order is preserved on the wire.
type Param struct {
	Key   string
	Value string
}

// Request is a composed API call.
type Request struct {
	Method  string
	Path    string
	Query   []Param
	Headers map[string]string

	// Body is serialized as JSON. Nil means no body.
	Body any

	// Form is sent url-encoded instead of Body when non-nil.
	Form url.Values
}

// HasBody reports whether the request carries a payload.
func (r Request) HasBody() bool { return r.Body != nil || r.Form != nil }

// Target returns the path followed by the encoded query, in order.
func (r Request) Target() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	var sb strings.Builder
	sb.WriteString(r.Path)
	for i, p := range r.Query {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// EncodeBody returns the serialized payload, or nil when there is none.
func (r Request) EncodeBody() ([]byte, error) {
	switch {
	case r.Form != nil:
		return []byte(r.Form.Encode()), nil
	case r.Body != nil:
		return json.Marshal(r.Body)
	default:
		return nil, nil
	}
}

func newRequest(method, root string, segments ...string) Request {
	return Request{
		Method:  method,
		Path:    joinPath(root, segments...),
		Headers: map[string]string{},
	}
}

func jsonRequest(method string, body any, root string, segments ...string) Request {
	r := newRequest(method, root, segments...)
	r.Body = body
	r.Headers[HeaderContentType] = MediaTypeJSON
	return r
}

func formRequest(method string, form url.Values, root string, segments ...string) Request {
	r := newRequest(method, root, segments...)
	r.Form = form
	r.Headers[HeaderContentType] = MediaTypeForm
	return r
}

// joinPath appends path-escaped identifier segments to a literal root.
func joinPath(root string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(root)
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}

// projectRoot is the path prefix of every project-scoped resource.
func projectRoot(apiKey int) string {
	return "v2/project/" + strconv.Itoa(apiKey)
}
