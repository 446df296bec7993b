package client

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elnormous/contenttype"

	"github.com/jonwraymond/opentok/observe"
	"github.com/jonwraymond/opentok/request"
	"github.com/jonwraymond/opentok/tlsguard"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// call names one client operation for telemetry.
type call struct {
	operation string
	resource  string
}

// send executes req and decodes a successful response into out. A nil out
// discards the body, whatever its content type.
func (c *Client) send(ctx context.Context, op call, req request.Request, out any) error {
	meta := observe.CallMeta{
		Operation: op.operation,
		Resource:  op.resource,
		Method:    req.Method,
		Path:      req.Path,
		ProjectID: c.creds.APIKey(),
	}

	wrapped := c.mw.Wrap(func(ctx context.Context, _ observe.CallMeta) (int, error) {
		var status int
		err := c.policy.Do(ctx, func(ctx context.Context) error {
			var err error
			status, err = c.roundTrip(ctx, req, out)
			return err
		})
		return status, tlsguard.Reclassify(err, c.tlsState)
	})

	_, err := wrapped(ctx, meta)
	return err
}

func (c *Client) roundTrip(ctx context.Context, req request.Request, out any) (int, error) {
	payload, err := req.EncodeBody()
	if err != nil {
		return 0, fmt.Errorf("client: encode %s body: %w", req.Path, err)
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+"/"+req.Target(), body)
	if err != nil {
		return 0, fmt.Errorf("client: build request: %w", err)
	}

	jwt, err := c.signer.Token(ctx)
	if err != nil {
		return 0, fmt.Errorf("client: sign request: %w", err)
	}
	httpReq.Header.Set(HeaderAuth, jwt)
	httpReq.Header.Set("User-Agent", "opentok-go/"+Version)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, decodeAPIError(resp, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, decodeBody(resp.Header.Get("Content-Type"), data, out)
}

type bodyFormat int

const (
	formatUnknown bodyFormat = iota
	formatJSON
	formatXML
)

// formatOf picks the body codec from the media type, sniffing the first
// byte when the header is absent.
func formatOf(header string, data []byte) bodyFormat {
	if strings.TrimSpace(header) == "" {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '<' {
			return formatXML
		}
		return formatJSON
	}
	mt, err := contenttype.ParseMediaType(header)
	if err != nil {
		return formatUnknown
	}
	switch {
	case mt.Subtype == "json" || strings.HasSuffix(mt.Subtype, "+json"):
		return formatJSON
	case mt.Subtype == "xml" || strings.HasSuffix(mt.Subtype, "+xml"):
		return formatXML
	}
	return formatUnknown
}

func decodeBody(header string, data []byte, out any) error {
	var err error
	switch formatOf(header, data) {
	case formatJSON:
		err = json.Unmarshal(data, out)
	case formatXML:
		err = xml.Unmarshal(data, out)
	default:
		return fmt.Errorf("%w: %q", ErrUnexpectedContentType, header)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response, data []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if formatOf(resp.Header.Get("Content-Type"), data) == formatJSON {
		_ = json.Unmarshal(data, apiErr)
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
		if len(apiErr.Message) > 256 {
			apiErr.Message = apiErr.Message[:256]
		}
	}
	return apiErr
}
