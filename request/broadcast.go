package request

import (
	"net/http"
	"time"

	"github.com/jonwraymond/opentok/validate"
)

// RTMPTarget is one RTMP destination of a broadcast.
type RTMPTarget struct {
	ID         string `json:"id,omitempty"`
	ServerURL  string `json:"serverUrl"`
	StreamName string `json:"streamName"`
}

// BroadcastOptions are the optional parameters of StartBroadcast.
type BroadcastOptions struct {
	Layout *Layout

	// MaxDuration bounds the broadcast. Zero leaves the server default.
	MaxDuration time.Duration

	Resolution string

	// HLS defaults to true when nil.
	HLS *bool

	RTMP []RTMPTarget
}

type broadcastOutputs struct {
	HLS  *struct{}    `json:"hls,omitempty"`
	RTMP []RTMPTarget `json:"rtmp,omitempty"`
}

type startBroadcastBody struct {
	SessionID   string           `json:"sessionId"`
	Layout      *Layout          `json:"layout,omitempty"`
	MaxDuration int64            `json:"maxDuration,omitempty"`
	Resolution  string           `json:"resolution,omitempty"`
	Outputs     broadcastOutputs `json:"outputs"`
}

func broadcastRoot(apiKey int) string { return projectRoot(apiKey) + "/broadcast" }

// StartBroadcast composes the start of a live broadcast of sessionID.
func StartBroadcast(apiKey int, sessionID string, opts BroadcastOptions) (Request, error) {
	if err := validate.SessionIDPresent(sessionID); err != nil {
		return Request{}, err
	}
	if opts.Layout != nil {
		if err := opts.Layout.check(); err != nil {
			return Request{}, err
		}
	}
	if opts.MaxDuration != 0 {
		if err := validate.MaxDuration(opts.MaxDuration); err != nil {
			return Request{}, err
		}
	}
	if err := validate.OutputResolution(false, opts.Resolution); err != nil {
		return Request{}, err
	}

	hls := opts.HLS == nil || *opts.HLS
	if err := validate.BroadcastOutputs(hls, len(opts.RTMP)); err != nil {
		return Request{}, err
	}
	for _, t := range opts.RTMP {
		if err := validate.RTMPTarget(t.ServerURL, t.StreamName); err != nil {
			return Request{}, err
		}
	}

	body := startBroadcastBody{
		SessionID:   sessionID,
		Layout:      opts.Layout,
		MaxDuration: int64(opts.MaxDuration / time.Second),
		Resolution:  opts.Resolution,
		Outputs:     broadcastOutputs{RTMP: opts.RTMP},
	}
	if hls {
		body.Outputs.HLS = &struct{}{}
	}
	return jsonRequest(http.MethodPost, body, broadcastRoot(apiKey)), nil
}

// StopBroadcast composes the stop of a live broadcast.
func StopBroadcast(apiKey int, broadcastID string) (Request, error) {
	if err := validate.BroadcastID(broadcastID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodPost, broadcastRoot(apiKey), broadcastID, "stop"), nil
}

// GetBroadcast composes a fetch of one broadcast.
func GetBroadcast(apiKey int, broadcastID string) (Request, error) {
	if err := validate.BroadcastID(broadcastID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodGet, broadcastRoot(apiKey), broadcastID), nil
}

// SetBroadcastLayout composes a layout change of a live broadcast.
func SetBroadcastLayout(apiKey int, broadcastID string, layout Layout) (Request, error) {
	if err := validate.BroadcastID(broadcastID); err != nil {
		return Request{}, err
	}
	if err := layout.check(); err != nil {
		return Request{}, err
	}
	return jsonRequest(http.MethodPut, layout, broadcastRoot(apiKey), broadcastID, "layout"), nil
}
