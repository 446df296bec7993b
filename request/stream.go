package request

import (
	"net/http"
	"net/url"

	"github.com/jonwraymond/opentok/validate"
)

// StreamProperties assigns layout classes to one stream.
type StreamProperties struct {
	ID              string   `json:"id"`
	LayoutClassList []string `json:"layoutClassList"`
}

type streamClassListsBody struct {
	Items []StreamProperties `json:"items"`
}

// Signal is the payload delivered to clients.
type Signal struct {
	Data string `json:"data"`
	Type string `json:"type,omitempty"`
}

func sessionRoot(apiKey int, sessionID string) string {
	return projectRoot(apiKey) + "/session/" + url.PathEscape(sessionID)
}

// GetStream composes a fetch of one stream in a session.
func GetStream(apiKey int, sessionID, streamID string) (Request, error) {
	if err := validate.Stream(sessionID, streamID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodGet, sessionRoot(apiKey, sessionID), "stream", streamID), nil
}

// ListStreams composes a listing of the streams in a session.
func ListStreams(apiKey int, sessionID string) (Request, error) {
	if err := validate.SessionIDPresent(sessionID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodGet, sessionRoot(apiKey, sessionID), "stream"), nil
}

// SetStreamClassLists composes a layout class update for several streams.
func SetStreamClassLists(apiKey int, sessionID string, streams []StreamProperties) (Request, error) {
	if err := validate.SessionIDPresent(sessionID); err != nil {
		return Request{}, err
	}
	items := make([]StreamProperties, 0, len(streams))
	for _, s := range streams {
		if err := validate.Stream(sessionID, s.ID); err != nil {
			return Request{}, err
		}
		if s.LayoutClassList == nil {
			s.LayoutClassList = []string{}
		}
		items = append(items, s)
	}
	return jsonRequest(http.MethodPut, streamClassListsBody{Items: items}, sessionRoot(apiKey, sessionID), "stream"), nil
}

// ForceDisconnect composes the removal of a connection from a session.
func ForceDisconnect(apiKey int, sessionID, connectionID string) (Request, error) {
	if err := validate.ForceDisconnect(sessionID, connectionID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodDelete, sessionRoot(apiKey, sessionID), "connection", connectionID), nil
}

// SendSignal composes a signal to every client in the session, or to one
// connection when connectionID is not empty.
func SendSignal(apiKey int, sessionID, connectionID string, signal Signal) (Request, error) {
	if err := validate.Signal(sessionID, signal.Data); err != nil {
		return Request{}, err
	}
	if connectionID != "" {
		return jsonRequest(http.MethodPost, signal, sessionRoot(apiKey, sessionID), "connection", connectionID, "signal"), nil
	}
	return jsonRequest(http.MethodPost, signal, sessionRoot(apiKey, sessionID), "signal"), nil
}
