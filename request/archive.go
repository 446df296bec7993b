package request

import (
	"net/http"
	"strconv"

	"github.com/jonwraymond/opentok/session"
	"github.com/jonwraymond/opentok/validate"
)

// OutputMode selects whether an archive is one composed file or one file
// per stream.
type OutputMode string

const (
	OutputComposed   OutputMode = "composed"
	OutputIndividual OutputMode = "individual"
)

// Bool returns a pointer to v, for optional boolean fields.
func Bool(v bool) *bool { return &v }

// ArchiveOptions are the optional parameters of StartArchive.
type ArchiveOptions struct {
	Name string

	// HasVideo and HasAudio default to true when nil.
	HasVideo *bool
	HasAudio *bool

	// OutputMode defaults to OutputComposed on the server.
	OutputMode OutputMode

	// Resolution is only valid for composed output.
	Resolution string

	// Layout applies to composed output.
	Layout *Layout
}

type startArchiveBody struct {
	SessionID  string     `json:"sessionId"`
	Name       string     `json:"name,omitempty"`
	HasVideo   bool       `json:"hasVideo"`
	HasAudio   bool       `json:"hasAudio"`
	OutputMode OutputMode `json:"outputMode,omitempty"`
	Resolution string     `json:"resolution,omitempty"`
	Layout     *Layout    `json:"layout,omitempty"`
}

// ArchiveQuery filters ListArchives. Count 0 means the server default.
type ArchiveQuery struct {
	Offset    int
	Count     int
	SessionID string
}

func archiveRoot(apiKey int) string { return projectRoot(apiKey) + "/archive" }

// GetArchive composes a fetch of one archive.
func GetArchive(apiKey int, archiveID string) (Request, error) {
	if err := validate.ArchiveID(archiveID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodGet, archiveRoot(apiKey), archiveID), nil
}

// ListArchives composes an archive listing. offset is always sent; count
// only when positive; sessionId only when given.
func ListArchives(apiKey int, q ArchiveQuery) (Request, error) {
	if err := validate.ArchivePaging(q.Offset, q.Count); err != nil {
		return Request{}, err
	}
	if q.SessionID != "" {
		if _, err := session.ParseID(q.SessionID); err != nil {
			return Request{}, err
		}
	}
	r := newRequest(http.MethodGet, archiveRoot(apiKey))
	r.Query = append(r.Query, Param{Key: "offset", Value: strconv.Itoa(q.Offset)})
	if q.Count > 0 {
		r.Query = append(r.Query, Param{Key: "count", Value: strconv.Itoa(q.Count)})
	}
	if q.SessionID != "" {
		r.Query = append(r.Query, Param{Key: "sessionId", Value: q.SessionID})
	}
	return r, nil
}

// StartArchive composes the start of a recording of sessionID.
func StartArchive(apiKey int, sessionID string, opts ArchiveOptions) (Request, error) {
	if err := validate.SessionIDPresent(sessionID); err != nil {
		return Request{}, err
	}
	if opts.OutputMode != "" && opts.OutputMode != OutputComposed && opts.OutputMode != OutputIndividual {
		return Request{}, &validate.ArgumentError{Field: "outputMode", Message: "Unknown output mode: " + string(opts.OutputMode)}
	}
	if err := validate.OutputResolution(opts.OutputMode == OutputIndividual, opts.Resolution); err != nil {
		return Request{}, err
	}
	if opts.Layout != nil {
		if err := opts.Layout.check(); err != nil {
			return Request{}, err
		}
	}

	body := startArchiveBody{
		SessionID:  sessionID,
		Name:       opts.Name,
		HasVideo:   opts.HasVideo == nil || *opts.HasVideo,
		HasAudio:   opts.HasAudio == nil || *opts.HasAudio,
		OutputMode: opts.OutputMode,
		Resolution: opts.Resolution,
		Layout:     opts.Layout,
	}
	return jsonRequest(http.MethodPost, body, archiveRoot(apiKey)), nil
}

// StopArchive composes the stop of a running archive.
func StopArchive(apiKey int, archiveID string) (Request, error) {
	if err := validate.ArchiveID(archiveID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodPost, archiveRoot(apiKey), archiveID, "stop"), nil
}

// DeleteArchive composes the deletion of a stored archive.
func DeleteArchive(apiKey int, archiveID string) (Request, error) {
	if err := validate.ArchiveID(archiveID); err != nil {
		return Request{}, err
	}
	return newRequest(http.MethodDelete, archiveRoot(apiKey), archiveID), nil
}

// SetArchiveLayout composes a layout change of a running composed archive.
func SetArchiveLayout(apiKey int, archiveID string, layout Layout) (Request, error) {
	if err := validate.ArchiveID(archiveID); err != nil {
		return Request{}, err
	}
	if err := layout.check(); err != nil {
		return Request{}, err
	}
	return jsonRequest(http.MethodPut, layout, archiveRoot(apiKey), archiveID, "layout"), nil
}
