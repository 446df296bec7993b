package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/opentok/request"
)

// ArchiveStatus is the lifecycle position of an archive.
type ArchiveStatus string

// Archive statuses reported by the platform.
const (
	ArchiveAvailable ArchiveStatus = "available"
	ArchiveExpired   ArchiveStatus = "expired"
	ArchiveFailed    ArchiveStatus = "failed"
	ArchivePaused    ArchiveStatus = "paused"
	ArchiveStarted   ArchiveStatus = "started"
	ArchiveStopped   ArchiveStatus = "stopped"
	ArchiveUploaded  ArchiveStatus = "uploaded"
	ArchiveDeleted   ArchiveStatus = "deleted"
)

// Archive is a recording of a session.
type Archive struct {
	// CreatedAt is in milliseconds since the Unix epoch.
	CreatedAt int64 `json:"createdAt"`
	// Duration is in seconds.
	Duration   int                `json:"duration"`
	HasAudio   bool               `json:"hasAudio"`
	HasVideo   bool               `json:"hasVideo"`
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	OutputMode request.OutputMode `json:"outputMode"`
	PartnerID  int                `json:"partnerId"`
	Reason     string             `json:"reason"`
	Resolution string             `json:"resolution"`
	SessionID  string             `json:"sessionId"`
	// Size is in bytes.
	Size   int64         `json:"size"`
	Status ArchiveStatus `json:"status"`
	URL    string        `json:"url"`
}

// Created returns CreatedAt as a time.
func (a Archive) Created() time.Time { return time.UnixMilli(a.CreatedAt) }

// Length returns Duration as a time.Duration.
func (a Archive) Length() time.Duration { return time.Duration(a.Duration) * time.Second }

// ArchiveList is one page of archives. Count is the total across all pages.
type ArchiveList struct {
	Count int       `json:"count"`
	Items []Archive `json:"items"`
}

// BroadcastStatus is the lifecycle position of a broadcast.
type BroadcastStatus string

// Broadcast statuses reported by the platform.
const (
	BroadcastStarted BroadcastStatus = "started"
	BroadcastStopped BroadcastStatus = "stopped"
)

// RTMPStream is one RTMP output of a running broadcast.
type RTMPStream struct {
	ID         string `json:"id"`
	ServerURL  string `json:"serverUrl"`
	StreamName string `json:"streamName"`
	Status     string `json:"status"`
}

// BroadcastURLs are the playback endpoints of a broadcast.
type BroadcastURLs struct {
	HLS  string       `json:"hls"`
	RTMP []RTMPStream `json:"rtmp"`
}

// Broadcast is a live stream of a session.
type Broadcast struct {
	ID         uuid.UUID       `json:"id"`
	SessionID  string          `json:"sessionId"`
	ProjectID  int             `json:"projectId"`
	CreatedAt  int64           `json:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt"`
	Resolution string          `json:"resolution"`
	Status     BroadcastStatus `json:"status"`
	URLs       BroadcastURLs   `json:"broadcastUrls"`
}

// HLS returns the HLS playlist URL, or "" when HLS is off.
func (b Broadcast) HLS() string { return b.URLs.HLS }

// RTMP returns the RTMP outputs.
func (b Broadcast) RTMP() []RTMPStream { return b.URLs.RTMP }

// Stream is a published stream in a session.
type Stream struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	VideoType       string   `json:"videoType"`
	LayoutClassList []string `json:"layoutClassList"`
}

// StreamList is every stream in a session.
type StreamList struct {
	Count int      `json:"count"`
	Items []Stream `json:"items"`
}

// sessionsXML is the create-session response document.
type sessionsXML struct {
	Sessions []struct {
		ID        string `xml:"session_id"`
		PartnerID int    `xml:"partner_id"`
		CreateDT  string `xml:"create_dt"`
	} `xml:"Session"`
}
