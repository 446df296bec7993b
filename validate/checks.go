package validate

import (
	"net/netip"
	"strings"
	"time"
)

// Limits shared by the token and request builders.
const (
	// MaxConnectionDataBytes is the largest connection data a token may carry.
	MaxConnectionDataBytes = 1000

	// MaxTokenLifetime is the furthest in the future a token may expire,
	// measured from its creation time.
	MaxTokenLifetime = 30 * 24 * time.Hour

	// MinBroadcastDuration and MaxBroadcastDuration bound maxDuration.
	MinBroadcastDuration = 60 * time.Second
	MaxBroadcastDuration = 36000 * time.Second

	// MaxRTMPTargets is the most RTMP outputs a single broadcast may have.
	MaxRTMPTargets = 5
)

var validResolutions = map[string]bool{
	"640x480":   true,
	"480x640":   true,
	"1280x720":  true,
	"720x1280":  true,
	"1920x1080": true,
	"1080x1920": true,
}

// Credentials checks an api key / secret pair.
func Credentials(apiKey int, apiSecret string) error {
	if apiKey < 1 || apiSecret == "" {
		return argErr("credentials", MsgInvalidCredentials)
	}
	return nil
}

// MediaForArchive rejects always-archived sessions that relay media
// peer-to-peer: archiving needs routed media.
func MediaForArchive(archiveAlways, mediaRouted bool) error {
	if archiveAlways && !mediaRouted {
		return argErr("archiveMode", MsgAlwaysArchiveRelayed)
	}
	return nil
}

// Location accepts an empty location or an IPv4 literal.
func Location(location string) error {
	if location == "" {
		return nil
	}
	addr, err := netip.ParseAddr(location)
	if err != nil || !addr.Is4() {
		return argErr("location", MsgInvalidLocation+location)
	}
	return nil
}

// ArchivePaging checks list-archive paging.
func ArchivePaging(offset, count int) error {
	if offset < 0 {
		return argErr("offset", MsgOffsetNegative)
	}
	if count < 0 {
		return argErr("count", MsgCountNegative)
	}
	return nil
}

// Layout enforces that a stylesheet is present if and only if the layout is
// custom.
func Layout(custom bool, stylesheet string) error {
	if custom != (stylesheet != "") {
		return argErr("layout", MsgLayoutStylesheet)
	}
	return nil
}

// OutputResolution rejects a resolution on individual-stream output and
// unknown resolution strings.
func OutputResolution(individual bool, resolution string) error {
	if resolution == "" {
		return nil
	}
	if individual {
		return argErr("resolution", MsgResolutionIndividual)
	}
	if !validResolutions[resolution] {
		return argErr("resolution", MsgInvalidResolution+resolution)
	}
	return nil
}

// ConnectionData bounds the connection data embedded in a token.
func ConnectionData(data string) error {
	if len(data) > MaxConnectionDataBytes {
		return argErr("data", MsgConnectionDataTooLong)
	}
	return nil
}

// ExpireTime requires create < expire < create+MaxTokenLifetime, all in Unix
// seconds.
func ExpireTime(createTime, expireTime int64) error {
	limit := createTime + int64(MaxTokenLifetime/time.Second)
	if expireTime <= createTime || expireTime >= limit {
		return argErr("expireTime", MsgExpireTimeRange)
	}
	return nil
}

// ForceDisconnect requires both identifiers.
func ForceDisconnect(sessionID, connectionID string) error {
	if err := SessionIDPresent(sessionID); err != nil {
		return err
	}
	if strings.TrimSpace(connectionID) == "" {
		return argErr("connectionId", MsgConnectionIDEmpty)
	}
	return nil
}

// Signal requires a target session and signal data.
func Signal(sessionID, data string) error {
	if err := SessionIDPresent(sessionID); err != nil {
		return err
	}
	if data == "" {
		return argErr("data", MsgSignalDataEmpty)
	}
	return nil
}

// Stream requires both identifiers.
func Stream(sessionID, streamID string) error {
	if err := SessionIDPresent(sessionID); err != nil {
		return err
	}
	if strings.TrimSpace(streamID) == "" {
		return argErr("streamId", MsgStreamIDEmpty)
	}
	return nil
}

// ArchiveID requires a non-empty archive identifier.
func ArchiveID(id string) error {
	if strings.TrimSpace(id) == "" {
		return argErr("archiveId", MsgArchiveIDEmpty)
	}
	return nil
}

// BroadcastID requires a non-empty broadcast identifier.
func BroadcastID(id string) error {
	if strings.TrimSpace(id) == "" {
		return argErr("broadcastId", MsgBroadcastIDEmpty)
	}
	return nil
}

// MaxDuration accepts zero (server default) or a duration within
// [MinBroadcastDuration, MaxBroadcastDuration].
func MaxDuration(d time.Duration) error {
	if d == 0 {
		return nil
	}
	if d < MinBroadcastDuration || d > MaxBroadcastDuration {
		return argErr("maxDuration", MsgMaxDurationRange)
	}
	return nil
}

// BroadcastOutputs requires at least one output and caps RTMP fan-out.
func BroadcastOutputs(hls bool, rtmpTargets int) error {
	if !hls && rtmpTargets == 0 {
		return argErr("outputs", MsgNoBroadcastOutputs)
	}
	if rtmpTargets > MaxRTMPTargets {
		return argErr("outputs", MsgTooManyRTMPTargets)
	}
	return nil
}

// RTMPTarget requires a server URL and a stream name.
func RTMPTarget(serverURL, streamName string) error {
	if strings.TrimSpace(serverURL) == "" || strings.TrimSpace(streamName) == "" {
		return argErr("rtmp", MsgRTMPTargetIncomplete)
	}
	return nil
}

// Role rejects role names outside the known set.
func Role(role string, known ...string) error {
	for _, k := range known {
		if role == k {
			return nil
		}
	}
	return argErr("role", MsgUnknownRole+role)
}

// LayoutType rejects layout type names outside the known set.
func LayoutType(layoutType string, known ...string) error {
	for _, k := range known {
		if layoutType == k {
			return nil
		}
	}
	return argErr("layout", MsgUnknownLayoutType+layoutType)
}
