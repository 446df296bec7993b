package opentoktest

import "fmt"

// SessionXML renders a create-session response.
func SessionXML(sessionID string, partnerID int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<sessions><Session><session_id>%s</session_id><partner_id>%d</partner_id>`+
		`<create_dt>Mon Mar 17 00:41:31 PDT 2014</create_dt></Session></sessions>`, sessionID, partnerID)
}

// ArchiveJSON renders an archive with an extra unknown field, as the
// platform adds fields over time.
func ArchiveJSON(archiveID, sessionID, status string, partnerID int) string {
	return fmt.Sprintf(`{
  "createdAt" : 1395187836000,
  "duration" : 62,
  "id" : %q,
  "name" : "",
  "partnerId" : %d,
  "reason" : "",
  "sessionId" : %q,
  "size" : 8347554,
  "status" : %q,
  "hasAudio" : true,
  "hasVideo" : true,
  "outputMode" : "composed",
  "notARealField" : "ignored",
  "url" : "http://archive.example.com/%d/%s/archive.mp4"
}`, archiveID, partnerID, sessionID, status, partnerID, archiveID)
}

// BroadcastJSON renders a started broadcast with an HLS url.
func BroadcastJSON(broadcastID, sessionID string, projectID int) string {
	return fmt.Sprintf(`{
  "id" : %q,
  "sessionId" : %q,
  "projectId" : %d,
  "createdAt" : 1395183243556,
  "updatedAt" : 1395183243556,
  "resolution" : "640x480",
  "status" : "started",
  "broadcastUrls" : {
    "hls" : "http://server/fakepath/playlist.m3u8",
    "rtmp" : [ { "id" : "foo", "serverUrl" : "rtmp://myfooserver/myfooapp", "streamName" : "myfoostream", "status" : "connecting" } ]
  }
}`, broadcastID, sessionID, projectID)
}

// StreamJSON renders one stream.
func StreamJSON(streamID, name, videoType string, classes ...string) string {
	list := "["
	for i, c := range classes {
		if i > 0 {
			list += ","
		}
		list += fmt.Sprintf("%q", c)
	}
	list += "]"
	return fmt.Sprintf(`{"id":%q,"name":%q,"layoutClassList":%s,"videoType":%q}`, streamID, name, list, videoType)
}
