package request

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jonwraymond/opentok/session"
	"github.com/jonwraymond/opentok/validate"
)

const (
	testAPIKey    = 123456
	testSessionID = "1_MX4xMjM0NTZ-flNhdCBNYXIgMTUgMTQ6NDI6MjMgUERUIDIwMTR-MC40OTAxMzAyNX4"
	testArchiveID = "30b3ebf1-ba36-4f5b-8def-6f70d9986fe9"
	stylesheet    = "stream.instructor {position: absolute; width: 100%;  height:50%;}"
)

func mustLayout(t *testing.T, lt LayoutType, css string) *Layout {
	t.Helper()
	l, err := NewLayout(lt, css)
	if err != nil {
		t.Fatalf("NewLayout(%q, %q) error = %v", lt, css, err)
	}
	return &l
}

func body(t *testing.T, r Request) string {
	t.Helper()
	b, err := r.EncodeBody()
	if err != nil {
		t.Fatalf("EncodeBody() error = %v", err)
	}
	return string(b)
}

func assertArgument(t *testing.T, err error, wantMsg string) {
	t.Helper()
	var argErr *validate.ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %v, want *validate.ArgumentError", err)
	}
	if wantMsg != "" && argErr.Message != wantMsg {
		t.Errorf("message = %q, want %q", argErr.Message, wantMsg)
	}
}

func TestStartArchive_LayoutBodies(t *testing.T) {
	tests := []struct {
		name   string
		layout *Layout
		want   string
	}{
		{
			name:   "custom",
			layout: mustLayout(t, LayoutCustom, stylesheet),
			want:   `{"sessionId":"abcd12345","name":"an_archive_name","hasVideo":true,"hasAudio":true,"outputMode":"composed","layout":{"type":"custom","stylesheet":"stream.instructor {position: absolute; width: 100%;  height:50%;}"}}`,
		},
		{
			name:   "pip",
			layout: mustLayout(t, LayoutPIP, ""),
			want:   `{"sessionId":"abcd12345","name":"an_archive_name","hasVideo":true,"hasAudio":true,"outputMode":"composed","layout":{"type":"pip"}}`,
		},
		{
			name: "no layout",
			want: `{"sessionId":"abcd12345","name":"an_archive_name","hasVideo":true,"hasAudio":true,"outputMode":"composed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := StartArchive(testAPIKey, "abcd12345", ArchiveOptions{
				Name:       "an_archive_name",
				OutputMode: OutputComposed,
				Layout:     tt.layout,
			})
			if err != nil {
				t.Fatalf("StartArchive() error = %v", err)
			}
			if got := body(t, r); got != tt.want {
				t.Errorf("body =\n%s\nwant\n%s", got, tt.want)
			}
			if r.Method != http.MethodPost || r.Target() != "v2/project/123456/archive" {
				t.Errorf("request = %s %s", r.Method, r.Target())
			}
			if r.Headers[HeaderContentType] != MediaTypeJSON {
				t.Errorf("Content-type = %q, want %q", r.Headers[HeaderContentType], MediaTypeJSON)
			}
		})
	}
}

func TestStartArchive_Options(t *testing.T) {
	r, err := StartArchive(testAPIKey, "SESSIONID", ArchiveOptions{
		HasVideo:   Bool(false),
		Resolution: "1280x720",
	})
	if err != nil {
		t.Fatalf("StartArchive() error = %v", err)
	}
	want := `{"sessionId":"SESSIONID","hasVideo":false,"hasAudio":true,"resolution":"1280x720"}`
	if got := body(t, r); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestStartArchive_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		opts      ArchiveOptions
		wantMsg   string
	}{
		{name: "empty session", opts: ArchiveOptions{}, wantMsg: validate.MsgSessionIDEmpty},
		{name: "individual with resolution", sessionID: "SESSIONID", opts: ArchiveOptions{OutputMode: OutputIndividual, Resolution: "640x480"}, wantMsg: validate.MsgResolutionIndividual},
		{name: "unknown resolution", sessionID: "SESSIONID", opts: ArchiveOptions{Resolution: "800x600"}, wantMsg: validate.MsgInvalidResolution + "800x600"},
		{name: "unknown output mode", sessionID: "SESSIONID", opts: ArchiveOptions{OutputMode: "mixed"}, wantMsg: "Unknown output mode: mixed"},
		{name: "zero layout", sessionID: "SESSIONID", opts: ArchiveOptions{Layout: &Layout{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StartArchive(testAPIKey, tt.sessionID, tt.opts)
			assertArgument(t, err, tt.wantMsg)
		})
	}
}

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name    string
		lt      LayoutType
		css     string
		wantErr string
	}{
		{name: "custom with stylesheet", lt: LayoutCustom, css: "s"},
		{name: "custom without stylesheet", lt: LayoutCustom, css: "", wantErr: validate.MsgLayoutStylesheet},
		{name: "pip without stylesheet", lt: LayoutPIP, css: ""},
		{name: "pip with stylesheet", lt: LayoutPIP, css: "s", wantErr: validate.MsgLayoutStylesheet},
		{name: "bestFit", lt: LayoutBestFit},
		{name: "verticalPresentation", lt: LayoutVerticalPresentation},
		{name: "horizontalPresentation", lt: LayoutHorizontalPresentation},
		{name: "unknown", lt: "grid", wantErr: validate.MsgUnknownLayoutType + "grid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.lt, tt.css)
			if tt.wantErr != "" {
				assertArgument(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("NewLayout() error = %v", err)
			}
			if l.Type() != tt.lt || l.Stylesheet() != tt.css {
				t.Errorf("NewLayout() = %v/%q, want %v/%q", l.Type(), l.Stylesheet(), tt.lt, tt.css)
			}
		})
	}
}

func TestLayoutConstructors(t *testing.T) {
	tests := []struct {
		layout Layout
		want   string
	}{
		{layout: BestFit(), want: `{"type":"bestFit"}`},
		{layout: PIP(), want: `{"type":"pip"}`},
		{layout: VerticalPresentation(), want: `{"type":"verticalPresentation"}`},
		{layout: HorizontalPresentation(), want: `{"type":"horizontalPresentation"}`},
	}
	for _, tt := range tests {
		got, err := tt.layout.MarshalJSON()
		if err != nil || string(got) != tt.want {
			t.Errorf("MarshalJSON() = %s, %v, want %s", got, err, tt.want)
		}
	}

	if _, err := Custom(""); err == nil {
		t.Error("Custom(\"\") expected error")
	}
}

func TestLayout_UnmarshalJSON(t *testing.T) {
	var l Layout
	if err := l.UnmarshalJSON([]byte(`{"type":"custom","stylesheet":"s"}`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if l.Type() != LayoutCustom || l.Stylesheet() != "s" {
		t.Errorf("UnmarshalJSON() = %v/%q", l.Type(), l.Stylesheet())
	}
	if err := l.UnmarshalJSON([]byte(`{"type":"custom"}`)); !errors.Is(err, validate.ErrInvalidArgument) {
		t.Errorf("UnmarshalJSON(custom without stylesheet) error = %v", err)
	}
}

func TestListArchives(t *testing.T) {
	tests := []struct {
		name  string
		query ArchiveQuery
		want  string
	}{
		{name: "defaults", query: ArchiveQuery{}, want: "v2/project/123456/archive?offset=0"},
		{name: "session filter", query: ArchiveQuery{SessionID: testSessionID}, want: "v2/project/123456/archive?offset=0&sessionId=" + testSessionID},
		{name: "count", query: ArchiveQuery{Offset: 5, Count: 10}, want: "v2/project/123456/archive?offset=5&count=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ListArchives(testAPIKey, tt.query)
			if err != nil {
				t.Fatalf("ListArchives() error = %v", err)
			}
			if got := r.Target(); got != tt.want {
				t.Errorf("Target() = %q, want %q", got, tt.want)
			}
			if r.HasBody() {
				t.Error("ListArchives() request has a body")
			}
		})
	}
}

func TestListArchives_Rejects(t *testing.T) {
	_, err := ListArchives(testAPIKey, ArchiveQuery{Count: -5})
	assertArgument(t, err, "count cannot be smaller than 0")

	_, err = ListArchives(testAPIKey, ArchiveQuery{SessionID: "This-is-not-a-valid-session-id"})
	assertArgument(t, err, "Session Id is not valid")

	_, err = ListArchives(testAPIKey, ArchiveQuery{Offset: -1})
	assertArgument(t, err, validate.MsgOffsetNegative)
}

func TestComposers(t *testing.T) {
	root := "v2/project/123456"
	layout := PIP()

	tests := []struct {
		name       string
		build      func() (Request, error)
		wantMethod string
		wantTarget string
		wantBody   string
	}{
		{
			name:       "get archive",
			build:      func() (Request, error) { return GetArchive(testAPIKey, testArchiveID) },
			wantMethod: http.MethodGet,
			wantTarget: root + "/archive/" + testArchiveID,
		},
		{
			name:       "stop archive",
			build:      func() (Request, error) { return StopArchive(testAPIKey, testArchiveID) },
			wantMethod: http.MethodPost,
			wantTarget: root + "/archive/" + testArchiveID + "/stop",
		},
		{
			name:       "delete archive",
			build:      func() (Request, error) { return DeleteArchive(testAPIKey, testArchiveID) },
			wantMethod: http.MethodDelete,
			wantTarget: root + "/archive/" + testArchiveID,
		},
		{
			name:       "archive layout",
			build:      func() (Request, error) { return SetArchiveLayout(testAPIKey, testArchiveID, layout) },
			wantMethod: http.MethodPut,
			wantTarget: root + "/archive/" + testArchiveID + "/layout",
			wantBody:   `{"type":"pip"}`,
		},
		{
			name:       "start broadcast defaults",
			build:      func() (Request, error) { return StartBroadcast(testAPIKey, "SESSIONID", BroadcastOptions{}) },
			wantMethod: http.MethodPost,
			wantTarget: root + "/broadcast",
			wantBody:   `{"sessionId":"SESSIONID","outputs":{"hls":{}}}`,
		},
		{
			name: "start broadcast rtmp only",
			build: func() (Request, error) {
				return StartBroadcast(testAPIKey, "SESSIONID", BroadcastOptions{
					Layout:      &layout,
					MaxDuration: 5400 * time.Second,
					Resolution:  "1280x720",
					HLS:         Bool(false),
					RTMP:        []RTMPTarget{{ID: "foo", ServerURL: "rtmp://myfooserver/myfooapp", StreamName: "myfoostream"}},
				})
			},
			wantMethod: http.MethodPost,
			wantTarget: root + "/broadcast",
			wantBody:   `{"sessionId":"SESSIONID","layout":{"type":"pip"},"maxDuration":5400,"resolution":"1280x720","outputs":{"rtmp":[{"id":"foo","serverUrl":"rtmp://myfooserver/myfooapp","streamName":"myfoostream"}]}}`,
		},
		{
			name:       "stop broadcast",
			build:      func() (Request, error) { return StopBroadcast(testAPIKey, testArchiveID) },
			wantMethod: http.MethodPost,
			wantTarget: root + "/broadcast/" + testArchiveID + "/stop",
		},
		{
			name:       "get broadcast",
			build:      func() (Request, error) { return GetBroadcast(testAPIKey, testArchiveID) },
			wantMethod: http.MethodGet,
			wantTarget: root + "/broadcast/" + testArchiveID,
		},
		{
			name:       "broadcast layout",
			build:      func() (Request, error) { return SetBroadcastLayout(testAPIKey, testArchiveID, BestFit()) },
			wantMethod: http.MethodPut,
			wantTarget: root + "/broadcast/" + testArchiveID + "/layout",
			wantBody:   `{"type":"bestFit"}`,
		},
		{
			name:       "get stream",
			build:      func() (Request, error) { return GetStream(testAPIKey, "SESSIONID", "STREAMID") },
			wantMethod: http.MethodGet,
			wantTarget: root + "/session/SESSIONID/stream/STREAMID",
		},
		{
			name:       "list streams",
			build:      func() (Request, error) { return ListStreams(testAPIKey, "SESSIONID") },
			wantMethod: http.MethodGet,
			wantTarget: root + "/session/SESSIONID/stream",
		},
		{
			name: "stream class lists",
			build: func() (Request, error) {
				return SetStreamClassLists(testAPIKey, "SESSIONID", []StreamProperties{
					{ID: "STREAMID", LayoutClassList: []string{"focus"}},
					{ID: "OTHER"},
				})
			},
			wantMethod: http.MethodPut,
			wantTarget: root + "/session/SESSIONID/stream",
			wantBody:   `{"items":[{"id":"STREAMID","layoutClassList":["focus"]},{"id":"OTHER","layoutClassList":[]}]}`,
		},
		{
			name:       "force disconnect",
			build:      func() (Request, error) { return ForceDisconnect(testAPIKey, "SESSIONID", "CONNECTIONID") },
			wantMethod: http.MethodDelete,
			wantTarget: root + "/session/SESSIONID/connection/CONNECTIONID",
		},
		{
			name:       "signal session",
			build:      func() (Request, error) { return SendSignal(testAPIKey, "SESSIONID", "", Signal{Data: "data"}) },
			wantMethod: http.MethodPost,
			wantTarget: root + "/session/SESSIONID/signal",
			wantBody:   `{"data":"data"}`,
		},
		{
			name: "signal connection",
			build: func() (Request, error) {
				return SendSignal(testAPIKey, "SESSIONID", "CONNECTIONID", Signal{Data: "data", Type: "type"})
			},
			wantMethod: http.MethodPost,
			wantTarget: root + "/session/SESSIONID/connection/CONNECTIONID/signal",
			wantBody:   `{"data":"data","type":"type"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.build()
			if err != nil {
				t.Fatalf("compose error = %v", err)
			}
			if r.Method != tt.wantMethod {
				t.Errorf("Method = %q, want %q", r.Method, tt.wantMethod)
			}
			if got := r.Target(); got != tt.wantTarget {
				t.Errorf("Target() = %q, want %q", got, tt.wantTarget)
			}
			if got := body(t, r); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
			_, hasType := r.Headers[HeaderContentType]
			if hasType != (tt.wantBody != "") {
				t.Errorf("Content-type present = %v, want %v", hasType, tt.wantBody != "")
			}
		})
	}
}

func TestComposers_Reject(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (Request, error)
		wantMsg string
	}{
		{name: "empty archive id", build: func() (Request, error) { return GetArchive(testAPIKey, "") }, wantMsg: validate.MsgArchiveIDEmpty},
		{name: "empty broadcast id", build: func() (Request, error) { return StopBroadcast(testAPIKey, "") }, wantMsg: validate.MsgBroadcastIDEmpty},
		{name: "zero archive layout", build: func() (Request, error) { return SetArchiveLayout(testAPIKey, testArchiveID, Layout{}) }},
		{name: "broadcast without outputs", build: func() (Request, error) {
			return StartBroadcast(testAPIKey, "SESSIONID", BroadcastOptions{HLS: Bool(false)})
		}, wantMsg: validate.MsgNoBroadcastOutputs},
		{name: "broadcast too many rtmp", build: func() (Request, error) {
			targets := make([]RTMPTarget, 6)
			for i := range targets {
				targets[i] = RTMPTarget{ServerURL: "rtmp://s/a", StreamName: "n"}
			}
			return StartBroadcast(testAPIKey, "SESSIONID", BroadcastOptions{RTMP: targets})
		}, wantMsg: validate.MsgTooManyRTMPTargets},
		{name: "broadcast incomplete rtmp", build: func() (Request, error) {
			return StartBroadcast(testAPIKey, "SESSIONID", BroadcastOptions{RTMP: []RTMPTarget{{ServerURL: "rtmp://s/a"}}})
		}, wantMsg: validate.MsgRTMPTargetIncomplete},
		{name: "broadcast short duration", build: func() (Request, error) {
			return StartBroadcast(testAPIKey, "SESSIONID", BroadcastOptions{MaxDuration: 59 * time.Second})
		}, wantMsg: validate.MsgMaxDurationRange},
		{name: "broadcast long duration", build: func() (Request, error) {
			return StartBroadcast(testAPIKey, "SESSIONID", BroadcastOptions{MaxDuration: 36001 * time.Second})
		}, wantMsg: validate.MsgMaxDurationRange},
		{name: "broadcast empty session", build: func() (Request, error) {
			return StartBroadcast(testAPIKey, "", BroadcastOptions{})
		}, wantMsg: validate.MsgSessionIDEmpty},
		{name: "stream empty session", build: func() (Request, error) { return GetStream(testAPIKey, "", "STREAMID") }, wantMsg: validate.MsgSessionIDEmpty},
		{name: "stream empty id", build: func() (Request, error) { return GetStream(testAPIKey, "SESSIONID", "") }, wantMsg: validate.MsgStreamIDEmpty},
		{name: "class lists empty stream id", build: func() (Request, error) {
			return SetStreamClassLists(testAPIKey, "SESSIONID", []StreamProperties{{}})
		}, wantMsg: validate.MsgStreamIDEmpty},
		{name: "disconnect empty session", build: func() (Request, error) { return ForceDisconnect(testAPIKey, "", "CONNECTIONID") }, wantMsg: validate.MsgSessionIDEmpty},
		{name: "disconnect empty connection", build: func() (Request, error) { return ForceDisconnect(testAPIKey, "SESSIONID", "") }, wantMsg: validate.MsgConnectionIDEmpty},
		{name: "signal empty session", build: func() (Request, error) { return SendSignal(testAPIKey, "", "", Signal{Data: "data"}) }, wantMsg: validate.MsgSessionIDEmpty},
		{name: "signal empty data", build: func() (Request, error) { return SendSignal(testAPIKey, "SESSIONID", "", Signal{}) }, wantMsg: validate.MsgSignalDataEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assertArgument(t, err, tt.wantMsg)
		})
	}
}

func TestCreateSession(t *testing.T) {
	opts, err := session.NewOptions(
		session.WithMediaMode(session.MediaRouted),
		session.WithArchiveMode(session.ArchiveAlways),
		session.WithLocation("12.34.56.78"),
	)
	if err != nil {
		t.Fatalf("NewOptions() error = %v", err)
	}

	r := CreateSession(opts)
	if r.Method != http.MethodPost || r.Target() != "session/create" {
		t.Errorf("request = %s %s, want POST session/create", r.Method, r.Target())
	}
	if got, want := body(t, r), "archiveMode=always&location=12.34.56.78&p2p.preference=disabled"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
	if r.Headers[HeaderContentType] != MediaTypeForm {
		t.Errorf("Content-type = %q, want %q", r.Headers[HeaderContentType], MediaTypeForm)
	}
}

func TestTarget_EscapesValues(t *testing.T) {
	r := Request{Path: "p", Query: []Param{{Key: "a", Value: "x y&z"}, {Key: "b", Value: "1"}}}
	if got, want := r.Target(), "p?a=x+y%26z&b=1"; got != want {
		t.Errorf("Target() = %q, want %q", got, want)
	}
}
