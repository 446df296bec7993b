// Package opentoktest provides a fake platform REST API for tests.
//
// A Server checks the X-OPENTOK-AUTH project JWT of every request against
// the credentials it was created with, records the request, and answers
// with the reply registered for its method and path:
//
//	srv := opentoktest.NewServer(creds)
//	defer srv.Close()
//	srv.Reply(http.MethodPost, "session/create", opentoktest.XML(http.StatusOK, opentoktest.SessionXML(id, 123456)))
//
//	c, _ := client.New(creds, client.Config{APIURL: srv.URL})
//
// Unregistered routes answer 404 with a JSON error body.
package opentoktest
