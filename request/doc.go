// Package request composes the REST calls of the video platform API.
//
// Every composer validates its parameters, then returns a Request holding
// the method, the path relative to the API root, ordered query parameters,
// headers and the body. Composers never perform I/O.
//
//	req, err := request.ListArchives(apiKey, request.ArchiveQuery{SessionID: id})
//	// req.Target() == "v2/project/<key>/archive?offset=0&sessionId=<id>"
//
// Layouts are a closed set of variants. A Layout value can only hold a
// stylesheet when its type is custom, and it serializes without a
// stylesheet key otherwise.
package request
