// Package token mints and inspects session access tokens and the project
// JWT that authenticates REST calls.
//
// A session token has the form
//
//	"T1==" + base64("partner_id=<key>&sig=<hex hmac>&<data>")
//
// where <data> is the ordered claim list
//
//	session_id, create_time, expire_time, nonce, role[, connection_data][, initial_layout_class_list]
//
// and sig is the hex HMAC-SHA1 of <data> keyed by the project secret.
// Build validates every claim before signing and never performs I/O.
//
// ProjectSigner issues the short-lived HS256 JWT sent in the
// X-OPENTOK-AUTH header. It caches the current JWT and refreshes it once
// under concurrent callers.
package token
