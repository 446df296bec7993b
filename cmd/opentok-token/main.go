// Command opentok-token mints a client token for a session.
//
// Credentials come from OPENTOK_API_KEY and OPENTOK_API_SECRET, optionally
// loaded from -env-file. The secret may be a ${VAR} reference or a
// secretref:<provider>:<ref> value.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonwraymond/opentok/credentials"
	"github.com/jonwraymond/opentok/session"
	"github.com/jonwraymond/opentok/token"
)

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type output struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, time.Now); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "opentok-token: %v\n", err)
		}
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("opentok-token", flag.ContinueOnError)
	fs.SetOutput(stderr)

	sessionID := fs.String("session", "", "Session id the token grants access to (required)")
	roleName := fs.String("role", string(token.RolePublisher), "Role: SUBSCRIBER, PUBLISHER or MODERATOR (any case)")
	ttl := fs.Duration("ttl", token.DefaultLifetime, "Token lifetime, less than 720h")
	data := fs.String("data", "", "Connection data, at most 1000 characters")
	outputJSON := fs.Bool("json", false, "Output as JSON")
	var classes, envFiles stringList
	fs.Var(&classes, "layout-class", "Initial layout class (repeatable)")
	fs.Var(&envFiles, "env-file", "Dotenv file with OPENTOK_* variables (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sessionID == "" {
		fs.Usage()
		return errors.New("-session is required")
	}

	role, err := token.ParseRole(*roleName)
	if err != nil {
		return err
	}

	creds, err := credentials.Load(ctx, credentials.LoadOptions{EnvFiles: envFiles})
	if err != nil {
		return err
	}

	expires := now().Add(*ttl)
	tok, err := token.NewBuilder(creds, token.WithClock(now)).Build(token.Claims{
		SessionID:              *sessionID,
		Role:                   role,
		ExpireTime:             expires,
		Data:                   *data,
		InitialLayoutClassList: classes,
	})
	if err != nil {
		return err
	}

	// Build has already parsed the id.
	if id, _ := session.ParseID(*sessionID); id.PartnerID() != creds.APIKey() {
		fmt.Fprintf(stderr, "opentok-token: warning: session belongs to project %d, credentials are for %d\n", id.PartnerID(), creds.APIKey())
	}

	if *outputJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output{
			Token:     tok,
			SessionID: *sessionID,
			Role:      role.String(),
			ExpiresAt: time.Unix(expires.Unix(), 0).UTC(),
		})
	}
	_, err = fmt.Fprintln(stdout, tok)
	return err
}
