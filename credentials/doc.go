// Package credentials holds the project api key and secret and resolves
// them from the environment.
//
// Load reads optional dotenv files, then OPENTOK_API_KEY and
// OPENTOK_API_SECRET. The secret may be given indirectly:
//   - Strict expansion: ${OPENTOK_SECRET_FROM_VAULT}
//   - Provider reference: secretref:<provider>:<ref>, for example
//     secretref:env:PROJECT_SECRET or secretref:dotenv:/etc/opentok.env#SECRET
//
// A Credentials value is immutable once built and safe to share.
package credentials
