// Package cli implements the interactive SightPass terminal client: a small
// REPL over the session manager, the capture orchestrator and the API
// gateway. Protected commands are gated on the session state; unauthenticated
// users are pointed back to login.
package cli
