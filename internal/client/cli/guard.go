package cli

import (
	"fmt"

	"github.com/sightpass/sightpass/internal/client/session"
)

// requireAuth gates protected commands on the session state: while the
// session is unresolved no decision is made, and without an authenticated
// user the command is denied and the user is pointed at the entry point.
// Default deny: anything not authenticated goes back to login.
func (a *App) requireAuth() bool {
	switch a.session.State() {
	case session.StateUnresolved:
		fmt.Fprintln(a.out, "Still restoring your session, try again in a moment.")
		return false
	case session.StateAuthenticated:
		return true
	default:
		fmt.Fprintln(a.out, "Please login first (login or facelogin).")
		return false
	}
}
