package session

// State is the authentication state of the client.
//
// The machine is StateUnresolved → (StateUnauthenticated | StateAuthenticated);
// once Unresolved is left it is never re-entered. Authenticated drops to
// Unauthenticated only via explicit logout, rollback, or failed revalidation.
type State int

const (
	// StateUnresolved is the initial state, before startup hydration
	// has decided whether a persisted session is still valid.
	StateUnresolved State = iota

	// StateUnauthenticated means no user is signed in.
	StateUnauthenticated

	// StateAuthenticated means a user is signed in and a token is installed.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
