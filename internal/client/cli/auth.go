package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sightpass/sightpass/internal/client/api"
	"github.com/sightpass/sightpass/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// reportError prints the server-provided detail message when there is one,
// falling back to a generic message. The full error always goes to the log.
func (a *App) reportError(ctx context.Context, err error) {
	a.log.Error(ctx, "command failed", "error", err)

	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		fmt.Fprintln(a.out, apiErr.Detail)
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(a.out, "Not authorized.")
	case errors.Is(err, session.ErrInvalidAuthResponse):
		fmt.Fprintln(a.out, "The server returned an invalid authentication response.")
	default:
		fmt.Fprintln(a.out, "Something went wrong, please try again.")
	}
}

// Register prompts for name, email and password, creates the account and
// signs in with the same credentials.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	if err := a.session.Register(ctx, name, email, string(password), false); err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Account created, you are now logged in.")
	return nil
}

// Login prompts for credentials and authenticates with email and password.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Login successful.")
	return nil
}

// Logout clears the session, in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	u := a.session.CurrentUser()
	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.ID, u.Name, u.Email)
	fmt.Fprintf(a.out, "face enrolled: %v, admin: %v\n", u.FaceEnrolled, u.IsSuperuser)
	return nil
}
