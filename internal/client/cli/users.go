package cli

import (
	"context"
	"fmt"
	"strconv"
)

const defaultUsersLimit = 100

// Users lists accounts. Usage: users [skip [limit]]
func (a *App) Users(ctx context.Context, args []string) error {
	if !a.requireAuth() {
		return nil
	}

	skip, limit := 0, defaultUsersLimit
	var err error
	if len(args) > 0 {
		if skip, err = strconv.Atoi(args[0]); err != nil {
			fmt.Fprintln(a.out, "Usage: users [skip [limit]]")
			return nil
		}
	}
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil {
			fmt.Fprintln(a.out, "Usage: users [skip [limit]]")
			return nil
		}
	}

	users, err := a.api.ListUsers(ctx, skip, limit)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return nil
	}
	for _, u := range users {
		face := " "
		if u.FaceEnrolled {
			face = "F"
		}
		admin := " "
		if u.IsSuperuser {
			admin = "A"
		}
		fmt.Fprintf(a.out, "%5d  [%s%s]  %-30s %s\n", u.ID, face, admin, u.Email, u.Name)
	}
	return nil
}

// ShowUser prints one account. Usage: user <id>
func (a *App) ShowUser(ctx context.Context, args []string) error {
	if !a.requireAuth() {
		return nil
	}

	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: user <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: user <id>")
		return nil
	}

	u, err := a.api.GetUser(ctx, id)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.ID, u.Name, u.Email)
	fmt.Fprintf(a.out, "active: %v, admin: %v, face enrolled: %v\n", u.IsActive, u.IsSuperuser, u.FaceEnrolled)
	if u.CreatedAt != nil {
		fmt.Fprintf(a.out, "created: %s\n", u.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// DeleteUser removes an account. Usage: deluser <id>
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if !a.requireAuth() {
		return nil
	}

	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: deluser <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: deluser <id>")
		return nil
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "User %d deleted.\n", id)
	return nil
}
