package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and opens a session. Failures are printed
// and returned.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	resp, err := a.session.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		return err
	}

	name := strings.TrimSpace(resp.FirstName + " " + resp.LastName)
	if name == "" {
		name = resp.Username
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return nil
}

// Logout drops the session, both in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the profile of the current session and when its token expires.
func (a *App) WhoAmI(ctx context.Context) error {
	session := a.session.Snapshot()
	if !session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	if u := session.User; u != nil {
		fmt.Fprintf(a.out, "Username: %s\n", u.Username)
		if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
			fmt.Fprintf(a.out, "Name: %s\n", full)
		}
		if u.Email != "" {
			fmt.Fprintf(a.out, "Email: %s\n", u.Email)
		}
	} else {
		fmt.Fprintln(a.out, "Profile: unavailable")
	}

	if exp, ok := session.ExpiresAt(); ok {
		state := "valid"
		if time.Now().After(exp) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "Token expires: %s (%s)\n", exp.Local().Format(time.RFC3339), state)
	}
	return nil
}
