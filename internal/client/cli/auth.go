package cli

import (
	"context"
	"os"

	"github.com/labjournal/labctl/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and drives the session manager through an
// authentication attempt. On rejection the session's error message is shown
// and acknowledged, so the next prompt starts clean.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		snap := a.session.Snapshot()
		if snap.LastError != "" {
			printlnFn("Login failed: " + snap.LastError)
			a.session.AcknowledgeError()
		}
		return err
	}

	printlnFn("Login successful!")
	return nil
}

// Logout tears the session down. Local state is cleared even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the authenticated user's profile.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.Authenticated() {
		printlnFn("Not logged in.")
		return nil
	}
	u := snap.User
	printlnFn(u.FullName, "<"+u.Email+">")
	printlnFn("  role:", string(u.Role), " department:", u.Department, " position:", u.Position)
	return nil
}

// EditProfile prompts for a new bio and patches the profile through the
// gateway, then merges the accepted change into the session.
func (a *App) EditProfile(ctx context.Context) error {
	bio, err := getSimpleText(a.reader, "Enter new bio", os.Stdout)
	if err != nil {
		return err
	}

	patch := models.UserUpdate{Bio: &bio}
	if _, err := a.api.UpdateProfile(ctx, patch); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}

	a.session.UpdateUser(patch)
	printlnFn("Profile updated.")
	return nil
}
