package cli

import (
	"context"
	"errors"
	"os"

	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/model"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the session is
// stored, persisted, and the first dashboard page is fetched.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in. Use 'logout' first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, model.Credentials{Email: email, Password: password}); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Logged in as", a.auth.Snapshot().User.DisplayName)
	a.fetchInitial(ctx)
	return nil
}

// Logout clears the in-memory and persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// handleFetchError reacts to a failed fetch. A 401-class failure means the
// persisted token is no longer valid, so the session is dropped; there is no
// implicit refresh.
func (a *App) handleFetchError(ctx context.Context, err error) {
	if errors.Is(err, common.ErrUnauthorized) {
		printlnFn("Session expired, please log in again.")
		_ = a.authService.Logout(ctx)
	}
}
