package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/avolkovx/userdesk/internal/model"
)

// List renders the current page of users as a table with a pagination footer.
func (a *App) List(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	state := a.users.Snapshot()
	if len(state.Users) == 0 {
		if err := a.userService.Refresh(ctx); err != nil {
			a.handleFetchError(ctx, err)
			return err
		}
		state = a.users.Snapshot()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, u := range state.Users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.FullName(), u.Email)
	}
	w.Flush()

	p := state.Pagination
	printlnFn(fmt.Sprintf("Page %d of %d (%d users)", p.CurrentPage, p.TotalPages, p.TotalUsers))
	return nil
}

// Page jumps to the given page and lists it.
func (a *App) Page(ctx context.Context, page int) error {
	if !a.requireLogin() {
		return nil
	}
	if err := a.userService.FetchPage(ctx, page); err != nil {
		a.handleFetchError(ctx, err)
		return err
	}
	return a.List(ctx)
}

// Next steps to the following page, if any.
func (a *App) Next(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	p := a.users.Snapshot().Pagination
	if p.CurrentPage >= p.TotalPages {
		printlnFn("Already on the last page.")
		return nil
	}
	return a.Page(ctx, p.CurrentPage+1)
}

// Prev steps to the preceding page, if any.
func (a *App) Prev(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	p := a.users.Snapshot().Pagination
	if p.CurrentPage <= 1 {
		printlnFn("Already on the first page.")
		return nil
	}
	return a.Page(ctx, p.CurrentPage-1)
}

// Add collects a new user form and submits it. The triggering control is
// disabled while a create is already in flight.
func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if a.users.Snapshot().Operations.Create {
		printlnFn("An add is already in progress.")
		return nil
	}

	form, err := a.inputUserForm(model.UserForm{}, false)
	if err != nil {
		return err
	}

	if err := a.userService.Create(ctx, form); err != nil {
		printlnFn("Add failed:", err.Error())
		return err
	}
	return a.List(ctx)
}

// Edit prompts for a record id and the changed fields, then submits the
// update. The row stays locked while its update is in flight.
func (a *App) Edit(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter user id to edit", os.Stdout)
	if err != nil {
		return err
	}
	current, ok := a.findUser(id)
	if !ok {
		printlnFn("No such user on this page:", id)
		return nil
	}
	if a.users.Snapshot().Operations.Update == id {
		printlnFn("That user is already being edited.")
		return nil
	}

	form, err := a.inputUserForm(model.UserForm{
		FirstName:  current.FirstName,
		MiddleName: current.MiddleName,
		LastName:   current.LastName,
		Email:      current.Email,
	}, true)
	if err != nil {
		return err
	}

	if err := a.userService.Update(ctx, id, form); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	return nil
}

// Delete prompts for a record id, confirms and deletes it.
func (a *App) Delete(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter user id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if _, ok := a.findUser(id); !ok {
		printlnFn("No such user on this page:", id)
		return nil
	}
	if a.users.Snapshot().Operations.Delete == id {
		printlnFn("That user is already being deleted.")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Delete "+id+"? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.userService.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	return a.List(ctx)
}

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("Please log in first.")
	return false
}

func (a *App) findUser(id string) (model.User, bool) {
	for _, u := range a.users.Snapshot().Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// inputUserForm collects the user form fields. On edit, current values are
// offered as defaults and a blank password keeps the stored one.
func (a *App) inputUserForm(current model.UserForm, isEdit bool) (model.UserForm, error) {
	var zero model.UserForm

	firstName, err := GetOptionalText(a.reader, "First name", current.FirstName, os.Stdout)
	if err != nil {
		return zero, err
	}
	middleName, err := GetOptionalText(a.reader, "Middle name (optional)", current.MiddleName, os.Stdout)
	if err != nil {
		return zero, err
	}
	lastName, err := GetOptionalText(a.reader, "Last name", current.LastName, os.Stdout)
	if err != nil {
		return zero, err
	}
	email, err := GetOptionalText(a.reader, "Email", current.Email, os.Stdout)
	if err != nil {
		return zero, err
	}

	passwordPrompt := "Password"
	if isEdit {
		passwordPrompt = "Password (blank to keep current)"
	}
	password, err := getPassword(passwordPrompt, os.Stdout)
	if err != nil {
		return zero, err
	}
	confirm := ""
	if password != "" {
		confirm, err = getPassword("Confirm password", os.Stdout)
		if err != nil {
			return zero, err
		}
	}

	return model.UserForm{
		FirstName:       firstName,
		MiddleName:      middleName,
		LastName:        lastName,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}, nil
}
