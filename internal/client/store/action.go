// Package store holds the client's global state: the authenticated session
// and the currently displayed page of users. Each store is a single-writer
// container mutated only through its closed set of actions; dispatching is
// synchronous and performs no I/O. Reads are snapshots.
package store

import "github.com/avolkovx/userdesk/internal/model"

// AuthAction is the closed set of session store mutations.
type AuthAction interface{ isAuthAction() }

// SetUser stores the authenticated identity. Callers must pair it with
// SetToken to keep the session all-or-nothing.
type SetUser struct{ User model.Identity }

// SetToken stores the bearer token.
type SetToken struct{ Token string }

// Logout clears identity and token in one mutation. Idempotent.
type Logout struct{}

func (SetUser) isAuthAction()  {}
func (SetToken) isAuthAction() {}
func (Logout) isAuthAction()   {}

// UserAction is the closed set of user collection store mutations.
type UserAction interface{ isUserAction() }

// SetUsers replaces the displayed page; it never merges.
type SetUsers struct{ Users []model.User }

// SetPagination replaces the pagination info wholesale.
type SetPagination struct{ Info model.PaginationInfo }

// AddUser appends to the current list. Paginated flows re-fetch page 1
// instead of dispatching this.
type AddUser struct{ User model.User }

// UpdateUser replaces the entry with a matching id; no-op when absent.
type UpdateUser struct{ User model.User }

// DeleteUser removes the entry with a matching id; no-op when absent.
type DeleteUser struct{ ID string }

// SetLoading toggles the whole-list fetch indicator.
type SetLoading struct{ Loading bool }

// SetCreateLoading toggles the create-in-flight indicator.
type SetCreateLoading struct{ Active bool }

// SetUpdateLoading tracks the id of the record being updated, "" when idle.
// Setting a new id replaces the previous one; there is a single slot.
type SetUpdateLoading struct{ ID string }

// SetDeleteLoading tracks the id of the record being deleted, "" when idle.
type SetDeleteLoading struct{ ID string }

func (SetUsers) isUserAction()         {}
func (SetPagination) isUserAction()    {}
func (AddUser) isUserAction()          {}
func (UpdateUser) isUserAction()       {}
func (DeleteUser) isUserAction()       {}
func (SetLoading) isUserAction()       {}
func (SetCreateLoading) isUserAction() {}
func (SetUpdateLoading) isUserAction() {}
func (SetDeleteLoading) isUserAction() {}
