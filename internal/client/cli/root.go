package cli

import "fmt"

// getStatus renders the prompt suffix: the logged-in user and the current
// page position, e.g. "(a@b.com p1/3)".
func (a *App) getStatus() string {
	session := a.auth.Snapshot()
	if !session.LoggedIn() {
		return ""
	}

	s := session.User.Email
	if p := a.users.Snapshot().Pagination; p.TotalPages > 0 {
		s = fmt.Sprintf("%s p%d/%d", s, p.CurrentPage, p.TotalPages)
	}
	return fmt.Sprintf("(%s)", s)
}
