// Package views builds the view model of every page. Builders are pure:
// they read a session snapshot and the catalog and never change state.
package views

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vitalrecife/storefront/internal/catalog"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/session"
)

var ErrUnknownPage = errors.New("no view for page")

// Input is everything a builder may read.
type Input struct {
	Session  session.Snapshot
	Catalog  catalog.Provider
	Markdown *catalog.Markdown
	SiteURL  string
	// Params are per-request view parameters such as the active tab.
	// They take precedence over the page-local state of the session.
	Params map[string]string
	// Intn picks the motivational phrase. Defaults to the first one.
	Intn func(n int) int
}

func (in Input) param(key string) string {
	if v, ok := in.Params[key]; ok && v != "" {
		return v
	}
	return in.Session.Local[key]
}

func (in Input) intParam(key string, fallback int) int {
	v, err := strconv.Atoi(in.param(key))
	if err != nil {
		return fallback
	}
	return v
}

// Action is a callback or navigation a page exposes to the client.
type Action struct {
	Name   string   `json:"name"`
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Target pages.ID `json:"target,omitempty"`
}

type Page struct {
	ID        pages.ID         `json:"id"`
	Requested pages.ID         `json:"requested"`
	Navbar    Navbar           `json:"navbar"`
	Content   any              `json:"content"`
	Actions   []Action         `json:"actions"`
	Notices   []session.Notice `json:"notices"`
}

type builder func(in Input) (any, []Action, error)

// Render builds the page the session currently resolves to.
func Render(in Input) (Page, error) {
	id := pages.Resolve(in.Session.Page, in.Session.LoggedIn())

	var build builder
	switch id {
	case pages.Ecommerce:
		build = buildEcommerce
	case pages.Product:
		build = buildProduct
	case pages.Login:
		build = buildLogin
	case pages.Register:
		build = buildRegister
	case pages.ResetPassword:
		build = buildResetPassword
	case pages.UserArea:
		build = buildUserArea
	case pages.Dashboard:
		build = buildDashboard
	case pages.Gamification:
		build = buildGamification
	case pages.Referral:
		build = buildReferral
	case pages.Profile:
		build = buildProfile
	default:
		return Page{}, fmt.Errorf("%w: %s", ErrUnknownPage, id)
	}

	content, actions, err := build(in)
	if err != nil {
		return Page{}, fmt.Errorf("failed to render %s: %w", id, err)
	}
	nav := buildNavbar(in.Session, id)
	return Page{
		ID:        id,
		Requested: in.Session.Requested,
		Navbar:    nav,
		Content:   content,
		Actions:   append(navigateActions(nav), actions...),
		Notices:   []session.Notice{},
	}, nil
}

func navigateActions(nav Navbar) []Action {
	out := make([]Action, 0, len(nav.Links)+1)
	for _, l := range nav.Links {
		out = append(out, navigate(l.Target))
	}
	if nav.ShowLogout {
		out = append(out, Action{Name: "logout", Method: "POST", Path: "/api/auth/logout"})
	}
	return out
}

func navigate(target pages.ID) Action {
	return Action{Name: "navigate", Method: "POST", Path: "/api/navigate", Target: target}
}

// tab returns the requested tab when it is one of allowed, else the first.
func tab(in Input, allowed ...string) string {
	v := in.param("tab")
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return allowed[0]
}
