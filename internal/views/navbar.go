package views

import (
	"github.com/vitalrecife/storefront/internal/format"
	"github.com/vitalrecife/storefront/internal/loyalty"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/session"
)

type NavLink struct {
	Label  string   `json:"label"`
	Target pages.ID `json:"target"`
	Active bool     `json:"active"`
}

type NavUser struct {
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Points int           `json:"points"`
	Level  int           `json:"level"`
	Badge  loyalty.Badge `json:"badge"`
	Cash   string        `json:"cashback"`
}

type Navbar struct {
	Brand      string    `json:"brand"`
	Links      []NavLink `json:"links"`
	User       *NavUser  `json:"user,omitempty"`
	ShowLogout bool      `json:"showLogout"`
}

func buildNavbar(s session.Snapshot, active pages.ID) Navbar {
	nav := Navbar{Brand: "Vital Recife Suplementos"}
	add := func(label string, target pages.ID) {
		nav.Links = append(nav.Links, NavLink{Label: label, Target: target, Active: target == active})
	}

	add("Loja", pages.Ecommerce)
	if s.User == nil {
		add("Entrar", pages.Login)
		add("Cadastrar", pages.Register)
		return nav
	}

	add("Minha Área", pages.UserArea)
	add("Dashboard", pages.Dashboard)
	add("Gamificação", pages.Gamification)
	add("Indicações", pages.Referral)
	add("Perfil", pages.Profile)
	nav.ShowLogout = true
	nav.User = &NavUser{
		Name:   s.User.Name,
		Email:  s.User.Email,
		Points: s.User.Points,
		Level:  s.User.Level,
		Badge:  loyalty.BadgeFor(s.User.Level),
		Cash:   format.Currency(s.User.Cashback),
	}
	return nav
}
