// Package pages defines the closed set of page identifiers and the
// session-aware resolution rule shared by the controller and the views.
package pages

type ID string

const (
	Ecommerce     ID = "ecommerce"
	Product       ID = "product"
	Login         ID = "login"
	Register      ID = "register"
	ResetPassword ID = "reset-password"
	UserArea      ID = "user-area"
	Dashboard     ID = "dashboard"
	Gamification  ID = "gamification"
	Referral      ID = "referral"
	Profile       ID = "profile"
)

// Default is where unknown identifiers and anonymous member requests land.
const Default = Ecommerce

var all = []ID{
	Ecommerce, Product, Login, Register, ResetPassword,
	UserArea, Dashboard, Gamification, Referral, Profile,
}

// All returns every page identifier in navigation order.
func All() []ID {
	out := make([]ID, len(all))
	copy(out, all)
	return out
}

// Parse maps a raw identifier onto the closed set. Unknown input fails
// closed to Default with ok=false.
func Parse(raw string) (ID, bool) {
	id := ID(raw)
	if id.Valid() {
		return id, true
	}
	return Default, false
}

func (id ID) Valid() bool {
	switch id {
	case Ecommerce, Product, Login, Register, ResetPassword,
		UserArea, Dashboard, Gamification, Referral, Profile:
		return true
	}
	return false
}

// RequiresSession reports whether the page is member-only.
func (id ID) RequiresSession() bool {
	switch id {
	case UserArea, Dashboard, Gamification, Referral, Profile:
		return true
	}
	return false
}

// Resolve is the pure routing rule: member-only pages need a user,
// anything invalid becomes Default.
func Resolve(id ID, loggedIn bool) ID {
	if !id.Valid() {
		return Default
	}
	if id.RequiresSession() && !loggedIn {
		return Default
	}
	return id
}

func (id ID) String() string { return string(id) }
