package viewmodel

// User represents the signed-in user exposed to templates.
type User struct {
	Name      string
	Email     string
	Role      string
	RoleLabel string
}

// NavItem is one entry of the role navigation bar.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation, session).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	Home            string
	User            *User
	Nav             []NavItem
}
