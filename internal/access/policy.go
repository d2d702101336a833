// Package access is the single declarative capability table for the site:
// which roles may open which pages, and which navigation sections each role
// sees. Handlers and the auth middleware both consult this table so the
// enforced policy and the advertised navigation cannot drift apart.
package access

import (
	"github.com/class-union/union-server/internal/models"
)

// Page identifies a gated section of the site.
type Page string

const (
	PageHome     Page = "home"
	PageAbout    Page = "about"
	PageBlog     Page = "blog"
	PageGallery  Page = "gallery"
	PageEvents   Page = "events"
	PageGames    Page = "games"
	PageChat     Page = "chat"
	PageAdmin    Page = "admin"
	PageSettings Page = "settings"
)

// Decision is the outcome of evaluating the gate for one request.
type Decision int

const (
	// Allow renders the protected content.
	Allow Decision = iota
	// DenyUnauthenticated means sign-in is required and no identity is present.
	DenyUnauthenticated
	// DenyRole means an identity is present but its role is not in the allowed set.
	DenyRole
)

// requirement declares what a page demands: authentication, and optionally a
// restricted role set. An empty Roles slice with RequireAuth means any
// authenticated role.
type requirement struct {
	RequireAuth bool
	Roles       []models.UserRole
}

var policy = map[Page]requirement{
	PageHome:     {},
	PageAbout:    {},
	PageBlog:     {},
	PageGallery:  {RequireAuth: true, Roles: []models.UserRole{models.RoleStudentFull, models.RoleAdmin}},
	PageEvents:   {RequireAuth: true, Roles: []models.UserRole{models.RoleStudentFull, models.RoleAdmin}},
	PageGames:    {RequireAuth: true, Roles: []models.UserRole{models.RoleStudentFull, models.RoleAdmin}},
	PageChat:     {RequireAuth: true},
	PageAdmin:    {RequireAuth: true, Roles: []models.UserRole{models.RoleAdmin}},
	PageSettings: {RequireAuth: true, Roles: []models.UserRole{models.RoleAdmin}},
}

// Decide evaluates the gate for a page. role is ignored unless authenticated
// is true. Unknown pages deny by default.
func Decide(authenticated bool, role models.UserRole, page Page) Decision {
	req, ok := policy[page]
	if !ok {
		return DenyUnauthenticated
	}

	if !req.RequireAuth {
		return Allow
	}
	if !authenticated {
		return DenyUnauthenticated
	}
	if len(req.Roles) == 0 {
		return Allow
	}
	for _, allowed := range req.Roles {
		if role == allowed {
			return Allow
		}
	}
	return DenyRole
}

// AllowedRoles returns the restricted role set for a page, or nil when the
// page is open to any authenticated role (or to everyone).
func AllowedRoles(page Page) []models.UserRole {
	return policy[page].Roles
}

// NavItem is one entry in the navigation bar.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var baseNav = []NavItem{
	{Path: "/", Label: "Home"},
	{Path: "/about", Label: "About"},
	{Path: "/blog", Label: "Blog"},
}

var roleNav = map[models.UserRole][]NavItem{
	models.RoleStudentLimited: {
		{Path: "/chat", Label: "Chat"},
	},
	models.RoleStudentFull: {
		{Path: "/gallery", Label: "Gallery"},
		{Path: "/events", Label: "Events"},
		{Path: "/games", Label: "Games"},
		{Path: "/chat", Label: "Chat"},
	},
	models.RoleAdmin: {
		{Path: "/gallery", Label: "Gallery"},
		{Path: "/events", Label: "Events"},
		{Path: "/games", Label: "Games"},
		{Path: "/chat", Label: "Chat"},
		{Path: "/admin", Label: "Admin"},
		{Path: "/settings", Label: "Settings"},
	},
}

// NavigationFor returns the ordered navigation sections visible to a role.
// Pass nil for an anonymous visitor. The list is advisory for the UI; the
// gate above is the enforcement point.
func NavigationFor(role *models.UserRole) []NavItem {
	items := make([]NavItem, len(baseNav))
	copy(items, baseNav)

	if role == nil {
		return items
	}
	return append(items, roleNav[*role]...)
}
