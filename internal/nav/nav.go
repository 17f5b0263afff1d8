// Package nav decides which screens a role may see. Visibility is a pure
// function of the authenticated role plus an optional view-as override, read
// from a static permission table.
package nav

import "github.com/marespinozac/comanda/app/models"

// Tab identifies one screen in the shell.
type Tab string

const (
	TabSales      Tab = "sales"
	TabProducts   Tab = "products"
	TabCategories Tab = "categories"
	TabKitchen    Tab = "orders-kitchen"
	TabBar        Tab = "orders-bar"
	TabReports    Tab = "reports"
	TabSettings   Tab = "settings"
)

// allTabs is the full shell, in display order.
var allTabs = []Tab{
	TabSales, TabProducts, TabCategories,
	TabKitchen, TabBar, TabReports, TabSettings,
}

// permissions is the static role → tabs table. Every role must have an entry.
var permissions = map[models.Role][]Tab{
	models.RoleAdmin:     allTabs,
	models.RoleManager:   allTabs,
	models.RoleCashier:   {TabSales, TabReports},
	models.RoleWaiter:    {TabSales},
	models.RoleCook:      {TabKitchen},
	models.RoleBartender: {TabBar},
}

// TabsFor returns the tabs visible to a role, in display order.
// Unknown roles see nothing.
func TabsFor(role models.Role) []Tab {
	tabs, ok := permissions[role]
	if !ok {
		return nil
	}
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	return out
}

// Nav tracks the shell's navigation state for one signed-in user.
type Nav struct {
	role   models.Role
	viewAs models.Role // "" when not simulating
	active Tab
}

// New starts navigation for the given role on the sales tab, falling back to
// the role's first visible tab when sales isn't available to it.
func New(role models.Role) *Nav {
	n := &Nav{role: role}
	n.resetActive()
	return n
}

// Effective is the role whose permissions currently apply.
func (n *Nav) Effective() models.Role {
	if n.viewAs != "" {
		return n.viewAs
	}
	return n.role
}

// Visible returns the tabs for the effective role.
func (n *Nav) Visible() []Tab {
	return TabsFor(n.Effective())
}

// Active returns the currently selected tab.
func (n *Nav) Active() Tab { return n.active }

// Activate selects a tab; it must be visible to the effective role.
func (n *Nav) Activate(t Tab) bool {
	for _, v := range n.Visible() {
		if v == t {
			n.active = t
			return true
		}
	}
	return false
}

// CanViewAs reports whether the signed-in role may simulate other roles.
// Only managers get the override; it lets them check each staff view without
// re-authenticating.
func (n *Nav) CanViewAs() bool {
	return n.role == models.RoleManager
}

// ViewAs switches the simulated role. The empty role drops the simulation.
// Switching resets the active tab to sales, or to the role's first visible
// tab when sales isn't available to it (a cook lands on the kitchen board).
func (n *Nav) ViewAs(role models.Role) bool {
	if !n.CanViewAs() {
		return false
	}
	if role != "" && !role.Valid() {
		return false
	}
	n.viewAs = role
	n.resetActive()
	return true
}

// Simulating returns the view-as role, or "" when none is set.
func (n *Nav) Simulating() models.Role { return n.viewAs }

func (n *Nav) resetActive() {
	visible := n.Visible()
	n.active = TabSales
	for _, t := range visible {
		if t == TabSales {
			return
		}
	}
	if len(visible) > 0 {
		n.active = visible[0]
	}
}
