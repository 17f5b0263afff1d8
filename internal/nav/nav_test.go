package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/nav"
)

func TestTabsForExactPermissions(t *testing.T) {
	all := []nav.Tab{
		nav.TabSales, nav.TabProducts, nav.TabCategories,
		nav.TabKitchen, nav.TabBar, nav.TabReports, nav.TabSettings,
	}

	cases := []struct {
		role models.Role
		want []nav.Tab
	}{
		{models.RoleAdmin, all},
		{models.RoleManager, all},
		{models.RoleCashier, []nav.Tab{nav.TabSales, nav.TabReports}},
		{models.RoleWaiter, []nav.Tab{nav.TabSales}},
		{models.RoleCook, []nav.Tab{nav.TabKitchen}},
		{models.RoleBartender, []nav.Tab{nav.TabBar}},
	}

	total := 0
	for _, tc := range cases {
		got := nav.TabsFor(tc.role)
		assert.Equal(t, tc.want, got, "role %s", tc.role)
		total += len(got)
	}
	// 7 + 7 + 2 + 1 + 1 + 1
	assert.Equal(t, 19, total)
}

func TestTabsForUnknownRole(t *testing.T) {
	assert.Nil(t, nav.TabsFor(models.Role("JANITOR")))
}

func TestNewStartsOnSalesOrFirstVisible(t *testing.T) {
	assert.Equal(t, nav.TabSales, nav.New(models.RoleWaiter).Active())
	assert.Equal(t, nav.TabKitchen, nav.New(models.RoleCook).Active())
	assert.Equal(t, nav.TabBar, nav.New(models.RoleBartender).Active())
}

func TestActivateRejectsHiddenTab(t *testing.T) {
	n := nav.New(models.RoleWaiter)

	require.False(t, n.Activate(nav.TabProducts))
	assert.Equal(t, nav.TabSales, n.Active())

	require.True(t, n.Activate(nav.TabSales))
}

func TestViewAsManagerOnly(t *testing.T) {
	waiter := nav.New(models.RoleWaiter)
	assert.False(t, waiter.CanViewAs())
	assert.False(t, waiter.ViewAs(models.RoleCook))

	admin := nav.New(models.RoleAdmin)
	assert.False(t, admin.CanViewAs())

	mgr := nav.New(models.RoleManager)
	require.True(t, mgr.CanViewAs())
	require.True(t, mgr.ViewAs(models.RoleCook))

	assert.Equal(t, models.RoleCook, mgr.Effective())
	assert.Equal(t, []nav.Tab{nav.TabKitchen}, mgr.Visible())
	assert.Equal(t, nav.TabKitchen, mgr.Active())
}

func TestViewAsOffRestoresOwnRole(t *testing.T) {
	mgr := nav.New(models.RoleManager)
	require.True(t, mgr.ViewAs(models.RoleWaiter))
	require.True(t, mgr.ViewAs(""))

	assert.Equal(t, models.RoleManager, mgr.Effective())
	assert.Equal(t, models.Role(""), mgr.Simulating())
	assert.Equal(t, nav.TabSales, mgr.Active())
}

func TestViewAsRejectsUnknownRole(t *testing.T) {
	mgr := nav.New(models.RoleManager)
	assert.False(t, mgr.ViewAs(models.Role("JANITOR")))
	assert.Equal(t, models.Role(""), mgr.Simulating())
}
