package domain

// NavItem is one entry of the console navigation.
type NavItem struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Path    string `json:"path"`
	MinRole Role   `json:"-"`
}

var navItems = []NavItem{
	{Key: "dashboard", Label: "Dashboard", Path: "/dashboard", MinRole: RoleAgent},
	{Key: "tickets", Label: "Tickets", Path: "/tickets", MinRole: RoleAgent},
	{Key: "campaigns", Label: "Campaigns", Path: "/campaigns", MinRole: RoleAgent},
	{Key: "customers", Label: "Customers", Path: "/customers", MinRole: RoleAgent},
	{Key: "call-history", Label: "Call History", Path: "/call-history", MinRole: RoleAgent},
	{Key: "supervisor", Label: "Supervisor", Path: "/supervisor", MinRole: RoleSupervisor},
	{Key: "admin", Label: "Admin", Path: "/admin", MinRole: RoleAdmin},
	{Key: "security-logs", Label: "Security Logs", Path: "/security-logs", MinRole: RoleAdmin},
}

// Navigation returns the items u is allowed to reach, in menu order.
func Navigation(u User) []NavItem {
	out := make([]NavItem, 0, len(navItems))
	for _, item := range navItems {
		if u.HasAccess(item.MinRole) {
			out = append(out, item)
		}
	}
	return out
}

// Actions are UI hints for gated operations. The backend stays the authority;
// CanCreateCampaign in particular is advisory only.
type Actions struct {
	CanDeleteTicket   bool `json:"can_delete_ticket"`
	CanDeleteCustomer bool `json:"can_delete_customer"`
	CanCreateCampaign bool `json:"can_create_campaign"`
	CanManageUsers    bool `json:"can_manage_users"`
}

// ActionsFor derives the action hints for u.
func ActionsFor(u User) Actions {
	return Actions{
		CanDeleteTicket:   HasElevatedAccess(u),
		CanDeleteCustomer: u.HasAccess(RoleAdmin),
		CanCreateCampaign: HasElevatedAccess(u),
		CanManageUsers:    u.HasAccess(RoleAdmin),
	}
}
