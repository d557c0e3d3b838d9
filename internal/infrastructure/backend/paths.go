package backend

import "fmt"

// Backend routes, relative to the configured base URL.
const (
	pathToken          = "/auth/token"
	pathTokenRefresh   = "/auth/token/refresh"
	pathVerifyPassword = "/auth/verify-password"

	pathUsers        = "/users"
	pathCurrentUser  = "/users/me"
	pathCustomers    = "/customers"
	pathCalls        = "/calls"
	pathTickets      = "/tickets"
	pathCampaigns    = "/campaigns"
	pathSecurityLogs = "/security-logs"
	pathStats        = "/supervisor/stats"
)

func itemPath(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}

func campaignAction(id int, action string) string {
	return fmt.Sprintf("%s/%d/%s", pathCampaigns, id, action)
}
