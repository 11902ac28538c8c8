package admin

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	UsersByRole          map[string]int64 `json:"users_by_role"`
	Hotels               int64            `json:"hotels"`
	Rooms                int64            `json:"rooms"`
	NegotiationsByStatus map[string]int64 `json:"negotiations_by_status"`
	Bookings             map[string]int64 `json:"bookings_by_status"`
	ConfirmedRevenue     float64          `json:"confirmed_revenue"`
	// AcceptanceRate is accepted / resolved negotiations, in percent.
	AcceptanceRate int `json:"acceptance_rate"`
}

type UserListItem struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
