package domain

// Role represents the access level a test token grants on the
// ticketing API.
type Role string

const (
	RoleRequester Role = "requester"
	RoleApprover  Role = "approver"
	RoleAdmin     Role = "admin"
)

// UserProfile is the identity a test token is minted for. Fields are
// copied into the signed payload as-is; no validation is performed.
type UserProfile struct {
	ID           string
	EmployeeID   string
	Name         string
	Email        string
	Role         Role
	Department   string
	TestPassword string
}

// DefaultProfiles returns the fixture identities the ticketing server
// is seeded with, in the order tokens are generated and printed.
func DefaultProfiles() []UserProfile {
	return []UserProfile{
		{
			ID:           "req-001",
			EmployeeID:   "EMP001",
			Name:         "John Requester",
			Email:        "john.requester@company.com",
			Role:         RoleRequester,
			Department:   "IT",
			TestPassword: "requester-pass-001",
		},
		{
			ID:           "app-001",
			EmployeeID:   "EMP002",
			Name:         "Jane Approver",
			Email:        "jane.approver@company.com",
			Role:         RoleApprover,
			Department:   "Finance",
			TestPassword: "approver-pass-001",
		},
		{
			ID:           "adm-001",
			EmployeeID:   "EMP003",
			Name:         "Admin User",
			Email:        "admin@company.com",
			Role:         RoleAdmin,
			Department:   "GA",
			TestPassword: "admin-pass-001",
		},
	}
}
