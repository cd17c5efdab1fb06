package admin

// DashboardStats is the admin landing page summary
type DashboardStats struct {
	Users               int            `json:"users"`
	Providers           int            `json:"providers"`
	Services            int            `json:"services"`
	Appointments        int            `json:"appointments"`
	AppointmentsByState map[string]int `json:"appointmentsByState"`
	PendingApplications int            `json:"pendingApplications"`
}

// CreateUserRequest creates a user account from the admin panel
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,min=8,max=20"`
	Role     string `json:"role" validate:"required,role"`
}

// UpdateUserRequest edits a user account from the admin panel
type UpdateUserRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,min=8,max=20"`
}

// ChangeRoleRequest switches a user's role
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// SetBannedRequest bans or unbans a user
type SetBannedRequest struct {
	Banned bool `json:"banned"`
}
