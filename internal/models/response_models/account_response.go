package response_models

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	ClientID   *string `json:"clientId,omitempty"`
	ClientName string  `json:"clientName,omitempty"`
	Pending    bool    `json:"pendingInvitation"`
	CreatedAt  string  `json:"createdAt"`
}
