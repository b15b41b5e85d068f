package dto

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	InviteCodeToUse string `json:"inviteCodeToUse" validate:"required"`
}

type UserLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is what the auth service hands the controller: the signed token
// plus the payload echoed to the client. The controller owns the cookie.
type AuthResult struct {
	Token    string `json:"-"`
	UserId   string `json:"userId"`
	Username string `json:"username"`
}

type InviteCodeStatusResponse struct {
	Success          bool   `json:"success"`
	InviteCode       string `json:"inviteCode"`
	IsInviteCodeUsed bool   `json:"isInviteCodeUsed"`
	Message          string `json:"message,omitempty"`
}
