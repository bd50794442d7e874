package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

// loginRequest accepts the OAuth2 password form or the equivalent JSON body.
type loginRequest struct {
	Username  string `form:"username"   json:"username"   validate:"required"`
	Password  string `form:"password"   json:"password"   validate:"required"`
	GrantType string `form:"grant_type" json:"grant_type"`
	Scope     string `form:"scope"      json:"scope"`
}

type createUserRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"   validate:"required,max=72"`
	// Role is accepted for compatibility and ignored; new users are always "User".
	Role string `json:"role,omitempty"`
}

// updateUserRequest fields are optional; absent fields are left unchanged.
type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Password  *string `json:"password"   validate:"omitnil,max=72"`
}
