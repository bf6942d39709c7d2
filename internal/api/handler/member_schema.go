package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createMemberRequest struct {
	Name        string `json:"name"        form:"name"        validate:"required,min=5"`
	Email       string `json:"email"       form:"email"       validate:"required,member_email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required,member_phone"`
	Password    string `json:"password"    form:"password"    validate:"required,member_password"`
}

// updateMemberRequest is a partial update; absent fields stay untouched.
type updateMemberRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=5"`
	Email       *string `json:"email"       validate:"omitempty,member_email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,member_phone"`
	Password    *string `json:"password"    validate:"omitempty,member_password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// --- Response types ---

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type memberResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Roles       []string `json:"roles"`
}
