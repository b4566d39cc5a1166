package request

// RegisterRequest represents a registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request.
func (r *LoginRequest) Validate() map[string][]string {
	errors := map[string][]string{}
	if r.Email == "" {
		errors["email"] = append(errors["email"], "The email field is required.")
	}
	if r.Password == "" {
		errors["password"] = append(errors["password"], "The password field is required.")
	}
	if len(errors) == 0 {
		return nil
	}
	return errors
}
