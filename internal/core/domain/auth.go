package domain

// AdminCredentials is the admin login payload.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login is the email/password payload shared by doctors and patients.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credential is what a successful login yields.
type Credential struct {
	Token string `json:"-"`
}

// Navigation tells the client where to go after a session transition.
type Navigation struct {
	Target string `json:"target"`
}
