package domain

import "strings"

// Patient is a patient account record.
type Patient struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
