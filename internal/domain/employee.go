package domain

import "time"

// ContactInfo is the embedded contact record on an employee.
type ContactInfo struct {
	Discord   string `json:"discord,omitempty"`
	RSIHandle string `json:"rsi_handle,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Employee is an org roster entry. At most one employee record may reference
// a given account.
type Employee struct {
	ID              string
	UserID          *string
	FullName        string
	Backstory       string
	Rank            string
	Department      string
	Specializations []string
	Certifications  []string
	Contact         ContactInfo
	IsActive        bool
	LastActiveAt    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
