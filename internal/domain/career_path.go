package domain

import "time"

// Rank is an embedded step within a career path, ordered by Level.
type Rank struct {
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Level            int      `json:"level"`
	Paygrade         string   `json:"paygrade,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
}

// PathCertification is a certification offered along a career path.
type PathCertification struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TrainingGuide is an embedded training document reference.
type TrainingGuide struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// CareerPath describes progression within one department. Department name is
// unique across all career paths.
type CareerPath struct {
	ID             string
	Department     string
	Description    string
	Ranks          []Rank
	Certifications []PathCertification
	TrainingGuides []TrainingGuide
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
