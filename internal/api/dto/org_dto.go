package dto

import (
	"time"

	"github.com/aydocorp/portal-api/internal/domain"
)

// EmployeeRequest payload for create/update.
type EmployeeRequest struct {
	UserID          *string            `json:"user_id"`
	FullName        string             `json:"full_name"`
	Backstory       string             `json:"backstory"`
	Rank            string             `json:"rank"`
	Department      string             `json:"department"`
	Specializations []string           `json:"specializations"`
	Certifications  []string           `json:"certifications"`
	Contact         domain.ContactInfo `json:"contact"`
	IsActive        *bool              `json:"is_active"`
	LastActiveAt    *time.Time         `json:"last_active_at"`
}

// EmployeeResponse is the public roster view.
type EmployeeResponse struct {
	ID              string             `json:"id"`
	UserID          *string            `json:"user_id"`
	FullName        string             `json:"full_name"`
	Backstory       string             `json:"backstory,omitempty"`
	Rank            string             `json:"rank"`
	Department      string             `json:"department"`
	Specializations []string           `json:"specializations"`
	Certifications  []string           `json:"certifications"`
	Contact         domain.ContactInfo `json:"contact"`
	IsActive        bool               `json:"is_active"`
	LastActiveAt    *time.Time         `json:"last_active_at"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ApplyTo copies request fields onto a domain employee.
func (r EmployeeRequest) ApplyTo(employee *domain.Employee) {
	employee.UserID = r.UserID
	r.ApplyFieldsTo(employee)
}

// ApplyFieldsTo copies the mutable roster fields, leaving the account link
// untouched.
func (r EmployeeRequest) ApplyFieldsTo(employee *domain.Employee) {
	employee.FullName = r.FullName
	employee.Backstory = r.Backstory
	employee.Rank = r.Rank
	employee.Department = r.Department
	employee.Specializations = r.Specializations
	employee.Certifications = r.Certifications
	employee.Contact = r.Contact
	if r.IsActive != nil {
		employee.IsActive = *r.IsActive
	}
	employee.LastActiveAt = r.LastActiveAt
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              employee.ID,
		UserID:          employee.UserID,
		FullName:        employee.FullName,
		Backstory:       employee.Backstory,
		Rank:            employee.Rank,
		Department:      employee.Department,
		Specializations: employee.Specializations,
		Certifications:  employee.Certifications,
		Contact:         employee.Contact,
		IsActive:        employee.IsActive,
		LastActiveAt:    employee.LastActiveAt,
		CreatedAt:       employee.CreatedAt,
		UpdatedAt:       employee.UpdatedAt,
	}
}

// CareerPathRequest payload for create/update.
type CareerPathRequest struct {
	Department     string                     `json:"department"`
	Description    string                     `json:"description"`
	Ranks          []domain.Rank              `json:"ranks"`
	Certifications []domain.PathCertification `json:"certifications"`
	TrainingGuides []domain.TrainingGuide     `json:"training_guides"`
}

// CareerPathResponse is the public view of one department's progression.
type CareerPathResponse struct {
	ID             string                     `json:"id"`
	Department     string                     `json:"department"`
	Description    string                     `json:"description,omitempty"`
	Ranks          []domain.Rank              `json:"ranks"`
	Certifications []domain.PathCertification `json:"certifications"`
	TrainingGuides []domain.TrainingGuide     `json:"training_guides"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// NewCareerPathResponse maps a domain career path.
func NewCareerPathResponse(path *domain.CareerPath) CareerPathResponse {
	return CareerPathResponse{
		ID:             path.ID,
		Department:     path.Department,
		Description:    path.Description,
		Ranks:          path.Ranks,
		Certifications: path.Certifications,
		TrainingGuides: path.TrainingGuides,
		CreatedAt:      path.CreatedAt,
		UpdatedAt:      path.UpdatedAt,
	}
}

// EventRequest payload for create/update.
type EventRequest struct {
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Type              domain.EventType `json:"type"`
	Location          string           `json:"location"`
	StartTime         time.Time        `json:"start_time"`
	EndTime           *time.Time       `json:"end_time"`
	Recurring         bool             `json:"recurring"`
	RecurrencePattern string           `json:"recurrence_pattern"`
	Capacity          int              `json:"capacity"`
	Private           bool             `json:"private"`
}

// AttendanceRequest records the caller's RSVP.
type AttendanceRequest struct {
	Status domain.AttendeeStatus `json:"status"`
}

// EventResponse is the public view of a scheduled event.
type EventResponse struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description,omitempty"`
	Type              domain.EventType  `json:"type"`
	Location          string            `json:"location,omitempty"`
	StartTime         time.Time         `json:"start_time"`
	EndTime           *time.Time        `json:"end_time"`
	Recurring         bool              `json:"recurring"`
	RecurrencePattern string            `json:"recurrence_pattern,omitempty"`
	OrganizerID       string            `json:"organizer_id"`
	Attendees         []domain.Attendee `json:"attendees"`
	Capacity          int               `json:"capacity"`
	Private           bool              `json:"private"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ApplyTo copies request fields onto a domain event.
func (r EventRequest) ApplyTo(event *domain.Event) {
	event.Title = r.Title
	event.Description = r.Description
	event.Type = r.Type
	event.Location = r.Location
	event.StartTime = r.StartTime
	event.EndTime = r.EndTime
	event.Recurring = r.Recurring
	event.RecurrencePattern = r.RecurrencePattern
	event.Capacity = r.Capacity
	event.Private = r.Private
}

// NewEventResponse maps a domain event.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		Type:              event.Type,
		Location:          event.Location,
		StartTime:         event.StartTime,
		EndTime:           event.EndTime,
		Recurring:         event.Recurring,
		RecurrencePattern: event.RecurrencePattern,
		OrganizerID:       event.OrganizerID,
		Attendees:         event.Attendees,
		Capacity:          event.Capacity,
		Private:           event.Private,
		CreatedAt:         event.CreatedAt,
		UpdatedAt:         event.UpdatedAt,
	}
}

// OperationRequest payload for create/update.
type OperationRequest struct {
	Title               string                         `json:"title"`
	Description         string                         `json:"description"`
	Content             string                         `json:"content"`
	Category            domain.OperationCategory       `json:"category"`
	Classification      domain.OperationClassification `json:"classification"`
	Attachments         []domain.Attachment            `json:"attachments"`
	RelatedOperationIDs []string                       `json:"related_operation_ids"`
	Version             string                         `json:"version"`
	Status              domain.OperationStatus         `json:"status"`
	AllowedRoles        []string                       `json:"allowed_roles"`
}

// OperationResponse is the reader's view of an operation document.
type OperationResponse struct {
	ID                  string                         `json:"id"`
	Title               string                         `json:"title"`
	Description         string                         `json:"description,omitempty"`
	Content             string                         `json:"content,omitempty"`
	Category            domain.OperationCategory       `json:"category"`
	Classification      domain.OperationClassification `json:"classification"`
	AuthorID            string                         `json:"author_id"`
	Attachments         []domain.Attachment            `json:"attachments"`
	RelatedOperationIDs []string                       `json:"related_operation_ids"`
	Version             string                         `json:"version"`
	Status              domain.OperationStatus         `json:"status"`
	AllowedRoles        []string                       `json:"allowed_roles"`
	CreatedAt           time.Time                      `json:"created_at"`
	UpdatedAt           time.Time                      `json:"updated_at"`
}

// ApplyTo copies request fields onto a domain operation.
func (r OperationRequest) ApplyTo(operation *domain.Operation) {
	operation.Title = r.Title
	operation.Description = r.Description
	operation.Content = r.Content
	operation.Category = r.Category
	operation.Classification = r.Classification
	operation.Attachments = r.Attachments
	operation.RelatedOperationIDs = r.RelatedOperationIDs
	operation.Version = r.Version
	operation.Status = r.Status
	operation.AllowedRoles = r.AllowedRoles
}

// NewOperationResponse maps a domain operation.
func NewOperationResponse(operation *domain.Operation) OperationResponse {
	return OperationResponse{
		ID:                  operation.ID,
		Title:               operation.Title,
		Description:         operation.Description,
		Content:             operation.Content,
		Category:            operation.Category,
		Classification:      operation.Classification,
		AuthorID:            operation.AuthorID,
		Attachments:         operation.Attachments,
		RelatedOperationIDs: operation.RelatedOperationIDs,
		Version:             operation.Version,
		Status:              operation.Status,
		AllowedRoles:        operation.AllowedRoles,
		CreatedAt:           operation.CreatedAt,
		UpdatedAt:           operation.UpdatedAt,
	}
}
