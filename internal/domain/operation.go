package domain

import (
	"strings"
	"time"
)

// OperationCategory enumerates operation document categories.
type OperationCategory string

const (
	OperationCategoryGeneral     OperationCategory = "GENERAL"
	OperationCategoryCombat      OperationCategory = "COMBAT"
	OperationCategoryLogistics   OperationCategory = "LOGISTICS"
	OperationCategoryExploration OperationCategory = "EXPLORATION"
	OperationCategoryTraining    OperationCategory = "TRAINING"
)

// OperationClassification controls who may view an operation.
type OperationClassification string

const (
	ClassificationPublic       OperationClassification = "PUBLIC"
	ClassificationInternal     OperationClassification = "INTERNAL"
	ClassificationConfidential OperationClassification = "CONFIDENTIAL"
	ClassificationRestricted   OperationClassification = "RESTRICTED"
)

// OperationStatus enumerates operation lifecycle states.
type OperationStatus string

const (
	OperationStatusDraft      OperationStatus = "DRAFT"
	OperationStatusActive     OperationStatus = "ACTIVE"
	OperationStatusArchived   OperationStatus = "ARCHIVED"
	OperationStatusDeprecated OperationStatus = "DEPRECATED"
)

// Attachment is an embedded file reference on an operation.
type Attachment struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
}

// Operation is a doctrine/mission document. Title is the natural key used
// when matching external records.
type Operation struct {
	ID                  string
	Title               string
	Description         string
	Content             string
	Category            OperationCategory
	Classification      OperationClassification
	AuthorID            string
	Attachments         []Attachment
	RelatedOperationIDs []string
	Version             string
	Status              OperationStatus
	AllowedRoles        []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ParseOperationCategory maps a free-form string onto a category, defaulting
// to GENERAL.
func ParseOperationCategory(s string) OperationCategory {
	switch OperationCategory(normalizeEnum(s)) {
	case OperationCategoryCombat:
		return OperationCategoryCombat
	case OperationCategoryLogistics:
		return OperationCategoryLogistics
	case OperationCategoryExploration:
		return OperationCategoryExploration
	case OperationCategoryTraining:
		return OperationCategoryTraining
	default:
		return OperationCategoryGeneral
	}
}

// ParseClassification maps a free-form string onto a classification,
// defaulting to INTERNAL.
func ParseClassification(s string) OperationClassification {
	switch OperationClassification(normalizeEnum(s)) {
	case ClassificationPublic:
		return ClassificationPublic
	case ClassificationConfidential:
		return ClassificationConfidential
	case ClassificationRestricted:
		return ClassificationRestricted
	default:
		return ClassificationInternal
	}
}

// ParseOperationStatus maps a free-form string onto a status, defaulting to DRAFT.
func ParseOperationStatus(s string) OperationStatus {
	switch OperationStatus(normalizeEnum(s)) {
	case OperationStatusActive:
		return OperationStatusActive
	case OperationStatusArchived:
		return OperationStatusArchived
	case OperationStatusDeprecated:
		return OperationStatusDeprecated
	default:
		return OperationStatusDraft
	}
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
