package dto

import (
	syncpkg "github.com/aydocorp/portal-api/internal/sync"
)

// SyncResponse reports one on-demand reconciliation pass.
type SyncResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SyncAllResponse reports the combined pass over every domain.
type SyncAllResponse struct {
	Message        string                            `json:"message"`
	OverallSuccess bool                              `json:"overallSuccess"`
	Results        map[syncpkg.Domain]syncpkg.Result `json:"results"`
}

// SyncStatusResponse reports the last known result per domain.
type SyncStatusResponse struct {
	Statuses map[syncpkg.Domain]syncpkg.Result `json:"statuses"`
}
