package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aydocorp/portal-api/internal/api/dto"
	"github.com/aydocorp/portal-api/internal/domain"
)

func TestUpdateOperationKeepsTitleAndAuthor(t *testing.T) {
	operations := &stubOperationRepo{operations: []domain.Operation{{
		ID: "op-1", Title: "Convoy Escort Doctrine", AuthorID: "user-author",
		Category:       domain.OperationCategoryGeneral,
		Classification: domain.ClassificationInternal,
		Status:         domain.OperationStatusDraft,
		Version:        "1.0",
	}}}
	app, token := newHandlerApp(t, &stubEventRepo{}, operations)

	resp := doJSON(t, app, http.MethodPut, "/operations/op-1", token, dto.OperationRequest{
		Title:          "Renamed Doctrine",
		Description:    "revised",
		Content:        "new body",
		Category:       domain.OperationCategoryGeneral,
		Classification: domain.ClassificationInternal,
		Status:         domain.OperationStatusActive,
		Version:        "2.0",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data dto.OperationResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	assert.Equal(t, "Convoy Escort Doctrine", envelope.Data.Title)
	assert.Equal(t, "user-author", envelope.Data.AuthorID)
	assert.Equal(t, "new body", envelope.Data.Content)
	assert.Equal(t, "2.0", envelope.Data.Version)

	stored, err := operations.GetByID(context.Background(), "op-1")
	require.NoError(t, err)
	assert.Equal(t, "Convoy Escort Doctrine", stored.Title)
	assert.Equal(t, "user-author", stored.AuthorID)
	assert.Equal(t, domain.OperationStatusActive, stored.Status)
}
