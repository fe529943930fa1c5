package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/accounts-service/internal/model"
)

func TestNewAccountsResponse_EmptyPageEncodesAsArray(t *testing.T) {
	resp := model.NewAccountsResponse(5, nil)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_count":5,"accounts":[]}`, string(raw))
}

func TestNewAccountViews_KeepsOrderAndHidesInternalFields(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := []model.Account{
		{AccountID: 9, Username: "nine", Email: "nine@example.com", Status: "active", CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
		{AccountID: 4, Username: "four", Email: "four@example.com", Status: "suspended", CreatedAt: created},
	}

	views := model.NewAccountViews(in)
	require.Len(t, views, 2)
	assert.Equal(t, int64(9), views[0].AccountID)
	assert.Equal(t, int64(4), views[1].AccountID)
	assert.Equal(t, "suspended", views[1].Status)

	raw, err := json.Marshal(views[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "updated_at")
	assert.Contains(t, string(raw), `"account_id":9`)
}
