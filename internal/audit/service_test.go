package audit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-management-backend/internal/audit"
	"restaurant-management-backend/internal/models"
	"restaurant-management-backend/internal/server"
	"restaurant-management-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLog(t *testing.T) {
	db := testutil.SetupDB(t)

	audit.WriteLog(audit.LogOptions{
		ActorName:   "admin",
		EntityType:  "user",
		EntityID:    5,
		Action:      models.AuditActionCreate,
		Description: "Kullanıcı oluşturuldu: alice",
		After:       map[string]string{"username": "alice"},
	})

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "admin", entry.ActorName)
	assert.Equal(t, "user", entry.EntityType)
	assert.EqualValues(t, 5, entry.EntityID)
	assert.Equal(t, models.AuditActionCreate, entry.Action)
	assert.Equal(t, "null", entry.BeforeData)
	assert.JSONEq(t, `{"username":"alice"}`, entry.AfterData)
}

func TestListAuditLogs_Filtered(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.NewConfig()
	app := server.New(cfg)
	token := testutil.AdminToken(t, cfg)

	audit.WriteLog(audit.LogOptions{ActorName: "admin", EntityType: "user", EntityID: 1, Action: models.AuditActionCreate})
	audit.WriteLog(audit.LogOptions{ActorName: "admin", EntityType: "store", EntityID: 2, Action: models.AuditActionDelete})

	req := httptest.NewRequest("GET", "/api/admin/audit-logs?entity_type=store", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var logs []audit.AuditLogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "store", logs[0].EntityType)
	assert.EqualValues(t, 2, logs[0].EntityID)
}
