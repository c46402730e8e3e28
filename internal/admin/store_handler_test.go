package admin_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"restaurant-management-backend/internal/admin"
	"restaurant-management-backend/internal/models"
	"restaurant-management-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeStore(t *testing.T, resp *http.Response) admin.StoreResponse {
	t.Helper()
	var s admin.StoreResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	return s
}

func TestCreateStore(t *testing.T) {
	e := setup(t)

	resp := e.request(t, "POST", "/api/admin/stores",
		`{"name":"Merkez","latitude":41.0082,"longitude":28.9784}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	s := decodeStore(t, resp)
	assert.Equal(t, "Merkez", s.Name)
	assert.Equal(t, 41.0082, s.Latitude)
	assert.Equal(t, 28.9784, s.Longitude)
}

func TestCreateStore_MissingCoordinates(t *testing.T) {
	e := setup(t)

	resp := e.request(t, "POST", "/api/admin/stores", `{"name":"Merkez","latitude":41.0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateStore_NoNameUniqueness(t *testing.T) {
	e := setup(t)

	// Aynı isimle ikinci mağaza serbest
	first := e.request(t, "POST", "/api/admin/stores",
		`{"name":"Merkez","latitude":41.0,"longitude":28.9}`)
	second := e.request(t, "POST", "/api/admin/stores",
		`{"name":"Merkez","latitude":39.9,"longitude":32.8}`)
	assert.Equal(t, http.StatusCreated, first.StatusCode)
	assert.Equal(t, http.StatusCreated, second.StatusCode)
}

func TestGetStore(t *testing.T) {
	e := setup(t)
	store := testutil.CreateStore(t, e.db, "Merkez", 41.0, 28.9)

	resp := e.request(t, "GET", "/api/admin/stores/"+itoa(store.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Merkez", decodeStore(t, resp).Name)

	resp = e.request(t, "GET", "/api/admin/stores/99", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListStores(t *testing.T) {
	e := setup(t)
	testutil.CreateStore(t, e.db, "Merkez", 41.0, 28.9)
	testutil.CreateStore(t, e.db, "Kadıköy", 40.99, 29.03)

	resp := e.request(t, "GET", "/api/admin/stores", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stores []admin.StoreResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stores))
	assert.Len(t, stores, 2)
}

func TestUpdateStore_OverwritesAllFields(t *testing.T) {
	e := setup(t)
	store := testutil.CreateStore(t, e.db, "Merkez", 41.0, 28.9)

	resp := e.request(t, "PUT", "/api/admin/stores/"+itoa(store.ID),
		`{"name":"Yeni Merkez","latitude":39.92,"longitude":32.85}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	s := decodeStore(t, resp)
	assert.Equal(t, "Yeni Merkez", s.Name)
	assert.Equal(t, 39.92, s.Latitude)
	assert.Equal(t, 32.85, s.Longitude)
}

func TestUpdateStore_NotFound(t *testing.T) {
	e := setup(t)

	resp := e.request(t, "PUT", "/api/admin/stores/99",
		`{"name":"Hayalet","latitude":1.0,"longitude":2.0}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteStore_CascadesToUsers(t *testing.T) {
	e := setup(t)
	store := testutil.CreateStore(t, e.db, "Merkez", 41.0, 28.9)
	other := testutil.CreateStore(t, e.db, "Kadıköy", 40.99, 29.03)
	testutil.CreateUser(t, e.db, "alice", "a@x.com", "pw", "STAFF", &store.ID)
	testutil.CreateUser(t, e.db, "bob", "b@x.com", "pw", "STAFF", &store.ID)
	testutil.CreateUser(t, e.db, "carol", "c@x.com", "pw", "STAFF", &other.ID)

	resp := e.request(t, "DELETE", "/api/admin/stores/"+itoa(store.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Mağazaya atanmış kullanıcılar da silinir, diğerleri kalır
	var usernames []string
	require.NoError(t, e.db.Model(&models.User{}).Pluck("username", &usernames).Error)
	assert.Equal(t, []string{"carol"}, usernames)

	var storeCount int64
	e.db.Model(&models.Store{}).Count(&storeCount)
	assert.EqualValues(t, 1, storeCount)
}

func TestDeleteStore_NotFound(t *testing.T) {
	e := setup(t)

	resp := e.request(t, "DELETE", "/api/admin/stores/99", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListStoreUsers(t *testing.T) {
	e := setup(t)
	store := testutil.CreateStore(t, e.db, "Merkez", 41.0, 28.9)
	testutil.CreateUser(t, e.db, "alice", "a@x.com", "pw", "STAFF", &store.ID)
	testutil.CreateUser(t, e.db, "bob", "b@x.com", "pw", "STAFF", nil)

	resp := e.request(t, "GET", "/api/admin/stores/"+itoa(store.ID)+"/users", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []admin.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	require.NotNil(t, users[0].Store)
	assert.Equal(t, store.ID, users[0].Store.ID)
}

func TestListStoreUsers_StoreNotFound(t *testing.T) {
	e := setup(t)

	resp := e.request(t, "GET", "/api/admin/stores/99/users", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
