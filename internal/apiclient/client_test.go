package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockview/internal/models"
)

func newTestClient(handler http.HandlerFunc) (Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestListInventory_Success(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/inventory", r.URL.Path)
		json.NewEncoder(w).Encode([]models.InventoryRecord{
			{ID: "65a", Name: "Bolt", Category: "Hardware", Quantity: 0},
		})
	})
	defer srv.Close()

	records, err := client.ListInventory(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "65a", records[0].ID)
	assert.Equal(t, "Bolt", records[0].Name)
}

func TestListInventory_ServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.ListInventory(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Failed to fetch inventory", err.Error())
}

func TestListInventory_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections
	client := New(srv.URL, time.Second)

	_, err := client.ListInventory(context.Background())

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestCreateItem_Success(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/inventory", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft models.ItemDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Wrench", draft.Name)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.InventoryRecord{
			ID: "new1", Name: draft.Name, Category: draft.Category, Quantity: draft.Quantity,
		})
	})
	defer srv.Close()

	record, err := client.CreateItem(context.Background(), &models.ItemDraft{
		Name: "Wrench", Category: "Tools", Quantity: 7,
	})

	require.NoError(t, err)
	assert.Equal(t, "new1", record.ID)
	assert.Equal(t, 7, record.Quantity)
}

func TestCreateItem_Failure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	defer srv.Close()

	_, err := client.CreateItem(context.Background(), &models.ItemDraft{Name: "x", Category: "y"})

	var createErr *CreateError
	require.ErrorAs(t, err, &createErr)
	assert.Equal(t, "Failed to add item", err.Error())
}

func TestUpdateItem_Success(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/inventory/65a", r.URL.Path)
		json.NewEncoder(w).Encode(models.InventoryRecord{
			ID: "65a", Name: "Bolt", Category: "Hardware", Quantity: 40,
		})
	})
	defer srv.Close()

	record, err := client.UpdateItem(context.Background(), "65a", &models.ItemDraft{
		Name: "Bolt", Category: "Hardware", Quantity: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, 40, record.Quantity)
}

func TestUpdateItem_Failure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	_, err := client.UpdateItem(context.Background(), "gone", &models.ItemDraft{Name: "x", Category: "y"})

	var updateErr *UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, "Failed to update item", err.Error())
}

func TestDeleteItem(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/inventory/65a", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	assert.NoError(t, client.DeleteItem(context.Background(), "65a"))
}

func TestDeleteItem_Failure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	err := client.DeleteItem(context.Background(), "65a")

	var deleteErr *DeleteError
	require.ErrorAs(t, err, &deleteErr)
	assert.Equal(t, "Failed to delete item", err.Error())
}

func TestLogin_Success(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123", "role": "user"})
	})
	defer srv.Close()

	resp, err := client.Login(context.Background(), &models.Credentials{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
}

func TestLogin_Unauthorized(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), &models.Credentials{Username: "alice", Password: "wrong"})

	var invalidErr *InvalidCredentialsError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "Invalid username or password. Please check your credentials.", err.Error())
}

func TestLogin_ServiceMessagePassedThrough(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "Auth service is down for maintenance."})
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), &models.Credentials{Username: "alice", Password: "pw"})

	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "Auth service is down for maintenance.", err.Error())
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), &models.Credentials{Username: "alice", Password: "pw"})

	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "Login failed, please try again.", err.Error())
}

func TestRegister_Success(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})
	defer srv.Close()

	err := client.Register(context.Background(), &models.Credentials{Username: "bob", Password: "pw"})

	assert.NoError(t, err)
}

func TestRegister_ServiceMessagePassedThrough(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Username already taken."})
	})
	defer srv.Close()

	err := client.Register(context.Background(), &models.Credentials{Username: "bob", Password: "pw"})

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "Username already taken.", err.Error())
}

func TestRegister_GenericFailureMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	err := client.Register(context.Background(), &models.Credentials{Username: "bob", Password: "pw"})

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "Registration failed, please try again.", err.Error())
}
