package addressControllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rajsomesetty/primerice-backend/models"
	"github.com/rajsomesetty/primerice-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	token := testutil.TokenFor(t, user)

	w := testutil.DoJSON(t, r, http.MethodPost, "/addresses", token, map[string]string{
		"name":         "Asha",
		"mobile":       "9990001111",
		"address_line": "12 Main Road",
		"city":         "Chennai",
		"pincode":      "600001",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Address
	testutil.Decode(t, w, &created)
	assert.Equal(t, user.ID, created.UserID)

	w = testutil.DoJSON(t, r, http.MethodGet, "/addresses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Address
	testutil.Decode(t, w, &listed)
	require.Len(t, listed, 1)

	w = testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/addresses/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, r, http.MethodGet, "/addresses", token, nil)
	testutil.Decode(t, w, &listed)
	assert.Empty(t, listed)
}

func TestAddressValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)

	w := testutil.DoJSON(t, r, http.MethodPost, "/addresses", testutil.TokenFor(t, user), map[string]string{
		"name": "Asha",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteForeignAddressNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	owner := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	other := testutil.CreateUser(t, db, "Ravi", "9990002222", models.RoleUser)

	address := models.Address{UserID: owner.ID, Name: "Asha", City: "Chennai"}
	require.NoError(t, db.Create(&address).Error)

	w := testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/addresses/%d", address.ID), testutil.TokenFor(t, other), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.Address{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
