package cartControllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rajsomesetty/primerice-backend/models"
	"github.com/rajsomesetty/primerice-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartIsIdempotentIncrement(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	token := testutil.TokenFor(t, user)

	product := models.Product{Name: "Basmati Rice 5kg", Price: 100}
	require.NoError(t, db.Create(&product).Error)

	path := fmt.Sprintf("/cart/add/%d", product.ID)
	for i := 0; i < 2; i++ {
		w := testutil.DoJSON(t, r, http.MethodPost, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1, "adding the same product twice must not duplicate the row")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestGetCartComputesTotalFromCurrentPrices(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	token := testutil.TokenFor(t, user)

	product := models.Product{Name: "Basmati Rice 5kg", Price: 100}
	require.NoError(t, db.Create(&product).Error)

	path := fmt.Sprintf("/cart/add/%d", product.ID)
	testutil.DoJSON(t, r, http.MethodPost, path, token, nil)
	testutil.DoJSON(t, r, http.MethodPost, path, token, nil)

	var view struct {
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
		TotalPrice float64 `json:"total_price"`
	}
	w := testutil.DoJSON(t, r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 200.0, view.TotalPrice)

	// A price change is reflected immediately; carts never freeze prices.
	require.NoError(t, db.Model(&product).Update("price", 150).Error)
	w = testutil.DoJSON(t, r, http.MethodGet, "/cart", token, nil)
	testutil.Decode(t, w, &view)
	assert.Equal(t, 300.0, view.TotalPrice)
}

func TestGetCartEmptyForNewUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)

	w := testutil.DoJSON(t, r, http.MethodGet, "/cart", testutil.TokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Items      []interface{} `json:"items"`
		TotalPrice float64       `json:"total_price"`
	}
	testutil.Decode(t, w, &view)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalPrice)
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	owner := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	other := testutil.CreateUser(t, db, "Ravi", "9990002222", models.RoleUser)

	product := models.Product{Name: "Basmati Rice 5kg", Price: 100}
	require.NoError(t, db.Create(&product).Error)

	ownerToken := testutil.TokenFor(t, owner)
	testutil.DoJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), ownerToken, nil)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	path := fmt.Sprintf("/cart/items/%d", item.ID)

	// Someone else's token cannot touch the item.
	w := testutil.DoJSON(t, r, http.MethodPatch, path, testutil.TokenFor(t, other), map[string]int{"quantity": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPatch, path, ownerToken, map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&item, item.ID).Error)
	assert.Equal(t, 5, item.Quantity)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	token := testutil.TokenFor(t, user)

	product := models.Product{Name: "Basmati Rice 5kg", Price: 100}
	require.NoError(t, db.Create(&product).Error)
	testutil.DoJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), token, nil)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)

	w := testutil.DoJSON(t, r, http.MethodPatch, fmt.Sprintf("/cart/items/%d", item.ID), token, map[string]int{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	token := testutil.TokenFor(t, user)

	product := models.Product{Name: "Basmati Rice 5kg", Price: 100}
	require.NoError(t, db.Create(&product).Error)
	testutil.DoJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), token, nil)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)

	w := testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", item.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)

	// Cart row survives for reuse.
	var cartCount int64
	db.Model(&models.Cart{}).Count(&cartCount)
	assert.EqualValues(t, 1, cartCount)
}

func TestAddUnknownProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)

	w := testutil.DoJSON(t, r, http.MethodPost, "/cart/add/999", testutil.TokenFor(t, user), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCartReusesExistingCartRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	user := testutil.CreateUser(t, db, "Asha", "9990001111", models.RoleUser)
	token := testutil.TokenFor(t, user)

	// A cart row already present, as after losing the race on first add.
	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)

	product := models.Product{Name: "Basmati Rice 5kg", Price: 100}
	require.NoError(t, db.Create(&product).Error)

	w := testutil.DoJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var carts []models.Cart
	require.NoError(t, db.Find(&carts).Error)
	require.Len(t, carts, 1, "the existing cart row must be reused, not duplicated")

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, cart.ID, item.CartID)
}
