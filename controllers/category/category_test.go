package categoryControllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rajsomesetty/primerice-backend/models"
	"github.com/rajsomesetty/primerice-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDuplicateName(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	admin := testutil.CreateUser(t, db, "Root", "9990009999", models.RoleAdmin)
	token := testutil.TokenFor(t, admin)

	w := testutil.DoJSON(t, r, http.MethodPost, "/admin/categories", token, map[string]string{"name": "Rice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoJSON(t, r, http.MethodPost, "/admin/categories", token, map[string]string{"name": "Rice"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCategoryWithProductsRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	admin := testutil.CreateUser(t, db, "Root", "9990009999", models.RoleAdmin)
	token := testutil.TokenFor(t, admin)

	category := models.Category{Name: "Rice"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Basmati Rice 5kg", Price: 100, CategoryID: &category.ID}).Error)

	path := fmt.Sprintf("/admin/categories/%d", category.ID)
	w := testutil.DoJSON(t, r, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unassign the product, then deletion goes through.
	require.NoError(t, db.Model(&models.Product{}).Where("category_id = ?", category.ID).
		Update("category_id", nil).Error)
	w = testutil.DoJSON(t, r, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCategoriesPublicList(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewServer(t, db)
	require.NoError(t, db.Create(&models.Category{Name: "Rice"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Lentils"}).Error)

	w := testutil.DoJSON(t, r, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	testutil.Decode(t, w, &categories)
	require.Len(t, categories, 2)
	assert.Equal(t, "Lentils", categories[0].Name, "list is ordered by name")
}
