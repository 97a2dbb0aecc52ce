package moderation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
)

var categoryCols = []string{"description", "id", "is_active", "name"}

func TestActiveCategories(t *testing.T) {
	s, mock := setupSQLStore(t)

	mock.ExpectQuery(`SELECT .* FROM "tithe_offering_categories" WHERE \("is_active" IS TRUE\) ORDER BY "name" ASC`).
		WillReturnRows(sqlmock.NewRows(categoryCols).
			AddRow(nil, 2, true, "Building fund").
			AddRow("Sunday giving", 1, true, "General"))

	categories, err := ActiveCategories(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Building fund", categories[0].Name)
	assert.Nil(t, categories[0].Description)
	require.NotNil(t, categories[1].Description)
	assert.Equal(t, "Sunday giving", *categories[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchQueueAttachesCategoryNames(t *testing.T) {
	s, mock := setupSQLStore(t)

	mock.ExpectQuery(`SELECT .* FROM "tithe_offerings" WHERE \("status" = 'verified'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "status"}).
			AddRow(5, 2, "verified").
			AddRow(6, nil, "verified").
			AddRow(7, 2, "verified").
			AddRow(8, 9, "verified"))
	mock.ExpectQuery(`SELECT .* FROM "tithe_offering_verifications" WHERE \("tithe_offering_id" IN \(5, 6, 7, 8\)\)`).
		WillReturnRows(sqlmock.NewRows(verificationCols))
	mock.ExpectQuery(`SELECT .* FROM "tithe_offering_categories" WHERE \("id" IN \(2, 9\)\)`).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(nil, 2, false, "Building fund"))

	list, err := FetchQueue(context.Background(), s, mustLookup(t, "tithes"), lifecycle.StatusVerified)
	require.NoError(t, err)
	got := *list.(*[]models.TitheOffering)
	require.Len(t, got, 4)

	require.NotNil(t, got[0].Category_Name)
	assert.Equal(t, "Building fund", *got[0].Category_Name)
	assert.Nil(t, got[1].Category_Name)
	require.NotNil(t, got[2].Category_Name)
	assert.Equal(t, "Building fund", *got[2].Category_Name)
	assert.Nil(t, got[3].Category_Name, "a deleted category leaves the name empty")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachCategoryNamesWithoutCategories(t *testing.T) {
	spy := &spyStore{}
	collections := []models.TitheOffering{{ID: 1}, {ID: 2}}

	require.NoError(t, AttachCategoryNames(context.Background(), spy, collections))
	assert.Empty(t, spy.Calls())
}
