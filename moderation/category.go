package moderation

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

const categoryTable = "tithe_offering_categories"

// ActiveCategories lists the categories offered on the collection form, by name.
func ActiveCategories(ctx context.Context, s store.RecordStore) ([]models.TitheOfferingCategory, error) {
	categories := []models.TitheOfferingCategory{}
	err := s.Select(ctx, store.Query{
		Table: categoryTable,
		Where: []exp.Expression{goqu.C("is_active").IsTrue()},
		Order: []exp.OrderedExpression{goqu.C("name").Asc()},
	}, &categories)
	return categories, err
}

// AttachCategoryNames sets the category name of every collection that has one.
// Inactive categories still resolve so older collections keep their label.
func AttachCategoryNames(ctx context.Context, s store.RecordStore, collections []models.TitheOffering) error {
	seen := map[int]bool{}
	ids := []int{}
	for _, c := range collections {
		if c.Category_ID != nil && !seen[*c.Category_ID] {
			seen[*c.Category_ID] = true
			ids = append(ids, *c.Category_ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var categories []models.TitheOfferingCategory
	if err := s.Select(ctx, store.Query{
		Table: categoryTable,
		Where: []exp.Expression{goqu.C("id").In(ids)},
	}, &categories); err != nil {
		return err
	}

	names := make(map[int]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	for i := range collections {
		if id := collections[i].Category_ID; id != nil {
			if name, ok := names[*id]; ok {
				collections[i].Category_Name = &name
			}
		}
	}
	return nil
}
