package category_test

import (
	"testing"

	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/pkg"
)

func TestDefaultCategoriesAreDeterministic(t *testing.T) {
	userID := pkg.GenerateULIDObject()

	first := category.GetDefaultCategoriesForUser(userID)
	second := category.GetDefaultCategoriesForUser(userID)

	if len(first) != len(category.DefaultCategories) {
		t.Fatalf("expected %d categories, got %d", len(category.DefaultCategories), len(first))
	}

	seen := make(map[string]struct{})
	for i := range first {
		if first[i].Id != second[i].Id {
			t.Fatalf("category %s id changed between calls", first[i].Name)
		}
		if _, dup := seen[first[i].Id.String()]; dup {
			t.Fatalf("duplicate id for %s", first[i].Name)
		}
		seen[first[i].Id.String()] = struct{}{}

		for j, sub := range first[i].Subcategories {
			if sub.CategoryId != first[i].Id {
				t.Fatalf("subcategory %s not linked to %s", sub.Name, first[i].Name)
			}
			if sub.Id != second[i].Subcategories[j].Id {
				t.Fatalf("subcategory %s id changed between calls", sub.Name)
			}
		}
	}

	other := category.GetDefaultCategoriesForUser(pkg.GenerateULIDObject())
	if other[0].Id == first[0].Id {
		t.Fatalf("ids must differ between users")
	}
}
