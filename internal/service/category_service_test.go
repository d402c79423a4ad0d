package service

import (
	"errors"
	"testing"
)

func TestCategoryCreateAndSlugConflict(t *testing.T) {
	env := newServiceTestEnv(t, "category_create")

	created, err := env.category.Create(CategoryInput{Slug: " sinhala-vinyl ", Name: "Sinhala Vinyl"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if created.Slug != "sinhala-vinyl" || !created.IsActive {
		t.Fatalf("unexpected category: %+v", created)
	}

	if _, err := env.category.Create(CategoryInput{Slug: "sinhala-vinyl", Name: "Duplicate"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	if _, err := env.category.Create(CategoryInput{Slug: "no-name"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCategoryGetBySlug(t *testing.T) {
	env := newServiceTestEnv(t, "category_get")
	createTestCategory(t, env.db, "cassettes")

	got, err := env.category.GetBySlug("cassettes")
	if err != nil || got.Slug != "cassettes" {
		t.Fatalf("expected category, got %v %v", got, err)
	}
	if _, err := env.category.GetBySlug("missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	env := newServiceTestEnv(t, "category_delete")
	category := createTestCategory(t, env.db, "vinyl")
	product := createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)

	if err := env.category.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := env.db.Delete(product).Error; err != nil {
		t.Fatalf("remove product: %v", err)
	}
	if err := env.category.Delete(category.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if _, err := env.category.GetByID(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}
