package service

import (
	"errors"
	"testing"

	"github.com/shelora/shelora/internal/constants"
)

func TestVariationTypeLifecycle(t *testing.T) {
	env := newServiceTestEnv(t, "variation_type")

	if _, err := env.variation.CreateType(VariationTypeInput{Slug: "size"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := env.variation.CreateType(VariationTypeInput{Slug: "size", Name: "Size", InputType: "slider"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown input type, got %v", err)
	}

	created, err := env.variation.CreateType(VariationTypeInput{Slug: "shirt-size", Name: "Size"})
	if err != nil {
		t.Fatalf("create type: %v", err)
	}
	if created.InputType != constants.VariationInputSelect {
		t.Fatalf("expected default input type select, got %q", created.InputType)
	}

	if _, err := env.variation.CreateType(VariationTypeInput{Slug: "shirt-size", Name: "Again"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	updated, err := env.variation.UpdateType(created.ID, VariationTypeInput{
		Slug: "tee-size", Name: "Tee Size", InputType: constants.VariationInputColorPicker,
	})
	if err != nil {
		t.Fatalf("update type: %v", err)
	}
	if updated.Slug != "tee-size" || updated.InputType != constants.VariationInputColorPicker {
		t.Fatalf("unexpected updated type: %+v", updated)
	}
	if updated, err = env.variation.UpdateType(created.ID, VariationTypeInput{InputType: constants.VariationInputText}); err != nil {
		t.Fatalf("update input type: %v", err)
	}
	if updated.InputType != constants.VariationInputText {
		t.Fatalf("expected text input type, got %q", updated.InputType)
	}

	if err := env.variation.DeleteType(created.ID); err != nil {
		t.Fatalf("delete type: %v", err)
	}
	if _, err := env.variation.GetType(created.ID); !errors.Is(err, ErrVariationNotFound) {
		t.Fatalf("expected ErrVariationNotFound after delete, got %v", err)
	}
}

func TestVariationOptionLifecycle(t *testing.T) {
	env := newServiceTestEnv(t, "variation_option")

	size, err := env.variation.CreateType(VariationTypeInput{Slug: "shirt-size", Name: "Size"})
	if err != nil {
		t.Fatalf("create type: %v", err)
	}

	if _, err := env.variation.CreateOption(size.ID, VariationOptionInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty value, got %v", err)
	}
	if _, err := env.variation.CreateOption(size.ID+999, VariationOptionInput{Value: "M"}); !errors.Is(err, ErrVariationNotFound) {
		t.Fatalf("expected ErrVariationNotFound for missing type, got %v", err)
	}

	option, err := env.variation.CreateOption(size.ID, VariationOptionInput{Value: " M ", Label: "Medium"})
	if err != nil {
		t.Fatalf("create option: %v", err)
	}
	if option.Value != "M" || option.Label != "Medium" || !option.IsActive {
		t.Fatalf("unexpected option: %+v", option)
	}

	updated, err := env.variation.UpdateOption(option.ID, VariationOptionInput{Value: "L", Label: "Large"})
	if err != nil {
		t.Fatalf("update option: %v", err)
	}
	if updated.Value != "L" {
		t.Fatalf("expected updated value L, got %q", updated.Value)
	}

	if err := env.variation.DeleteOption(option.ID); err != nil {
		t.Fatalf("delete option: %v", err)
	}
	if err := env.variation.DeleteOption(option.ID); !errors.Is(err, ErrVariationNotFound) {
		t.Fatalf("expected ErrVariationNotFound after delete, got %v", err)
	}
}
