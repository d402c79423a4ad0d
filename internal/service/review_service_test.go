package service

import (
	"errors"
	"testing"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/repository"
)

func TestReviewSubmitAndModeration(t *testing.T) {
	env := newServiceTestEnv(t, "review_submit")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)

	if _, err := env.review.Submit(user.ID, "lp", ReviewInput{Rating: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for rating 0, got %v", err)
	}
	if _, err := env.review.Submit(user.ID, "lp", ReviewInput{Rating: 6}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for rating 6, got %v", err)
	}
	if _, err := env.review.Submit(user.ID, "no-such", ReviewInput{Rating: 5}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	review, err := env.review.Submit(user.ID, "lp", ReviewInput{Rating: 5, Title: " Great pressing ", Comment: "Warm sound."})
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if review.IsApproved {
		t.Fatalf("expected fresh review to await moderation")
	}
	if review.IsVerifiedPurchase {
		t.Fatalf("expected unverified purchase without delivered order")
	}
	if review.Title != "Great pressing" {
		t.Fatalf("expected trimmed title, got %q", review.Title)
	}

	if _, err := env.review.Submit(user.ID, "lp", ReviewInput{Rating: 4}); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists on second submit, got %v", err)
	}

	// 审核前买家侧不可见
	visible, total, err := env.review.ListForProduct("lp", 1, 10)
	if err != nil || total != 0 || len(visible) != 0 {
		t.Fatalf("expected no visible reviews before approval, got %d %v", total, err)
	}

	if _, err := env.review.SetApproval(review.ID, true); err != nil {
		t.Fatalf("approve review: %v", err)
	}
	visible, total, err = env.review.ListForProduct("lp", 1, 10)
	if err != nil || total != 1 || len(visible) != 1 {
		t.Fatalf("expected one visible review after approval, got %d %v", total, err)
	}
	if visible[0].User == nil || visible[0].User.ID != user.ID {
		t.Fatalf("expected reviewer preloaded, got %+v", visible[0].User)
	}

	if _, err := env.review.SetApproval(review.ID, false); err != nil {
		t.Fatalf("reject review: %v", err)
	}
	if _, total, _ = env.review.ListForProduct("lp", 1, 10); total != 0 {
		t.Fatalf("expected rejected review hidden, got %d", total)
	}

}

func TestReviewVerifiedPurchase(t *testing.T) {
	env := newServiceTestEnv(t, "review_verified")
	buyer := createTestUser(t, env.db, "buyer@example.com")
	browser := createTestUser(t, env.db, "browser@example.com")

	order, _ := placeTestOrder(t, env, buyer, 1)
	if _, err := env.order.UpdateOrderStatus(order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("ship order: %v", err)
	}
	if _, err := env.order.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("deliver order: %v", err)
	}

	review, err := env.review.Submit(buyer.ID, "lp", ReviewInput{Rating: 5})
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if !review.IsVerifiedPurchase {
		t.Fatalf("expected verified purchase after delivered order")
	}

	other, err := env.review.Submit(browser.ID, "lp", ReviewInput{Rating: 3})
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if other.IsVerifiedPurchase {
		t.Fatalf("expected unverified purchase for user without orders")
	}
}

func TestReviewUpdateResetsApproval(t *testing.T) {
	env := newServiceTestEnv(t, "review_update")
	owner := createTestUser(t, env.db, "owner@example.com")
	stranger := createTestUser(t, env.db, "stranger@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)

	review, err := env.review.Submit(owner.ID, "lp", ReviewInput{Rating: 4, Comment: "Decent."})
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if _, err := env.review.SetApproval(review.ID, true); err != nil {
		t.Fatalf("approve review: %v", err)
	}

	if _, err := env.review.Update(review.ID, stranger.ID, ReviewInput{Rating: 1}); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound for foreign update, got %v", err)
	}
	if err := env.review.Delete(review.ID, stranger.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound for foreign delete, got %v", err)
	}

	updated, err := env.review.Update(review.ID, owner.ID, ReviewInput{Rating: 2, Comment: "Warped on arrival."})
	if err != nil {
		t.Fatalf("update review: %v", err)
	}
	if updated.Rating != 2 || updated.Comment != "Warped on arrival." {
		t.Fatalf("unexpected updated review: %+v", updated)
	}
	if updated.IsApproved {
		t.Fatalf("expected edit to send review back to moderation")
	}

	if err := env.review.Delete(review.ID, owner.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	if _, err := env.review.GetByID(review.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound after delete, got %v", err)
	}

	// 删除后可以重新评价
	if _, err := env.review.Submit(owner.ID, "lp", ReviewInput{Rating: 5}); err != nil {
		t.Fatalf("resubmit after delete: %v", err)
	}
}

func TestReviewAdminListFilters(t *testing.T) {
	env := newServiceTestEnv(t, "review_admin_list")
	category := createTestCategory(t, env.db, "vinyl")
	createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)
	tape := createTestProduct(t, env.db, category.ID, "tape", "1800", 0.08)

	alice := createTestUser(t, env.db, "alice@example.com")
	bob := createTestUser(t, env.db, "bob@example.com")

	first, err := env.review.Submit(alice.ID, "lp", ReviewInput{Rating: 5, Comment: "Stunning remaster"})
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if _, err := env.review.Submit(bob.ID, "lp", ReviewInput{Rating: 2, Comment: "Sleeve arrived bent"}); err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if _, err := env.review.Submit(alice.ID, "tape", ReviewInput{Rating: 5}); err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if _, err := env.review.SetApproval(first.ID, true); err != nil {
		t.Fatalf("approve review: %v", err)
	}

	_, total, err := env.review.List(repository.ReviewListFilter{Page: 1, PageSize: 10})
	if err != nil || total != 3 {
		t.Fatalf("expected 3 reviews, got %d %v", total, err)
	}

	approved := true
	rows, total, err := env.review.List(repository.ReviewListFilter{Page: 1, PageSize: 10, IsApproved: &approved})
	if err != nil || total != 1 || rows[0].ID != first.ID {
		t.Fatalf("expected only the approved review, got %d %v", total, err)
	}

	_, total, err = env.review.List(repository.ReviewListFilter{Page: 1, PageSize: 10, Rating: 5})
	if err != nil || total != 2 {
		t.Fatalf("expected 2 five-star reviews, got %d %v", total, err)
	}

	_, total, err = env.review.List(repository.ReviewListFilter{Page: 1, PageSize: 10, ProductID: tape.ID})
	if err != nil || total != 1 {
		t.Fatalf("expected 1 review for tape, got %d %v", total, err)
	}

	rows, total, err = env.review.List(repository.ReviewListFilter{Page: 1, PageSize: 10, Search: "bent"})
	if err != nil || total != 1 || rows[0].Comment != "Sleeve arrived bent" {
		t.Fatalf("expected comment search hit, got %d %v", total, err)
	}

}
