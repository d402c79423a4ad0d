package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

func setupBannerServiceTest(t *testing.T) (*BannerService, *serviceTestEnv) {
	t.Helper()
	env := newServiceTestEnv(t, "banner")
	return NewBannerService(repository.NewBannerRepository(env.db)), env
}

func TestBannerListActiveWindow(t *testing.T) {
	svc, env := setupBannerServiceTest(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	seed := []models.Banner{
		{Name: "live", Position: constants.BannerPositionHomeHero, Image: "a.jpg", IsActive: true, SortOrder: 1},
		{Name: "scheduled", Position: constants.BannerPositionHomeHero, Image: "b.jpg", IsActive: true, StartAt: &future},
		{Name: "expired", Position: constants.BannerPositionHomeHero, Image: "c.jpg", IsActive: true, EndAt: &past},
		{Name: "disabled", Position: constants.BannerPositionHomeHero, Image: "d.jpg", IsActive: false},
		{Name: "strip", Position: constants.BannerPositionHomeStrip, Image: "e.jpg", IsActive: true},
	}
	for i := range seed {
		if err := env.db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed banner: %v", err)
		}
	}

	banners, err := svc.ListActive("", 10)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(banners) != 1 || banners[0].Name != "live" {
		t.Fatalf("expected only the live hero banner, got %+v", banners)
	}

	strip, err := svc.ListActive(constants.BannerPositionHomeStrip, 10)
	if err != nil {
		t.Fatalf("list strip: %v", err)
	}
	if len(strip) != 1 || strip[0].Name != "strip" {
		t.Fatalf("expected strip banner, got %+v", strip)
	}
}

func TestBannerCreateAndDefaults(t *testing.T) {
	svc, _ := setupBannerServiceTest(t)

	if _, err := svc.Create(BannerInput{Name: "no-image"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing image, got %v", err)
	}

	banner, err := svc.Create(BannerInput{Name: "hero", Image: "hero.jpg"})
	if err != nil {
		t.Fatalf("create banner: %v", err)
	}
	if banner.Position != constants.BannerPositionHomeHero {
		t.Fatalf("expected default position, got %q", banner.Position)
	}
	if banner.LinkType != constants.BannerLinkTypeNone {
		t.Fatalf("expected default link type, got %q", banner.LinkType)
	}

	if _, err := svc.GetByID(banner.ID + 999); !errors.Is(err, ErrBannerNotFound) {
		t.Fatalf("expected ErrBannerNotFound, got %v", err)
	}
}
