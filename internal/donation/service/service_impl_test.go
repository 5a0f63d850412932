package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/donation/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/donation/repository"
	donationservice "github.com/Blits-planeet/driftv8.xyz/internal/donation/service"
	"github.com/Blits-planeet/driftv8.xyz/internal/migration"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migration.RunSQLiteSchema(db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func newService(t *testing.T) domain.Service {
	t.Helper()

	node, err := snowflake.NewNode(6)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return donationservice.New(donationservice.Params{
		DB:    setupTestDB(t),
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func donate(t *testing.T, svc domain.Service, name, amount string) domain.Donation {
	t.Helper()

	donation, err := svc.Create(context.Background(), domain.CreateDonationRequest{
		Name:   name,
		Amount: amount,
	})
	if err != nil {
		t.Fatalf("create donation: %v", err)
	}
	return donation
}

func TestCreateDefaultsAnonymous(t *testing.T) {
	svc := newService(t)

	donation := donate(t, svc, "  ", "12.5")
	if donation.Name != "Anonymous" {
		t.Fatalf("want Anonymous, got %q", donation.Name)
	}
	if donation.Amount != "12.50" {
		t.Fatalf("want normalized amount 12.50, got %q", donation.Amount)
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, amount := range []string{"0", "-1", "abc", ""} {
		_, err := svc.Create(ctx, domain.CreateDonationRequest{Name: "Sam", Amount: amount})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %q: want ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestListLargestFirst(t *testing.T) {
	svc := newService(t)

	donate(t, svc, "Small", "5")
	donate(t, svc, "Big", "100")
	donate(t, svc, "Mid", "20")

	donations, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(donations) != 3 {
		t.Fatalf("want 3 donations, got %d", len(donations))
	}

	want := []string{"Big", "Mid", "Small"}
	for i, name := range want {
		if donations[i].Name != name {
			t.Fatalf("position %d: want %s, got %s", i, name, donations[i].Name)
		}
	}
}
