package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/cart/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/cart/repository"
	cartservice "github.com/Blits-planeet/driftv8.xyz/internal/cart/service"
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

	node, err := snowflake.NewNode(5)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return cartservice.New(cartservice.Params{
		DB:    setupTestDB(t),
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func addItem(t *testing.T, svc domain.Service, quantity string) domain.CartItem {
	t.Helper()

	item, err := svc.Add(context.Background(), domain.AddCartItemRequest{
		ProductID: "prod_tote",
		Name:      "Canvas Tote",
		Price:     "25.5",
		Quantity:  json.Number(quantity),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	return item
}

func TestAddDefaultsQuantity(t *testing.T) {
	svc := newService(t)

	item := addItem(t, svc, "")
	if item.Quantity != "1" {
		t.Fatalf("want default quantity 1, got %q", item.Quantity)
	}
	if item.Price != "25.50" {
		t.Fatalf("want normalized price 25.50, got %q", item.Price)
	}
}

func TestAddWithOnlyProductID(t *testing.T) {
	svc := newService(t)

	item, err := svc.Add(context.Background(), domain.AddCartItemRequest{
		ProductID: "prod_tote",
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Name != "prod_tote" {
		t.Fatalf("want name defaulted to product id, got %q", item.Name)
	}
	if item.Price != "0.00" {
		t.Fatalf("want default price 0.00, got %q", item.Price)
	}
	if item.Quantity != "1" {
		t.Fatalf("want default quantity 1, got %q", item.Quantity)
	}
}

func TestAddValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.AddCartItemRequest
		want error
	}{
		{
			name: "missing product id",
			req:  domain.AddCartItemRequest{Name: "Tote", Price: "10"},
			want: domain.ErrInvalidProduct,
		},
		{
			name: "negative price",
			req:  domain.AddCartItemRequest{ProductID: "p1", Name: "Tote", Price: "-3"},
			want: domain.ErrInvalidPrice,
		},
		{
			name: "zero quantity",
			req:  domain.AddCartItemRequest{ProductID: "p1", Name: "Tote", Price: "10", Quantity: "0"},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "non numeric quantity",
			req:  domain.AddCartItemRequest{ProductID: "p1", Name: "Tote", Price: "10", Quantity: "two"},
			want: domain.ErrInvalidQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	item := addItem(t, svc, "1")
	id := item.ID.String()

	updated, err := svc.UpdateQuantity(ctx, id, "3")
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if updated.Quantity != "3" {
		t.Fatalf("want quantity 3, got %q", updated.Quantity)
	}

	if _, err := svc.UpdateQuantity(ctx, id, "0"); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "987654321", "2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	item := addItem(t, svc, "1")
	id := item.ID.String()

	if err := svc.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("repeat remove: want ErrNotFound, got %v", err)
	}

	addItem(t, svc, "1")
	addItem(t, svc, "2")
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("want empty cart after clear, got %d items", len(items))
	}
}
