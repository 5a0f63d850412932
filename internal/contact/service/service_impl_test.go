package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"github.com/Blits-planeet/driftv8.xyz/internal/contact/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/contact/repository"
	contactservice "github.com/Blits-planeet/driftv8.xyz/internal/contact/service"
	"github.com/Blits-planeet/driftv8.xyz/internal/metrics"
	"github.com/Blits-planeet/driftv8.xyz/internal/migration"
	"github.com/Blits-planeet/driftv8.xyz/internal/notify"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingProvider struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (r *recordingProvider) Send(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingProvider) messages() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Message(nil), r.sent...)
}

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

func newService(t *testing.T, provider notify.Provider) domain.Service {
	t.Helper()

	node, err := snowflake.NewNode(8)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	log := zap.NewNop()
	dispatcher := notify.NewDispatcher(notify.DispatcherParams{
		Log:      log,
		Provider: provider,
		Cfg:      config.Config{BusinessEmails: []string{"owner@example.com"}},
		Holder:   &config.StoreConfigHolder{},
		Metrics:  metrics.New(),
	})

	return contactservice.New(contactservice.Params{
		DB:         setupTestDB(t),
		Log:        log,
		GenID:      node,
		Repo:       repository.Provide(),
		Dispatcher: dispatcher,
	})
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t, &notify.NoOpProvider{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.CreateContactRequest
		want error
	}{
		{
			name: "blank name",
			req:  domain.CreateContactRequest{Name: " ", Email: "a@b.com", Message: "hi"},
			want: domain.ErrInvalidName,
		},
		{
			name: "bad email",
			req:  domain.CreateContactRequest{Name: "Dana", Email: "nope", Message: "hi"},
			want: domain.ErrInvalidEmail,
		},
		{
			name: "empty message",
			req:  domain.CreateContactRequest{Name: "Dana", Email: "a@b.com", Message: "  "},
			want: domain.ErrInvalidMessage,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateNotifiesBusiness(t *testing.T) {
	recorder := &recordingProvider{}
	svc := newService(t, recorder)

	if _, err := svc.Create(context.Background(), domain.CreateContactRequest{
		Name:    "Dana",
		Email:   "dana@example.com",
		Message: "Do you ship overseas?",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	sent := recorder.messages()
	if len(sent) != 1 {
		t.Fatalf("want 1 notification, got %d", len(sent))
	}
	if sent[0].Subject != "New contact submission" {
		t.Fatalf("want default subject, got %q", sent[0].Subject)
	}
	if len(sent[0].To) != 1 || sent[0].To[0] != "owner@example.com" {
		t.Fatalf("want owner recipient, got %v", sent[0].To)
	}
}

func TestCreateKeepsProvidedSubject(t *testing.T) {
	recorder := &recordingProvider{}
	svc := newService(t, recorder)

	if _, err := svc.Create(context.Background(), domain.CreateContactRequest{
		Name:    "Dana",
		Email:   "dana@example.com",
		Subject: "Wholesale inquiry",
		Message: "Bulk pricing?",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	sent := recorder.messages()
	if len(sent) != 1 || sent[0].Subject != "Wholesale inquiry" {
		t.Fatalf("want provided subject, got %+v", sent)
	}
}
