package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/driving-licence-admin/internal/database"
	"github.com/iliyamo/driving-licence-admin/internal/model"
)

// Integration tests run only when LICENCE_TEST_DSN points at a MySQL
// instance, e.g. "root:secret@tcp(127.0.0.1:3306)/licence_test".
// The schema is (re)initialized on every run; rows created by a test
// are removed through the users cascade in its cleanup.

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("LICENCE_TEST_DSN")
	if dsn == "" {
		t.Skip("LICENCE_TEST_DSN not set; skipping MySQL integration test")
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true"
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.InitSchema(ctx, db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewStore(db)
}

// newTestUser creates a user owned by the test and schedules its
// cascade removal.
func newTestUser(t *testing.T, store *Store) string {
	t.Helper()
	sub := fmt.Sprintf("test|%s|%d", t.Name(), time.Now().UnixNano())
	users := NewUserRepo(store)
	if _, err := users.Upsert(context.Background(), &model.User{Sub: sub, Name: "Test User"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = store.DB().Exec("DELETE FROM users WHERE sub = ?", sub)
	})
	return sub
}

func TestCategoryUpsertRoundTrip(t *testing.T) {
	store := openTestStore(t)
	repo := NewCategoryRepo(store)
	ctx := context.Background()

	vt := "tractor"
	desc := "Agricultural tractors"
	in := &model.LicenceCategory{Code: "zz", Label: "Tractor", Description: &desc, Fee: 35.50, MinAge: 17, VehicleType: &vt}
	t.Cleanup(func() {
		_, _ = store.DB().Exec("DELETE FROM licence_categories WHERE code = 'ZZ'")
	})

	saved, err := repo.Upsert(ctx, in)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := repo.GetByCode(ctx, "ZZ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Fee != 35.50 || got.Label != "Tractor" || got.VehicleType == nil || *got.VehicleType != "tractor" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.IsActive || saved.ID != got.ID {
		t.Fatalf("unexpected row state: %+v", got)
	}
}

func TestCategorySoftDeleteExcludedFromDefaultListing(t *testing.T) {
	store := openTestStore(t)
	repo := NewCategoryRepo(store)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, &model.LicenceCategory{Code: "ZY", Label: "Temp", Fee: 10, MinAge: 18}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	t.Cleanup(func() {
		_, _ = store.DB().Exec("DELETE FROM licence_categories WHERE code = 'ZY'")
	})

	if err := repo.SoftDelete(ctx, "ZY"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	// Still queryable by code, but hidden from the active listing.
	got, err := repo.GetByCode(ctx, "ZY")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got.IsActive {
		t.Fatal("expected is_active=0 after soft delete")
	}
	active, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range active {
		if c.Code == "ZY" {
			t.Fatal("soft-deleted category present in default listing")
		}
	}
}

func TestUserUpsertKeepsCreatedAt(t *testing.T) {
	store := openTestStore(t)
	sub := newTestUser(t, store)
	users := NewUserRepo(store)
	ctx := context.Background()

	first, err := users.GetBySub(ctx, sub)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	time.Sleep(1100 * time.Millisecond) // TIMESTAMP has second granularity
	email := "updated@example.com"
	second, err := users.Upsert(ctx, &model.User{Sub: sub, Name: "Renamed User", Email: &email})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.Name != "Renamed User" || second.Email == nil || *second.Email != email {
		t.Fatalf("mutable fields not updated: %+v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updated_at did not advance: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestSessionExpiryComputedByTrigger(t *testing.T) {
	store := openTestStore(t)
	sub := newTestUser(t, store)
	sessions := NewSessionRepo(store)
	ctx := context.Background()

	s, err := sessions.Upsert(ctx, &model.UserSession{
		SessionID:   fmt.Sprintf("sess-%d", time.Now().UnixNano()),
		Sub:         sub,
		AccessToken: "tok",
		ExpiresIn:   3600,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if want := s.CreatedAt.Add(time.Hour); !s.ExpiresAt.Equal(want) {
		t.Fatalf("expires_at = %v, want created_at+1h = %v", s.ExpiresAt, want)
	}
}

func TestSessionCleanupReturnsRemovedIDs(t *testing.T) {
	store := openTestStore(t)
	sub := newTestUser(t, store)
	sessions := NewSessionRepo(store)
	ctx := context.Background()

	expired := fmt.Sprintf("sess-exp-%d", time.Now().UnixNano())
	if _, err := sessions.Upsert(ctx, &model.UserSession{
		SessionID: expired, Sub: sub, AccessToken: "tok", ExpiresIn: 1,
	}); err != nil {
		t.Fatalf("seed expired session: %v", err)
	}
	alive := fmt.Sprintf("sess-alive-%d", time.Now().UnixNano())
	if _, err := sessions.Upsert(ctx, &model.UserSession{
		SessionID: alive, Sub: sub, AccessToken: "tok", ExpiresIn: 3600,
	}); err != nil {
		t.Fatalf("seed live session: %v", err)
	}

	time.Sleep(2 * time.Second) // let the first session expire

	removed, err := sessions.Cleanup(ctx)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	found := false
	for _, id := range removed {
		if id == alive {
			t.Fatal("cleanup removed a live session")
		}
		if id == expired {
			found = true
		}
	}
	if !found {
		t.Fatalf("expired session %s not in removed ids %v", expired, removed)
	}
	if _, err := sessions.GetByID(ctx, expired); err == nil {
		t.Fatal("expired session still present after cleanup")
	}
	if _, err := sessions.GetByID(ctx, alive); err != nil {
		t.Fatalf("live session lost: %v", err)
	}
}

func seedApplication(t *testing.T, store *Store, sub, appID, certID, name string, written any) model.Application {
	t.Helper()
	repo := NewApplicationRepo(store)
	email := strings.ToLower(name) + "@example.com"
	email = strings.ReplaceAll(email, " ", ".")
	a, err := repo.Save(context.Background(), &model.Application{
		ApplicationID:      appID,
		CertificateID:      certID,
		Sub:                sub,
		FullName:           name,
		Email:              &email,
		SelectedCategories: []any{map[string]any{"code": "B", "fee": 60.0}},
		WrittenTest:        written,
		PaymentAmount:      60,
	})
	if err != nil {
		t.Fatalf("seed application %s: %v", appID, err)
	}
	return a
}

func TestApplicationDocumentRoundTrip(t *testing.T) {
	store := openTestStore(t)
	sub := newTestUser(t, store)
	repo := NewApplicationRepo(store)

	written := map[string]any{
		"score":    float64(87),
		"passed":   true,
		"sections": []any{"signs", "rules"},
	}
	appID := fmt.Sprintf("APP-%d", time.Now().UnixNano())
	seedApplication(t, store, sub, appID, appID+"-C", "Doc Trip", written)

	got, err := repo.GetByKey(context.Background(), appID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.WrittenTest, written) {
		t.Fatalf("written_test round trip mismatch:\n got %#v\nwant %#v", got.WrittenTest, written)
	}
	if _, ok := got.SelectedCategories.([]any); !ok {
		t.Fatalf("selected_categories came back as %T, want []any", got.SelectedCategories)
	}
}

func TestApplicationLookupByAnyKey(t *testing.T) {
	store := openTestStore(t)
	sub := newTestUser(t, store)
	repo := NewApplicationRepo(store)

	appID := fmt.Sprintf("APP-%d", time.Now().UnixNano())
	saved := seedApplication(t, store, sub, appID, appID+"-C", "Any Key", nil)

	for _, key := range []string{appID, appID + "-C", fmt.Sprint(saved.ID)} {
		got, err := repo.GetByKey(context.Background(), key)
		if err != nil {
			t.Fatalf("lookup by %q: %v", key, err)
		}
		if got.ID != saved.ID {
			t.Fatalf("lookup by %q returned row %d, want %d", key, got.ID, saved.ID)
		}
	}
	if _, err := repo.GetByKey(context.Background(), "no-such-key"); err == nil {
		t.Fatal("expected not-found for unknown key")
	}
}

func TestApplicationSearchAndPagination(t *testing.T) {
	store := openTestStore(t)
	sub := newTestUser(t, store)
	repo := NewApplicationRepo(store)
	ctx := context.Background()

	tag := fmt.Sprintf("%d", time.Now().UnixNano())
	first := seedApplication(t, store, sub, "SRCH1-"+tag, "SRCH1C-"+tag, "Search One", nil)
	second := seedApplication(t, store, sub, "SRCH2-"+tag, "SRCH2C-"+tag, "Search Two", nil)

	// Case-insensitive substring match over the text columns.
	rows, total, err := repo.List(ctx, ListQuery{Search: "srch1-" + tag, Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ApplicationID != first.ApplicationID {
		t.Fatalf("search returned total=%d rows=%d", total, len(rows))
	}

	// Page 2 of limit 1 over the two seeded rows, oldest first.
	rows, total, err = repo.List(ctx, ListQuery{
		Search: "srch", SortBy: "created_at", SortOrder: "asc", Limit: 1, Offset: 1,
	})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if total < 2 || len(rows) != 1 {
		t.Fatalf("paginate returned total=%d rows=%d", total, len(rows))
	}
	_ = second

	// Duplicate application ids are rejected by the unique key.
	_, err = repo.Save(ctx, &model.Application{
		ApplicationID:      first.ApplicationID,
		CertificateID:      "other",
		Sub:                sub,
		FullName:           "Dup",
		SelectedCategories: []any{},
	})
	if err == nil || !strings.Contains(err.Error(), ErrDuplicate.Error()) {
		t.Fatalf("expected duplicate entry error, got %v", err)
	}
}

func TestApplicationStatusUpdateAndStats(t *testing.T) {
	store := openTestStore(t)
	sub := newTestUser(t, store)
	repo := NewApplicationRepo(store)
	ctx := context.Background()

	appID := fmt.Sprintf("STAT-%d", time.Now().UnixNano())
	seedApplication(t, store, sub, appID, appID+"-C", "Stats Row", nil)

	before, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, appID, model.StatusApproved)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.StatusApproved {
		t.Fatalf("status = %q, want approved", updated.Status)
	}

	after, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if after.Approved != before.Approved+1 || after.Pending != before.Pending-1 {
		t.Fatalf("stats did not move: before=%+v after=%+v", before, after)
	}

	if _, err := repo.UpdateStatus(ctx, "missing-key", model.StatusApproved); err == nil {
		t.Fatal("expected not-found for unknown key")
	}
}
