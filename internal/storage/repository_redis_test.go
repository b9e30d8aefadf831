package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisRepository_GetItem(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	repo := NewRedisRepository(db, time.Hour)

	mock.ExpectGet("storefront:client-1:cart").SetVal(`[{"id":"p1"}]`)
	mock.ExpectGet("storefront:client-2:cart").RedisNil()

	v, ok, err := repo.GetItem(context.Background(), "client-1", "cart")
	if err != nil || !ok || v != `[{"id":"p1"}]` {
		t.Fatalf("unexpected result %q %v %v", v, ok, err)
	}

	_, ok, err = repo.GetItem(context.Background(), "client-2", "cart")
	if err != nil {
		t.Fatalf("missing key should not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected missing key to report ok=false")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisRepository_SetItemRefreshesTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	ttl := 30 * 24 * time.Hour
	repo := NewRedisRepository(db, ttl)

	mock.ExpectSet("storefront:client-1:cart", "[]", ttl).SetVal("OK")
	mock.ExpectSet("storefront:client-1:cart", `[{"id":"p1"}]`, ttl).SetVal("OK")

	if err := repo.SetItem(context.Background(), "client-1", "cart", "[]"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	// every write resets the expiry
	if err := repo.SetItem(context.Background(), "client-1", "cart", `[{"id":"p1"}]`); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisRepository_RemoveItemPipelinesKeys(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	repo := NewRedisRepository(db, time.Hour)

	mock.ExpectTxPipeline()
	mock.ExpectDel("storefront:client-1:cart").SetVal(1)
	mock.ExpectDel("storefront:client-1:checkout_pending").SetVal(0)
	mock.ExpectTxPipelineExec()

	if err := repo.RemoveItem(context.Background(), "client-1", "cart", "checkout_pending"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// no keys means no round-trip
	if err := repo.RemoveItem(context.Background(), "client-1"); err != nil {
		t.Fatalf("empty remove failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisRepository_PropagatesErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	repo := NewRedisRepository(db, time.Hour)

	mock.ExpectGet("storefront:c:cart").SetErr(errors.New("connection reset"))
	mock.ExpectSet("storefront:c:cart", "[]", time.Hour).SetErr(errors.New("READONLY"))

	if _, _, err := repo.GetItem(context.Background(), "c", "cart"); err == nil {
		t.Fatalf("expected read error to propagate")
	}
	if err := repo.SetItem(context.Background(), "c", "cart", "[]"); err == nil {
		t.Fatalf("expected write error to propagate")
	}
}
