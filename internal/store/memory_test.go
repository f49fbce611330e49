package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mathle/go-server/internal/game"
	"github.com/mathle/go-server/internal/store"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	s := game.NewSession("2024-01-01")
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Error("Get returned a different session pointer")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	st := store.NewMemoryStore()
	if _, err := st.Get(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
