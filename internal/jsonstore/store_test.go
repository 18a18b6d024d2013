package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
)

type rec struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestCollectionAppendAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	col := NewCollection[rec](s, "orders")
	if err := col.Append(rec{ID: 1, Name: "first"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := col.Append(rec{ID: 2, Name: "second"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// simulate process restart
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	items, err := NewCollection[rec](s2, "orders").All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].Name != "second" {
		t.Fatalf("unexpected items after reload: %+v", items)
	}
}

func TestMutateAbortsWithoutWriting(t *testing.T) {
	s := openTemp(t)
	col := NewCollection[rec](s, "orders")
	if err := col.Append(rec{ID: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}

	wantErr := os.ErrInvalid
	err := col.Mutate(func(items []rec) ([]rec, error) {
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("expected fn error back, got %v", err)
	}
	items, _ := col.All()
	if len(items) != 1 {
		t.Fatalf("aborted mutate must not change data, got %+v", items)
	}
}

func TestAbsentCollectionReadsEmpty(t *testing.T) {
	s := openTemp(t)
	items, err := NewCollection[rec](s, "missing").All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty, got %+v", items)
	}
}

func TestScalarUpdate(t *testing.T) {
	s := openTemp(t)
	views := NewScalar[int](s, "views")
	if err := views.Set(1250); err != nil {
		t.Fatalf("set: %v", err)
	}
	n, err := views.Update(func(v int) int { return v + 1 })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1251 {
		t.Fatalf("expected 1251, got %d", n)
	}
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected parse error for corrupt file")
	}
}
