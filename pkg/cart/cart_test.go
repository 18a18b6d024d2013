package cart

import (
	"testing"
)

func blueDream() Product {
	return Product{ID: 1, Name: "Blue Dream", Price: 40, Images: []string{"/uploads/bd.jpg"}}
}

func gummyPack() Product {
	return Product{ID: 2, Name: "Gummy Pack", Price: 15}
}

func TestAddItemMergesByProduct(t *testing.T) {
	m := NewManager(NewMemStore())

	p := Product{ID: 5, Name: "OG Kush", Price: 30}
	if err := m.AddItem(p, 1); err != nil {
		t.Fatal(err)
	}
	if err := m.AddItem(p, 3); err != nil {
		t.Fatal(err)
	}

	items := m.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestAddItemGuardsQuantity(t *testing.T) {
	m := NewManager(NewMemStore())
	if err := m.AddItem(blueDream(), -7); err != nil {
		t.Fatal(err)
	}
	if got := m.Items()[0].Quantity; got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
}

func TestAddItemSnapshotsOfferPrice(t *testing.T) {
	m := NewManager(NewMemStore())
	p := Product{ID: 9, Name: "Deal", Price: 50, OfferPrice: 35, SpecialOffer: true}
	_ = m.AddItem(p, 1)
	if got := m.Items()[0].Price; got != 35 {
		t.Fatalf("expected snapshotted offer price 35, got %g", got)
	}
}

func TestUpdateQuantityNeverBelowOne(t *testing.T) {
	m := NewManager(NewMemStore())
	_ = m.AddItem(blueDream(), 2)

	if err := m.UpdateQuantity(1, -100); err != nil {
		t.Fatal(err)
	}
	if got := m.Items()[0].Quantity; got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}

	_ = m.UpdateQuantity(1, 3)
	if got := m.Items()[0].Quantity; got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestRemoveThenReAddIsFresh(t *testing.T) {
	m := NewManager(NewMemStore())
	_ = m.AddItem(blueDream(), 5)
	_ = m.RemoveItem(1)
	if len(m.Items()) != 0 {
		t.Fatal("expected empty cart after remove")
	}
	_ = m.AddItem(blueDream(), 2)
	items := m.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected fresh line with quantity 2, got %+v", items)
	}
}

func TestTotal(t *testing.T) {
	m := NewManager(NewMemStore())
	_ = m.AddItem(blueDream(), 2)
	_ = m.AddItem(gummyPack(), 1)
	if got := m.Total(); got != 95 {
		t.Fatalf("expected total 95, got %g", got)
	}
	if got := m.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestPersistAcrossReload(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	m := NewManager(store)
	_ = m.AddItem(blueDream(), 2)
	_ = m.AddItem(gummyPack(), 1)

	// simulate process restart
	m2 := NewManager(NewFileStore(dir))
	items := m2.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines after reload, got %d", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("insertion order lost: %+v", items)
	}
	if items[0].Price != 40 || items[0].Quantity != 2 {
		t.Fatalf("line data lost: %+v", items[0])
	}
}

func TestCorruptStorageLoadsEmpty(t *testing.T) {
	store := NewMemStore()
	_ = store.Save([]byte("{definitely not a cart"))

	m := NewManager(store)
	if len(m.Items()) != 0 {
		t.Fatal("corrupt payload must load as empty cart")
	}
	// and the cart stays usable
	if err := m.AddItem(blueDream(), 1); err != nil {
		t.Fatalf("cart unusable after corrupt load: %v", err)
	}
}

func TestMutationsBroadcast(t *testing.T) {
	m := NewManager(NewMemStore())
	var events int
	unsub := m.Subscribe(func() { events++ })
	defer unsub()

	_ = m.AddItem(blueDream(), 1)
	_ = m.UpdateQuantity(1, 1)
	_ = m.RemoveItem(1)
	_ = m.Clear()

	if events != 4 {
		t.Fatalf("expected 4 change events, got %d", events)
	}

	unsub()
	_ = m.AddItem(blueDream(), 1)
	if events != 4 {
		t.Fatal("unsubscribed listener still notified")
	}
}
