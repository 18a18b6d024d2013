package orders

import (
	"encoding/json"
	"testing"
)

func TestValidTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusProcessing},
		{StatusProcessing, StatusShipped},
		{StatusShipped, StatusCompleted},
		{StatusPending, StatusCancelled},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusCancelled},
	}
	for _, tr := range allowed {
		if !ValidTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be valid", tr[0], tr[1])
		}
	}

	blocked := [][2]Status{
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusProcessing},
		{StatusShipped, StatusPending},
	}
	for _, tr := range blocked {
		if ValidTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be off-graph", tr[0], tr[1])
		}
	}
}

func TestOrderJSONContract(t *testing.T) {
	slip := "abc.jpg"
	o := Order{
		ID:            1732212345678,
		Customer:      Customer{Name: "Jane", Telegram: "@jane", Phone: "555", Address: "1 Main St"},
		Items:         []OrderItem{{ID: 5, Name: "Blue Dream", Price: 40, Images: []string{"/uploads/a.jpg"}, Quantity: 2}},
		Total:         80,
		PaymentMethod: PaymentCashApp,
		Slip:          &slip,
		Status:        StatusPending,
		Date:          "11/21/2025, 10:05:45 AM",
	}

	b, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}

	// The admin panel reads these by exact path.
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	cust, ok := doc["customer"].(map[string]any)
	if !ok || cust["telegram"] != "@jane" {
		t.Fatalf("customer.telegram missing: %s", b)
	}
	if doc["paymentMethod"] != "CashApp" || doc["adminNote"] != "" {
		t.Fatalf("field names drifted: %s", b)
	}
	items, ok := doc["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("items missing: %s", b)
	}
	line := items[0].(map[string]any)
	if line["quantity"] != float64(2) || line["price"] != float64(40) {
		t.Fatalf("item shape drifted: %s", b)
	}
}

func TestNilSlipMarshalsAsNull(t *testing.T) {
	b, err := json.Marshal(Order{ID: 1, Status: StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	_ = json.Unmarshal(b, &doc)
	if v, present := doc["slip"]; !present || v != nil {
		t.Fatalf("slip must be present and null, got %s", b)
	}
}
