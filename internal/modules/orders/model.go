package orders

// Status values an order moves through. The admin UI offers the full set;
// ValidTransition documents the intended flow.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidTransition reports whether from→to follows the intended lifecycle:
// Pending → Processing → Shipped → Completed, with Cancelled reachable from
// any non-terminal state. The service logs violations but does not reject
// them; the admin keeps the final say.
func ValidTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusProcessing || to == StatusShipped || to == StatusCompleted || to == StatusCancelled
	case StatusProcessing:
		return to == StatusShipped || to == StatusCompleted || to == StatusCancelled
	case StatusShipped:
		return to == StatusCompleted || to == StatusCancelled
	default:
		// Completed and Cancelled are terminal
		return false
	}
}

// Customer is the per-order asserted identity. There is no account system;
// the buyer types these in at checkout.
type Customer struct {
	Name     string `json:"name"`
	Telegram string `json:"telegram"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

// OrderItem is a value snapshot of a cart line at purchase time. It carries
// no live link to the catalog, so later product edits never rewrite
// historical orders.
type OrderItem struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
	Quantity int      `json:"quantity"`
}

// Order field names and types are the on-disk contract; the admin panel
// reads them by exact path (customer.telegram etc).
type Order struct {
	ID            int64       `json:"id"`
	Customer      Customer    `json:"customer"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
	Slip          *string     `json:"slip"`
	Status        Status      `json:"status"`
	AdminNote     string      `json:"adminNote"`
	Date          string      `json:"date"`
}

const (
	PaymentCashApp  = "CashApp"
	PaymentMailCash = "Cash Through Mail"
)
