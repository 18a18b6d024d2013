package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dchamindu826/norcal-dubs/internal/notify"
	"github.com/dchamindu826/norcal-dubs/internal/storage"
)

// dateLayout produces US locale strings like "11/21/2025, 10:05:45 AM".
// The admin panel displays the field verbatim, so the format is load-bearing.
const dateLayout = "1/2/2006, 3:04:05 PM"

type Service struct {
	repo     *Repo
	notifier notify.Service
	files    storage.Storage
	log      *slog.Logger

	ids idGen

	// dispatch runs the notification side effect. Async in production so
	// the create path never blocks on Telegram; tests swap in a direct
	// call.
	dispatch func(func())
}

func NewService(repo *Repo, notifier notify.Service, files storage.Storage, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		files:    files,
		log:      log,
		dispatch: func(f func()) { go f() },
	}
}

type CreateInput struct {
	Customer      Customer
	Items         []OrderItem
	Total         float64
	PaymentMethod string

	// SlipKey is the stored filename of the payment proof ("" when the
	// buyer attached none); SlipBytes carries the image for the
	// notification attachment.
	SlipKey   string
	SlipBytes []byte
}

// Create persists the order first, then fires one best-effort notification.
// A failed delivery is logged and swallowed: the durable record is the
// source of truth and must not be rolled back over a chat hiccup.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	if len(in.Items) == 0 {
		return Order{}, ErrNoItems
	}

	o := Order{
		ID:            s.ids.Next(),
		Customer:      in.Customer,
		Items:         in.Items,
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		Status:        StatusPending,
		AdminNote:     "",
		Date:          time.Now().Format(dateLayout),
	}
	if in.SlipKey != "" {
		slip := in.SlipKey
		o.Slip = &slip
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return Order{}, err
	}

	msg := notify.Message{Text: orderMessage(o)}
	if len(in.SlipBytes) > 0 {
		msg.PhotoName = in.SlipKey
		msg.PhotoBytes = in.SlipBytes
	}
	s.dispatch(func() {
		if err := s.notifier.Send(context.Background(), msg); err != nil {
			s.log.Error("order notification failed", "order_id", o.ID, "err", err)
		}
	})

	return o, nil
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Status    Status
	AdminNote string
}

// Update assigns status and admin note in place. An off-graph status jump
// is logged but allowed; the transition table is a process convention, not
// a server gate.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) error {
	if !KnownStatus(in.Status) {
		return ErrUnknownStatus
	}
	return s.repo.Update(ctx, id, func(o *Order) {
		if !ValidTransition(o.Status, in.Status) {
			s.log.Warn("off-graph status transition",
				"order_id", id, "from", string(o.Status), "to", string(in.Status))
		}
		o.Status = in.Status
		o.AdminNote = in.AdminNote
	})
}

// Delete hard-removes the order and cleans up its slip file so deleted
// orders do not leak proofs into the uploads dir. File removal is
// best-effort; the record removal is what counts.
func (s *Service) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed.Slip != nil && *removed.Slip != "" && s.files != nil {
		if err := s.files.Delete(ctx, *removed.Slip); err != nil {
			s.log.Warn("slip cleanup failed", "order_id", id, "slip", *removed.Slip, "err", err)
		}
	}
	return nil
}

func orderMessage(o Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌿 NEW ORDER #%d\n\n", o.ID)
	fmt.Fprintf(&b, "👤 Name: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "📞 Phone: %s\n", o.Customer.Phone)
	fmt.Fprintf(&b, "✈️ Telegram: %s\n", o.Customer.Telegram)
	fmt.Fprintf(&b, "🏠 Address: %s\n", o.Customer.Address)
	if o.Customer.Notes != "" {
		fmt.Fprintf(&b, "📝 Notes: %s\n", o.Customer.Notes)
	}
	b.WriteString("\n🛒 Items:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d ($%g)\n", it.Name, it.Quantity, it.Price)
	}
	fmt.Fprintf(&b, "\n💰 Total: $%g\n", o.Total)
	fmt.Fprintf(&b, "💳 Payment: %s\n", o.PaymentMethod)
	if o.Slip != nil && *o.Slip != "" {
		b.WriteString("📎 Payment proof attached\n")
	} else {
		b.WriteString("📎 No payment proof\n")
	}
	return b.String()
}
