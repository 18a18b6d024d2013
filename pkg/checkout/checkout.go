// Package checkout bridges the cart and the order API: it validates the
// buyer's details locally, submits the cart snapshot exactly once, and
// clears the cart only after the server confirms the order.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dchamindu826/norcal-dubs/pkg/cart"
)

// Payment methods the shop accepts. CashApp is the default when the form
// leaves the method empty.
const (
	PaymentCashApp  = "CashApp"
	PaymentMailCash = "Cash Through Mail"
)

var (
	ErrEmptyCart      = errors.New("checkout: cart is empty")
	ErrSubmitInFlight = errors.New("checkout: a submission is already in flight")
)

// ValidationError lists the required fields that are missing; no network
// call is made when it is returned.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "checkout: missing required fields: " + strings.Join(e.Missing, ", ")
}

// SubmitError is a non-2xx response from the order endpoint.
type SubmitError struct {
	Status int
	Body   string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("checkout: order rejected with status %d", e.Status)
}

// Form is the buyer's contact and delivery details. Notes is optional.
type Form struct {
	Name          string
	Telegram      string
	Phone         string
	Address       string
	Notes         string
	PaymentMethod string
}

func (f Form) validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Telegram) == "" {
		missing = append(missing, "telegram")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(f.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Proof is the optional payment screenshot. It is only solicited for
// payment methods other than cash through mail, but the orchestrator
// accepts it for any.
type Proof struct {
	Filename string
	Data     []byte
}

type Client struct {
	baseURL string
	http    *http.Client

	inFlight atomic.Bool
}

// NewClient points at the shop API, e.g. "http://localhost:5000". A hung
// request fails after the client timeout instead of pinning the submit
// control forever.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SubmitOrder packages the cart and the form into one multipart request.
// One shot: a second call while one is outstanding fails immediately, and
// a failed attempt leaves the cart untouched for a manual retry. On
// success the cart is cleared and the new order id returned.
func (c *Client) SubmitOrder(ctx context.Context, m *cart.Manager, form Form, proof *Proof) (int64, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return 0, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	items := m.Items()
	if len(items) == 0 {
		return 0, ErrEmptyCart
	}
	if err := form.validate(); err != nil {
		return 0, err
	}

	payment := form.PaymentMethod
	if payment == "" {
		payment = PaymentCashApp
	}

	body, contentType, err := buildPayload(items, m.Total(), form, payment, proof)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &SubmitError{Status: resp.StatusCode, Body: string(raw)}
	}

	var out struct {
		Success bool  `json:"success"`
		OrderID int64 `json:"orderId"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, err
	}

	// the order is durably placed; an error clearing the local cart must
	// not look like a failed order
	_ = m.Clear()

	return out.OrderID, nil
}

func buildPayload(items []cart.LineItem, total float64, form Form, payment string, proof *Proof) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"customerName":  strings.TrimSpace(form.Name),
		"telegram":      strings.TrimSpace(form.Telegram),
		"phone":         strings.TrimSpace(form.Phone),
		"address":       strings.TrimSpace(form.Address),
		"notes":         strings.TrimSpace(form.Notes),
		"total":         strconv.FormatFloat(total, 'f', -1, 64),
		"paymentMethod": payment,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	snapshot, err := json.Marshal(items)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("items", string(snapshot)); err != nil {
		return nil, "", err
	}

	if proof != nil && len(proof.Data) > 0 {
		part, err := w.CreateFormFile("slip", proof.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(proof.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
