package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/auth"
	"github.com/dchamindu826/norcal-dubs/internal/config"
	apphttp "github.com/dchamindu826/norcal-dubs/internal/http"
	"github.com/dchamindu826/norcal-dubs/internal/http/handlers"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/admins"
	"github.com/dchamindu826/norcal-dubs/internal/modules/music"
	"github.com/dchamindu826/norcal-dubs/internal/modules/orders"
	"github.com/dchamindu826/norcal-dubs/internal/modules/products"
	"github.com/dchamindu826/norcal-dubs/internal/modules/reviews"
	"github.com/dchamindu826/norcal-dubs/internal/modules/site"
	"github.com/dchamindu826/norcal-dubs/internal/notify"
	"github.com/dchamindu826/norcal-dubs/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router *gin.Engine
	mock   *notify.Mock
	tokens *auth.Tokens
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()

	store, err := jsonstore.Open(filepath.Join(dir, "db.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	cfg := &config.Config{
		StorageDriver: "local",
		UploadDir:     filepath.Join(dir, "uploads"),
		UploadURLPath: "/uploads",
		JWTSecret:     "test-secret",
	}
	files := storage.NewLocal(cfg.UploadDir, cfg.UploadURLPath)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := &notify.Mock{}
	tokens := auth.NewTokens(cfg.JWTSecret)

	orderSvc := orders.NewService(orders.NewRepo(store), mock, files, logger)
	adminSvc := admins.NewService(store)

	r := apphttp.NewRouter(logger, apphttp.Deps{
		Cfg:      cfg,
		Tokens:   tokens,
		Orders:   handlers.NewOrdersHandler(orderSvc, files),
		Products: handlers.NewProductsHandler(products.NewRepo(store), files),
		Reviews:  handlers.NewReviewsHandler(reviews.NewRepo(store)),
		Music:    handlers.NewMusicHandler(music.NewRepo(store), files),
		Auth:     handlers.NewAuthHandler(adminSvc, tokens),
		Site:     handlers.NewSiteHandler(site.NewService(store, cfg.UploadDir)),
	})
	return &testApp{router: r, mock: mock, tokens: tokens}
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	tok, err := a.tokens.Issue("admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func (a *testApp) do(t *testing.T, method, path, token string, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func orderForm(t *testing.T, withSlip bool) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fields := map[string]string{
		"customerName":  "Jane Doe",
		"telegram":      "@janedoe",
		"phone":         "(555) 000-1111",
		"address":       "1 Main St, Sacramento",
		"notes":         "gate code 1234",
		"total":         "95",
		"paymentMethod": orders.PaymentCashApp,
		"items":         `[{"id":1,"name":"Blue Dream","price":40,"images":[],"quantity":2},{"id":2,"name":"Gummy Pack","price":15,"images":[],"quantity":1}]`,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if withSlip {
		part, err := w.CreateFormFile("slip", "proof.jpg")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte{0xff, 0xd8, 0xff}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf, w.FormDataContentType()
}

func TestCreateOrderEndpoint(t *testing.T) {
	app := newTestApp(t)

	body, ct := orderForm(t, true)
	resp := app.do(t, http.MethodPost, "/api/orders", "", ct, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Success bool  `json:"success"`
		OrderID int64 `json:"orderId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v (%s)", err, resp.Body.String())
	}
	if !out.Success || out.OrderID == 0 {
		t.Fatalf("unexpected response: %+v", out)
	}

	list := app.do(t, http.MethodGet, "/api/orders", app.adminToken(t), "", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("list: %d", list.Code)
	}
	var got []orders.Order
	if err := json.Unmarshal(list.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(got) != 1 || got[0].ID != out.OrderID {
		t.Fatalf("created order missing from list: %+v", got)
	}
	if got[0].Status != orders.StatusPending || got[0].AdminNote != "" {
		t.Fatalf("fresh order must be Pending with empty note: %+v", got[0])
	}
	if got[0].Slip == nil || *got[0].Slip == "" {
		t.Fatal("slip filename not recorded")
	}
	if got[0].Total != 95 {
		t.Fatalf("expected total 95, got %g", got[0].Total)
	}
}

func TestCreateOrderMissingFields(t *testing.T) {
	app := newTestApp(t)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	_ = w.WriteField("customerName", "Jane")
	_ = w.Close()

	resp := app.do(t, http.MethodPost, "/api/orders", "", w.FormDataContentType(), buf)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateOrderNoSlipAccepted(t *testing.T) {
	app := newTestApp(t)
	body, ct := orderForm(t, false)
	resp := app.do(t, http.MethodPost, "/api/orders", "", ct, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("slip is optional, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestOrderListRequiresAuth(t *testing.T) {
	app := newTestApp(t)
	if resp := app.do(t, http.MethodGet, "/api/orders", "", "", nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	if resp := app.do(t, http.MethodGet, "/api/orders", "not-a-token", "", nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", resp.Code)
	}
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	body, ct := orderForm(t, false)
	created := app.do(t, http.MethodPost, "/api/orders", "", ct, body)
	var out struct {
		OrderID int64 `json:"orderId"`
	}
	_ = json.Unmarshal(created.Body.Bytes(), &out)

	upd := app.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", out.OrderID), token,
		"application/json", bytes.NewBufferString(`{"status":"Shipped","adminNote":"sent via USPS"}`))
	if upd.Code != http.StatusOK {
		t.Fatalf("update: %d %s", upd.Code, upd.Body.String())
	}

	list := app.do(t, http.MethodGet, "/api/orders", token, "", nil)
	var got []orders.Order
	_ = json.Unmarshal(list.Body.Bytes(), &got)
	if got[0].Status != orders.StatusShipped || got[0].AdminNote != "sent via USPS" {
		t.Fatalf("update not visible: %+v", got[0])
	}

	del := app.do(t, http.MethodDelete, fmt.Sprintf("/api/orders/%d", out.OrderID), token, "", nil)
	if del.Code != http.StatusOK {
		t.Fatalf("delete: %d", del.Code)
	}
	list = app.do(t, http.MethodGet, "/api/orders", token, "", nil)
	_ = json.Unmarshal(list.Body.Bytes(), &got)
	if len(got) != 0 {
		t.Fatalf("order still listed after delete: %+v", got)
	}
}

func TestUpdateUnknownOrderIs404(t *testing.T) {
	app := newTestApp(t)
	resp := app.do(t, http.MethodPut, "/api/orders/12345", app.adminToken(t),
		"application/json", bytes.NewBufferString(`{"status":"Shipped"}`))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestUpdateUnknownStatusIs400(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	body, ct := orderForm(t, false)
	created := app.do(t, http.MethodPost, "/api/orders", "", ct, body)
	var out struct {
		OrderID int64 `json:"orderId"`
	}
	_ = json.Unmarshal(created.Body.Bytes(), &out)

	resp := app.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", out.OrderID), token,
		"application/json", bytes.NewBufferString(`{"status":"Teleported"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLoginAndGate(t *testing.T) {
	app := newTestApp(t)

	// master fallback while no admins exist
	resp := app.do(t, http.MethodPost, "/api/login", "", "application/json",
		bytes.NewBufferString(`{"username":"admin","password":"admin123"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("master login: %d %s", resp.Code, resp.Body.String())
	}
	var login struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &login)
	if !login.Success || login.Token == "" {
		t.Fatalf("expected token, got %+v", login)
	}

	bad := app.do(t, http.MethodPost, "/api/login", "", "application/json",
		bytes.NewBufferString(`{"username":"admin","password":"wrong"}`))
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", bad.Code)
	}

	// set the gate password with the issued token, then verify publicly
	set := app.do(t, http.MethodPut, "/api/gate", login.Token, "application/json",
		bytes.NewBufferString(`{"password":"puffpuff"}`))
	if set.Code != http.StatusOK {
		t.Fatalf("set gate: %d", set.Code)
	}

	ok := app.do(t, http.MethodPost, "/api/gate/verify", "", "application/json",
		bytes.NewBufferString(`{"password":"puffpuff"}`))
	var verdict struct {
		Success bool `json:"success"`
	}
	_ = json.Unmarshal(ok.Body.Bytes(), &verdict)
	if ok.Code != http.StatusOK || !verdict.Success {
		t.Fatalf("gate verify should pass: %d %s", ok.Code, ok.Body.String())
	}

	wrong := app.do(t, http.MethodPost, "/api/gate/verify", "", "application/json",
		bytes.NewBufferString(`{"password":"nope"}`))
	_ = json.Unmarshal(wrong.Body.Bytes(), &verdict)
	if verdict.Success {
		t.Fatal("gate verify must fail on wrong password")
	}
}

func TestViewsCounter(t *testing.T) {
	app := newTestApp(t)
	first := app.do(t, http.MethodGet, "/api/views", "", "", nil)
	second := app.do(t, http.MethodGet, "/api/views", "", "", nil)

	var a, b struct {
		Views int `json:"views"`
	}
	_ = json.Unmarshal(first.Body.Bytes(), &a)
	_ = json.Unmarshal(second.Body.Bytes(), &b)
	if b.Views != a.Views+1 {
		t.Fatalf("counter must increment per read: %d then %d", a.Views, b.Views)
	}
}
