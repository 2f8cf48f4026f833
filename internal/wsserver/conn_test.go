package wsserver

import (
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"storefront/internal/catalog"
	accountrepo "storefront/internal/repository/account"
	"storefront/internal/repository/clientrec"
	ledgerrepo "storefront/internal/repository/ledger"
	accountsvc "storefront/internal/service/account"
	ledgersvc "storefront/internal/service/ledger"
	registrysvc "storefront/internal/service/registry"
	"storefront/internal/session"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// startServer wires the full stack against temp-dir storage and returns a
// connected test client.
func startServer(t *testing.T) *websocket.Conn {
	t.Helper()
	logger := logDiscard()

	dataDir := t.TempDir()
	deptDir := filepath.Join(dataDir, "departments")
	if err := os.MkdirAll(deptDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	deptCSV := "Name,Price,ImageURLs,Description,Category,Brand,Colors,Sizes\n" +
		"Northline Parka,$149.99,https://c.png,Insulated parka,outerwear,Northline,green,M\n"
	if err := os.WriteFile(filepath.Join(deptDir, "clothing.csv"), []byte(deptCSV), 0o644); err != nil {
		t.Fatalf("write department: %v", err)
	}

	cat, err := catalog.Load(deptDir, logger)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	accounts, err := accountsvc.New(accountrepo.NewCSV(filepath.Join(dataDir, "logins.csv")), logger)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	registry, err := registrysvc.New(clientrec.NewCSV(filepath.Join(dataDir, "clients"), logger), cat, logger)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	ledger, err := ledgersvc.New(ledgerrepo.NewCSV(filepath.Join(dataDir, "orders.csv"), logger), cat, registry, logger)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}

	router := buildRouter(logger, Deps{
		Handler: session.New(accounts, registry, ledger, logger),
		Catalog: cat,
		Logo:    []byte("logo-bytes"),
		Metrics: NewMetrics(prometheus.NewRegistry()),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, req session.Request) {
	t.Helper()
	if err := conn.WriteJSON(inbound{ServerMSG: req}); err != nil {
		t.Fatalf("write %s: %v", req.Method, err)
	}
}

func expectEvent(t *testing.T, conn *websocket.Conn, want string) session.Response {
	t.Helper()
	var resp session.Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.MessageEvent != want {
		t.Fatalf("expected event %q, got %+v", want, resp)
	}
	return resp
}

func TestServeWS_InitPayload(t *testing.T) {
	conn := startServer(t)

	var init initPayload
	if err := conn.ReadJSON(&init); err != nil {
		t.Fatalf("read init: %v", err)
	}
	if init.Cmd != "init" {
		t.Fatalf("expected init command, got %q", init.Cmd)
	}
	if len(init.Departments) != 1 || init.Departments[0] != "clothing" {
		t.Fatalf("unexpected departments %v", init.Departments)
	}
	if init.Logo == "" {
		t.Fatalf("expected base64 logo in init payload")
	}
	if len(init.Featured) != 0 {
		t.Fatalf("expected empty featured list, got %v", init.Featured)
	}
}

func TestServeWS_LoginCartCheckoutFlow(t *testing.T) {
	conn := startServer(t)

	var init initPayload
	if err := conn.ReadJSON(&init); err != nil {
		t.Fatalf("read init: %v", err)
	}

	// Cart operations before login are rejected.
	send(t, conn, session.Request{Method: session.MethodAddToCart, Item: "Northline Parka", Count: 1})
	expectEvent(t, conn, session.EventNotLoggedIn)

	send(t, conn, session.Request{Method: session.MethodLoginAttempt, Username: "Steve", Password: "wrong"})
	expectEvent(t, conn, session.EventInvalidLogin)

	send(t, conn, session.Request{Method: session.MethodLoginAttempt, Username: "Steve", Password: "password123"})
	expectEvent(t, conn, session.EventValidLogin)

	// Steve has no client record yet; sign up a fresh account to exercise
	// the full flow.
	send(t, conn, session.Request{Method: session.MethodSignupAttempt, Username: "Nora", Name: "Nora K", Password: "pw"})
	expectEvent(t, conn, session.EventValidSignup)

	send(t, conn, session.Request{Method: session.MethodLoginAttempt, Username: "Nora", Password: "pw"})
	expectEvent(t, conn, session.EventValidLogin)

	send(t, conn, session.Request{Method: session.MethodAddToCart, Item: "Northline Parka", Count: 2})
	expectEvent(t, conn, session.EventCartUpdated)

	send(t, conn, session.Request{
		Method:     session.MethodPlaceOrder,
		Items:      []string{"Northline Parka"},
		Counts:     []int{2},
		TotalCents: 29998,
		CreditCard: "4111",
		Address:    "12 Harbor St",
	})
	resp := expectEvent(t, conn, session.EventOrderPlaced)
	if resp.OrderNumber == nil || *resp.OrderNumber != 0 {
		t.Fatalf("expected first order number 0, got %+v", resp.OrderNumber)
	}
}

func TestServeWS_MalformedMessageKeepsConnection(t *testing.T) {
	conn := startServer(t)

	var init initPayload
	if err := conn.ReadJSON(&init); err != nil {
		t.Fatalf("read init: %v", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	// The connection survives and keeps serving requests.
	send(t, conn, session.Request{Method: session.MethodLoginAttempt, Username: "Steve", Password: "password123"})
	expectEvent(t, conn, session.EventValidLogin)
}
