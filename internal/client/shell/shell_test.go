package shell

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/storefront/internal/client/api"
	"github.com/atinyakov/storefront/internal/client/app"
	"github.com/atinyakov/storefront/internal/client/state"
	"github.com/atinyakov/storefront/internal/client/storage"
	"github.com/atinyakov/storefront/internal/server"
)

const testKey = "shell-key"

func newApp(t *testing.T) (*app.App, *prometheus.Registry) {
	t.Helper()
	ts := httptest.NewServer(server.NewBackend(testKey, zap.NewNop()).Handler)
	t.Cleanup(ts.Close)

	reg := prometheus.NewRegistry()
	m, err := api.NewMetrics(reg)
	require.NoError(t, err)
	client, err := api.New(ts.URL+"/api/mobile/", testKey, api.WithMetrics(m))
	require.NoError(t, err)

	return app.New(app.Deps{
		API:     client,
		Storage: storage.NewFileBackend(filepath.Join(t.TempDir(), "state.json")),
	}), reg
}

// script runs input through a fresh shell and returns everything printed.
func script(t *testing.T, a *app.App, reg prometheus.Gatherer, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(a, strings.NewReader(input), &out, WithMetrics(reg))
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestShell_UnknownCommandAndExit(t *testing.T) {
	a, reg := newApp(t)
	out := script(t, a, reg, "\nfrobnicate\nexit\nhelp\n")

	assert.Contains(t, out, "Unknown command. Type 'help' for a list of commands.")
	assert.Contains(t, out, "Bye")
	assert.NotContains(t, out, "Available commands", "nothing runs after exit")
}

func TestShell_Help(t *testing.T) {
	a, reg := newApp(t)
	out := script(t, a, reg, "help\n")

	for _, usage := range []string{"login <email> [password]", "checkout", "sort name|price [asc|desc]", "exit"} {
		assert.Contains(t, out, usage)
	}
}

func TestShell_BrowseCatalog(t *testing.T) {
	a, reg := newApp(t)
	out := script(t, a, reg, strings.Join([]string{
		"products 18",
		"sort price desc",
		"filter pro",
		"product 42",
		"product 1",
		"categories tab",
		"products x",
	}, "\n")+"\n")

	assert.Regexp(t, `(?s)MacBook Pro.*MacBook\s`, out, "sorted by price descending")
	assert.Contains(t, out, "$90.00 (was $100.00)")
	assert.Contains(t, out, "Option 226 Select (required):")
	assert.Contains(t, out, "226=15 Red")
	assert.Contains(t, out, "[error] Product not found!")
	assert.Contains(t, out, "Tablets")
	assert.Contains(t, out, "Error: usage: products [category_id]")
}

func TestShell_SearchRecordsRecent(t *testing.T) {
	a, reg := newApp(t)
	out := script(t, a, reg, "search mac\nsearch zzz\nrecent\nrecent clear\nrecent\n")

	assert.Contains(t, out, "MacBook")
	assert.Contains(t, out, "No products found")
	assert.Contains(t, out, "1. zzz\n2. mac")
	assert.Contains(t, out, "No recent searches")
	assert.Empty(t, a.Recent.List())
}

func TestShell_CartFlow(t *testing.T) {
	a, reg := newApp(t)
	out := script(t, a, reg, strings.Join([]string{
		"cart",
		"add 40 2",
		"add 42",
		"add 42 1 226=15",
		"add 40 x",
		"cart",
	}, "\n")+"\n")

	assert.Contains(t, out, "Your shopping cart is empty!")
	assert.Contains(t, out, "[success] Success: You have added iPhone to your shopping cart!")
	assert.Contains(t, out, "[error] Select required!")
	assert.Contains(t, out, "Error: usage: add")
	assert.Contains(t, out, "Select: Red")
	assert.Contains(t, out, "3 item(s), 292.00")

	snap := a.Cart.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.False(t, snap.IsVisible, "cart panel is hidden again after printing")

	key := snap.Items[0].CartID
	out = script(t, a, reg, "qty "+key+" 5\nrm nope\nrm "+key+"\n")
	assert.Contains(t, out, "[success]")
	assert.Contains(t, out, "[error] Item not found in cart")
	assert.Len(t, a.Cart.Snapshot().Items, 1)
}

func TestShell_AccountAndCheckout(t *testing.T) {
	a, reg := newApp(t)

	out := script(t, a, reg, "me\nwishlist\nregister\nJane\nDoe\njane@example.com\n5551234\nsecret\n")
	assert.Contains(t, out, "Not signed in")
	assert.Contains(t, out, "Error:", "wish list needs a session")
	assert.Contains(t, out, "[success] Your Account Has Been Created!")

	out = script(t, a, reg, "register\n\n\nbad\n\n\n")
	assert.Contains(t, out, "email: ")
	assert.Contains(t, out, "[error]")

	out = script(t, a, reg, "login jane@example.com\nwrong\nlogin jane@example.com secret\n")
	assert.Contains(t, out, "[error] Warning: No match for E-Mail Address and/or Password.")
	assert.Contains(t, out, "Jane Doe <jane@example.com> tel. 5551234")
	assert.True(t, a.Auth.Snapshot().IsAuthenticated)

	out = script(t, a, reg, strings.Join([]string{
		"wishlist add 45",
		"wishlist",
		"wishlist rm 45",
		"orders",
		"add 43",
		"checkout",
		"cash",
		"flat.flat",
		"",
		"checkout",
		"cod",
		"flat.flat",
		"leave at door",
		"orders",
		"order 1",
		"order 9",
	}, "\n")+"\n")
	assert.Contains(t, out, "[success] Success: You have added MacBook Pro to your wish list!")
	assert.Contains(t, out, "You have not made any previous orders!")
	assert.Contains(t, out, "cod  Cash On Delivery")
	assert.Contains(t, out, "flat.flat  Flat Shipping Rate $5.00")
	assert.Contains(t, out, "payment_method: ")
	assert.Contains(t, out, "Order id: 1")
	assert.Contains(t, out, "[success] Your order has been placed!")
	assert.Contains(t, out, "$505.00")
	assert.Contains(t, out, "leave at door")
	assert.Contains(t, out, "[error] Order not found!")
	assert.Empty(t, a.Cart.Snapshot().Items)

	out = script(t, a, reg, "logout\nme\n")
	assert.Contains(t, out, "[info] Signed out")
	assert.Contains(t, out, "Not signed in")
}

func TestShell_Stats(t *testing.T) {
	a, reg := newApp(t)
	out := script(t, a, reg, "stats\nproducts\nproducts\nstats\n")

	assert.Contains(t, out, "No requests yet")
	assert.Regexp(t, `products\s+200\s+2\s`, out)

	var buf bytes.Buffer
	New(a, strings.NewReader("stats\n"), &buf).Run(context.Background())
	assert.Contains(t, buf.String(), "Error: metrics are disabled")
}

func TestShell_StopsOnCancelledContext(t *testing.T) {
	a, _ := newApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(a, strings.NewReader("help\n"), &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShell_QtyBelowOneRemoves(t *testing.T) {
	var (
		mu   sync.Mutex
		hits []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := strings.TrimPrefix(r.URL.Path, "/api/mobile/")
		mu.Lock()
		hits = append(hits, endpoint)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch endpoint {
		case "cart":
			w.Write([]byte(`{"products":[],"totals":[]}`))
		default:
			w.Write([]byte(`{"success":"ok"}`))
		}
	}))
	t.Cleanup(ts.Close)

	client, err := api.New(ts.URL+"/api/mobile/", testKey)
	require.NoError(t, err)
	a := app.New(app.Deps{
		API:     client,
		Storage: storage.NewFileBackend(filepath.Join(t.TempDir(), "state.json")),
	})

	for _, line := range []string{"qty cart_1 0", "qty cart_1 -2"} {
		mu.Lock()
		hits = nil
		mu.Unlock()

		var out bytes.Buffer
		New(a, strings.NewReader(""), &out).Exec(context.Background(), line)

		mu.Lock()
		assert.Contains(t, hits, "cart_remove", line)
		assert.NotContains(t, hits, "cart_update", line)
		mu.Unlock()
	}
}

func TestShell_PromptNamesCustomer(t *testing.T) {
	a, reg := newApp(t)
	script(t, a, reg, "register\nJane\nDoe\njane@example.com\n5551234\nsecret\n")

	out := script(t, a, reg, "login jane@example.com secret\nlogout\n")
	assert.Contains(t, out, "storefront(jane@example.com)> ")
	assert.True(t, strings.HasSuffix(out, "storefront> \n"), "prompt drops the customer after logout")
}

func TestShell_CartBadge(t *testing.T) {
	a, reg := newApp(t)
	out := script(t, a, reg, "add 40 2\nproducts\nadd 45\n")

	assert.Equal(t, 1, strings.Count(out, "Cart: 2 item(s)"))
	assert.Equal(t, 1, strings.Count(out, "Cart: 3 item(s)"))
	assert.Equal(t, 2, strings.Count(out, "Cart: "), "listing products leaves the cart alone")
}

func TestShell_PrintsEveryToastInOrder(t *testing.T) {
	a, _ := newApp(t)
	var out bytes.Buffer
	sh := New(a, strings.NewReader(""), &out)

	commands["twice"] = command{"twice", func(s *Shell, _ context.Context, _ []string) error {
		s.app.Toast.Show("first", state.SeverityInfo)
		s.app.Toast.Show("second", state.SeverityWarning)
		return nil
	}}
	t.Cleanup(func() { delete(commands, "twice") })

	sh.Exec(context.Background(), "twice")
	assert.Equal(t, "[info] first\n[warning] second\n", out.String())
	assert.False(t, a.Toast.Snapshot().Visible)
}
