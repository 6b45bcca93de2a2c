package shell

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/atinyakov/storefront/internal/client/api"
	"github.com/atinyakov/storefront/internal/client/catalog"
	"github.com/atinyakov/storefront/internal/client/state"
	"github.com/atinyakov/storefront/internal/models"
)

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usageError("login <email> [password]")
	}
	var password string
	if len(args) == 2 {
		password = args[1]
	} else {
		password = s.ask("Password: ")
	}
	if res := s.app.Login(ctx, args[0], password); res.Success {
		s.me(ctx, nil)
	}
	return nil
}

func (s *Shell) logout(ctx context.Context, _ []string) error {
	if err := s.app.Logout(ctx); err != nil {
		return err
	}
	s.app.Toast.Show("Signed out", state.SeverityInfo)
	return nil
}

func (s *Shell) me(_ context.Context, _ []string) error {
	a := s.app.Auth.Snapshot()
	if !a.IsAuthenticated {
		fmt.Fprintln(s.out, "Not signed in")
		return nil
	}
	if a.Customer == nil {
		fmt.Fprintln(s.out, "Signed in (profile not loaded)")
		return nil
	}
	c := a.Customer
	fmt.Fprintf(s.out, "%s <%s>", c.FullName(), c.Email)
	if c.Telephone != "" {
		fmt.Fprintf(s.out, " tel. %s", c.Telephone)
	}
	fmt.Fprintln(s.out)
	return nil
}

// register prompts for the profile fields one by one.
func (s *Shell) register(ctx context.Context, _ []string) error {
	r := models.RegisterRequest{
		FirstName: s.ask("First name: "),
		LastName:  s.ask("Last name: "),
		Email:     s.ask("E-Mail: "),
		Telephone: s.ask("Telephone: "),
		Password:  s.ask("Password: "),
	}
	res := s.app.Auth.Register(ctx, r)
	if res.Success {
		s.app.Toast.Show(res.Message, state.SeveritySuccess)
		return nil
	}
	keys := make([]string, 0, len(res.Errors))
	for k := range res.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.out, "  %s: %s\n", k, res.Errors[k])
	}
	s.app.Toast.Show(res.Message, state.SeverityError)
	return nil
}

func (s *Shell) products(ctx context.Context, args []string) error {
	var f api.ProductFilter
	if len(args) > 0 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return usageError("products [category_id]")
		}
		f.CategoryID = id
	}
	res, err := s.app.API.Products(ctx, f)
	if err != nil {
		return err
	}
	return s.showListing(res)
}

func (s *Shell) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("search <text>")
	}
	res, err := s.app.Search(ctx, strings.Join(args, " "), 0, 0)
	if err != nil {
		return err
	}
	return s.showListing(res)
}

func (s *Shell) showListing(res api.Result[[]models.Product]) error {
	if !res.Success {
		s.app.Toast.Show(res.Message, state.SeverityError)
		return nil
	}
	s.listed = res.Data
	printProducts(s.out, s.listed)
	return nil
}

func (s *Shell) filter(_ context.Context, args []string) error {
	printProducts(s.out, catalog.FilterProducts(s.listed, strings.Join(args, " ")))
	return nil
}

func (s *Shell) sortListing(_ context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usageError("sort name|price [asc|desc]")
	}
	key := catalog.SortKey(args[0])
	if key != catalog.SortByName && key != catalog.SortByPrice {
		return usageError("sort name|price [asc|desc]")
	}
	order := catalog.Asc
	if len(args) == 2 {
		order = catalog.Order(args[1])
		if order != catalog.Asc && order != catalog.Desc {
			return usageError("sort name|price [asc|desc]")
		}
	}
	s.listed = catalog.SortProducts(s.listed, key, order)
	printProducts(s.out, s.listed)
	return nil
}

func (s *Shell) recent(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		s.app.Recent.Clear()
		return s.app.Persist(ctx)
	}
	list := s.app.Recent.List()
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No recent searches")
	}
	for i, q := range list {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, q)
	}
	return nil
}

func (s *Shell) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("product <id>")
	}
	res, err := s.app.API.Product(ctx, args[0])
	if err != nil {
		return err
	}
	if !res.Success {
		s.app.Toast.Show(res.Message, state.SeverityError)
		return nil
	}
	p := res.Data
	fmt.Fprintf(s.out, "%s (#%s)\n", p.Name, p.ID)
	fmt.Fprintln(s.out, "Price:", priceText(p))
	if p.Manufacturer != "" {
		fmt.Fprintln(s.out, "Brand:", p.Manufacturer)
	}
	if p.Description != "" {
		fmt.Fprintln(s.out, p.Description)
	}
	for _, o := range p.Options {
		req := ""
		if o.Required {
			req = " (required)"
		}
		fmt.Fprintf(s.out, "Option %s %s%s:\n", o.ProductOptionID, o.Name, req)
		for _, v := range o.Values {
			fmt.Fprintf(s.out, "  %s=%s %s\n", o.ProductOptionID, v.ProductOptionValueID, v.Name)
		}
	}
	return nil
}

func (s *Shell) categories(ctx context.Context, args []string) error {
	res, err := s.app.API.Categories(ctx)
	if err != nil {
		return err
	}
	if !res.Success {
		s.app.Toast.Show(res.Message, state.SeverityError)
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, c := range catalog.FilterCategories(res.Data, strings.Join(args, " ")) {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

func (s *Shell) cart(ctx context.Context, _ []string) error {
	if err := s.app.Cart.LoadCart(ctx); err != nil {
		s.app.Toast.Show(state.NetworkErrorMessage, state.SeverityError)
	}
	s.app.Cart.ShowCart()
	defer s.app.Cart.HideCart()

	c := s.app.Cart.Snapshot()
	if len(c.Items) == 0 {
		fmt.Fprintln(s.out, "Your shopping cart is empty!")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tPRODUCT\tQTY\tTOTAL")
	for _, l := range c.Items {
		name := l.Name
		for _, o := range l.Option {
			name += fmt.Sprintf(" [%s: %s]", o.Name, o.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.CartID, name, l.Quantity, l.Total)
	}
	for _, t := range c.Totals {
		fmt.Fprintf(tw, "\t%s\t\t%s\n", t.Title, t.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d item(s), %.2f\n", c.ItemCount, c.TotalAmount)
	return nil
}

// add parses "<product_id> [qty] [option_id=value ...]".
func (s *Shell) add(ctx context.Context, args []string) error {
	const usage = usageError("add <product_id> [qty] [option_id=value ...]")
	if len(args) == 0 {
		return usage
	}
	quantity := 1
	rest := args[1:]
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 1 {
			return usage
		}
		quantity = n
		rest = rest[1:]
	}
	var options map[string]string
	for _, kv := range rest {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return usage
		}
		if options == nil {
			options = map[string]string{}
		}
		options[k] = v
	}
	s.app.AddToCart(ctx, args[0], quantity, options)
	return nil
}

func (s *Shell) qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("qty <cart_id> <quantity>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError("qty <cart_id> <quantity>")
	}
	if n < 1 {
		s.toast(s.app.Cart.RemoveItem(ctx, args[0]))
		return nil
	}
	s.toast(s.app.Cart.UpdateQuantity(ctx, args[0], n))
	return nil
}

func (s *Shell) rm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("rm <cart_id>")
	}
	s.toast(s.app.Cart.RemoveItem(ctx, args[0]))
	return nil
}

func (s *Shell) toast(res state.ActionResult) {
	if res.Success {
		s.app.Toast.Show(res.Message, state.SeveritySuccess)
	} else {
		s.app.Toast.Show(res.Message, state.SeverityError)
	}
}

func (s *Shell) wishlist(ctx context.Context, args []string) error {
	if len(args) == 2 && (args[0] == "add" || args[0] == "rm") {
		call := s.app.API.AddToWishlist
		if args[0] == "rm" {
			call = s.app.API.RemoveFromWishlist
		}
		ack, err := call(ctx, args[1])
		if err != nil {
			return err
		}
		s.toast(state.ActionResult{Success: ack.Success, Message: ack.Message})
		return nil
	}
	if len(args) != 0 {
		return usageError("wishlist [add|rm <product_id>]")
	}
	list, err := s.app.API.Wishlist(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "Your wish list is empty.")
		return nil
	}
	printProducts(s.out, list)
	return nil
}

func (s *Shell) orders(ctx context.Context, _ []string) error {
	list, err := s.app.API.Orders(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "You have not made any previous orders!")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tDATE\tSTATUS\tTOTAL")
	for _, o := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.DateAdded, o.Status, o.Total)
	}
	return tw.Flush()
}

func (s *Shell) order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("order <id>")
	}
	res, err := s.app.API.OrderDetails(ctx, args[0])
	if err != nil {
		return err
	}
	if !res.Success {
		s.app.Toast.Show(res.Message, state.SeverityError)
		return nil
	}
	o := res.Data
	fmt.Fprintf(s.out, "Order #%s, %s, %s\n", o.ID, o.DateAdded, o.Status)
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, p := range o.Products {
		fmt.Fprintf(tw, "%s\t%s x %s\t%s\n", p.Name, p.Quantity, p.Price, p.Total)
	}
	for _, t := range o.Totals {
		fmt.Fprintf(tw, "%s\t\t%s\n", t.Title, t.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, h := range o.Histories {
		if h.Comment != "" {
			fmt.Fprintf(s.out, "%s %s: %s\n", h.DateAdded, h.Status, h.Comment)
		}
	}
	return nil
}

// checkout lists the payment and shipping methods, asks for a choice of
// each and places the order from the current cart.
func (s *Shell) checkout(ctx context.Context, _ []string) error {
	payments, err := s.app.API.PaymentMethods(ctx)
	if err != nil {
		return err
	}
	shipping, err := s.app.API.ShippingMethods(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Payment methods:")
	for _, code := range sortedKeys(payments) {
		fmt.Fprintf(s.out, "  %s  %s\n", code, payments[code].Title)
	}
	fmt.Fprintln(s.out, "Shipping methods:")
	for _, code := range sortedKeys(shipping) {
		m := shipping[code]
		for _, q := range sortedKeys(m.Quote) {
			fmt.Fprintf(s.out, "  %s  %s %s\n", m.Quote[q].Code, m.Quote[q].Title, m.Quote[q].Text)
		}
	}

	r := models.OrderRequest{
		PaymentMethod:  s.ask("Payment method: "),
		ShippingMethod: s.ask("Shipping method: "),
		Comment:        s.ask("Comment: "),
	}
	res, err := s.app.API.CreateOrder(ctx, r)
	if err != nil {
		return err
	}
	if !res.Success {
		for _, k := range sortedKeys(res.Errors) {
			fmt.Fprintf(s.out, "  %s: %s\n", k, res.Errors[k])
		}
		s.app.Toast.Show(res.Message, state.SeverityError)
		return nil
	}
	fmt.Fprintln(s.out, "Order id:", res.Data)
	_ = s.app.Cart.LoadCart(ctx)
	s.app.Toast.Show(res.Message, state.SeveritySuccess)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func priceText(p models.Product) string {
	if p.Special != "" {
		return p.Special + " (was " + p.Price + ")"
	}
	return p.Price
}

func printProducts(w io.Writer, list []models.Product) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, priceText(p))
	}
	_ = tw.Flush()
}
