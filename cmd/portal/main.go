package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/config"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/logging"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/api"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/cart"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/order"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/routing"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/screens"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/session"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/storage"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

// tokenSource breaks the construction cycle between the API client
// and the session store: the client is built first, the store after.
type tokenSource struct {
	sess *session.Store
}

func (t *tokenSource) Token() string {
	if t.sess == nil {
		return ""
	}
	return t.sess.Token()
}

func main() {
	cfg := config.LoadPortal()
	logger := logging.New(cfg.LogLevel)

	kv, err := storage.Open(cfg.StatePath)
	if err != nil {
		log.Fatalf("state store: %v", err)
	}
	defer kv.Close()

	src := &tokenSource{}
	client := api.New(cfg.APIBaseURL, src)
	sess := session.New(kv, client)
	src.sess = sess

	nav := routing.NewNavigator(sess)
	client.SetOnUnauthorized(func() {
		sess.Clear()
		nav.Go(routing.RouteLogin)
	})

	basket := cart.New()
	orders := order.New(client, sess)

	loginScreen := &screens.Login{Session: sess, Nav: nav}
	registerScreen := &screens.Register{API: client}
	customer := &screens.CustomerDashboard{Session: sess, Cart: basket, Orders: orders}
	invoices := &screens.InvoiceList{Orders: orders, Nav: nav}

	in := bufio.NewScanner(os.Stdin)
	confirm := func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		if !in.Scan() {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(in.Text()), "y")
	}
	seller := &screens.SellerDashboard{Orders: orders, Confirm: confirm}

	ctx := logging.IntoContext(context.Background(), logger)

	fmt.Println("mediatech portal (type 'help' for commands)")
	for {
		fmt.Printf("%s> ", nav.Current())
		if !in.Scan() {
			break
		}
		args := strings.Fields(in.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Println("login <user> <pass> | register <user> <pass> <confirm> <role> | logout")
			fmt.Println("products | add <productId> | drop <productId> | cart | checkout")
			fmt.Println("invoices | validate <orderId> | reject <orderId> | download <orderId>")
			fmt.Println("clients | whoami | quit")
		case "login":
			if len(args) != 3 {
				fmt.Println("usage: login <user> <pass>")
				continue
			}
			route, err := loginScreen.Submit(ctx, args[1], args[2])
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Println("logged in, now at", route)
		case "register":
			if len(args) != 5 {
				fmt.Println("usage: register <user> <pass> <confirm> <role>")
				continue
			}
			role, err := roles.Parse(args[4])
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := registerScreen.Submit(ctx, args[1], args[2], args[3], role); err != nil {
				fmt.Println("register failed:", err)
				continue
			}
			fmt.Println("registered, you can log in now")
		case "logout":
			loginScreen.SignOut(ctx)
		case "products":
			products, err := client.ListProducts(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			for _, p := range products {
				fmt.Printf("#%d %s %q %.2f (stock %d)\n", p.ID, p.Reference, p.Label, p.UnitPrice, p.Stock)
			}
		case "add":
			id, ok := argID(args)
			if !ok {
				continue
			}
			products, err := client.ListProducts(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			found := false
			for _, p := range products {
				if p.ID == id {
					customer.AddProduct(p)
					found = true
					break
				}
			}
			if !found {
				fmt.Println("no such product")
			}
		case "drop":
			if id, ok := argID(args); ok {
				customer.RemoveProduct(id)
			}
		case "cart":
			for _, line := range basket.Items() {
				fmt.Printf("%dx %s %.2f\n", line.Quantity, line.Product.Label, line.Product.UnitPrice)
			}
			fmt.Printf("%d items, total %.2f\n", basket.Count(), basket.Total())
		case "checkout":
			o, err := customer.Checkout(ctx)
			if err != nil {
				fmt.Println("checkout failed:", err)
				continue
			}
			fmt.Printf("order %s created, total %.2f\n", o.Reference, o.TotalAmount)
		case "invoices":
			nav.Go(routing.RouteInvoices)
			if nav.Current() != routing.RouteInvoices {
				fmt.Println("redirected to", nav.Current())
				continue
			}
			if err := invoices.Load(ctx); err != nil {
				fmt.Println(err)
				continue
			}
			for _, o := range invoices.Invoices() {
				fmt.Printf("#%d %s %s %.2f\n", o.ID, o.Reference, o.Status, o.TotalAmount)
			}
		case "validate", "reject":
			id, ok := argID(args)
			if !ok {
				continue
			}
			if args[0] == "validate" {
				o, applied, err := seller.Validate(ctx, id)
				reportTransition(o.Reference, applied, err)
			} else {
				o, applied, err := seller.Reject(ctx, id)
				reportTransition(o.Reference, applied, err)
			}
		case "download":
			id, ok := argID(args)
			if !ok {
				continue
			}
			data, err := invoices.Download(ctx, id)
			if err != nil {
				fmt.Println(err)
				continue
			}
			name := fmt.Sprintf("invoice-%d.pdf", id)
			if err := os.WriteFile(name, data, 0o644); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("saved", name)
		case "clients":
			nav.Go(routing.RouteClients)
			if nav.Current() != routing.RouteClients {
				fmt.Println("redirected to", nav.Current())
				continue
			}
			clients, err := client.ListClients(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			for _, cl := range clients {
				fmt.Printf("#%d %s %s <%s>\n", cl.ID, cl.FirstName, cl.LastName, cl.Email)
			}
		case "whoami":
			if !sess.IsLoggedIn() {
				fmt.Println("not logged in")
				continue
			}
			fmt.Printf("%s (%s)\n", sess.Username(), sess.Role())
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command, try 'help'")
		}
	}
}

func argID(args []string) (int64, bool) {
	if len(args) != 2 {
		fmt.Printf("usage: %s <id>\n", args[0])
		return 0, false
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Println("bad id:", args[1])
		return 0, false
	}
	return id, true
}

func reportTransition(reference string, applied bool, err error) {
	switch {
	case err != nil:
		fmt.Println(err)
	case !applied:
		fmt.Println("cancelled")
	default:
		fmt.Println("order", reference, "updated")
	}
}
