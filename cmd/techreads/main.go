package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"techreads/internal/api"
	"techreads/internal/catalog"
	"techreads/internal/checkout"
	"techreads/internal/session"
	"techreads/pkg/models"
	"techreads/pkg/utils"
)

func main() {
	cfg := utils.Load()

	global := flag.NewFlagSet("techreads", flag.ExitOnError)
	baseURL := global.String("api", cfg.APIBaseURL, "bookstore API base URL")
	sessionPath := global.String("session", session.DefaultFilePath(), "session file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd, sub, rest := splitArgs(args)

	client := api.New(*baseURL, cfg.HTTPTimeout)
	sessions := session.FileStore{Path: *sessionPath}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, sessions, sub, rest)
	case "books":
		handleBooks(ctx, client, sessions, sub, rest)
	case "cart":
		handleCart(ctx, client, sessions, sub, rest)
	case "wishlist":
		handleWishlist(ctx, client, sessions, sub, rest)
	case "orders":
		handleOrders(ctx, client, sessions, sub, rest)
	case "checkout":
		handleCheckout(ctx, client, sessions, sub, rest)
	case "badge":
		handleBadge(cfg.HTTPAddr, cfg.SyncAddr, sub, rest)
	case "export":
		handleExport(ctx, client, sub, rest)
	default:
		printUsage()
		os.Exit(1)
	}
}

// splitArgs breaks the positional args into command, subcommand, and
// the flags that follow. A bare command group yields an empty
// subcommand and flag list, landing in the handler's usage branch.
func splitArgs(args []string) (cmd, sub string, rest []string) {
	cmd = args[0]
	if len(args) > 1 {
		sub = args[1]
	}
	if len(args) > 2 {
		rest = args[2:]
	}
	return cmd, sub, rest
}

func handleAuth(ctx context.Context, client *api.Client, sessions session.FileStore, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		sess, err := client.Login(ctx, *email, *password)
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := sessions.Save(*sess); err != nil {
			log.Fatalf("save session: %v", err)
		}
		fmt.Printf("✅ logged in as %s\n", sess.User.Email)
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		if err := client.Register(ctx, *username, *email, *password); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		fmt.Println("✅ registered, now run: techreads auth login")
	case "logout":
		if err := sessions.Clear(); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	case "whoami":
		sess := mustSession(sessions)
		printJSON(sess.User)
	default:
		log.Fatal("usage: techreads auth <login|register|logout|whoami>")
	}
}

func handleBooks(ctx context.Context, client *api.Client, sessions session.FileStore, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("books list", flag.ExitOnError)
		query := fs.String("q", "", "title search")
		categories := fs.String("categories", "", "comma-separated category filter")
		minPrice := fs.Float64("min-price", -1, "minimum price")
		maxPrice := fs.Float64("max-price", -1, "maximum price")
		sortBy := fs.String("sort", "", "price_asc|price_desc|popularity")
		_ = fs.Parse(args)

		books, err := client.ListBooks(ctx, optionalToken(sessions))
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}

		q := catalog.Query{Search: *query}
		if *categories != "" {
			q.Categories = strings.Split(*categories, ",")
		}
		if *minPrice >= 0 {
			q.MinPrice, q.HasMin = *minPrice, true
		}
		if *maxPrice >= 0 {
			q.MaxPrice, q.HasMax = *maxPrice, true
		}

		books = catalog.Filter(books, q)
		if opt, ok := catalog.ParseSort(*sortBy); ok {
			catalog.Sort(books, opt, q.Search)
		}
		printJSON(books)
	case "show":
		fs := flag.NewFlagSet("books show", flag.ExitOnError)
		id := fs.Int("id", 0, "book id")
		_ = fs.Parse(args)
		if *id == 0 {
			log.Fatal("book id is required")
		}

		book, err := client.GetBook(ctx, optionalToken(sessions), *id)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(book)
	case "categories":
		cats, err := client.ListCategories(ctx, optionalToken(sessions))
		if err != nil {
			log.Fatalf("categories failed: %v", err)
		}
		printJSON(cats)
	default:
		log.Fatal("usage: techreads books <list|show|categories>")
	}
}

func handleCart(ctx context.Context, client *api.Client, sessions session.FileStore, sub string, args []string) {
	sess := mustSession(sessions)
	switch sub {
	case "list":
		items, err := client.GetCart(ctx, sess.Token, sess.User.ID)
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		totals := checkout.ComputeTotals(items)
		printJSON(map[string]any{"items": items, "totals": totals})
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		bookID := fs.Int("book-id", 0, "book id")
		quantity := fs.Int("quantity", 1, "quantity")
		_ = fs.Parse(args)
		if *bookID == 0 {
			log.Fatal("book-id is required")
		}

		if err := client.AddToCart(ctx, sess.Token, *bookID, *quantity); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		fmt.Println("✅ added to cart")
	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
		entryID := fs.Int("id", 0, "cart entry id")
		_ = fs.Parse(args)
		if *entryID == 0 {
			log.Fatal("cart entry id is required")
		}

		if err := client.RemoveFromCart(ctx, sess.Token, *entryID); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		fmt.Println("✅ removed from cart")
	default:
		log.Fatal("usage: techreads cart <list|add|remove>")
	}
}

func handleWishlist(ctx context.Context, client *api.Client, sessions session.FileStore, sub string, args []string) {
	sess := mustSession(sessions)
	switch sub {
	case "list":
		items, err := client.GetWishlist(ctx, sess.Token)
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(items)
	case "add":
		fs := flag.NewFlagSet("wishlist add", flag.ExitOnError)
		bookID := fs.Int("book-id", 0, "book id")
		_ = fs.Parse(args)
		if *bookID == 0 {
			log.Fatal("book-id is required")
		}

		added, err := client.AddToWishlist(ctx, sess.Token, *bookID)
		if err != nil {
			log.Fatalf("add failed: %v", err)
		}
		if added {
			fmt.Println("✅ added to wishlist")
		} else {
			fmt.Println("already in wishlist")
		}
	case "remove":
		fs := flag.NewFlagSet("wishlist remove", flag.ExitOnError)
		entryID := fs.Int("id", 0, "wishlist entry id")
		_ = fs.Parse(args)
		if *entryID == 0 {
			log.Fatal("wishlist entry id is required")
		}

		if err := client.RemoveFromWishlist(ctx, sess.Token, *entryID); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		fmt.Println("✅ removed from wishlist")
	default:
		log.Fatal("usage: techreads wishlist <list|add|remove>")
	}
}

func handleOrders(ctx context.Context, client *api.Client, sessions session.FileStore, sub string, args []string) {
	sess := mustSession(sessions)
	switch sub {
	case "list":
		orders, err := client.ListOrders(ctx, sess.Token)
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(orders)
	case "set-status":
		fs := flag.NewFlagSet("orders set-status", flag.ExitOnError)
		orderID := fs.Int("id", 0, "order id")
		status := fs.String("status", "", "Pending|Processing|Shipped|Delivered|Cancelled")
		_ = fs.Parse(args)
		if *orderID == 0 || *status == "" {
			log.Fatal("order id and status are required")
		}
		if !models.ValidOrderStatus(models.OrderStatus(*status)) {
			log.Fatalf("unknown status %q", *status)
		}

		order, err := client.UpdateOrderStatus(ctx, sess.Token, *orderID, models.OrderStatus(*status))
		if err != nil {
			log.Fatalf("set-status failed: %v", err)
		}
		printJSON(order)
	default:
		log.Fatal("usage: techreads orders <list|set-status>")
	}
}

func handleCheckout(ctx context.Context, client *api.Client, sessions session.FileStore, sub string, args []string) {
	sess := mustSession(sessions)
	switch sub {
	case "preview":
		items, err := client.GetCart(ctx, sess.Token, sess.User.ID)
		if err != nil {
			log.Fatalf("preview failed: %v", err)
		}
		printJSON(checkout.ComputeTotals(items))
	case "pay":
		fs := flag.NewFlagSet("checkout pay", flag.ExitOnError)
		phone := fs.String("phone", "", "Safaricom phone number, e.g. 0712345678")
		orderID := fs.Int("order-id", 0, "order id to attach the payment to")
		amount := fs.Float64("amount", 0, "override amount (defaults to cart total)")
		_ = fs.Parse(args)

		msisdn, err := checkout.NormalizePhone(*phone)
		if err != nil {
			log.Fatal("a valid Safaricom number is required, e.g. 0712345678 or 254712345678")
		}

		pay := *amount
		if pay <= 0 {
			items, err := client.GetCart(ctx, sess.Token, sess.User.ID)
			if err != nil {
				log.Fatalf("fetch cart failed: %v", err)
			}
			if len(items) == 0 {
				log.Fatal("cart is empty")
			}
			pay = checkout.ComputeTotals(items).Total
		}

		resp, err := client.STKPush(ctx, sess.Token, api.STKPushRequest{
			PhoneNumber: msisdn,
			Amount:      pay,
			OrderID:     *orderID,
		})
		if err != nil {
			log.Fatalf("payment failed: %v", err)
		}
		fmt.Printf("✅ STK push sent for %.2f, check your phone\n", pay)
		if resp.CheckoutID != "" {
			fmt.Println("checkout id:", resp.CheckoutID)
		}
	default:
		log.Fatal("usage: techreads checkout <preview|pay>")
	}
}

func handleBadge(httpAddr, syncAddr, sub string, args []string) {
	switch sub {
	case "listen":
		fs := flag.NewFlagSet("badge listen", flag.ExitOnError)
		addr := fs.String("addr", strings.TrimPrefix(syncAddr, ":"), "TCP badge server address")
		pretty := fs.Bool("pretty", true, "pretty print JSON events")
		_ = fs.Parse(args)

		target := *addr
		if !strings.Contains(target, ":") {
			target = "127.0.0.1:" + target
		}
		for {
			if err := runBadgeTCP(target, *pretty); err != nil {
				log.Printf("[badge] disconnected: %v", err)
			}
			time.Sleep(1 * time.Second)
		}
	case "subscribe":
		fs := flag.NewFlagSet("badge subscribe", flag.ExitOnError)
		wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on the webapp host)")
		cookie := fs.String("cookie", "", "webapp session cookie, e.g. techreads_session=<id> (the stream is per session)")
		_ = fs.Parse(args)

		endpoint := *wsURL
		if endpoint == "" {
			endpoint = websocketURL(httpAddr, "/ws")
		}
		if err := runWebSocket(endpoint, *cookie); err != nil {
			log.Fatalf("subscribe failed: %v", err)
		}
	default:
		log.Fatal("usage: techreads badge <listen|subscribe>")
	}
}

func handleExport(ctx context.Context, client *api.Client, sub string, args []string) {
	switch sub {
	case "json":
		fs := flag.NewFlagSet("export json", flag.ExitOnError)
		out := fs.String("out", "data/books.json", "output JSON path")
		_ = fs.Parse(args)

		books, err := client.ListBooks(ctx, "")
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, books); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("✅ exported %d books to %s", len(books), *out)
	case "csv":
		fs := flag.NewFlagSet("export csv", flag.ExitOnError)
		out := fs.String("out", "data/books.csv", "output CSV path")
		_ = fs.Parse(args)

		books, err := client.ListBooks(ctx, "")
		if err != nil {
			log.Fatalf("export csv failed: %v", err)
		}
		if err := writeCSV(*out, books); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("✅ exported %d books to %s", len(books), *out)
	default:
		log.Fatal("usage: techreads export <json|csv>")
	}
}

func runBadgeTCP(addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[badge] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		line := reader.Bytes()
		if !pretty {
			fmt.Println(string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Println(string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(wsURL, cookie string) error {
	var header http.Header
	if cookie != "" {
		header = http.Header{"Cookie": []string{cookie}}
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[badge] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func writeJSON(path string, books []models.Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, books []models.Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "title", "author", "price", "stock", "category", "image_url", "rating",
	}); err != nil {
		return err
	}
	for _, b := range books {
		if err := writer.Write([]string{
			fmt.Sprintf("%d", b.ID),
			b.Title,
			b.Author,
			fmt.Sprintf("%.2f", b.Price),
			fmt.Sprintf("%d", b.Stock),
			b.Category,
			b.ImageURL,
			fmt.Sprintf("%.1f", b.Rating),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func optionalToken(sessions session.FileStore) string {
	sess, err := sessions.Load()
	if err != nil {
		return ""
	}
	return sess.Token
}

func mustSession(sessions session.FileStore) *models.Session {
	sess, err := sessions.Load()
	if err != nil {
		log.Fatalf("not logged in, run: techreads auth login (%v)", err)
	}
	if sess.User.ID == "" {
		if claims, err := session.DecodeToken(sess.Token); err == nil {
			sess.User.ID = claims.Subject
		}
	}
	return sess
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

// websocketURL turns a listen address like ":8080" or "host:8080" into
// a ws:// endpoint on the same host.
func websocketURL(httpAddr, path string) string {
	host := httpAddr
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	return (&url.URL{
		Scheme: "ws",
		Host:   host,
		Path:   path,
	}).String()
}

func printUsage() {
	fmt.Println("techreads <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout|whoami")
	fmt.Println("  books list|show|categories")
	fmt.Println("  cart list|add|remove")
	fmt.Println("  wishlist list|add|remove")
	fmt.Println("  orders list|set-status")
	fmt.Println("  checkout preview|pay")
	fmt.Println("  badge listen|subscribe")
	fmt.Println("  export json|csv")
}
