// storectl pulls and pushes a storefront's catalog as JSON, for backups and
// bulk edits outside the admin panel.
//
//	storectl -addr http://localhost:8080 pull > catalog.json
//	storectl -addr http://localhost:8080 push < catalog.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"DivineDazzle/internal/catalog"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "storefront base URL")
	user := flag.String("user", envOr("ADMIN_USER", "admin"), "admin username")
	pass := flag.String("pass", os.Getenv("ADMIN_PASS"), "admin password")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: storectl [flags] pull|push")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := NewStorefrontClient(*addr)
	if err := client.Login(ctx, *user, *pass); err != nil {
		fatal("login: %v", err)
	}

	switch flag.Arg(0) {
	case "pull":
		products, err := client.Pull(ctx)
		if err != nil {
			fatal("pull: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(products); err != nil {
			fatal("encode: %v", err)
		}

	case "push":
		var products []catalog.Product
		if err := json.NewDecoder(os.Stdin).Decode(&products); err != nil {
			fatal("decode stdin: %v", err)
		}
		if err := client.Push(ctx, products); err != nil {
			fatal("push: %v", err)
		}
		fmt.Fprintf(os.Stderr, "pushed %d products\n", len(products))

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		os.Exit(2)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
