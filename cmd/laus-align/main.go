// cmd/laus-align/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"laus/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	code := app.RunAlignContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
