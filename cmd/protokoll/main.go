package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rootcmd "github.com/go-ports/protokoll/cmd/protokoll/root"
)

func main() {
	// SIGTERM matters for the long-running mcp verb; the rest exit quickly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootcmd.New().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "protokoll:", err)
		os.Exit(1)
	}
}
