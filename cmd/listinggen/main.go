// Package main implements listinggen, a terminal front end that turns one
// product photo into five styled listing images and SEO listing copy.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point for listinggen.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errTasksFailed):
		fmt.Fprintf(os.Stderr, "listinggen: %v\n", err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "listinggen: %v\n", err)
		os.Exit(1)
	}
}
