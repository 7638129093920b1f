package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := runApp(ctx, newApp(), os.Args)
	if err == nil {
		return
	}
	// errFailed was already reported
	if !errors.Is(err, errFailed) {
		fmt.Fprintf(os.Stderr, "memo: %s\n", err)
	}
	cancel()
	os.Exit(1)
}
