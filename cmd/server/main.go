package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bagbuilder-go/internal/app"

	"go.uber.org/zap"
)

func main() {
	a, err := app.New("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer a.Log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		a.Log.Fatal("Web server failed", zap.Error(err))
	}
	a.Log.Info("Server has been shut down.")
}
