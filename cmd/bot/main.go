package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := InitializeApp(ctx)
	if err != nil {
		log.Fatalln(err)
	}

	a.Info("Starting application")
	if err := a.Run(ctx); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		cleanup()
		stop()
		os.Exit(1)
	}
	cleanup()
}
