package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justsurfingit/job-catalog/internal/app"

	"go.uber.org/fx"
)

const shutdownTimeout = 15 * time.Second

func main() {
	application := fx.New(app.Module)

	startCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := application.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	if err := application.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
