package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/devopstile/internal/store/rabbitmq"
	"golang.org/x/sync/errgroup"
)

var errRabbitRequired = errors.New("worker needs RABBIT_URL")

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume translation jobs from RabbitMQ",
	Args:  cobra.NoArgs,
	RunE:  runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	if cfg.RabbitURL == "" {
		return errRabbitRequired
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, closeDB, err := openTranslator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitQueue, cfg.WorkerConcurrency, log)
	if err != nil {
		return err
	}
	defer consumer.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Run(gctx, svc.RunJob)
	})
	g.Go(func() error {
		watchOverlay(gctx, svc)
		return nil
	})
	return g.Wait()
}
