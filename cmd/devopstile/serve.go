package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/suPer8Hu/devopstile/internal/ai"
	"github.com/suPer8Hu/devopstile/internal/chat"
	"github.com/suPer8Hu/devopstile/internal/httpapi"
	"github.com/suPer8Hu/devopstile/internal/httpapi/handlers"
	"github.com/suPer8Hu/devopstile/internal/session"
	"github.com/suPer8Hu/devopstile/internal/store/rabbitmq"
	"github.com/suPer8Hu/devopstile/internal/store/redisstore"
	"github.com/suPer8Hu/devopstile/internal/translator"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// replyDelay maps the configured delay onto chat.Options, where zero
// means the default and a negative value means none.
func replyDelay(d time.Duration) time.Duration {
	if d <= 0 {
		return -1
	}
	return d
}

func newSessionManager(provider ai.Provider) *session.Manager {
	return session.NewManager(func() *chat.Store {
		return chat.NewStore(chat.Options{
			Provider:   provider,
			ReplyDelay: replyDelay(cfg.ChatReplyDelay),
			Log:        log,
		})
	}, cfg.SessionTTL, log)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewDefaultRegistry().Get(ctx, cfg.AIProvider)
	if err != nil {
		return err
	}

	svc, closeDB, err := openTranslator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	h := &handlers.Handler{
		Translator: svc,
		IdemTTL:    cfg.IdempotencyTTL,
		Log:        log,
	}

	// rabbitMQ when configured, otherwise jobs run in this process
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			return err
		}
		defer pub.Close()
		h.Jobs = pub
		log.Info("translation jobs go to rabbitmq", zap.String("queue", cfg.RabbitQueue))
	} else {
		q := translator.NewLocalQueue(svc, cfg.WorkerConcurrency, log)
		defer q.Close()
		h.Jobs = q
		log.Info("translation jobs run in-process", zap.Int("concurrency", cfg.WorkerConcurrency))
	}

	if cfg.RedisAddr != "" {
		rdb := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		if err := rdb.Ping(ctx); err != nil {
			log.Warn("redis unavailable, idempotency keys still attempted", zap.Error(err))
		}
		h.Idem = rdb
	}

	sessions := newSessionManager(provider)
	defer sessions.Close()
	h.Sessions = sessions

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(h, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx, cfg.SessionSweepInterval)
	})
	g.Go(func() error {
		watchOverlay(gctx, svc)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
