package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/smsify-backend/internal/config"
	"github.com/unclebandit/smsify-backend/internal/db"
	"github.com/unclebandit/smsify-backend/internal/metrics"
	"github.com/unclebandit/smsify-backend/internal/queue"
	"github.com/unclebandit/smsify-backend/internal/repository"
	"github.com/unclebandit/smsify-backend/internal/service"
	"github.com/unclebandit/smsify-backend/internal/telephony"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	cfg.ConfigureLogging()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close()

	q, err := queue.NewAMQPQueue(cfg.Queue.AMQPURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to RabbitMQ")
	}

	m := metrics.NewMetrics()
	dispatcher := &service.Dispatcher{
		Sender:            telephony.NewTwilioClient(cfg.Twilio),
		Messages:          &repository.MessageRepository{DB: database},
		StatusCallbackURL: cfg.Server.StatusCallbackURL(),
		Metrics:           m,
	}
	if err := startWorker(q, cfg.Queue.Name, dispatcher); err != nil {
		logrus.WithError(err).Fatal("failed to register consumer")
	}

	metricsSrv := newMetricsServer(":"+cfg.Queue.MetricsPort, m)
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("worker metrics server failed")
		}
	}()

	logrus.WithFields(logrus.Fields{"queue": cfg.Queue.Name, "metrics_port": cfg.Queue.MetricsPort}).Info("worker running, waiting for messages")
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("metrics server shutdown failed")
	}

	if err := q.Close(); err != nil {
		logrus.WithError(err).Error("queue close failed")
	}
}

// newMetricsServer serves the dispatcher counters for scraping.
func newMetricsServer(addr string, m *metrics.Metrics) *http.Server {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return &http.Server{Addr: addr, Handler: r, ReadTimeout: 10 * time.Second}
}

func startWorker(q queue.Queue, topic string, d *service.Dispatcher) error {
	if topic == "" {
		topic = service.DefaultSendTopic
	}
	return q.Subscribe(topic, d.HandleSendJob)
}
