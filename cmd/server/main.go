// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/smsify-backend/internal/classifier"
	"github.com/unclebandit/smsify-backend/internal/config"
	"github.com/unclebandit/smsify-backend/internal/controller"
	"github.com/unclebandit/smsify-backend/internal/db"
	"github.com/unclebandit/smsify-backend/internal/handler"
	"github.com/unclebandit/smsify-backend/internal/metrics"
	"github.com/unclebandit/smsify-backend/internal/middleware"
	"github.com/unclebandit/smsify-backend/internal/queue"
	"github.com/unclebandit/smsify-backend/internal/repository"
	"github.com/unclebandit/smsify-backend/internal/server"
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

	m := metrics.NewMetrics()
	twilioClient := telephony.NewTwilioClient(cfg.Twilio)

	messageRepo := &repository.MessageRepository{DB: database}
	replyRepo := &repository.ReplyRepository{DB: database}
	categoryRepo := &repository.CategoryRepository{DB: database}
	categorizationRepo := &repository.ReplyCategorizationRepository{DB: database}
	campaignRepo := &repository.CampaignRepository{DB: database}
	contactRepo := &repository.ContactRepository{DB: database}

	q, err := newQueue(cfg.Queue)
	if err != nil {
		logrus.WithError(err).Fatal("failed to set up send queue")
	}
	if cfg.Queue.Driver == "memory" {
		dispatcher := &service.Dispatcher{
			Sender:            twilioClient,
			Messages:          messageRepo,
			StatusCallbackURL: cfg.Server.StatusCallbackURL(),
			Metrics:           m,
		}
		if err := q.Subscribe(cfg.Queue.Name, dispatcher.HandleSendJob); err != nil {
			logrus.WithError(err).Fatal("failed to subscribe dispatcher")
		}
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		ContactRepo:  contactRepo,
		Queue:        q,
		Topic:        cfg.Queue.Name,
	}

	ingestion := &service.IngestionService{
		Messages:        messageRepo,
		Replies:         replyRepo,
		Categories:      categoryRepo,
		Categorizations: categorizationRepo,
		Classifier:      classifier.New(classifier.NewOpenAICompleter(cfg.OpenAI), cfg.OpenAI.Timeout, m),
		Metrics:         m,
	}

	var validator middleware.SignatureValidator
	if cfg.Twilio.ValidateSignatures {
		validator = twilioClient
	} else {
		logrus.Warn("twilio signature validation is disabled")
	}

	router := server.NewRouter(&server.Handlers{
		SMS: &controller.SMSController{
			Ingestion:       ingestion,
			MessageService:  &service.MessageService{MessageRepo: messageRepo, ReplyRepo: replyRepo, CampaignRepo: campaignRepo},
			CampaignService: campaignService,
		},
		Category: &controller.CategoryController{
			CategoryService: &service.CategoryService{CategoryRepo: categoryRepo, CampaignRepo: campaignRepo},
		},
		Campaign: &controller.CampaignController{CampaignService: campaignService},
		Health:   handler.NewHealthHandler(database),
		Metrics:  m.Handler(),
		Webhook:  middleware.TwilioSignature(validator, cfg.Server.PublicURL),
		Auth:     middleware.Auth(cfg.Auth.JWTSecret),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
	}
	if err := q.Close(); err != nil {
		logrus.WithError(err).Error("queue close failed")
	}
}

func newQueue(cfg config.QueueConfig) (queue.Queue, error) {
	if cfg.Driver == "amqp" {
		return queue.NewAMQPQueue(cfg.AMQPURL)
	}
	return queue.NewInMemoryQueue(), nil
}
