package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chatbotbro/backend/internal/ai"
	"github.com/chatbotbro/backend/internal/bot"
	"github.com/chatbotbro/backend/internal/chat"
	"github.com/chatbotbro/backend/internal/config"
	"github.com/chatbotbro/backend/internal/httpapi"
	"github.com/chatbotbro/backend/internal/httpapi/handlers"
	"github.com/chatbotbro/backend/internal/speech"
	"github.com/chatbotbro/backend/internal/store/mongostore"
	"github.com/chatbotbro/backend/internal/store/rabbitmq"
)

func main() {
	cfg := config.Load()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(dctx)
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Printf("ensure indexes: %v", err)
	}

	var provider ai.Provider
	if cfg.GoogleAPIKey != "" {
		provider = ai.NewGeminiProvider("", cfg.GoogleAPIKey, cfg.GeminiModel)
		log.Printf("gemini enabled model=%s", cfg.GeminiModel)
	} else {
		log.Printf("GOOGLE_API_KEY not set, canned responses only")
	}
	responder := bot.NewResponder(provider)

	var synth chat.Synthesizer
	if cfg.TTSCredentials != "" {
		synth = speech.NewGoogleSynthesizer(cfg.AudioDir)
		log.Printf("speech synthesis enabled dir=%s", cfg.AudioDir)
	}

	var events chat.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Printf("rabbit dial failed, turn events disabled: %v", err)
		} else {
			defer pub.Close()
			events = pub
			log.Printf("turn events enabled queue=%s", cfg.RabbitQueue)
		}
	}

	repo := chat.NewRepo(store.Conversations(), store.Messages())
	svc := chat.NewService(repo, responder, synth, events)

	h := handlers.NewHandler(svc, cfg)
	router := httpapi.NewRouter(h, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("server shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
