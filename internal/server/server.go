package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/berfenger/sen6xgen/internal/config"

	"github.com/asynkron/protoactor-go/actor"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type Server struct {
	port           uint
	httpLog        bool
	buildTimeout   time.Duration
	rootContext    *actor.RootContext
	generatorActor *actor.PID
	logger         *zap.Logger
}

func NewServer(cfg config.Config, rootContext *actor.RootContext, generatorActor *actor.PID, logger *zap.Logger) *http.Server {
	NewServer := &Server{
		port:           cfg.Port,
		httpLog:        cfg.HttpLog,
		buildTimeout:   time.Duration(cfg.BuildTimeoutMillis)*time.Millisecond + 5*time.Second,
		rootContext:    rootContext,
		generatorActor: generatorActor,
		logger:         logger.With(zap.String("component", "server")),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
