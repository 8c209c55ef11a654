package actor

import (
	"fmt"
	"time"

	"github.com/berfenger/sen6xgen/internal/config"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/port"
	"github.com/berfenger/sen6xgen/internal/core/service"
	"github.com/berfenger/sen6xgen/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const defaultBuildTimeout = 10 * time.Second

// GeneratorActor serialises generation runs through its mailbox and publishes
// a build event for every run.
type GeneratorActor struct {
	*actorutil.ActorWithStates
	generator    port.ConfigGenerator
	buildTimeout time.Duration
	stash        *actorutil.Stash
	builds       uint64
	logger       *zap.Logger
}

func NewGeneratorActor(cfg config.Config, generator port.ConfigGenerator, logger *zap.Logger) *GeneratorActor {
	act := &GeneratorActor{
		generator:    generator,
		buildTimeout: defaultBuildTimeout,
		stash:        &actorutil.Stash{},
		logger:       actorutil.ActorLogger(domain.ACTOR_ID_GENERATOR, logger),
	}
	if cfg.BuildTimeoutMillis > 0 {
		act.buildTimeout = time.Duration(cfg.BuildTimeoutMillis) * time.Millisecond
	}
	act.ActorWithStates = actorutil.NewActorWithStates(startingState{act})
	return act
}

// NewGeneratorActorProps builds the actor with a service.Generator.
func NewGeneratorActorProps(cfg config.Config, logger *zap.Logger) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewGeneratorActor(cfg, service.NewGenerator(cfg, logger), logger)
	})
}

type startingState struct {
	*GeneratorActor
}

func (s startingState) Name() string {
	return "starting"
}

func (s startingState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		s.logger.Debug("generator@starting started")
		s.Become(readyState(s))
		s.stash.UnstashAll(ctx)
	default:
		s.logger.Debug("generator@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		s.stash.Stash(ctx, msg)
	}
}

type readyState struct {
	*GeneratorActor
}

func (s readyState) Name() string {
	return "ready"
}

func (s readyState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		s.logger.Debug("generator@ready ActorHealthRequest")
		actorutil.ForRequest(msg).Respond(ctx, domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_GENERATOR,
			Healthy: true,
			State:   s.StateName(),
			Builds:  s.builds,
		})
	case domain.GenerateRequest:
		s.logger.Debug("generator@ready GenerateRequest", zap.Int("bytes", len(msg.Source)))
		s.generate(ctx, msg)
	case *actor.Stopping, *actor.Stopped, *actor.Restarting:
	default:
		s.logger.Debug("generator@ready ignored", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *GeneratorActor) generate(ctx actor.Context, req domain.GenerateRequest) {
	state.builds++
	respond := actorutil.ForRequest(req)
	stream := ctx.ActorSystem().EventStream

	actorutil.NewBackgroundTask(func() (*domain.GenerateResponse, error) {
		build, err := state.generator.Generate(req.Source)
		return &domain.GenerateResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
			Build:              build,
		}, nil
	}).WithTimeout(state.buildTimeout).Recover(func(err error) domain.GenerateResponse {
		state.logger.Error("generation failed", zap.Error(err))
		return domain.GenerateResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
		}
	}).OnSuccess(func(resp domain.GenerateResponse) {
		stream.Publish(buildEvent(resp))
		respond.Respond(ctx, resp)
	}).Run()
}

func buildEvent(resp domain.GenerateResponse) domain.BuildEvent {
	if resp.Build != nil {
		return domain.BuildCompletedEvent{
			BuildEventMixIn: domain.BuildEventMixIn{HubId: resp.Build.Hub.ID, Model: resp.Build.Hub.Model},
			ModelKnown:      resp.Build.ModelKnown,
			Entities:        len(resp.Build.Entities),
			Instructions:    len(resp.Build.Instructions),
		}
	}
	if service.IsViolation(resp.ResponseError) {
		return domain.BuildRejectedEvent{Violations: domain.Violations(resp.ResponseError)}
	}
	return domain.BuildFailedEvent{Err: resp.ResponseError}
}
