package actorutil

import (
	"github.com/asynkron/protoactor-go/actor"
)

// ActorWithStates keeps the current state name alongside the protoactor behavior.
type ActorWithStates struct {
	Behavior actor.Behavior
	current  string
}

type ActorState interface {
	Name() string
	Receive(actor.Context)
}

func NewActorWithStates(initial ActorState) *ActorWithStates {
	s := &ActorWithStates{Behavior: actor.NewBehavior()}
	s.Become(initial)
	return s
}

func (s *ActorWithStates) Receive(ctx actor.Context) {
	s.Behavior.Receive(ctx)
}

func (s *ActorWithStates) Become(state ActorState) {
	s.current = state.Name()
	s.Behavior.Become(state.Receive)
}

// StateName returns the name of the active state.
func (s *ActorWithStates) StateName() string {
	return s.current
}
