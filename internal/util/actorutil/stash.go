package actorutil

import (
	"github.com/asynkron/protoactor-go/actor"
)

// Stash holds messages received in a state that cannot handle them yet.
type Stash struct {
	elems []stashed
}

type stashed struct {
	msg    any
	sender *actor.PID
}

func (s *Stash) Stash(ctx actor.Context, msg any) {
	s.elems = append(s.elems, stashed{msg: msg, sender: ctx.Sender()})
}

// UnstashAll re-delivers every stashed message to self, keeping the original sender.
func (s *Stash) UnstashAll(ctx actor.Context) {
	for _, e := range s.elems {
		ctx.RequestWithCustomSender(ctx.Self(), e.msg, e.sender)
	}
	s.elems = nil
}

func (s *Stash) Len() int {
	return len(s.elems)
}
