package actorutil

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"

	"github.com/asynkron/protoactor-go/actor"
)

// ExtendedRequest answers a request either to its explicit ReplyTo or to the sender.
type ExtendedRequest interface {
	Respond(ctx actor.Context, resp domain.ActorResponse)
}

type forRequest struct {
	req domain.ActorRequest
}

func ForRequest(r domain.ActorRequest) ExtendedRequest {
	return forRequest{req: r}
}

func (r forRequest) Respond(ctx actor.Context, resp domain.ActorResponse) {
	if to := r.req.ReplyTo(); to != nil {
		ctx.Send((*actor.PID)(to), resp)
		return
	}
	ctx.Respond(resp)
}
