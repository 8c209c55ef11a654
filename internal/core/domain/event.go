package domain

import "fmt"

type BuildEventMixIn struct {
	HubId string
	Model string
}

// BuildEvent is published on the actor system event stream after every generation run.
type BuildEvent interface {
	BuildEvent() string
	BuildHubId() string
}

func (e BuildEventMixIn) BuildEvent() string {
	return fmt.Sprintf("%T", e)
}

func (e BuildEventMixIn) BuildHubId() string {
	return e.HubId
}

type BuildCompletedEvent struct {
	BuildEventMixIn
	ModelKnown   bool
	Entities     int
	Instructions int
}

type BuildRejectedEvent struct {
	BuildEventMixIn
	Violations []*FieldError
}

type BuildFailedEvent struct {
	BuildEventMixIn
	Err error
}
