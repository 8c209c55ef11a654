package actor

import (
	"sync"
	"testing"
	"time"

	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/util"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
sen6x:
  model: SEN66
sensor:
  - platform: sen6x
    co2:
      name: CO2
`

func spawnGenerator(t *testing.T) (*actor.ActorSystem, *actor.PID) {
	as := actor.NewActorSystem()
	cfg := util.LoadTestConfig()
	pid, err := as.Root.SpawnNamed(NewGeneratorActorProps(cfg, util.TestLogger(cfg)), domain.ACTOR_ID_GENERATOR)
	require.NoError(t, err)
	return as, pid
}

func TestGeneratorActorHealth(t *testing.T) {

	assert := assert.New(t)

	as, pid := spawnGenerator(t)
	defer as.Shutdown()

	res, err := as.Root.RequestFuture(pid, domain.ActorHealthRequest{}, 5*time.Second).Result()
	require.NoError(t, err)
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(ok)
	assert.True(healthResp.Healthy, "healthy is true")
	assert.Equal(domain.ACTOR_ID_GENERATOR, healthResp.Id)
	assert.Equal("ready", healthResp.State)
}

func TestGeneratorActorGenerate(t *testing.T) {

	assert := assert.New(t)

	as, pid := spawnGenerator(t)
	defer as.Shutdown()

	var mu sync.Mutex
	var events []domain.BuildEvent
	sub := as.EventStream.Subscribe(func(evt interface{}) {
		if e, ok := evt.(domain.BuildEvent); ok {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		}
	})
	defer as.EventStream.Unsubscribe(sub)

	res, err := as.Root.RequestFuture(pid, domain.GenerateRequest{Source: []byte(validConfig)}, 5*time.Second).Result()
	require.NoError(t, err)
	resp, ok := res.(domain.GenerateResponse)
	require.True(t, ok)
	assert.False(resp.HasResponseError())
	require.NotNil(t, resp.Build)
	assert.Len(resp.Build.Instructions, 4)

	res, err = as.Root.RequestFuture(pid, domain.GenerateRequest{Source: []byte("sen6x:\n  address: 300\n")}, 5*time.Second).Result()
	require.NoError(t, err)
	resp = res.(domain.GenerateResponse)
	assert.True(resp.HasResponseError())
	assert.Nil(resp.Build)
	assert.ErrorIs(resp.GetResponseError(), domain.ErrRange)

	res, err = as.Root.RequestFuture(pid, domain.ActorHealthRequest{}, 5*time.Second).Result()
	require.NoError(t, err)
	assert.Equal(uint64(2), res.(domain.ActorHealthResponse).Builds)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 2)
	completed, ok := events[0].(domain.BuildCompletedEvent)
	assert.True(ok)
	assert.Equal(domain.DefaultHubID, completed.BuildHubId())
	assert.Equal(4, completed.Instructions)
	rejected, ok := events[1].(domain.BuildRejectedEvent)
	assert.True(ok)
	assert.Len(rejected.Violations, 1)
}

func TestGeneratorActorRepliesToExplicitRecipient(t *testing.T) {

	as, pid := spawnGenerator(t)
	defer as.Shutdown()

	replies := make(chan domain.GenerateResponse, 1)
	recipient := as.Root.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
		if resp, ok := ctx.Message().(domain.GenerateResponse); ok {
			replies <- resp
		}
	}))

	as.Root.Send(pid, domain.GenerateRequest{
		ActorRequestMixIn: domain.ActorRequestMixIn{ReplyToRef: (*domain.ActorRef)(recipient)},
		Source:            []byte(validConfig),
	})

	select {
	case resp := <-replies:
		assert.False(t, resp.HasResponseError())
		require.NotNil(t, resp.Build)
		assert.Len(t, resp.Build.Instructions, 4)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply delivered to the recipient")
	}
}
