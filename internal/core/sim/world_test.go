package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/steering/internal/core/observability/log"
	"github.com/zeusync/steering/internal/core/physics"
	"github.com/zeusync/steering/internal/core/steering"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(DefaultConfig(), log.NewNop())
	require.NoError(t, err)
	return w
}

func addAgent(t *testing.T, w *World, spec AgentSpec) ID {
	t.Helper()
	if spec.MaxAngularSpeed == 0 {
		spec.MaxAngularSpeed = 6
	}
	id, err := w.AddAgent(spec)
	require.NoError(t, err)
	return id
}

func stateOf(t *testing.T, w *World, name string) AgentState {
	t.Helper()
	for _, a := range w.Snapshot().Agents {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("agent %s not in snapshot", name)
	return AgentState{}
}

func TestNewWorldRejectsInvalidParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Evade.EvadeRadius = -1
	_, err := NewWorld(cfg, log.NewNop())
	assert.ErrorIs(t, err, steering.ErrInvalidParams)
}

func TestAddAgentValidation(t *testing.T) {
	w := newTestWorld(t)
	addAgent(t, w, AgentSpec{Name: "a", MaxLinearSpeed: 10})

	_, err := w.AddAgent(AgentSpec{Name: "a"})
	assert.ErrorIs(t, err, ErrDuplicateAgent)

	_, err = w.AddAgent(AgentSpec{Name: "b", Follow: "ghost"})
	assert.ErrorIs(t, err, ErrAgentNotFound)

	_, err = w.AddAgent(AgentSpec{})
	assert.ErrorIs(t, err, ErrInvalidAgent)

	_, err = w.AddAgent(AgentSpec{Name: "c", MaxLinearSpeed: -1})
	assert.ErrorIs(t, err, ErrInvalidAgent)

	_, err = w.AddAgent(AgentSpec{Name: "d", Follow: "a", Target: &physics.Vec2{}})
	assert.ErrorIs(t, err, ErrInvalidAgent)

	_, err = w.AddAgent(AgentSpec{Name: "e", Behavior: steering.Kind(77)})
	assert.ErrorIs(t, err, steering.ErrUnknownKind)

	assert.Equal(t, 1, w.Len())
}

func TestSeekReachesTarget(t *testing.T) {
	w := newTestWorld(t)
	target := physics.V(100, 0)
	addAgent(t, w, AgentSpec{Name: "s", Behavior: steering.KindSeek, MaxLinearSpeed: 100, Target: &target})

	require.NoError(t, w.Run(context.Background(), 20, 0.1))

	s := stateOf(t, w, "s")
	assert.True(t, s.Position.ApproxEqual(target, 1e-6), "got %v", s.Position)
	assert.True(t, s.Velocity.IsZero())
	assert.Equal(t, uint64(20), w.Snapshot().Tick)
	assert.InDelta(t, 2.0, w.Snapshot().Elapsed, 1e-9)
}

func TestArriveSlowsDownWithoutOvershoot(t *testing.T) {
	w := newTestWorld(t)
	target := physics.V(1000, 0)
	addAgent(t, w, AgentSpec{Name: "a", Behavior: steering.KindArrive, MaxLinearSpeed: 600, Target: &target})

	ctx := context.Background()
	for i := 0; i < 400; i++ {
		require.NoError(t, w.Step(ctx, 0.05))
		assert.LessOrEqual(t, stateOf(t, w, "a").Position.X, 1000.0)
	}

	a := stateOf(t, w, "a")
	distance := a.Position.Distance(target)
	assert.Less(t, distance, 101.0)
	assert.GreaterOrEqual(t, distance, 100.0)
	assert.Less(t, a.MaxLinearSpeed, 10.0)
	assert.Equal(t, 300.0, a.Debug.SlowRadius)
	assert.Equal(t, 100.0, a.Debug.TargetRadius)
}

func TestSetBehaviorResetsMaxSpeed(t *testing.T) {
	w := newTestWorld(t)
	target := physics.V(0, 100)
	id := addAgent(t, w, AgentSpec{Name: "f", Behavior: steering.KindFace, MaxLinearSpeed: 80, Target: &target})

	ctx := context.Background()
	require.NoError(t, w.Step(ctx, 0.1))
	f := stateOf(t, w, "f")
	assert.Zero(t, f.MaxLinearSpeed)
	assert.Greater(t, f.Rotation, 0.0, "turns left towards target")
	assert.True(t, f.Position.IsZero())

	require.NoError(t, w.SetBehavior(id, steering.KindSeek))
	f = stateOf(t, w, "f")
	assert.Equal(t, 80.0, f.MaxLinearSpeed)
	assert.Equal(t, steering.KindSeek, f.Behavior)

	require.NoError(t, w.Step(ctx, 0.1))
	assert.Greater(t, stateOf(t, w, "f").Position.Y, 0.0)

	assert.ErrorIs(t, w.SetBehavior("missing", steering.KindSeek), ErrAgentNotFound)
	assert.ErrorIs(t, w.SetBehavior(id, steering.Kind(50)), steering.ErrUnknownKind)
}

func TestPursuitCatchesRunner(t *testing.T) {
	w := newTestWorld(t)
	far := physics.V(10000, 0)
	addAgent(t, w, AgentSpec{Name: "runner", Behavior: steering.KindSeek, Position: physics.V(100, 0), MaxLinearSpeed: 50, Target: &far})
	chaser := addAgent(t, w, AgentSpec{Name: "chaser", Behavior: steering.KindPursuit, MaxLinearSpeed: 100})
	runner, ok := w.Lookup("runner")
	require.True(t, ok)
	require.NoError(t, w.FollowAgent(chaser, runner))

	require.NoError(t, w.Run(context.Background(), 200, 0.05))

	r, c := stateOf(t, w, "runner"), stateOf(t, w, "chaser")
	assert.Less(t, r.Position.Distance(c.Position), 25.0)
	assert.Equal(t, "runner", c.Following)
}

func TestEvadeOnlyInsideRadius(t *testing.T) {
	w := newTestWorld(t)
	threat := physics.V(1000, 0)
	id := addAgent(t, w, AgentSpec{Name: "dodger", Behavior: steering.KindEvade, MaxLinearSpeed: 100, Target: &threat})

	ctx := context.Background()
	require.NoError(t, w.Step(ctx, 0.1))
	d := stateOf(t, w, "dodger")
	assert.True(t, d.Position.IsZero())
	assert.False(t, d.Steering.IsValid)

	require.NoError(t, w.SetTargetPoint(id, physics.V(100, 0)))
	require.NoError(t, w.Step(ctx, 0.1))
	d = stateOf(t, w, "dodger")
	assert.True(t, d.Steering.IsValid)
	assert.Less(t, d.Position.X, 0.0)
	assert.Equal(t, 400.0, d.Debug.EvadeRadius)
}

func TestFollowValidation(t *testing.T) {
	w := newTestWorld(t)
	a := addAgent(t, w, AgentSpec{Name: "a"})

	assert.ErrorIs(t, w.FollowAgent(a, a), ErrInvalidAgent)
	assert.ErrorIs(t, w.FollowAgent(a, "nope"), ErrAgentNotFound)
	assert.ErrorIs(t, w.FollowAgent("nope", a), ErrAgentNotFound)
	assert.ErrorIs(t, w.SetTargetPoint("nope", physics.Zero), ErrAgentNotFound)
}

func TestRemoveAgentKeepsLastKnownTarget(t *testing.T) {
	w := newTestWorld(t)
	leader := addAgent(t, w, AgentSpec{Name: "leader", Position: physics.V(30, 40)})
	addAgent(t, w, AgentSpec{Name: "follower", Behavior: steering.KindSeek, Follow: "leader", MaxLinearSpeed: 10})

	require.NoError(t, w.RemoveAgent(leader))
	assert.ErrorIs(t, w.RemoveAgent(leader), ErrAgentNotFound)

	f := stateOf(t, w, "follower")
	assert.Empty(t, f.Following)
	assert.Equal(t, physics.V(30, 40), f.Target)
	assert.Equal(t, 1, w.Len())

	_, ok := w.Lookup("leader")
	assert.False(t, ok)
}

func TestStepErrors(t *testing.T) {
	w := newTestWorld(t)
	addAgent(t, w, AgentSpec{Name: "a", Behavior: steering.KindWander, MaxLinearSpeed: 10})

	assert.ErrorIs(t, w.Step(context.Background(), 0), ErrInvalidDelta)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Step(ctx, 0.1), context.Canceled)
	assert.ErrorIs(t, w.Run(ctx, 5, 0.1), context.Canceled)
	assert.Zero(t, w.Snapshot().Tick)
}

func TestWanderSnapshotDebug(t *testing.T) {
	w := newTestWorld(t)
	addAgent(t, w, AgentSpec{Name: "wanderer", Behavior: steering.KindWander, MaxLinearSpeed: 200})

	for i := 0; i < 5; i++ {
		require.NoError(t, w.Step(context.Background(), 0.1))

		s := stateOf(t, w, "wanderer")
		require.NotNil(t, s.Debug.WanderCenter)
		require.NotNil(t, s.Debug.WanderTarget)
		assert.Equal(t, 80.0, s.Debug.WanderRadius)
		assert.InDelta(t, s.Debug.WanderRadius, s.Debug.WanderCenter.Distance(*s.Debug.WanderTarget), 1e-9, "tick %d", i+1)
		assert.False(t, s.Velocity.IsZero())
	}
}
