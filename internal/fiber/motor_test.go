package fiber

import (
	"math"
	"math/rand"
	"testing"
)

func TestMotorBindEntersPreStroke(t *testing.T) {
	arena := NewArena()
	env := testEnv()
	f := NewFilament(0, arena, env, 100, 100)
	m := NewMotor(1, arena, env, 120)

	if m.HeadState(0) != headFree {
		t.Fatal("fresh motor head should be free")
	}
	if err := arena.Bind(m.Sites()[0], f.Sites()[0]); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if m.HeadState(0) != headPreStroke {
		t.Errorf("binding should enter pre-stroke, got state %d", m.HeadState(0))
	}

	if err := arena.Unbind(m.Sites()[0]); err != nil {
		t.Fatalf("unbind: %v", err)
	}
	if m.HeadState(0) != headFree {
		t.Errorf("unbinding should free the head, got state %d", m.HeadState(0))
	}
}

func TestMotorStrokeShortensRestLength(t *testing.T) {
	arena := NewArena()
	m := NewMotor(0, arena, testEnv(), 100)

	m.SetHeadState(0, headPreStroke)
	preRest := m.Length()
	m.SetHeadState(0, headPostStroke)
	postRest := m.Length()

	if postRest >= preRest {
		t.Errorf("power stroke should shorten the backbone rest length: %f -> %f", preRest, postRest)
	}
}

func TestMotorUnbindRateStateAndForce(t *testing.T) {
	arena := NewArena()
	m := NewMotor(0, arena, testEnv(), 100)

	m.SetHeadState(0, headPreStroke)
	pre := m.UnbindRate(0, 2)
	m.SetHeadState(0, headPostStroke)
	post := m.UnbindRate(0, 2)

	if post <= pre {
		t.Errorf("post-stroke heads should detach faster: pre %f, post %f", pre, post)
	}
	if m.UnbindRate(0, 8) <= m.UnbindRate(0, 4) {
		t.Error("off-rate should strictly increase with force")
	}
}

func TestMotorStrokeRateShutsOffUnderStretch(t *testing.T) {
	arena := NewArena()
	m := NewMotor(0, arena, testEnv(), 100)

	relaxed := m.strokeRate(motorRests[headPreStroke])
	stretched := m.strokeRate(motorRests[headPreStroke] + 10)
	if stretched >= relaxed {
		t.Errorf("stretch should suppress the stroke: %f vs %f", stretched, relaxed)
	}
}

func TestDoublyBoundMotorPullsAttachmentsTogether(t *testing.T) {
	arena := NewArena()
	env := testEnv()
	f1 := NewFilament(0, arena, env, 100, 100)
	f2 := NewFilament(1, arena, env, 250, 100)
	m := NewMotor(2, arena, env, 150)

	last := len(f1.Sites()) - 1
	if err := arena.Bind(m.Sites()[0], f1.Sites()[last]); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := arena.Bind(m.Sites()[1], f2.Sites()[0]); err != nil {
		t.Fatalf("bind: %v", err)
	}

	gap := f2.SitePos(0) - f1.SitePos(last)
	if gap <= m.Length() {
		t.Fatalf("test geometry should stretch the motor, gap %f rest %f", gap, m.Length())
	}
	if f1.NetForce() <= 0 || f2.NetForce() >= 0 {
		t.Errorf("stretched motor should pull filaments together: %f, %f", f1.NetForce(), f2.NetForce())
	}

	// The stroke shortens the rest length, increasing the pull at fixed
	// geometry.
	before := math.Abs(f1.NetForce())
	m.SetHeadState(0, headPostStroke)
	after := math.Abs(f1.NetForce())
	if after <= before {
		t.Errorf("power stroke should increase contractile force: %f -> %f", before, after)
	}
}

func TestMotorProposeBoundActions(t *testing.T) {
	arena := NewArena()
	env := testEnv()
	m := NewMotor(0, arena, env, 100)
	rng := rand.New(rand.NewSource(21))

	// Pre-stroke at rest length: the stroke rate is high, so over many
	// samples some strokes must fire and every result must be valid.
	m.SetHeadState(0, headPreStroke)
	strokes := 0
	for i := 0; i < 2000; i++ {
		action, state, maxRate := m.ProposeBound(rng, 0, 0.5, motorRests[headPreStroke], 0.001)
		if maxRate <= 0 {
			t.Fatal("sampled rate should be positive")
		}
		switch action {
		case ActionStroke:
			if state != headPostStroke {
				t.Fatalf("pre-stroke stroke should target post-stroke, got %d", state)
			}
			strokes++
		case ActionStay, ActionUnbind:
		default:
			t.Fatalf("unexpected action %d", action)
		}
	}
	if strokes == 0 {
		t.Error("expected at least one stroke in 2000 samples at the relaxed length")
	}
}

func TestFreeMotorDiffusesWithinBounds(t *testing.T) {
	arena := NewArena()
	env := testEnv()
	env.Span = 400
	m := NewMotor(0, arena, env, 200)
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		m.Reposition(rng, 0.001)
		if m.X() < 0 || m.X()+m.Length() > env.Span {
			t.Fatalf("motor escaped bounds: x=%f", m.X())
		}
	}
}
