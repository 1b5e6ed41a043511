// Package script drives the player from a JavaScript decide function.
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"arenashooter/game"

	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
)

var ErrNoDecide = errors.New("script must define a 'decide' function")

// DefaultBudget bounds a single decide call
const DefaultBudget = 20 * time.Millisecond

// Decision is what decide(state) returns. Missing fields are false or zero.
type Decision struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Jump     bool `json:"jump"`

	// Yaw and Pitch set the view. Nil keeps the previous value.
	Yaw   *float64 `json:"yaw,omitempty"`
	Pitch *float64 `json:"pitch,omitempty"`

	Fire   bool `json:"fire"`
	Reload bool `json:"reload"`
}

// Input implements game.Input by calling the script once per observed
// snapshot. Errors leave the player idle for that frame.
type Input struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	decide goja.Callable
	budget time.Duration

	decision Decision
	yaw      float64
	pitch    float64
	lastErr  string
}

var (
	_ game.Input    = (*Input)(nil)
	_ game.Reloader = (*Input)(nil)
)

// NewInput compiles code and checks that it defines decide.
func NewInput(name, code string) (*Input, error) {
	program, err := goja.Compile(name, code, true)
	if err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	if _, err := vm.RunProgram(program); err != nil {
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	decide, ok := goja.AssertFunction(vm.Get("decide"))
	if !ok {
		return nil, ErrNoDecide
	}

	return &Input{
		vm:     vm,
		decide: decide,
		budget: DefaultBudget,
	}, nil
}

// SetBudget changes how long decide may run before it is interrupted.
func (in *Input) SetBudget(budget time.Duration) {
	in.mu.Lock()
	in.budget = budget
	in.mu.Unlock()
}

// Observe runs decide against the given state and keeps the result for the
// next frame.
func (in *Input) Observe(state game.Snapshot) {
	in.mu.Lock()
	defer in.mu.Unlock()

	decision, err := in.run(state)
	if err != nil {
		if msg := err.Error(); msg != in.lastErr {
			log.Warn().Err(err).Uint64("frame", state.Frame).Msg("script decide failed")
			in.lastErr = msg
		}
		in.decision = Decision{}
		return
	}
	in.lastErr = ""

	in.decision = decision
	if decision.Yaw != nil {
		in.yaw = *decision.Yaw
	}
	if decision.Pitch != nil {
		in.pitch = *decision.Pitch
	}
}

func (in *Input) run(state game.Snapshot) (Decision, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to serialize state: %w", err)
	}

	in.vm.ClearInterrupt()
	stateObj, err := in.vm.RunString(fmt.Sprintf("(%s)", string(stateJSON)))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to parse state: %w", err)
	}

	if in.budget > 0 {
		var (
			guard sync.Mutex
			done  bool
		)
		timer := time.AfterFunc(in.budget, func() {
			guard.Lock()
			defer guard.Unlock()
			if !done {
				in.vm.Interrupt("decide exceeded its time budget")
			}
		})
		defer func() {
			timer.Stop()
			guard.Lock()
			done = true
			guard.Unlock()
			in.vm.ClearInterrupt()
		}()
	}

	result, err := in.decide(goja.Undefined(), stateObj)
	if err != nil {
		return Decision{}, fmt.Errorf("decide function failed: %w", err)
	}
	if goja.IsUndefined(result) || goja.IsNull(result) {
		return Decision{}, nil
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return Decision{}, fmt.Errorf("failed to serialize result: %w", err)
	}

	var decision Decision
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return Decision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, string(resultJSON))
	}

	return decision, nil
}

// Decision returns the most recent decision
func (in *Input) Decision() Decision {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.decision
}

func (in *Input) MovementIntent() game.Intent {
	d := in.Decision()
	return game.Intent{
		Forward:  d.Forward,
		Backward: d.Backward,
		Left:     d.Left,
		Right:    d.Right,
		Jump:     d.Jump,
	}
}

func (in *Input) ViewYaw() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.yaw
}

func (in *Input) ViewPitch() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.pitch
}

func (in *Input) PrimaryActionPressed() bool { return in.Decision().Fire }

func (in *Input) ReloadPressed() bool { return in.Decision().Reload }
