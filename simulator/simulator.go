// Package simulator is the programmatic entry point cmd/evmcore drives: it
// wires a Simulation's inputs into a WorldState and a Machine, runs the
// outermost frame to completion, and reports the result in a shape callers
// can inspect without reaching into internal/frame or internal/state
// themselves.
package simulator

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/Gealber/evm-simulator/internal/evmerr"
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/interpreter"
	"github.com/Gealber/evm-simulator/internal/rpcfetch"
	"github.com/Gealber/evm-simulator/internal/state"
	"github.com/Gealber/evm-simulator/internal/word"
)

// Simulation describes a single outermost call.
type Simulation struct {
	Caller word.Address
	Origin word.Address
	Callee word.Address
	Value  word.Word
	Data   []byte

	// Code is the bytecode to run. If empty, it is fetched from Fork (or
	// from an already-installed account, if one exists).
	Code []byte

	// Fork, if non-empty, is a JSON-RPC endpoint backing lazy code/storage
	// reads for any address the run touches but never initialises locally.
	Fork string

	DebugLevel uint8
}

// Result reports the outermost frame's terminal state.
type Result struct {
	Status     frame.Status
	ReturnData []byte
	Logs       []state.LogRecord
	Err        error
}

// Simulator runs Simulations against a fresh WorldState each time.
type Simulator struct{}

// New returns a ready-to-use Simulator.
func New() *Simulator {
	return &Simulator{}
}

// Simulate builds a WorldState from sim, seeds the outermost caller's
// balance (spec's 1000-ether placeholder), and drives the interpreter to a
// terminal status.
func (s *Simulator) Simulate(sim Simulation) (*Result, error) {
	var fetcher state.Fetcher
	if sim.Fork != "" {
		fetcher = rpcfetch.NewClient(sim.Fork, "latest")
		log.Info("simulator: forking from", "endpoint", sim.Fork)
	}

	world := state.New(fetcher)

	world.InitAccount(sim.Caller)
	if acc, ok := world.Accounts[sim.Caller]; ok {
		acc.Balance = interpreter.InitialCallerBalance
	}

	// Look up code before the callee gets a local record, so an unknown
	// callee still reaches the fetcher.
	code := sim.Code
	if len(code) == 0 {
		fetched, err := world.GetCode(sim.Callee)
		if err != nil && err != evmerr.ErrCodeMissing {
			return nil, err
		}
		code = fetched
	}
	world.InitAccount(sim.Callee)
	if len(sim.Code) > 0 {
		if err := world.PutCode(sim.Callee, code); err != nil {
			return nil, err
		}
	}

	if len(code) == 0 {
		return nil, evmerr.ErrEmptyBytecode
	}

	if !sim.Value.IsZero() {
		if err := world.Transfer(sim.Caller, sim.Callee, sim.Value); err != nil {
			return nil, err
		}
	}

	f := frame.New(code, sim.Data, sim.Caller, sim.Origin, sim.Callee, sim.Value, 0, sim.DebugLevel)
	m := interpreter.New(world)
	m.Run(f)

	log.Info("simulator: run finished", "status", f.Status.String())

	return &Result{
		Status:     f.Status,
		ReturnData: f.ReturnData,
		Logs:       world.Logs,
		Err:        f.Err,
	}, nil
}
