// Command evmcore runs a single piece of bytecode to completion against a
// synthetic world state, optionally forked from a live JSON-RPC endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/word"
	"github.com/Gealber/evm-simulator/simulator"
)

var (
	callerFlag = &cli.StringFlag{Name: "caller", Usage: "caller address, 0x-prefixed 20-byte hex"}
	originFlag = &cli.StringFlag{Name: "origin", Usage: "origin address, 0x-prefixed 20-byte hex"}
	addrFlag   = &cli.StringFlag{Name: "address", Usage: "callee address, 0x-prefixed 20-byte hex"}
	valueFlag  = &cli.StringFlag{Name: "value", Usage: "call value, 0x-prefixed hex"}
	dataFlag   = &cli.StringFlag{Name: "data", Usage: "call data, 0x-prefixed hex"}
	forkFlag   = &cli.StringFlag{Name: "fork", Usage: "JSON-RPC endpoint to lazily fetch code/storage from"}
	debugFlag  = &cli.IntFlag{Name: "debug-level", Usage: "0..255, copied onto each execution frame; no trace output is produced"}
)

func main() {
	app := &cli.App{
		Name:      "evmcore",
		Version:   "0.1.0",
		Usage:     "run EVM bytecode to completion against a synthetic world state",
		UsageText: "evmcore [options] BYTECODE-OR-PATH",
		Flags:     []cli.Flag{callerFlag, originFlag, addrFlag, valueFlag, dataFlag, forkFlag, debugFlag},
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one positional argument: bytecode hex or a path to a file containing it", 1)
	}

	code, err := resolveBytecode(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	value := word.Zero
	if v := c.String("value"); v != "" {
		value = word.FromBigEndian(hexutil.MustDecode(v))
	}

	var callData []byte
	if d := c.String("data"); d != "" {
		callData = hexutil.MustDecode(d)
	}

	sim := simulator.Simulation{
		Caller:     parseAddress(c.String("caller")),
		Origin:     parseAddress(c.String("origin")),
		Callee:     parseAddress(c.String("address")),
		Value:      value,
		Data:       callData,
		Code:       code,
		Fork:       c.String("fork"),
		DebugLevel: uint8(c.Int("debug-level")),
	}

	result, err := simulator.New().Simulate(sim)
	if err != nil {
		return cli.Exit(err, 1)
	}

	log.Info("evmcore: execution finished", "status", result.Status.String(), "returnData", hexutil.Encode(result.ReturnData))
	if result.Err != nil {
		log.Error("evmcore: halted with error", "err", result.Err)
	}
	for _, rec := range result.Logs {
		log.Info("evmcore: log emitted", "address", rec.Address.Hex(), "topics", len(rec.Topics), "dataLen", len(rec.Data))
	}

	if result.Status != frame.HaltedOk {
		return cli.Exit(fmt.Sprintf("halted: %s", result.Status), 1)
	}
	return nil
}

// resolveBytecode accepts a 0x-prefixed hex literal directly, or treats the
// argument as a file path holding one when it doesn't parse as hex.
func resolveBytecode(arg string) ([]byte, error) {
	if b, err := hexutil.Decode(arg); err == nil {
		return b, nil
	}
	contents, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("argument is neither valid hex nor a readable file: %w", err)
	}
	return hexutil.Decode(string(trimNewline(contents)))
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func parseAddress(s string) word.Address {
	if s == "" {
		return word.Address{}
	}
	return word.AddressFromCommon(common.HexToAddress(s))
}
