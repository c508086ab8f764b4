package uci

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ChizhovVadim/CounterTree/pkg/common"
	"github.com/ChizhovVadim/CounterTree/pkg/engine"
)

// ErrUciMode is returned by the bridge "go" command. The caller continues
// with the UCI protocol on the same input.
var ErrUciMode = fmt.Errorf("%w: switch to uci", ErrQuit)

var errBadArguments = errors.New("bad arguments")

// Bridge serves the numeric line protocol used by a host process.
// Every command is answered with exactly one line of space separated values.
type Bridge struct {
	engine *engine.Engine
	Output io.Writer
	async  *asyncExpand
}

type asyncExpand struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func NewBridge(eng *engine.Engine) *Bridge {
	return &Bridge{
		engine: eng,
		Output: os.Stdout,
	}
}

type reply struct {
	sb strings.Builder
}

func (r *reply) writeInt(v int64) {
	if r.sb.Len() != 0 {
		r.sb.WriteByte(' ')
	}
	r.sb.WriteString(strconv.FormatInt(v, 10))
}

func (r *reply) writeBool(v bool) {
	if v {
		r.writeInt(1)
	} else {
		r.writeInt(0)
	}
}

func (r *reply) writeString(s string) {
	if r.sb.Len() != 0 {
		r.sb.WriteByte(' ')
	}
	r.sb.WriteString(s)
}

func (b *Bridge) Handle(ctx context.Context, commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	var h func(ctx context.Context, r *reply, fields []string) error

	switch commandName {
	case "in":
		h = b.initCommand
	case "se":
		h = b.setupCommand
	case "et":
		h = b.expandTimeCommand
	case "e0":
		h = b.startCommand
	case "e1":
		h = b.stopCommand
	case "tl":
		h = b.testLegalityCommand
	case "tc":
		h = b.testCheckCommand
	case "gd":
		h = b.outputDataCommand
	case "ex":
		b.stop()
		return ErrQuit
	case "go":
		b.stop()
		return ErrUciMode
	}

	var r = &reply{}
	var err error
	if h == nil {
		err = fmt.Errorf("command not found: %v", commandName)
	} else {
		err = h(ctx, r, fields)
	}
	fmt.Fprintln(b.Output, r.sb.String())
	return err
}

func parseInts(fields []string, n int) ([]int, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: %v values expected", errBadArguments, n)
	}
	var result = make([]int, n)
	for i := range result {
		var v, err = strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadArguments, err)
		}
		result[i] = v
	}
	return result, nil
}

// in <nodes> <moves> <threads> <seed expansions>
func (b *Bridge) initCommand(ctx context.Context, r *reply, fields []string) error {
	var args, err = parseInts(fields, 4)
	if err != nil {
		r.writeBool(false)
		return err
	}
	var nodes, moves, threads, seed = args[0], args[1], args[2], args[3]
	if nodes < 1000 || moves < 1000 || threads < 1 || threads > 100 || seed < 0 {
		r.writeBool(false)
		return fmt.Errorf("%w: %v", errBadArguments, args)
	}
	b.stop()
	b.engine.Options.MaxNodes = nodes
	b.engine.Options.Threads = threads
	b.engine.Options.SeedExpansions = seed
	b.engine.Prepare()
	r.writeBool(true)
	return nil
}

// se <depth limit> <wire position>
func (b *Bridge) setupCommand(ctx context.Context, r *reply, fields []string) error {
	var args, err = parseInts(fields, 1)
	if err != nil {
		r.writeBool(false)
		return err
	}
	p, err := common.ParseWireFields(fields[1:])
	if err != nil {
		r.writeBool(false)
		return err
	}
	b.stop()
	b.engine.Options.DepthLimit = args[0]
	err = b.engine.Setup(&p)
	r.writeBool(err == nil)
	return err
}

// et <milliseconds>
func (b *Bridge) expandTimeCommand(ctx context.Context, r *reply, fields []string) error {
	var args, err = parseInts(fields, 1)
	if err != nil {
		r.writeBool(false)
		return err
	}
	b.stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(args[0])*time.Millisecond)
	defer cancel()
	_, err = b.engine.Expand(ctx, 0, nil)
	if errors.Is(err, engine.ErrTreeFull) {
		err = nil
	}
	r.writeBool(err == nil)
	return err
}

// e0 starts expanding in the background.
func (b *Bridge) startCommand(ctx context.Context, r *reply, fields []string) error {
	if b.async != nil {
		r.writeBool(false)
		return engine.ErrSearchRunning
	}
	if !b.engine.IsSetup() {
		r.writeBool(false)
		return engine.ErrNotSetup
	}
	ctx, cancel := context.WithCancel(ctx)
	var async = &asyncExpand{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	b.async = async
	go func() {
		defer close(async.done)
		_, async.err = b.engine.Expand(ctx, 0, nil)
	}()
	r.writeBool(true)
	return nil
}

// e1 stops the background expansion.
func (b *Bridge) stopCommand(ctx context.Context, r *reply, fields []string) error {
	var err = b.stop()
	r.writeBool(true)
	return err
}

// stop waits for the background expansion and returns its error.
// A full tree is a normal way for it to end.
func (b *Bridge) stop() error {
	if b.async == nil {
		return nil
	}
	b.async.cancel()
	<-b.async.done
	var err = b.async.err
	b.async = nil
	if errors.Is(err, engine.ErrTreeFull) {
		return nil
	}
	return err
}

// tl <from> <to> <wire position>
func (b *Bridge) testLegalityCommand(ctx context.Context, r *reply, fields []string) error {
	var args, err = parseInts(fields, 2)
	if err != nil {
		r.writeBool(false)
		return err
	}
	p, err := common.ParseWireFields(fields[2:])
	if err != nil {
		r.writeBool(false)
		return err
	}
	r.writeBool(common.IsLegalMove(&p, args[0], args[1]))
	return nil
}

// tc <isBlack> <wire position>
func (b *Bridge) testCheckCommand(ctx context.Context, r *reply, fields []string) error {
	var args, err = parseInts(fields, 1)
	if err != nil {
		r.writeBool(false)
		return err
	}
	p, err := common.ParseWireFields(fields[1:])
	if err != nil {
		r.writeBool(false)
		return err
	}
	var white = args[0] == 0
	r.writeBool(common.IsInCheck(&p, p.KingSquare(white), white))
	return nil
}

// gd writes the ranked root moves and the search statistics.
func (b *Bridge) outputDataCommand(ctx context.Context, r *reply, fields []string) error {
	b.stop()
	var rootMoves = b.engine.RootMoves()
	r.writeInt(int64(len(rootMoves)))
	var root = b.engine.RootPosition()
	for _, rm := range rootMoves {
		r.writeInt(int64(rm.Move.From()))
		r.writeInt(int64(rm.Move.To()))
		r.writeInt(int64(math.Trunc(rm.Eval * 1000)))
		r.writeString(root.MoveName(rm.Move))
	}
	var stats = b.engine.Stats()
	r.writeInt(stats.NodesAdded)
	r.writeInt(stats.MovesAdded)
	r.writeInt(stats.NodesExamined)
	return nil
}
