package uci

import (
	"bufio"
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrQuit ends RunCli without an error report.
var ErrQuit = errors.New("quit")

type CommandHandler interface {
	Handle(ctx context.Context, command string) error
}

// RunCli passes every input line to handler until the input ends or a handler
// returns an error wrapping ErrQuit. That error is returned to the caller.
func RunCli(logger zerolog.Logger, scanner *bufio.Scanner, handler CommandHandler) error {
	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	for scanner.Scan() {
		var commandLine = scanner.Text()
		if commandLine == "quit" {
			return nil
		}
		var err = handler.Handle(ctx, commandLine)
		if errors.Is(err, ErrQuit) {
			return err
		}
		if err != nil {
			logger.Warn().Err(err).Str("command", commandLine).Msg("command failed")
		}
	}
	return scanner.Err()
}
