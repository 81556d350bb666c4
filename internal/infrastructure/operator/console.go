package operator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"swipepilot/internal/ports"
)

// ConsoleGate is the manual authentication checkpoint: it prints a prompt
// and blocks until the operator presses Enter. Captcha and verification
// codes are handled by the human at this gate, not automated.
type ConsoleGate struct {
	in  io.Reader
	out io.Writer
}

var _ ports.Gate = (*ConsoleGate)(nil)

// NewConsoleGate reads confirmation from stdin.
func NewConsoleGate() *ConsoleGate {
	return &ConsoleGate{in: os.Stdin, out: os.Stdout}
}

// Wait blocks until a line is read or ctx is cancelled.
func (g *ConsoleGate) Wait(ctx context.Context) error {
	fmt.Fprintln(g.out, "Log in manually in the browser window, then press Enter to continue...")

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(g.in).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("read operator confirmation: %w", err)
		}
		return nil
	}
}
