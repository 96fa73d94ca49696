// Command keypad is a terminal calculator. Each input line is a string of
// keys such as "12.5×4=" or "AC"; the display is redrawn in place.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gosuri/uilive"
	"go.uber.org/zap"

	"keypad-calculator/internal/keypad"
)

func main() {
	verboseFlag := flag.Bool("v", false, "Log every key press to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *verboseFlag {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	writer := uilive.New()
	writer.RefreshInterval = 50 * time.Millisecond
	writer.Start()
	defer writer.Stop()

	if err := run(os.Stdin, writer, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading keys: %v\n", err)
		os.Exit(1)
	}
}

// run presses the keys read from in and renders the display to out after
// every change. Lines with unknown keys are reported and skipped whole.
func run(in io.Reader, out io.Writer, logger *zap.Logger) error {
	var status string
	render := func(display string) {
		fmt.Fprintf(out, "%s\n%s\n", display, status)
	}

	calc := keypad.NewAdapter(keypad.WithDisplayListener(render))
	render(calc.Display())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		buttons, err := keypad.ParseKeys(scanner.Text())
		if err != nil {
			status = err.Error()
			logger.Warn("rejected input", zap.String("line", scanner.Text()), zap.Error(err))
			render(calc.Display())
			continue
		}

		status = ""
		for _, b := range buttons {
			calc.Press(b)
			logger.Debug("key pressed",
				zap.String("key", b.String()),
				zap.String("display", calc.Display()),
				zap.String("state", calc.State().String()),
			)
		}
	}

	return scanner.Err()
}
