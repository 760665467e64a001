// hppcalc computes the cost of production (HPP) of a furniture batch.
//
// It loads a project file, resolves every material into a purchase plan,
// totals materials, hardware, labor and overhead, and prints the result.
// The estimate can be exported as PDF or XLSX and is saved to the local
// snapshot history.
//
// Usage:
//
//	hppcalc [flags] project.hpp.json
//	hppcalc --new "Coffee Table" --import materials.csv --save table.hpp.json
//	hppcalc --history
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "hppcalc:", err)
		os.Exit(1)
	}
}

// run is the whole program behind main, parameterised for tests.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	app, err := newApp(opts, flags, stdout)
	if err != nil {
		return err
	}
	defer app.close()

	return app.run(ctx)
}
