// Command fieldschema validates JSON records against a schema document.
//
// Usage:
//
//	fieldschema validate -schema signup.yaml [record.json]
//	fieldschema openapi  -schema signup.yaml [-title T] [-path /validate]
//	fieldschema serve    -schema signup.yaml [-addr :8080]
//
// validate reads the record from the file or stdin, prints the report and
// exits 1 when the record is invalid. serve answers POST /validate with 200
// or 400 {"errors": report}. Stores, classifiers and S3 descriptors are
// selected through the environment (see internal/config).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gobd/fieldschema/internal/config"
	"github.com/Gobd/fieldschema/internal/logger"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

var errInvalidRecord = errors.New("record is invalid")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: fieldschema <validate|openapi|serve> -schema FILE [flags]")
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitError
	}

	cfg, err := config.Load[config.Config](".env")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	a := &app{
		cfg: cfg,
		log: logger.New(
			logger.WithOutput(stderr),
			logger.WithLevel(level),
			logger.WithFormat(logger.Format(cfg.LogFormat)),
		),
		stdin:  stdin,
		stdout: stdout,
	}

	switch args[0] {
	case "validate":
		err = a.validate(ctx, args[1:])
	case "openapi":
		err = a.openapi(args[1:])
	case "serve":
		err = a.serve(ctx, args[1:])
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitError
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalidRecord):
		return exitInvalid
	default:
		a.log.ErrorContext(ctx, "command failed", "command", args[0], "error", err.Error())
		return exitError
	}
}
