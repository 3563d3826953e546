// Package edit implements command line actions applying phrase toolbar action
// to HTML files.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"mephrase/state"
)

// Run is "toggle" command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")

	src, err := sourcePath(cmd)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	switch {
	case dst == StdoutDestination:
	case len(dst) == 0:
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	default:
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if err := applyOptions(cmd, env, log); err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")
	if env.Times = int(cmd.Int("times")); env.Times < 1 {
		return fmt.Errorf("number of toggles must be positive, got %d", env.Times)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Int("times", env.Times))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	out := output(cmd)
	return process(ctx, src, func(ctx context.Context, in input) error {
		return toggleFile(ctx, in, dst, out, log)
	}, log)
}

// State is "state" command action, it prints phrase state of the selection
// for every file.
func State(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("state")

	src, err := sourcePath(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	if err := applyOptions(cmd, env, log); err != nil {
		return err
	}

	out := output(cmd)
	return process(ctx, src, func(ctx context.Context, in input) error {
		return inspectFile(ctx, in, out, log)
	}, log)
}

func sourcePath(cmd *cli.Command) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", errors.New("no input source has been specified")
	}
	return filepath.Abs(src)
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// applyOptions moves flags shared by toggle and state commands to the
// environment.
func applyOptions(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) error {
	env.Selector = cmd.String("select")
	if markers := cmd.String("markers"); len(markers) > 0 {
		open, close, ok := strings.Cut(markers, ",")
		if !ok || len(open) == 0 || len(close) == 0 {
			return fmt.Errorf("selection markers must be specified as OPEN,CLOSE, got %q", markers)
		}
		env.OpenMarker, env.CloseMarker = open, close
	}
	if cmd.Bool("document") {
		env.Cfg.Document.Fragment = false
	}
	if cmd.Bool("sanitize") {
		env.Cfg.Document.Sanitize = true
	}

	// input may lack proper meta and BOM, so encoding could be forced
	if cp := cmd.String("charset"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			env.CodePage = enc
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Forcefully decoding all input", zap.String("charset", n))
		}
	}
	return nil
}
