package edit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"mephrase/archive"
	"mephrase/config"
	"mephrase/dom"
	"mephrase/state"
)

// StdoutDestination requests results to be written to standard output.
const StdoutDestination = "-"

var htmlExts = []string{".html", ".htm", ".xhtml"}

// input is a single document to process.
type input struct {
	// name relative to the source (base name for a single file), used for
	// output and report
	rel string
	// file or archive content came from
	origin string
	read   func() ([]byte, error)
}

func fileInput(path, rel string) input {
	return input{rel: rel, origin: path, read: func() ([]byte, error) { return os.ReadFile(path) }}
}

// fileHandler is called for every input document.
type fileHandler func(ctx context.Context, in input) error

// process calls handle for source file, for every HTML file under source
// directory or for every HTML entry of source zip archive.
func process(ctx context.Context, src string, handle fileHandler, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.IsDir() {
		return processDir(ctx, src, handle, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if isArchive(src) {
		return processArchive(ctx, src, handle, log)
	}
	return handle(ctx, fileInput(src, filepath.Base(src)))
}

// processDir handles files in natural order, failures are logged and do not
// stop processing.
func processDir(ctx context.Context, dir string, handle fileHandler, log *zap.Logger) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ok, err := isHTMLFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !ok {
			log.Debug("Skipping file, not recognized as HTML", zap.String("file", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	sort.Sort(natural.StringSlice(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if err := handle(ctx, fileInput(path, rel)); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
	}
	return nil
}

// processArchive handles HTML entries of zip archive, failures are logged
// and do not stop processing.
func processArchive(ctx context.Context, src string, handle fileHandler, log *zap.Logger) error {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return archive.Walk(src, hasHTMLExt, func(e archive.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := e.ReadAll()
		if err != nil {
			log.Warn("Skipping archive entry", zap.String("entry", e.Name), zap.Error(err))
			return nil
		}
		if kind, _ := filetype.Match(data); kind != filetype.Unknown {
			log.Debug("Skipping archive entry, not recognized as HTML", zap.String("entry", e.Name), zap.String("type", kind.MIME.Value))
			return nil
		}
		in := input{
			rel:    filepath.Join(name, filepath.FromSlash(e.Name)),
			origin: src,
			read:   func() ([]byte, error) { return data, nil },
		}
		if err := handle(ctx, in); err != nil {
			log.Error("Unable to process archive entry", zap.String("archive", src), zap.String("entry", e.Name), zap.Error(err))
		}
		return nil
	})
}

func hasHTMLExt(name string) bool {
	return slices.Contains(htmlExts, strings.ToLower(filepath.Ext(name)))
}

// isArchive detects zip archives by content.
func isArchive(name string) bool {
	kind, err := filetype.MatchFile(name)
	return err == nil && kind.Extension == "zip"
}

// isHTMLFile checks extension and makes sure content is not of some known
// binary type.
func isHTMLFile(path string) (bool, error) {
	if !hasHTMLExt(path) {
		return false, nil
	}
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return false, err
	}
	return kind == filetype.Unknown, nil
}

// readInput loads source keeping its copy in the report.
func readInput(env *state.LocalEnv, in input) ([]byte, error) {
	data, err := in.read()
	if err != nil {
		return nil, err
	}
	env.Rpt.StoreData("source/"+filepath.ToSlash(in.rel), data)
	return data, nil
}

// toggleFile runs toggle requested number of times on a single file and
// writes result.
func toggleFile(ctx context.Context, in input, dst string, out io.Writer, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)
	rel := in.rel
	log = log.With(zap.String("file", rel), zap.String("from", in.origin))

	var outputName string
	log.Info("Editing starting")
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Editing ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("editing panic: %v", r)
			return
		}
		if rerr == nil {
			log.Info("Editing completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	doc, err := openInput(env, in)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("dump/"+filepath.ToSlash(rel)+".before.txt", []byte(dom.Dump(doc)))

	host := &changeCounter{log: log}
	engine, err := newEngine(env, doc, host, log)
	if err != nil {
		return err
	}
	for i := range env.Times {
		outcome, err := engine.Toggle()
		if err != nil {
			return fmt.Errorf("toggle %d failed: %w", i+1, err)
		}
		log.Debug("Toggle done", zap.Int("pass", i+1), zap.Stringer("outcome", outcome), zap.Bool("active", engine.Button().Active()))
	}
	env.Rpt.StoreData("dump/"+filepath.ToSlash(rel)+".after.txt", []byte(dom.Dump(doc)))

	if dst == StdoutDestination {
		outputName = "STDOUT"
		return doc.Render(out)
	}

	outputName = buildOutputPath(rel, dst, env.Cfg.Document.OutputExt)
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}
	if err := writeDocument(doc, outputName); err != nil {
		return err
	}
	env.Rpt.Store("result/"+filepath.ToSlash(rel), outputName)
	return nil
}

// openInput parses document and establishes selection in it.
func openInput(env *state.LocalEnv, in input) (*dom.Document, error) {
	data, err := readInput(env, in)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(env, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to parse source (%s): %w", in.rel, err)
	}
	if err := selectTarget(env, doc); err != nil {
		return nil, fmt.Errorf("unable to select content: %w", err)
	}
	return doc, nil
}

// inspectFile reports if phrase is applied to the selection.
func inspectFile(ctx context.Context, in input, out io.Writer, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	doc, err := openInput(env, in)
	if err != nil {
		return err
	}
	engine, err := newEngine(env, doc, nil, log.With(zap.String("file", in.rel)))
	if err != nil {
		return err
	}

	status := "inactive"
	if engine.IsActive() {
		status = "active"
	}
	_, err = fmt.Fprintf(out, "%s\t%s\n", filepath.ToSlash(in.rel), status)
	return err
}

// buildOutputPath keeps source directory structure under dst.
func buildOutputPath(rel, dst, ext string) string {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	return filepath.Join(dst, filepath.Dir(rel), config.CleanFileName(base)+ext)
}

func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(name)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
		return nil
	default:
		return err
	}
}

func writeDocument(doc *dom.Document, name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return doc.Render(f)
}
