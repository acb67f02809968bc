package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jsfront/internal/check"
	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/logging"
	"jsfront/internal/observ"
	"jsfront/internal/parser"
	"jsfront/internal/source"
)

// pipeline runs decode → lex → parse → traverse for one file at a time. It
// holds only read-only state, so one value serves every worker.
type pipeline struct {
	opts Options
	reg  *check.Registry
	ids  []string
	log  *slog.Logger
}

func newPipeline(opts Options) (*pipeline, error) {
	opts = opts.withDefaults()
	reg, err := opts.registry()
	if err != nil {
		return nil, err
	}
	return &pipeline{opts: opts, reg: reg, ids: reg.IDs(), log: opts.Logger}, nil
}

// emit reports an intermediate event; a zero start time reports no elapsed time.
func (p *pipeline) emit(path string, stage Stage, status Status, started time.Time) {
	if p.opts.Progress == nil {
		return
	}
	var elapsed time.Duration
	if !started.IsZero() {
		elapsed = time.Since(started)
	}
	p.opts.Progress.OnEvent(Event{File: path, Stage: stage, Status: status, Elapsed: elapsed})
}

// run analyzes an already loaded file. The returned error is non-nil only on
// cancellation; pipeline failures are recorded in FileResult.Err.
func (p *pipeline) run(ctx context.Context, fs *source.FileSet, file *source.File) (*FileResult, error) {
	started := time.Now()
	res := &FileResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(p.opts.MaxDiagnostics),
	}
	var timer *observ.Timer
	if p.opts.Timings {
		timer = observ.NewTimer()
	}
	defer func() {
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
	}()

	var key Digest
	if p.opts.Cache != nil {
		idx := timer.Begin("cache")
		key = p.opts.Cache.Key(file, p.ids, p.opts.MaxDepth, p.opts.MaxTokens)
		cached, ok, err := p.opts.Cache.Get(key)
		timer.End(idx, "")
		switch {
		case err != nil:
			p.log.Warn("cache read failed", logging.File(file.Path), logging.Error(err))
		case ok:
			cached.restore(res)
			p.fillBag(res)
			p.log.Debug("cache hit", logging.File(file.Path), slog.String("key", key.String()))
			p.finish(res, StageCheck, started)
			return res, nil
		}
	}

	reporter := diag.BagReporter{Bag: res.Bag}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.emit(file.Path, StageLex, StatusWorking, started)
	idx := timer.Begin("lex")
	toks, err := lexer.Tokenize(file, lexer.Options{Reporter: reporter, MaxTokens: p.opts.MaxTokens})
	timer.End(idx, fmt.Sprintf("tokens=%d", len(toks)))
	res.Tokens = toks
	p.log.Debug("lexed", logging.File(file.Path), slog.Int("tokens", len(toks)))
	if err != nil {
		res.Err = err
		p.store(key, res)
		p.finish(res, StageLex, started)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.emit(file.Path, StageParse, StatusWorking, started)
	idx = timer.Begin("parse")
	tree, err := parser.Parse(file, toks, parser.Options{MaxDepth: p.opts.MaxDepth, Reporter: reporter})
	if tree != nil {
		timer.End(idx, fmt.Sprintf("nodes=%d", tree.Len()))
	} else {
		timer.End(idx, "")
	}
	res.Tree = tree
	if err != nil {
		res.Err = err
		p.store(key, res)
		p.finish(res, StageParse, started)
		return res, nil
	}
	p.log.Debug("parsed", logging.File(file.Path), slog.Int("nodes", tree.Len()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.emit(file.Path, StageCheck, StatusWorking, started)
	idx = timer.Begin("check")
	out := check.Traverse(tree, p.reg)
	timer.End(idx, fmt.Sprintf("issues=%d", len(out.Issues)))
	res.Issues = out.Issues
	res.RuleErrors = out.Errors
	for _, d := range out.Diagnostics() {
		res.Bag.Add(d)
	}
	for _, e := range out.Errors {
		p.log.Warn("rule failed", logging.File(file.Path), slog.String("rule", e.RuleID), logging.Error(e.Err))
	}

	p.store(key, res)
	p.finish(res, StageCheck, started)
	return res, nil
}

// fillBag rebuilds diagnostics of a result replayed from the cache.
func (p *pipeline) fillBag(res *FileResult) {
	if res.Err != nil {
		res.Bag.Add(Diagnostic(res.Err))
		return
	}
	out := check.Result{Issues: res.Issues, Errors: res.RuleErrors}
	for _, d := range out.Diagnostics() {
		res.Bag.Add(d)
	}
}

func (p *pipeline) store(key Digest, res *FileResult) {
	if p.opts.Cache == nil {
		return
	}
	if err := p.opts.Cache.Put(key, snapshot(res)); err != nil {
		p.log.Warn("cache write failed", logging.File(res.Path), logging.Error(err))
	}
}

func (p *pipeline) finish(res *FileResult, stage Stage, started time.Time) {
	status := StatusDone
	if res.Err != nil {
		status = StatusError
		p.log.Warn("analysis failed", logging.File(res.Path), slog.String("stage", string(stage)), logging.Error(res.Err))
	}
	if p.opts.Progress != nil {
		p.opts.Progress.OnEvent(Event{
			File:    res.Path,
			Stage:   stage,
			Status:  status,
			Err:     res.Err,
			Elapsed: time.Since(started),
			Cached:  res.Cached,
		})
	}
	p.log.Debug("analyzed", logging.File(res.Path), slog.Int("issues", len(res.Issues)), slog.Duration("elapsed", time.Since(started)))
}

// loadFailure builds the result of a file that could not be loaded.
func (p *pipeline) loadFailure(path string, fs *source.FileSet, err error) *FileResult {
	lerr := &LoadError{Path: path, Err: err}
	res := &FileResult{Path: path, FileSet: fs, Bag: diag.NewBag(p.opts.MaxDiagnostics), Err: lerr}
	res.Bag.Add(lerr.Diagnostic())
	p.finish(res, StageLoad, time.Now())
	return res
}
