package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"

	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/hir"
	"tyir/internal/observ"
	"tyir/internal/source"
	"tyir/internal/trace"
)

// LowerOptions configures Lower and LowerFiles. The zero value parses with
// no diagnostic limit, no cache and no instrumentation.
type LowerOptions struct {
	MaxDiagnostics int
	Cache          *DiskCache    // nil disables caching
	Timer          *observ.Timer // shared across files; nil is fine
	Jobs           int           // LowerFiles only; <= 0 means GOMAXPROCS
	Progress       ProgressSink
	OnPhase        PhaseObserver
	// TimingDiagnostics appends a per-file ObsTimings info diagnostic.
	TimingDiagnostics bool
}

// LoweredAlias is one `type Name = T;` item after lowering.
type LoweredAlias struct {
	Name   string
	Span   source.Span
	Syntax ast.Type // nil when the result came from the cache
	Type   hir.TypeRef
}

// LowerResult is one lowered file.
type LowerResult struct {
	FileSet *source.FileSet
	File    *source.File
	Sheet   *ast.Sheet // nil when Cached
	Aliases []LoweredAlias
	Bag     *diag.Bag
	Cached  bool
}

// Lower loads path, parses it as a type sheet and lowers every alias.
// Only I/O failures are returned as errors; syntax problems end up in Bag and
// the affected types lower to hir.ErrorType.
func Lower(ctx context.Context, path string, opts LowerOptions) (*LowerResult, error) {
	span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+path)
	ctx = trace.WithParent(ctx, span)

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		err = fmt.Errorf("load %s: %w", path, err)
		trace.Failure(ctx, trace.ScopeFile, "load", err)
		span.End("error")
		return nil, err
	}
	res, err := lowerLoaded(ctx, fs, fs.Get(id), opts)
	if err != nil {
		span.End("error")
		return nil, err
	}
	span.WithExtra("aliases", strconv.Itoa(len(res.Aliases))).
		WithExtra("cached", strconv.FormatBool(res.Cached)).
		End("")
	return res, nil
}

// LowerExpr lowers one type expression. The result holds a single alias
// named "_" spanning the whole input.
func LowerExpr(ctx context.Context, text string, opts LowerOptions) (*LowerResult, error) {
	done := startPhase(ctx, &opts, "<expr>", "parse", nil)
	fs, ty, bag, err := ParseExpr(text, opts.MaxDiagnostics)
	done("")
	if err != nil {
		return nil, err
	}
	file := fs.Get(0)
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, err
	}
	done = startPhase(ctx, &opts, "<expr>", "lower", nil)
	alias := LoweredAlias{
		Name:   "_",
		Span:   source.Span{File: file.ID, Start: 0, End: end},
		Syntax: ty,
		Type:   hir.LowerType(ty),
	}
	done("")
	return &LowerResult{FileSet: fs, File: file, Aliases: []LoweredAlias{alias}, Bag: bag}, nil
}

func lowerLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts LowerOptions) (*LowerResult, error) {
	var local *observ.Timer
	if opts.TimingDiagnostics {
		local = observ.NewTimer()
	}

	var key CacheKey
	var cacheWarning *diag.Diagnostic
	if opts.Cache != nil {
		key = CacheKeyFor(file.Content)
		res, warning := lookupCache(ctx, &opts, local, fs, file, key)
		if res != nil {
			finishTimings(res, local, file.Path)
			return res, nil
		}
		cacheWarning = warning
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	done := startPhase(ctx, &opts, file.Path, "parse", local)
	parsed, err := parseLoaded(fs, file, opts.MaxDiagnostics)
	if err != nil {
		done("error")
		return nil, err
	}
	done(fmt.Sprintf("%d items", len(parsed.Sheet.Items)))
	if cacheWarning != nil {
		parsed.Bag.Add(*cacheWarning)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageLower, Status: StatusWorking})
	done = startPhase(ctx, &opts, file.Path, "lower", local)
	aliases := lowerSheet(ctx, parsed.Sheet)
	done(fmt.Sprintf("%d aliases", len(aliases)))

	res := &LowerResult{
		FileSet: fs,
		File:    file,
		Sheet:   parsed.Sheet,
		Aliases: aliases,
		Bag:     parsed.Bag,
	}

	// Файлы с ошибками не кэшируем: при hit диагностики были бы потеряны.
	if opts.Cache != nil && !res.Bag.HasErrors() {
		done = startPhase(ctx, &opts, file.Path, "cache-store", local)
		if err := opts.Cache.Put(key, aliasesToPayload(file.Path, aliases)); err != nil {
			trace.Failure(ctx, trace.ScopePass, "cache-store", err)
			done("error")
		} else {
			done("")
		}
	}

	finishTimings(res, local, file.Path)
	return res, nil
}

// lookupCache returns the cached result, or nil and an optional warning
// when the entry is missing or unreadable.
func lookupCache(ctx context.Context, opts *LowerOptions, local *observ.Timer, fs *source.FileSet, file *source.File, key CacheKey) (*LowerResult, *diag.Diagnostic) {
	done := startPhase(ctx, opts, file.Path, "cache-load", local)
	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil {
		// Битая запись: перепарсим файл и предупредим.
		trace.Failure(ctx, trace.ScopePass, "cache-load", err)
		done("error")
		warning := diag.New(diag.SevWarning, diag.IOCacheCorrupt, source.Span{File: file.ID}, "ignoring cache entry: "+err.Error())
		return nil, &warning
	}
	if !hit {
		done("miss")
		return nil, nil
	}
	done("hit")
	trace.Point(ctx, trace.ScopeFile, "cache-hit", key.String())
	return &LowerResult{
		FileSet: fs,
		File:    file,
		Aliases: payloadToAliases(&payload, file.ID),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Cached:  true,
	}, nil
}

func lowerSheet(ctx context.Context, sheet *ast.Sheet) []LoweredAlias {
	if sheet == nil {
		return nil
	}
	out := make([]LoweredAlias, 0, len(sheet.Items))
	for _, item := range sheet.Items {
		if item == nil {
			continue
		}
		name := item.AliasName()
		span := trace.BeginCtx(ctx, trace.ScopeAlias, name)
		ty := hir.LowerType(item.Type)
		span.End(ty.Kind().String())
		out = append(out, LoweredAlias{
			Name:   name,
			Span:   item.Span(),
			Syntax: item.Type,
			Type:   ty,
		})
	}
	return out
}

// startPhase opens a trace span and timer phases; the returned func closes them.
func startPhase(ctx context.Context, opts *LowerOptions, file, name string, local *observ.Timer) func(note string) {
	span := trace.BeginCtx(ctx, trace.ScopePass, name).WithExtra("file", file)
	idx := opts.Timer.Begin(name)
	localIdx := local.Begin(name)
	started := time.Now()
	if opts.OnPhase != nil {
		opts.OnPhase(PhaseEvent{File: file, Name: name, Status: PhaseStart})
	}
	return func(note string) {
		span.End(note)
		opts.Timer.End(idx, note)
		local.End(localIdx, note)
		if opts.OnPhase != nil {
			opts.OnPhase(PhaseEvent{File: file, Name: name, Status: PhaseEnd, Elapsed: time.Since(started)})
		}
	}
}

func finishTimings(res *LowerResult, local *observ.Timer, path string) {
	if local == nil || res == nil {
		return
	}
	report := local.Report()
	appendTimingDiagnostic(res.Bag, timingPayload{
		Path:    path,
		Cached:  res.Cached,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
}
