package figmaicons

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/xid"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/kataras/figma-icons/pkg/asset"
	"github.com/kataras/figma-icons/pkg/codegen"
	"github.com/kataras/figma-icons/pkg/config"
	"github.com/kataras/figma-icons/pkg/figma"
	"github.com/kataras/figma-icons/pkg/resolver"
	"github.com/kataras/figma-icons/pkg/svg"
	"github.com/kataras/figma-icons/pkg/tree"
)

var (
	// ErrNoSources is returned by Run when Options.Sources is empty.
	ErrNoSources = errors.Base("no sources to extract")
	// ErrNoToken is returned by Run when neither a token nor a Client is given.
	ErrNoToken = errors.Base("no Figma access token")
)

// Client is the part of the Figma API the pipeline talks to.
// *figma.Client implements it.
type Client interface {
	GetFile(ctx context.Context, fileKey string, query figma.FileQuery) (*figma.FileResponse, error)
	resolver.Exporter
}

var _ Client = (*figma.Client)(nil)

// Options configures an extraction run.
type Options struct {
	AccessToken string
	Sources     []config.Source
	// Client overrides the Figma client built from AccessToken.
	Client    Client
	Generator codegen.Generator
	// BatchSize bounds concurrent downloads, see resolver.DefaultBatchSize.
	BatchSize int
	Logger    *slog.Logger // nil = no logging
}

// Result is the output of a run.
type Result struct {
	// Assets that produced a component, sorted by FileName.
	Assets []asset.Asset
	// Units holds one component per asset, followed by the index and the
	// lookup helper.
	Units      []codegen.Unit
	Failures   []asset.Failure
	Duplicates []asset.Duplicate
}

// Err combines all failures into one error, nil when there are none.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, f := range r.Failures {
		merr = multierror.Append(merr, f)
	}
	return merr.ErrorOrNil()
}

// Run extracts the icons of every source and renders their code.
//
// Problems scoped to a source or to a single asset are recorded in
// Result.Failures and the run continues. The returned error is reserved for
// problems that leave nothing useful to write.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Sources) == 0 {
		return nil, ErrNoSources
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx = slogctx.NewCtx(ctx, logger)
	ctx = slogctx.With(ctx, slog.String("run", xid.New().String()))

	client := opts.Client
	if client == nil {
		if opts.AccessToken == "" {
			return nil, ErrNoToken
		}
		client = figma.NewClient(opts.AccessToken)
	}

	result := &Result{}
	var assets []asset.Asset

	for i, src := range opts.Sources {
		srcCtx := slogctx.With(ctx, slog.Int("source", i), slog.String("page", src.PageName))

		resolved, name, err := extractSource(srcCtx, client, src, opts.BatchSize)
		if err != nil {
			slogctx.FromCtx(srcCtx).ErrorContext(srcCtx, "source failed", "error", err)
			result.Failures = append(result.Failures, asset.Failure{
				Stage:   asset.StageSource,
				File:    name,
				Page:    src.PageName,
				Section: strings.Join(src.Sections, ", "),
				Reason:  "extract source",
				Err:     err,
			})
			continue
		}
		result.Failures = append(result.Failures, resolved.Failures...)

		for _, raw := range resolved.Assets {
			assets = append(assets, asset.Build(raw, svg.Normalize(raw.Markup)))
		}
		slogctx.FromCtx(srcCtx).InfoContext(srcCtx, "source extracted", "assets", len(resolved.Assets), "failures", len(resolved.Failures))
	}

	kept, dups := asset.Dedupe(assets)
	kept, clashes := asset.DedupeIndexPaths(kept)
	result.Duplicates = append(dups, clashes...)
	for _, d := range result.Duplicates {
		logger.WarnContext(ctx, "duplicate icon skipped", "node", d.Asset.NodeID, "kept", d.Kept.NodeID, "reason", d.Reason)
	}

	for _, a := range asset.Sort(kept) {
		unit, err := opts.Generator.Component(ctx, a)
		if err != nil {
			logger.WarnContext(ctx, "component generation failed", "file", a.FileName, "error", err)
			result.Failures = append(result.Failures, asset.Failure{
				Stage:     asset.StageFormat,
				Component: a.Name,
				NodeID:    a.NodeID,
				File:      a.Provenance.File,
				Page:      a.Provenance.Page,
				Section:   a.Section,
				Reason:    "generate component",
				Err:       err,
			})
			continue
		}
		result.Assets = append(result.Assets, a)
		result.Units = append(result.Units, unit)
	}

	index, err := opts.Generator.Index(ctx, result.Assets)
	if err != nil {
		return result, errors.Errorf("generate index: %w", err)
	}
	lookup, err := opts.Generator.Lookup(ctx)
	if err != nil {
		return result, errors.Errorf("generate lookup: %w", err)
	}
	result.Units = append(result.Units, index, lookup)

	logger.InfoContext(ctx, "extraction done",
		"assets", len(result.Assets),
		"duplicates", len(result.Duplicates),
		"failures", len(result.Failures),
	)
	return result, nil
}

// extractSource fetches the page tree of src, finds its components and
// resolves their markup. The file name is returned whenever it is known so
// that failures carry it.
func extractSource(ctx context.Context, client Client, src config.Source, batchSize int) (resolver.Result, string, error) {
	log := slogctx.FromCtx(ctx)

	key, err := src.Key()
	if err != nil {
		return resolver.Result{}, "", err
	}

	log.DebugContext(ctx, "fetching pages", "file", key)
	file, err := client.GetFile(ctx, key, figma.FileQuery{Depth: 1})
	if err != nil {
		return resolver.Result{}, "", errors.Errorf("fetch pages of %s: %w", key, err)
	}

	pages := tree.FindPage(tree.FromFigma(file.Document), src.PageName)
	if len(pages) == 0 {
		log.WarnContext(ctx, "page not found", "file", file.Name)
		return resolver.Result{}, file.Name, nil
	}

	log.DebugContext(ctx, "fetching page", "file", file.Name, "id", pages[0].ID)
	full, err := client.GetFile(ctx, key, figma.FileQuery{IDs: []string{pages[0].ID}})
	if err != nil {
		return resolver.Result{}, file.Name, errors.Errorf("fetch page %s: %w", pages[0].ID, err)
	}

	components := tree.Search(tree.FromFigma(full.Document), src.PageName, src.Sections)
	log.DebugContext(ctx, "components found", "count", len(components))

	prov := asset.Provenance{FileKey: key, File: file.Name, Page: src.PageName, Alias: src.Alias}
	resolved, err := resolver.Resolve(ctx, client, prov, components, resolver.Options{BatchSize: batchSize})
	if err != nil {
		return resolver.Result{}, file.Name, err
	}
	return resolved, file.Name, nil
}
