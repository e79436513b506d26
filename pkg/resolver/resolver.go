// Package resolver turns matched component nodes into raw SVG markup.
//
// All node IDs of a source are exported with a single image API call. The
// returned URLs are then downloaded in fixed-size batches: requests inside a
// batch run concurrently, batches run one after another.
package resolver

import (
	"context"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/kataras/figma-icons/pkg/asset"
	"github.com/kataras/figma-icons/pkg/figma"
	"github.com/kataras/figma-icons/pkg/tree"
)

// DefaultBatchSize bounds the number of concurrent downloads.
const DefaultBatchSize = 20

// Exporter is the part of the Figma API the resolver needs.
// *figma.Client implements it.
type Exporter interface {
	GetImages(ctx context.Context, fileKey string, ids []string, format string) (*figma.ImagesResponse, error)
	Download(ctx context.Context, url string) (string, error)
}

var _ Exporter = (*figma.Client)(nil)

// Options tunes Resolve.
type Options struct {
	// BatchSize defaults to DefaultBatchSize.
	BatchSize int
	// OnBatch, when set, is called before each batch starts.
	OnBatch func(index, size int)
}

// Result holds the assets that resolved and the ones that did not.
// Assets keep the order of the input components.
type Result struct {
	Assets   []asset.Raw
	Failures []asset.Failure
}

type pending struct {
	node tree.Node
	url  string
}

// Resolve exports and downloads components. A failure of the export call is
// returned as an error and affects the whole source; a component without an
// export URL or with a failed download is recorded in Result.Failures.
func Resolve(ctx context.Context, exp Exporter, prov asset.Provenance, components []tree.Node, opts Options) (Result, error) {
	var result Result
	if len(components) == 0 {
		return result, nil
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	log := slogctx.FromCtx(ctx)

	ids := make([]string, len(components))
	for i, c := range components {
		ids[i] = c.ID
	}

	log.DebugContext(ctx, "requesting svg exports", "components", len(ids))
	images, err := exp.GetImages(ctx, prov.FileKey, ids, "svg")
	if err != nil {
		return result, errors.Errorf("export components: %w", err)
	}

	var todo []pending
	for _, c := range components {
		url := images.Images[c.ID]
		if url == "" {
			log.WarnContext(ctx, "invalid svg component", "name", c.Name, "section", c.Section)
			result.Failures = append(result.Failures, failure(asset.StageExport, prov, c, "no export url returned", nil))
			continue
		}
		todo = append(todo, pending{node: c, url: url})
	}

	for i, batch := range Chunk(todo, batchSize) {
		if opts.OnBatch != nil {
			opts.OnBatch(i, len(batch))
		}
		log.DebugContext(ctx, "downloading batch", "batch", i, "size", len(batch))

		bodies, errs := download(ctx, exp, batch)
		for j, p := range batch {
			if errs[j] != nil {
				log.WarnContext(ctx, "download failed", "name", p.node.Name, "error", errs[j])
				result.Failures = append(result.Failures, failure(asset.StageDownload, prov, p.node, "download failed", errs[j]))
				continue
			}
			result.Assets = append(result.Assets, asset.Raw{
				NodeID:     p.node.ID,
				Name:       p.node.Name,
				Section:    p.node.Section,
				Markup:     bodies[j],
				Provenance: prov,
			})
		}
	}

	return result, nil
}

// download fetches a batch concurrently. Results are stored by position, so
// they come back in request order whatever the completion order.
func download(ctx context.Context, exp Exporter, batch []pending) ([]string, []error) {
	bodies := make([]string, len(batch))
	errs := make([]error, len(batch))

	var g errgroup.Group
	for i, p := range batch {
		g.Go(func() error {
			bodies[i], errs[i] = exp.Download(ctx, p.url)
			return nil
		})
	}
	_ = g.Wait()

	return bodies, errs
}

func failure(stage string, prov asset.Provenance, n tree.Node, reason string, err error) asset.Failure {
	return asset.Failure{
		Stage:     stage,
		Component: n.Name,
		NodeID:    n.ID,
		File:      prov.File,
		Page:      prov.Page,
		Section:   n.Section,
		Reason:    reason,
		Err:       err,
	}
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
