// Package figmaicons extracts SVG icons from Figma files and generates
// React (TSX) components for them.
//
// The CLI lives in cmd/figma-icons; this root package exposes the same
// pipeline as a Go API so that callers can embed generation in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmaicons:
//
//	import "github.com/kataras/figma-icons" // package figmaicons
//
// # Quick start
//
//	result, err := figmaicons.Run(ctx, figmaicons.Options{
//	    AccessToken: os.Getenv("FIGMA_ACCESS_TOKEN"),
//	    Sources: []config.Source{{
//	        FileURL:  "https://www.figma.com/design/ABC123/Design-System",
//	        PageName: "Components",
//	        Sections: config.SectionNames{"icons"},
//	    }},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stats, err := writer.Replace("src/components/icons", result.Units)
//
// # Pipeline
//
// For every source the page list of the file is fetched first, then the
// subtree of the matching page. Components below the requested sections are
// exported as SVG with one image API call and downloaded in batches of
// [resolver.DefaultBatchSize]. The markup is normalized for JSX, component
// names are derived from the Figma names, and assets that would land on the
// same file are dropped in favor of the first one. Finally one component per
// asset, an index and a lookup helper are rendered through the
// [codegen.Generator].
//
// # Failures
//
// A source that cannot be read, or a single icon that cannot be exported,
// downloaded or formatted, does not stop the run. Such problems are listed
// in [Result.Failures]; [Result.Err] folds them into a single error.
//
// # Logging
//
// Pass a *slog.Logger in [Options.Logger]. It is stored in the context with
// slog-context, so every stage logs with the run id and the current source
// attached. A nil Logger silences all output.
package figmaicons
