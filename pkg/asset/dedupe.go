package asset

import (
	"fmt"
	"slices"
	"strings"
)

// Dedupe keeps the first asset for every FileName, in input order, and
// returns the rest as duplicates. Only FileName is compared.
func Dedupe(assets []Asset) ([]Asset, []Duplicate) {
	return dedupeBy(assets, func(a Asset) string { return a.FileName }, "%s already generated from node %s")
}

// DedupeIndexPaths keeps the first asset for every IndexPath. Assets from
// different files can still meet under one alias, section and name, and the
// index can hold only one of them.
func DedupeIndexPaths(assets []Asset) ([]Asset, []Duplicate) {
	return dedupeBy(assets, Asset.IndexPath, "index path %s already taken by node %s")
}

func dedupeBy(assets []Asset, key func(Asset) string, reason string) ([]Asset, []Duplicate) {
	var (
		kept  = make([]Asset, 0, len(assets))
		dups  []Duplicate
		first = make(map[string]int, len(assets))
	)
	for _, a := range assets {
		k := key(a)
		if i, ok := first[k]; ok {
			dups = append(dups, Duplicate{
				Asset:  a,
				Kept:   kept[i],
				Reason: fmt.Sprintf(reason, k, kept[i].NodeID),
			})
			continue
		}
		first[k] = len(kept)
		kept = append(kept, a)
	}
	return kept, dups
}

// Sort returns a copy of assets ordered by FileName.
func Sort(assets []Asset) []Asset {
	sorted := slices.Clone(assets)
	slices.SortStableFunc(sorted, func(a, b Asset) int {
		return strings.Compare(a.FileName, b.FileName)
	})
	return sorted
}
