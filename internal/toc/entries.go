// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toc

import "github.com/pdiddy/reportbinder/pkg/types"

// Entries numbers sheets from 1 and assigns each its logical start page. The
// first sheet starts on page 1; every following sheet starts after the pages
// of the sheets before it.
func Entries(sheets []types.Sheet) []types.TOCEntry {
	entries := make([]types.TOCEntry, 0, len(sheets))
	page := 1
	for i, s := range sheets {
		entries = append(entries, types.TOCEntry{
			Index: i + 1,
			Title: s.Title,
			Page:  page,
		})
		page += s.Pages
	}
	return entries
}
