// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/pdiddy/reportbinder/pkg/types"
)

// OutlineLabels names the front matter outline entries.
type OutlineLabels struct {
	Cover string
	TOC   string
}

// Outline builds the report outline: the cover on page 1, the contents on
// page 2 (page 1 when the front matter is a single page), then one entry
// "i. title" per sheet at its first physical page.
func Outline(frontPages int, sheets []types.Sheet, labels OutlineLabels) []types.Bookmark {
	bms := make([]types.Bookmark, 0, len(sheets)+2)
	bms = append(bms, types.Bookmark{Title: labels.Cover, Page: 1})

	tocPage := 1
	if frontPages > 1 {
		tocPage = 2
	}
	bms = append(bms, types.Bookmark{Title: labels.TOC, Page: tocPage})

	page := frontPages + 1
	for i, s := range sheets {
		bms = append(bms, types.Bookmark{
			Title: strconv.Itoa(i+1) + ". " + s.Title,
			Page:  page,
		})
		page += s.Pages
	}
	return bms
}

// ApplyBookmarks replaces the outline of the PDF at path with bms.
func ApplyBookmarks(path string, bms []types.Bookmark) error {
	list := make([]pdfcpu.Bookmark, len(bms))
	for i, b := range bms {
		list[i] = pdfcpu.Bookmark{Title: b.Title, PageFrom: b.Page}
	}

	tmp := tempPath(path, ".bm.pdf")
	if err := api.AddBookmarksFile(path, tmp, list, true, newConfig()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("adding bookmarks to %s: %w", path, err)
	}
	return replace(tmp, path)
}

// ReadOutline returns the top-level outline entries of the PDF at path.
func ReadOutline(path string) ([]types.Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	list, err := api.Bookmarks(f, newConfig())
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks of %s: %w", path, err)
	}
	bms := make([]types.Bookmark, len(list))
	for i, b := range list {
		bms[i] = types.Bookmark{Title: b.Title, Page: b.PageFrom}
	}
	return bms, nil
}
