// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves a workbook with the given sheets, in order. cells maps
// a sheet name to cell references and their values.
func WriteWorkbook(t testing.TB, path string, names []string, cells map[string]map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			continue
		}
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	for sheet, values := range cells {
		for ref, v := range values {
			require.NoError(t, f.SetCellValue(sheet, ref, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}
