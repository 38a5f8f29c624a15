// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toc

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// rocEpoch is the Gregorian year preceding ROC year 1.
const rocEpoch = 1911

// ErrInvalidCompileDate is returned for compiled dates that do not read
// like "114年11月編製".
var ErrInvalidCompileDate = errors.New("compiled date must look like 114年11月編製")

var compileDatePattern = regexp.MustCompile(`^(\d{3})年(\d{1,2})月編製`)

// CompileDate is the ROC-calendar month a report was compiled in.
type CompileDate struct {
	Year  int
	Month int
}

// ParseCompileDate reads a stamp such as "114年11月編製". Full-width digits
// are accepted.
func ParseCompileDate(text string) (CompileDate, error) {
	s := strings.TrimSpace(width.Narrow.String(text))
	m := compileDatePattern.FindStringSubmatch(s)
	if m == nil {
		return CompileDate{}, fmt.Errorf("%w: %q", ErrInvalidCompileDate, text)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return CompileDate{}, fmt.Errorf("%w: month %d out of range", ErrInvalidCompileDate, month)
	}
	return CompileDate{Year: year, Month: month}, nil
}

// CurrentCompileDate returns the compile date for the month containing now.
func CurrentCompileDate(now time.Time) CompileDate {
	return CompileDate{Year: now.Year() - rocEpoch, Month: int(now.Month())}
}

// CoverPeriod is the month the report covers, one month before compilation,
// e.g. "114年10月".
func (d CompileDate) CoverPeriod() string {
	year, month := d.Year, d.Month-1
	if month == 0 {
		year, month = year-1, 12
	}
	return fmt.Sprintf("%d年%d月", year, month)
}

// Stamp is the canonical compiled-date text, e.g. "114年11月編製".
func (d CompileDate) Stamp() string {
	return fmt.Sprintf("%d年%d月編製", d.Year, d.Month)
}

func (d CompileDate) String() string { return d.Stamp() }
