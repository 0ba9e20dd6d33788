package models

import (
	"cmp"
	"fmt"
)

// AccessRecord is one parsed web access log entry. Field ranges are guaranteed by the
// record source: Hour 0-23, Minute 0-59, Month 1-12, Day 1-31, Year > 0. Day 29-31
// and years outside the analysis window are left for the engine to reject.
type AccessRecord struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the record the way the text log format stores it.
func (r AccessRecord) String() string {
	return fmt.Sprintf("%d %02d %02d %02d %02d", r.Year, r.Month, r.Day, r.Hour, r.Minute)
}

// CompareAccessRecords orders records chronologically. It fits slices.SortFunc.
func CompareAccessRecords(a, b AccessRecord) int {
	switch {
	case a.Year != b.Year:
		return cmp.Compare(a.Year, b.Year)
	case a.Month != b.Month:
		return cmp.Compare(a.Month, b.Month)
	case a.Day != b.Day:
		return cmp.Compare(a.Day, b.Day)
	case a.Hour != b.Hour:
		return cmp.Compare(a.Hour, b.Hour)
	default:
		return cmp.Compare(a.Minute, b.Minute)
	}
}
