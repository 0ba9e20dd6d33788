package models

import (
	"fmt"
	"strconv"
	"time"
)

// Dimension names one calendar field that access records are bucketed by.
type Dimension string

const (
	DimensionHour  Dimension = "hour"
	DimensionDay   Dimension = "day"
	DimensionMonth Dimension = "month"
	DimensionYear  Dimension = "year"
)

const (
	HoursPerDay   = 24
	DaysPerMonth  = 28 // every month is modeled with 28 days
	MonthsPerYear = 12
	YearsInWindow = 7
)

// Dimensions lists every dimension in reporting order.
var Dimensions = []Dimension{DimensionHour, DimensionDay, DimensionMonth, DimensionYear}

// ParseDimension accepts both singular names and the adjective forms used in routes.
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "hour", "hourly":
		return DimensionHour, nil
	case "day", "daily":
		return DimensionDay, nil
	case "month", "monthly":
		return DimensionMonth, nil
	case "year", "annual", "yearly":
		return DimensionYear, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// Size is the number of buckets for the dimension.
func (d Dimension) Size() int {
	switch d {
	case DimensionHour:
		return HoursPerDay
	case DimensionDay:
		return DaysPerMonth
	case DimensionMonth:
		return MonthsPerYear
	case DimensionYear:
		return YearsInWindow
	default:
		panic(fmt.Sprintf("invalid Dimension: %q", d))
	}
}

// Origin is the key stored in bucket 0. Only the year dimension depends on baseYear.
func (d Dimension) Origin(baseYear int) int {
	switch d {
	case DimensionHour:
		return 0
	case DimensionDay, DimensionMonth:
		return 1
	case DimensionYear:
		return baseYear
	default:
		panic(fmt.Sprintf("invalid Dimension: %q", d))
	}
}

// Key extracts the record field this dimension buckets on.
func (d Dimension) Key(r AccessRecord) int {
	switch d {
	case DimensionHour:
		return r.Hour
	case DimensionDay:
		return r.Day
	case DimensionMonth:
		return r.Month
	case DimensionYear:
		return r.Year
	default:
		panic(fmt.Sprintf("invalid Dimension: %q", d))
	}
}

// Label renders a key for display: "09:00", "day 15", "Mar", "2020".
func (d Dimension) Label(key int) string {
	switch d {
	case DimensionHour:
		return fmt.Sprintf("%02d:00", key)
	case DimensionDay:
		return "day " + strconv.Itoa(key)
	case DimensionMonth:
		if key >= 1 && key <= MonthsPerYear {
			return time.Month(key).String()[:3]
		}
		return "month " + strconv.Itoa(key)
	case DimensionYear:
		return strconv.Itoa(key)
	default:
		panic(fmt.Sprintf("invalid Dimension: %q", d))
	}
}
