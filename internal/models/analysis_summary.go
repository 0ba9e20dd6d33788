package models

import "time"

// AnalysisSummary is the result of one full analysis run over a log file.
//
// Example JSON:
//
//	{
//	  "runId": "01HZX3NDEKTSV4RRFFQ69G5FAV",
//	  "source": "demo.log",
//	  "baseYear": 2018,
//	  "analyzedAt": "2026-10-19T08:00:00Z",
//	  "numberOfAccesses": 5000,
//	  "averageAccessesPerMonth": 59.52,
//	  "busiestTwoHour": 17,
//	  "rejected": {"day": 12},
//	  "dimensions": {
//	    "hour": {"dimension": "hour", "origin": 0, "counts": [ ... ], "busiest": 18, "quietest": 4}
//	  }
//	}
type AnalysisSummary struct {
	RunID                   string                         `json:"runId"`
	Source                  string                         `json:"source"`
	BaseYear                int                            `json:"baseYear"`
	AnalyzedAt              time.Time                      `json:"analyzedAt"`
	NumberOfAccesses        int64                          `json:"numberOfAccesses"`
	AverageAccessesPerMonth float64                        `json:"averageAccessesPerMonth"`
	BusiestTwoHour          int                            `json:"busiestTwoHour"`
	Rejected                map[Dimension]int64            `json:"rejected,omitempty"`
	Dimensions              map[Dimension]DimensionSummary `json:"dimensions"`
}

// DimensionSummary holds the bucket counts of one dimension and its extremal keys.
// Counts[i] belongs to key Origin+i.
type DimensionSummary struct {
	Dimension Dimension `json:"dimension"`
	Origin    int       `json:"origin"`
	Counts    []int64   `json:"counts"`
	Busiest   int       `json:"busiest"`
	Quietest  int       `json:"quietest"`
}

// Total sums all bucket counts.
func (s DimensionSummary) Total() int64 {
	var total int64
	for _, c := range s.Counts {
		total += c
	}
	return total
}
