package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-mdfs/mdfs"
)

func formatGain(g float32) string {
	return strconv.FormatFloat(float64(g), 'f', 6, 32)
}

// formatGains renders the max-gain vector as one tab-separated line.
func formatGains(gains []float32) string {
	return strings.Join(lo.Map(gains, func(g float32, _ int) string {
		return formatGain(g)
	}), "\t")
}

// formatMatch renders a match as variable:gain:v0,v1,...
func formatMatch(m mdfs.Match) string {
	tuple := lo.Map(m.Tuple, func(v int, _ int) string {
		return strconv.Itoa(v)
	})
	return fmt.Sprintf("%d:%s:%s", m.Variable, formatGain(m.Gain), strings.Join(tuple, ","))
}

// formatRanked renders one "variable<TAB>gain" line per variable in order of
// decreasing gain. top <= 0 keeps every variable.
func formatRanked(gains []float32, top int) []string {
	order := mdfs.Rank(gains)
	if top > 0 {
		order = lo.Subset(order, 0, uint(top))
	}
	return lo.Map(order, func(v int, _ int) string {
		return strconv.Itoa(v) + "\t" + formatGain(gains[v])
	})
}

// parseInteresting parses variable indices and inclusive ranges such as
// "3", "5-8". The result is sorted and free of duplicates.
func parseInteresting(items []string) ([]int, error) {
	var vars []int
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		from, to, isRange := strings.Cut(item, "-")
		first, err := strconv.Atoi(from)
		if err != nil || first < 0 {
			return nil, fmt.Errorf("invalid variable %q", item)
		}
		if !isRange {
			vars = append(vars, first)
			continue
		}
		last, err := strconv.Atoi(to)
		if err != nil || last < first {
			return nil, fmt.Errorf("invalid variable range %q", item)
		}
		vars = append(vars, rangeInclusive(first, last)...)
	}
	vars = lo.Uniq(vars)
	slices.Sort(vars)
	return vars, nil
}

func rangeInclusive(first, last int) []int {
	return lo.RangeFrom(first, last-first+1)
}
