package app

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxTracedQueryLength = 512
	// repositories select every column of their row model; longer lists are
	// shown as a count.
	maxTracedColumns = 4
)

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	selectListRegex      = regexp.MustCompile(`(?i)^SELECT (.+?) FROM `)
)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := collapseSelectList(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

func collapseSelectList(query string) string {
	loc := selectListRegex.FindStringSubmatchIndex(query)
	if loc == nil {
		return query
	}
	columns := strings.Count(query[loc[2]:loc[3]], ",") + 1
	if columns <= maxTracedColumns {
		return query
	}
	return query[:loc[2]] + "<" + strconv.Itoa(columns) + " columns>" + query[loc[3]:]
}
