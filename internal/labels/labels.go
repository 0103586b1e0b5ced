// Package labels holds the static code→label tables for both grid axes.
// These are display configuration only; grouping and filtering work on the
// raw codes.
package labels

import "sort"

// AgeBands maps the STATS19-style age band codes to display labels.
var AgeBands = map[int]string{
	1:  "0 - 5",
	2:  "6 - 10",
	3:  "11 - 15",
	4:  "16 - 20",
	5:  "21 - 25",
	6:  "26 - 35",
	7:  "36 - 45",
	8:  "46 - 55",
	9:  "56 - 65",
	10: "66 - 75",
	11: "Over 75",
}

// Roles maps casualty role codes to display labels.
var Roles = map[int]string{
	1: "Driver or rider",
	2: "Passenger",
	3: "Pedestrian",
}

// Severities maps severity codes to display labels.
var Severities = map[int]string{
	1: "Fatal",
	2: "Serious",
	3: "Slight",
}

func AgeBand(code int) string {
	if l, ok := AgeBands[code]; ok {
		return l
	}
	return "Unknown"
}

func Role(code int) string {
	if l, ok := Roles[code]; ok {
		return l
	}
	return "Unknown"
}

func Severity(code int) string {
	if l, ok := Severities[code]; ok {
		return l
	}
	return "Unknown"
}

// AgeBandCodes returns the row axis codes in ascending order.
func AgeBandCodes() []int {
	return sortedKeys(AgeBands)
}

// RoleCodes returns the column axis codes in ascending order.
func RoleCodes() []int {
	return sortedKeys(Roles)
}

func sortedKeys(m map[int]string) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
