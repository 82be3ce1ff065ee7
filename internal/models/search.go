package models

import (
	"strconv"
	"strings"
)

// AlumniSearchFilter carries the trimmed search parameters. Blank fields add
// no predicate.
type AlumniSearchFilter struct {
	Name             string `json:"name,omitempty"`
	RollNumber       string `json:"rollNumber,omitempty"`
	LastOrganization string `json:"lastOrganization,omitempty"`
	LastPosition     string `json:"lastPosition,omitempty"`
	CollegeClubs     string `json:"collegeClubs,omitempty"`
	NatureOfJob      string `json:"natureOfJob,omitempty"`
	Country          string `json:"country,omitempty"`
	City             string `json:"city,omitempty"`
	ProgramName      string `json:"programName,omitempty"`
	Specialization   string `json:"specialization,omitempty"`
	YearOfEntry      *int   `json:"yearOfEntry,omitempty"`
}

// IsEmpty reports whether the filter would produce no predicate at all.
func (f AlumniSearchFilter) IsEmpty() bool {
	return f.Name == "" &&
		f.RollNumber == "" &&
		f.LastOrganization == "" &&
		f.LastPosition == "" &&
		f.CollegeClubs == "" &&
		f.NatureOfJob == "" &&
		f.Country == "" &&
		f.City == "" &&
		f.ProgramName == "" &&
		f.Specialization == "" &&
		f.YearOfEntry == nil
}

// ParseLeadingInt reads an optionally signed run of digits at the start of s,
// after leading whitespace. "2015abc" yields 2015; "abc" yields ok=false.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
