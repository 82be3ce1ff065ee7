package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	cases := []struct {
		name        string
		page, limit string
		wantPage    int
		wantLimit   int
	}{
		{"defaults", "", "", 1, 20},
		{"explicit", "3", "10", 3, 10},
		{"clamped high", "1", "500", 1, 50},
		{"negative", "-4", "-1", 1, 1},
		{"zero falls back", "0", "0", 1, 20},
		{"garbage", "abc", "x", 1, 20},
		{"leading digits", "2abc", " 15 ", 2, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPageRequest(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantLimit, got.Limit)
		})
	}
}

func TestNewPageRequestHugePageStaysPastEnd(t *testing.T) {
	got := NewPageRequest("9223372036854775807", "")
	assert.Equal(t, MaxPage, got.Page)
	assert.GreaterOrEqual(t, got.Offset(), 0)
	assert.False(t, got.HasMore(0, 5))

	got = NewPageRequest("9223372036854775807", "50")
	assert.GreaterOrEqual(t, got.Offset(), 0)
	assert.False(t, got.HasMore(0, 1000))
}

func TestPageRequestHasMore(t *testing.T) {
	p := PageRequest{Page: 2, Limit: 10}
	assert.Equal(t, 10, p.Offset())
	assert.True(t, p.HasMore(10, 21))
	assert.False(t, p.HasMore(10, 20))
	assert.False(t, PageRequest{Page: 5, Limit: 10}.HasMore(0, 20))
}

func TestParseLeadingInt(t *testing.T) {
	n, ok := ParseLeadingInt(" 2015 ")
	assert.True(t, ok)
	assert.Equal(t, 2015, n)

	n, ok = ParseLeadingInt("2015abc")
	assert.True(t, ok)
	assert.Equal(t, 2015, n)

	_, ok = ParseLeadingInt("abc")
	assert.False(t, ok)

	_, ok = ParseLeadingInt("-")
	assert.False(t, ok)
}

func TestAlumniSearchFilterIsEmpty(t *testing.T) {
	assert.True(t, AlumniSearchFilter{}.IsEmpty())
	year := 2015
	assert.False(t, AlumniSearchFilter{YearOfEntry: &year}.IsEmpty())
	assert.False(t, AlumniSearchFilter{City: "Pune"}.IsEmpty())
}
