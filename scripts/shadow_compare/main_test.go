package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func pagedServer(pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("page")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
}

func TestCompareTargetMatchesAcrossPages(t *testing.T) {
	legacy := legacyServer(`{"count":3,"data":[{"rollNumber":"C"},{"rollNumber":"A"},{"rollNumber":"B"}]}`)
	defer legacy.Close()
	goAPI := pagedServer(map[string]string{
		"1": `{"count":2,"data":[{"rollNumber":"A"},{"rollNumber":"B"}],"hasMore":true}`,
		"2": `{"count":1,"data":[{"rollNumber":"C"}],"hasMore":false}`,
	})
	defer goAPI.Close()

	comp := compareTarget(context.Background(), http.DefaultClient, goAPI.URL, legacy.URL, target{Query: map[string]string{"name": "x"}})

	require.NoError(t, comp.Error)
	assert.True(t, comp.Match())
	assert.Equal(t, []string{"A", "B", "C"}, comp.GoRolls)
}

func TestCompareTargetReportsDiff(t *testing.T) {
	legacy := legacyServer(`{"count":2,"data":[{"rollNumber":"A"},{"rollNumber":"B"}]}`)
	defer legacy.Close()
	goAPI := pagedServer(map[string]string{"1": `{"count":1,"data":[{"rollNumber":"A"}],"hasMore":false}`})
	defer goAPI.Close()

	comp := compareTarget(context.Background(), http.DefaultClient, goAPI.URL, legacy.URL, target{Query: map[string]string{"city": "Pune"}})

	require.NoError(t, comp.Error)
	assert.False(t, comp.Match())
	assert.Contains(t, comp.Diff, `"B"`)
}

func TestCompareTargetSurfacesErrors(t *testing.T) {
	legacy := legacyServer(`{"count":0,"data":[]}`)
	defer legacy.Close()
	goAPI := pagedServer(map[string]string{})
	defer goAPI.Close()

	comp := compareTarget(context.Background(), http.DefaultClient, goAPI.URL, legacy.URL, target{})
	assert.Error(t, comp.Error)
	assert.False(t, comp.Match())
}
