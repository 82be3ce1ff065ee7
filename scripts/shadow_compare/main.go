package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
)

// maxPages stops a runaway crawl of the paginated endpoint.
const maxPages = 200

type target struct {
	Query    map[string]string `json:"query"`
	Critical bool              `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type searchPage struct {
	Count int `json:"count"`
	Data  []struct {
		RollNumber string `json:"rollNumber"`
	} `json:"data"`
	HasMore bool `json:"hasMore"`
}

type comparison struct {
	Target         target
	GoRolls        []string
	LegacyRolls    []string
	Diff           string
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func (c comparison) Match() bool {
	return c.Error == nil && c.Diff == ""
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:3001", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	ctx := context.Background()
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)
	for _, t := range targets {
		comp := compareTarget(ctx, client, goBase, legacyBase, t)
		if !comp.Match() {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

// compareTarget checks that both backends return the same set of roll numbers.
// The legacy search answers in one response; the Go API is paged until hasMore
// is false. Ordering is ignored.
func compareTarget(ctx context.Context, client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	start := time.Now()
	legacy, err := fetchPage(ctx, client, legacyBase, tgt.Query, 0)
	comp.DurationLegacy = time.Since(start)
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}
	comp.LegacyRolls = rollNumbers(legacy)

	start = time.Now()
	comp.GoRolls, err = crawl(ctx, client, goBase, tgt.Query)
	comp.DurationGo = time.Since(start)
	if err != nil {
		comp.Error = fmt.Errorf("go request failed: %w", err)
		return comp
	}

	comp.Diff = cmp.Diff(comp.LegacyRolls, comp.GoRolls)
	return comp
}

func crawl(ctx context.Context, client *http.Client, base string, query map[string]string) ([]string, error) {
	var all []*searchPage
	for page := 1; page <= maxPages; page++ {
		p, err := fetchPage(ctx, client, base, query, page)
		if err != nil {
			return nil, err
		}
		all = append(all, p)
		if !p.HasMore {
			return rollNumbers(all...), nil
		}
	}
	return nil, fmt.Errorf("more than %d pages", maxPages)
}

func fetchPage(ctx context.Context, client *http.Client, base string, query map[string]string, page int) (*searchPage, error) {
	if client == nil {
		return nil, errors.New("nil client")
	}
	params := url.Values{}
	for k, v := range query {
		params.Set(k, v)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
		params.Set("limit", "50")
	}
	endpoint := strings.TrimRight(base, "/") + "/api/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	var out searchPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return &out, nil
}

func rollNumbers(pages ...*searchPage) []string {
	rolls := []string{}
	for _, p := range pages {
		for _, item := range p.Data {
			rolls = append(rolls, item.RollNumber)
		}
	}
	sort.Strings(rolls)
	return rolls
}

func describe(query map[string]string) string {
	params := url.Values{}
	for k, v := range query {
		params.Set(k, v)
	}
	return params.Encode()
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.Match() {
			status = "DIFF"
		}
		fmt.Printf("[%s] /api/search?%s\n", status, describe(res.Target.Query))
		fmt.Printf("  Go: %d rows (%s)\n", len(res.GoRolls), res.DurationGo)
		fmt.Printf("  Legacy: %d rows (%s)\n", len(res.LegacyRolls), res.DurationLegacy)
		switch {
		case res.Error != nil:
			fmt.Printf("  Error: %v\n", res.Error)
		case res.Diff != "":
			fmt.Printf("  Critical: %t\n  Roll numbers (-legacy +go):\n%s\n", res.Target.Critical, res.Diff)
		}
	}
}
