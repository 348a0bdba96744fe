package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/armature-labs/armature/internal/branding"
	"github.com/armature-labs/armature/internal/config"
	"github.com/armature-labs/armature/internal/template"
	"github.com/armature-labs/armature/internal/userdata"
)

const (
	// indexCacheFile is the cached registry index file name.
	indexCacheFile = "registry.json"

	// DefaultIndexMaxAge is the freshness window for the cached index.
	DefaultIndexMaxAge = 24 * time.Hour
)

// IndexURL returns the template registry location, checking (in order):
// 1. ARMATURE_REGISTRY_URL env var
// 2. config key "registry_url"
// 3. branding.RegistryURL() (from branding.yaml)
func IndexURL() string {
	if v := os.Getenv(branding.EnvVar("REGISTRY_URL")); v != "" {
		return v
	}
	if v := config.Get("registry_url"); v != "" {
		return v
	}
	return branding.RegistryURL()
}

// cachedIndex wraps the fetched templates with the fetch time used for
// freshness checks.
type cachedIndex struct {
	Templates []template.Template `json:"templates"`
	FetchedAt time.Time           `json:"fetched_at"`
}

// FetchIndex retrieves the registry index from url. An http(s) URL is
// fetched over the network; anything else is treated as a local file path.
// The document is a JSON array of template definitions.
func FetchIndex(url string) ([]template.Template, error) {
	var data []byte
	var err error

	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		data, err = fetchHTTP(url)
	} else {
		data, err = os.ReadFile(url)
		if err != nil {
			err = fmt.Errorf("reading registry file %s: %w", url, err)
		}
	}
	if err != nil {
		return nil, err
	}

	var templates []template.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parsing registry index: %w", err)
	}
	return templates, nil
}

// FetchIndexCached returns the registry index, serving the cache under
// ~/.armature/cache/registry.json while it is fresher than maxAge. A
// network failure falls back to a stale cache when one exists.
func FetchIndexCached(url string, maxAge time.Duration) ([]template.Template, error) {
	cachePath, err := indexCachePath()
	if err != nil {
		return FetchIndex(url)
	}

	cached := loadIndexCache(cachePath)
	if cached != nil && time.Since(cached.FetchedAt) <= maxAge {
		return cached.Templates, nil
	}

	templates, err := FetchIndex(url)
	if err != nil {
		if cached != nil {
			return cached.Templates, nil // stale beats unreachable
		}
		return nil, err
	}

	saveIndexCache(cachePath, templates)
	return templates, nil
}

// Find returns the named template from the index.
func Find(templates []template.Template, name string) (*template.Template, error) {
	for i := range templates {
		if templates[i].Name == name {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("template %q not found in registry", name)
}

func fetchHTTP(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName()+"-registry")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching registry index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading registry response: %w", err)
	}
	return data, nil
}

func indexCachePath() (string, error) {
	dir, err := userdata.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, indexCacheFile), nil
}

// loadIndexCache reads the cache file. Returns nil on any failure — the
// cache is an optimization, never a requirement.
func loadIndexCache(path string) *cachedIndex {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var idx cachedIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil
	}
	return &idx
}

// saveIndexCache writes the cache file, best effort.
func saveIndexCache(path string, templates []template.Template) {
	idx := cachedIndex{Templates: templates, FetchedAt: time.Now()}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal)
	_ = os.WriteFile(path, data, userdata.FilePermNormal)
}
