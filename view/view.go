// Package view renders the HTML pages from templates/ with a shared layout.
package view

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/diewo77/faktury/i18n"
	"github.com/diewo77/faktury/internal/models"
)

const dateLayout = "2006-01-02"

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
	assetManifest     map[string]string
	assetManifestOnce sync.Once

	devMode      bool
	langResolver = func(_ *http.Request) string { return i18n.Default }
)

// partials are parsed alongside every page that uses the layout.
var partials = []string{"header.html", "party-fields.html"}

// SetLangResolver allows the host app to provide a custom language resolver (e.g., reading from context).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetDevMode disables the template cache so edits show up without a restart.
func SetDevMode(on bool) {
	devMode = on
}

// layoutBase walks upward from a template path to find the directory that contains layout.html.
// If none is found, it returns the template's own directory.
func layoutBase(mainPath string) string {
	d := filepath.Dir(mainPath)
	for {
		if fi, err := os.Stat(filepath.Join(d, "layout.html")); err == nil && !fi.IsDir() {
			return d
		}
		p := filepath.Dir(d)
		if p == d {
			return filepath.Dir(mainPath)
		}
		d = p
	}
}

func detectBase() {
	for _, c := range []string{"templates", "../templates", "../../templates"} {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the func map bound to the language of r.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	return template.FuncMap{
		"t":     func(code string) string { return i18n.T(lang, code) },
		"lang":  func() string { return lang },
		"money": Money,
		"date":  Date,
		"deref": func(s *string) string { return lo.FromPtr(s) },
		"year":  func() int { return time.Now().Year() },
		"asset": resolveAsset,
		"statuses": func() []models.InvoiceStatus {
			return models.InvoiceStatuses
		},
		"statusLabel": func(s models.InvoiceStatus) string {
			return i18n.T(lang, "status."+string(s))
		},
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Money formats an amount with two decimals, the precision of the amount column.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Date formats a calendar date as YYYY-MM-DD, the value format of date inputs.
// The zero time renders as an empty string.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// versionedAsset returns /static/<name>?v=<hash> for cache busting.
func versionedAsset(rel string) string {
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") || strings.HasPrefix(rel, "//") {
		return rel
	}
	b, err := os.ReadFile(filepath.Join("static", rel))
	if err != nil {
		return "/static/" + rel
	}
	h := sha1.Sum(b)
	return "/static/" + rel + "?v=" + fmt.Sprintf("%x", h[:8])
}

// resolveAsset prefers a hashed filename from manifest.json then falls back to query param versioning.
func resolveAsset(rel string) string {
	if devMode {
		parseManifest()
	} else {
		assetManifestOnce.Do(parseManifest)
	}
	if h, ok := assetManifest[rel]; ok {
		return "/static/" + h
	}
	return versionedAsset(rel)
}

func parseManifest() {
	b, err := os.ReadFile(filepath.Join("static", "manifest.json"))
	if err != nil {
		return
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return
	}
	assetManifest = m
}

// SetBaseDir overrides the template base directory (useful for tests or custom setups).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Render executes the page template name (e.g. "index.html") inside the layout.
// Output is buffered, so a template error leaves the response untouched and can
// still become a 500.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	t, err := lookup(r, name)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}

// lookup returns the parsed template for name with funcs bound to r.
// Cached templates are cloned so each request gets its own language.
func lookup(r *http.Request, name string) (*template.Template, error) {
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok {
			c, err := t.Clone()
			if err != nil {
				return nil, err
			}
			return c.Funcs(Funcs(r)), nil
		}
	}
	t, err := parse(r, name)
	if err != nil {
		return nil, err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
		// the cached copy must stay unexecuted to remain clonable
		return t.Clone()
	}
	return t, nil
}

func parse(r *http.Request, name string) (*template.Template, error) {
	if baseDir == "" {
		once.Do(detectBase)
	}
	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		found := false
		for _, c := range []string{"templates", "../templates", "../../templates", "../../../templates"} {
			if fi, e2 := os.Stat(filepath.Join(c, name)); e2 == nil && !fi.IsDir() {
				mainPath = filepath.Join(c, name)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
	}
	base := layoutBase(mainPath)
	layoutPath := filepath.Join(base, "layout.html")

	content, err := os.ReadFile(mainPath)
	if err != nil {
		return nil, err
	}
	funcMap := Funcs(r)
	if bytes.Contains(bytes.ToLower(content), []byte("<!doctype")) {
		// Full document provided; skip layout wrapping.
		return template.New(name).Funcs(funcMap).ParseFiles(mainPath)
	}
	if fi, err := os.Stat(layoutPath); err != nil || fi.IsDir() {
		return template.New(name).Funcs(funcMap).ParseFiles(mainPath)
	}
	files := []string{layoutPath, mainPath}
	for _, p := range partials {
		pp := filepath.Join(base, "partials", p)
		if fi, err := os.Stat(pp); err == nil && !fi.IsDir() {
			files = append(files, pp)
		}
	}
	return template.New("layout.html").Funcs(funcMap).ParseFiles(files...)
}
