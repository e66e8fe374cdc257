// Package cms serves the site's editorial pages from markdown files with YAML
// front matter.
package cms

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	gocache "github.com/patrickmn/go-cache"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page exists for a kind and slug.
var ErrNotFound = errors.New("cms: page not found")

// Page is a rendered content page.
type Page struct {
	Kind    string
	Slug    string
	Title   string
	Summary string
	Body    template.HTML
	Aside   []Box
	Banner  *Banner
	SEO     SEO
}

// Box is a titled sidebar card.
type Box struct {
	Title string
	Items []string
	Links []Link
}

// Link is a labelled href.
type Link struct {
	Label string
	Href  string
}

// SEO holds optional metadata overrides.
type SEO struct {
	Title       string
	Description string
}

// Banner models an optional alert displayed above the body.
type Banner struct {
	Variant string
	Message string
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	SEO     struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"seo"`
	Banner *struct {
		Variant string `yaml:"variant"`
		Message string `yaml:"message"`
	} `yaml:"banner"`
	Aside []struct {
		Title string   `yaml:"title"`
		Items []string `yaml:"items"`
		Links []struct {
			Label string `yaml:"label"`
			Href  string `yaml:"href"`
		} `yaml:"links"`
	} `yaml:"aside"`
}

const defaultCacheTTL = 5 * time.Minute

// Library loads pages from an fs.FS laid out as <kind>/<slug>.md.
type Library struct {
	fsys   fs.FS
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *gocache.Cache
}

// NewLibrary returns a library over fsys. A zero ttl disables caching and a
// negative ttl selects the default expiry.
func NewLibrary(fsys fs.FS, ttl time.Duration) *Library {
	l := &Library{
		fsys: fsys,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: bluemonday.UGCPolicy(),
	}
	if ttl != 0 {
		if ttl < 0 {
			ttl = defaultCacheTTL
		}
		l.cache = gocache.New(ttl, 2*ttl)
	}
	return l
}

// Page returns the page for kind and slug.
func (l *Library) Page(kind, slug string) (Page, error) {
	kind, slug = sanitizeSlug(kind), sanitizeSlug(slug)
	if kind == "" || slug == "" || strings.Contains(slug, "/") || strings.Contains(kind, "/") {
		return Page{}, ErrNotFound
	}
	key := kind + "|" + slug
	if l.cache != nil {
		if v, ok := l.cache.Get(key); ok {
			return clonePage(v.(Page)), nil
		}
	}
	page, err := l.read(kind, slug)
	if err != nil {
		return Page{}, err
	}
	if l.cache != nil {
		l.cache.SetDefault(key, clonePage(page))
	}
	return page, nil
}

// Flush drops cached pages, e.g. after content changes in dev mode.
func (l *Library) Flush() {
	if l.cache != nil {
		l.cache.Flush()
	}
}

func (l *Library) read(kind, slug string) (Page, error) {
	file := path.Join(kind, slug+".md")
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	html, err := l.render(body)
	if err != nil {
		return Page{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	page := Page{
		Kind:    kind,
		Slug:    slug,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    html,
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if front.Banner != nil && strings.TrimSpace(front.Banner.Message) != "" {
		page.Banner = &Banner{
			Variant: strings.TrimSpace(front.Banner.Variant),
			Message: strings.TrimSpace(front.Banner.Message),
		}
	}
	for _, a := range front.Aside {
		box := Box{Title: strings.TrimSpace(a.Title), Items: a.Items}
		for _, ln := range a.Links {
			box.Links = append(box.Links, Link{Label: ln.Label, Href: ln.Href})
		}
		page.Aside = append(page.Aside, box)
	}
	return page, nil
}

// render converts markdown to sanitized HTML.
func (l *Library) render(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := l.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(l.policy.SanitizeBytes(buf.Bytes())), nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if strings.Contains(slug, "..") || strings.ContainsRune(slug, '\\') {
		return ""
	}
	return slug
}

func clonePage(src Page) Page {
	cp := src
	if src.Banner != nil {
		b := *src.Banner
		cp.Banner = &b
	}
	if src.Aside != nil {
		cp.Aside = make([]Box, len(src.Aside))
		copy(cp.Aside, src.Aside)
	}
	return cp
}
