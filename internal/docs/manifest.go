package docs

import (
	"sort"
	"time"

	"github.com/leapstack-labs/docsql/internal/engine"
)

// Manifest summarizes one site build. It is what the CLI prints with
// --output json.
type Manifest struct {
	BuildID     string       `json:"build_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Duration    string       `json:"duration"`
	DocsDir     string       `json:"docs_dir"`
	SiteDir     string       `json:"site_dir"`
	Pages       []PageEntry  `json:"pages"`
	Copied      int          `json:"copied"`
	Assets      []string     `json:"assets"`
	Stats       engine.Stats `json:"stats"`
	Connections []string     `json:"connections"`

	elapsed time.Duration
}

// PageEntry records what happened to one Markdown page.
type PageEntry struct {
	Path   string `json:"path"`
	Blocks int    `json:"blocks"`
	Failed int    `json:"failed"`
}

// Elapsed returns the wall time of the build.
func (m *Manifest) Elapsed() time.Duration {
	return m.elapsed
}

// FailedPages returns the pages with at least one failed block.
func (m *Manifest) FailedPages() []PageEntry {
	var out []PageEntry
	for _, p := range m.Pages {
		if p.Failed > 0 {
			out = append(out, p)
		}
	}
	return out
}

func (m *Manifest) finish(start time.Time) {
	sort.Slice(m.Pages, func(i, j int) bool {
		return m.Pages[i].Path < m.Pages[j].Path
	})
	m.elapsed = time.Since(start)
	m.Duration = m.elapsed.Round(time.Millisecond).String()
}
