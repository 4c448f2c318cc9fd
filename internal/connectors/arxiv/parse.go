package arxiv

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/logger"
)

// Atom feed wire format, restricted to the fields Scholar consumes.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Published  string         `xml:"published"`
	Summary    string         `xml:"summary"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// parseFeed decodes an Atom response into papers. A malformed feed is an
// error; a malformed entry is skipped with a warning so one bad record
// never fails the batch.
func parseFeed(data []byte) ([]domain.Paper, error) {
	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	papers := make([]domain.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		paper, err := parseEntry(entry)
		if err != nil {
			logger.Warn("Could not parse entry: %v", err)
			continue
		}
		papers = append(papers, paper)
	}

	return papers, nil
}

func parseEntry(entry atomEntry) (domain.Paper, error) {
	// The entry ID is a URL; the arXiv ID is its last path segment.
	id := entry.ID[strings.LastIndex(entry.ID, "/")+1:]
	if id == "" {
		return domain.Paper{}, fmt.Errorf("entry has no id")
	}

	title := collapseWhitespace(entry.Title)
	if title == "" {
		return domain.Paper{}, fmt.Errorf("entry %s has no title", id)
	}

	abstract := collapseWhitespace(entry.Summary)
	if abstract == "" {
		return domain.Paper{}, fmt.Errorf("entry %s has no abstract", id)
	}

	if len(entry.Authors) == 0 {
		return domain.Paper{}, fmt.Errorf("entry %s has no authors", id)
	}
	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) == 0 {
		return domain.Paper{}, fmt.Errorf("entry %s has no author names", id)
	}

	if len(entry.Categories) == 0 {
		return domain.Paper{}, fmt.Errorf("entry %s has no categories", id)
	}
	categories := make([]string, 0, len(entry.Categories))
	for _, c := range entry.Categories {
		if c.Term != "" {
			categories = append(categories, c.Term)
		}
	}

	published, err := time.Parse(time.RFC3339, strings.TrimSpace(entry.Published))
	if err != nil {
		return domain.Paper{}, fmt.Errorf("entry %s has bad published date: %w", id, err)
	}

	return domain.Paper{
		ArxivID:    id,
		Title:      title,
		Authors:    authors,
		Published:  published,
		Categories: categories,
		Abstract:   abstract,
	}, nil
}

// collapseWhitespace trims and folds internal whitespace runs, matching
// the line-wrapped titles and summaries arXiv serves.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
