// Package identity defines the stored instructor profile and its
// permission data, together with the repositories that load it. The
// permission subsystem only ever reads these records.
package identity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Instructor is the authenticated user's stored profile.
type Instructor struct {
	ID         uuid.UUID
	EmployeeID string
	Email      string
	Name       string
	// AuthLevel is an ordinal privilege tier; higher is more privileged.
	// It gates some pages independently of Apps.
	AuthLevel int
	Apps      Grants
	CreatedAt time.Time
}

// Entry holds an instructor's grants for one application.
type Entry struct {
	Access   bool   `json:"access"`
	ViewOnly bool   `json:"view_only"`
	Pages    []Page `json:"pages,omitempty"`
}

// HasPage reports whether the entry grants the given page.
func (e Entry) HasPage(page Page) bool {
	for _, p := range e.Pages {
		if p == page {
			return true
		}
	}
	return false
}

// Grants maps application names to permission entries.
type Grants map[App]Entry

// defaultEntry is substituted for absent lookups so every code path sees a
// fully populated, deny-everything entry.
var defaultEntry = Entry{Access: false, ViewOnly: true}

// Get returns the stored entry for the application, or the deny-all
// default when none exists. Works on nil maps.
func (g Grants) Get(app App) Entry {
	if e, ok := g[app]; ok {
		return e
	}
	return defaultEntry
}

// UnmarshalJSON decodes stored grants, dropping unknown application names
// and page identifiers so malformed rows can only narrow access.
func (g *Grants) UnmarshalJSON(data []byte) error {
	var raw map[string]struct {
		Access   bool     `json:"access"`
		ViewOnly bool     `json:"view_only"`
		Pages    []string `json:"pages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Grants, len(raw))
	for name, e := range raw {
		app, ok := ParseApp(name)
		if !ok {
			continue
		}
		entry := Entry{Access: e.Access, ViewOnly: e.ViewOnly}
		for _, p := range e.Pages {
			if page, ok := ParsePage(app, p); ok {
				entry.Pages = append(entry.Pages, page)
			}
		}
		out[app] = entry
	}
	*g = out
	return nil
}
