// Package services orchestrates the data pipeline: refreshing the
// unified record set from the source workbooks and deriving dashboard
// views from it.
package services

import (
	"time"

	"painel/internal/core"
)

// SourceStatus reports the outcome of loading one source during a
// refresh. A failed source carries its error text and contributes no
// records; the refresh as a whole still succeeds if any source loaded.
type SourceStatus struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Err  string `json:"error,omitempty"`
}

// Dataset is one refreshed snapshot of the unified record set. Version
// changes on every refresh and keys derived caches.
type Dataset struct {
	Version     string         `json:"version"`
	RefreshedAt time.Time      `json:"refreshed_at"`
	Records     []core.Record  `json:"records"`
	Sources     []SourceStatus `json:"sources"`
}

// SourceOK reports whether the named source loaded in this snapshot.
func (d *Dataset) SourceOK(name string) bool {
	for _, s := range d.Sources {
		if s.Name == name {
			return s.Err == ""
		}
	}
	return false
}
