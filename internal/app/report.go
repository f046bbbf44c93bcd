package app

import (
	"fmt"

	"github.com/bamorim/bindcheck/internal/bind"
)

const (
	successMark = "✓"
	failureMark = "✗"
)

// Lines renders one console line per attempted address.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		lines = append(lines, FormatResult(res))
	}
	return lines
}

func FormatResult(res bind.Result) string {
	if res.OK() {
		return fmt.Sprintf("%s Successfully bound to %s:%d", successMark, res.Address, res.Port)
	}
	return fmt.Sprintf("%s Error: %v", failureMark, res.Err)
}

// Entry is the machine-readable form of a Result.
type Entry struct {
	Address string `json:"address"`
	Status  string `json:"status"`
	Port    int    `json:"port,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r Report) Entries() []Entry {
	entries := make([]Entry, 0, len(r.Results)+len(r.Skipped))
	for _, res := range r.Results {
		entry := Entry{Address: res.Address}
		if res.OK() {
			entry.Status = "ok"
			entry.Port = res.Port
		} else {
			entry.Status = "failed"
			entry.Error = res.Err.Error()
		}
		entries = append(entries, entry)
	}
	for _, addr := range r.Skipped {
		entries = append(entries, Entry{Address: addr, Status: "skipped"})
	}
	return entries
}
