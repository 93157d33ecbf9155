package command

import (
	"fmt"

	"github.com/pixil98/go-realms/internal/journal"
)

// JournalConfig enables the request journal when Path is set.
type JournalConfig struct {
	Path   string `json:"path"`
	Buffer int    `json:"buffer"`
}

func (c *JournalConfig) Validate() error {
	if c.Buffer < 0 {
		return fmt.Errorf("journal buffer must not be negative")
	}
	return nil
}

func (c *JournalConfig) enabled() bool {
	return c.Path != ""
}

func (c *JournalConfig) open() (*journal.Journal, error) {
	var opts []journal.JournalOpt
	if c.Buffer > 0 {
		opts = append(opts, journal.WithBuffer(c.Buffer))
	}
	return journal.Open(c.Path, opts...)
}
