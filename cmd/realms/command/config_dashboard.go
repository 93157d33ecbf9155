package command

import (
	"fmt"
	"io"
	"os"

	"github.com/pixil98/go-realms/internal/dashboard"
)

type DashboardOutput int

const (
	DashboardOutputStdout DashboardOutput = iota
	DashboardOutputStderr
	DashboardOutputNone
)

func (o *DashboardOutput) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "stdout":
		*o = DashboardOutputStdout
	case "stderr":
		*o = DashboardOutputStderr
	case "none":
		*o = DashboardOutputNone
	default:
		return fmt.Errorf("unknown dashboard output: %s", text)
	}
	return nil
}

type DashboardConfig struct {
	Enabled bool            `json:"enabled"`
	Output  DashboardOutput `json:"output"`
	Recent  int             `json:"recent"`
	Width   int             `json:"width"`
}

func (c *DashboardConfig) Validate() error {
	if c.Recent < 0 {
		return fmt.Errorf("dashboard recent must not be negative")
	}
	if c.Width < 0 {
		return fmt.Errorf("dashboard width must not be negative")
	}
	return nil
}

func (c *DashboardConfig) writer() io.Writer {
	switch c.Output {
	case DashboardOutputStderr:
		return os.Stderr
	case DashboardOutputNone:
		return io.Discard
	default:
		return os.Stdout
	}
}

func (c *DashboardConfig) options() []dashboard.DashboardOpt {
	var opts []dashboard.DashboardOpt
	if c.Recent > 0 {
		opts = append(opts, dashboard.WithRecent(c.Recent))
	}
	if c.Width > 0 {
		opts = append(opts, dashboard.WithWidth(c.Width))
	}
	return opts
}
