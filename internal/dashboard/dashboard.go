// Package dashboard renders a plain text summary of the server state every
// time a request has been processed.
package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/template"
	"time"

	"github.com/pixil98/go-realms/internal/display"
	"github.com/pixil98/go-realms/internal/server"
)

const summaryTemplate = `== realms {{ .Now.Format "15:04:05" }} ==
clients: {{ len .Snapshot.Clients }}
{{- range .Snapshot.Clients }}
  {{ .Id | toString | trunc 8 }} {{ if .Connected }}online {{ else }}offline{{ end }} realms={{ .Realms }} completed={{ len .Completed }} seen {{ ago .LastSeen $.Now }}
{{- end }}
realms: {{ len .Snapshot.Realms }}
{{- range .Snapshot.Realms }}
  #{{ .Id }} {{ title .Title }} ({{ .Variant }}) age={{ .Age }} embarked={{ .Embarked }}/{{ .Explorers }}{{ if .Done }} done{{ end }} seed={{ .Seed }}
{{ indentTo .Story 4 $.Width }}
{{- end }}
recent:
{{- range .Recent }}
  {{ ago .At $.Now }} {{ .Request }} {{ .Outcome }}{{ with .Reason }}: {{ . }}{{ end }}
{{- end }}
`

// Snapshotter supplies the state to render.
type Snapshotter interface {
	Snapshot() server.Snapshot
}

// RequestSource delivers request notifications from a message bus.
type RequestSource interface {
	Ready() <-chan struct{}
	SubscribeRequests(ctx context.Context, fn func(server.AuditEntry)) (func(), error)
}

type Dashboard struct {
	store  Snapshotter
	out    io.Writer
	source RequestSource
	wake   chan struct{}
	tmpl   *template.Template
	recent int
	width  int
	now    func() time.Time
}

type DashboardOpt func(*Dashboard)

// WithSource makes the dashboard listen on a message bus instead of being
// registered as a store notifier.
func WithSource(src RequestSource) DashboardOpt {
	return func(d *Dashboard) {
		d.source = src
	}
}

// WithRecent sets how many audit entries are shown.
func WithRecent(n int) DashboardOpt {
	return func(d *Dashboard) {
		d.recent = n
	}
}

func WithWidth(n int) DashboardOpt {
	return func(d *Dashboard) {
		d.width = n
	}
}

func WithClock(now func() time.Time) DashboardOpt {
	return func(d *Dashboard) {
		d.now = now
	}
}

func New(store Snapshotter, out io.Writer, opts ...DashboardOpt) (*Dashboard, error) {
	tmpl, err := display.ParseTemplate("summary", summaryTemplate)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{
		store:  store,
		out:    out,
		wake:   make(chan struct{}, 1),
		tmpl:   tmpl,
		recent: 5,
		width:  display.DefaultWidth,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Notify wakes the render loop. Notifications arriving while a render is
// pending are merged into it.
func (d *Dashboard) Notify(_ context.Context, _ server.AuditEntry) {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dashboard) Start(ctx context.Context) error {
	if d.source != nil {
		select {
		case <-d.source.Ready():
		case <-ctx.Done():
			return nil
		}
		unsub, err := d.source.SubscribeRequests(ctx, func(e server.AuditEntry) { d.Notify(ctx, e) })
		if err != nil {
			return fmt.Errorf("subscribing to requests: %w", err)
		}
		defer unsub()
	}

	slog.InfoContext(ctx, "dashboard started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.wake:
			if err := d.Render(d.out); err != nil {
				slog.WarnContext(ctx, "rendering dashboard", "error", err)
			}
		}
	}
}

type summary struct {
	Now      time.Time
	Width    int
	Snapshot server.Snapshot
	Recent   []server.AuditEntry
}

// Render writes one summary of the current store state to w.
func (d *Dashboard) Render(w io.Writer) error {
	snap := d.store.Snapshot()
	recent := snap.Audit
	if len(recent) > d.recent {
		recent = recent[len(recent)-d.recent:]
	}

	var buf bytes.Buffer
	err := d.tmpl.Execute(&buf, summary{
		Now:      d.now(),
		Width:    d.width,
		Snapshot: snap,
		Recent:   recent,
	})
	if err != nil {
		return fmt.Errorf("executing summary: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}
