package replay

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jpalmerr/drawstore"
	"github.com/jpalmerr/drawstore/config"
	"github.com/jpalmerr/drawstore/hub"
)

// Options configures a replay.
type Options struct {
	// Logger receives debug records per step. Defaults to slog.Default().
	Logger *slog.Logger

	// Sink, if set, receives every fired event in addition to the transcript.
	Sink drawstore.EventSink
}

// Entry is the outcome of one step.
type Entry struct {
	Op     config.Op `json:"op"`
	Args   []string  `json:"args,omitempty"`
	Result string    `json:"result,omitempty"`
	Events []string  `json:"events,omitempty"`
}

// State is the store state after the last step.
type State struct {
	Dirty    bool     `json:"dirty"`
	Features []string `json:"features"`
	Selected []string `json:"selected"`
	Changed  []string `json:"changed"`
}

// Transcript is the full record of a replay.
type Transcript struct {
	Title   string  `json:"title,omitempty"`
	Entries []Entry `json:"entries"`
	Final   State   `json:"final"`
}

// Run replays cfg against a fresh store.
//
// Returns an error if the declared features cannot be built.
func Run(cfg *config.Config, opts Options) (*Transcript, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	shapes, err := config.BuildShapes(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build features: %w", err)
	}
	byID := make(map[string]*drawstore.Shape, len(shapes))
	for _, sh := range shapes {
		byID[sh.ID()] = sh
	}

	rec := hub.NewRecorder()
	store, err := drawstore.New[string](
		&drawstore.Context{Map: hub.Tee(rec, opts.Sink)},
		drawstore.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	tr := &Transcript{
		Title:   cfg.Title,
		Entries: make([]Entry, 0, len(cfg.Steps)),
	}

	for i, st := range cfg.Steps {
		rec.Reset()
		entry := Entry{Op: st.Op, Args: append([]string(nil), st.IDs...)}

		switch st.Op {
		case config.OpAdd:
			if len(st.IDs) == 0 {
				for _, sh := range shapes {
					store.Add(sh)
					entry.Args = append(entry.Args, sh.ID())
				}
				break
			}
			for _, id := range st.IDs {
				store.Add(byID[id])
			}
		case config.OpGet:
			if f, ok := store.Get(st.IDs[0]); ok {
				entry.Result = fmt.Sprint(f)
			} else {
				entry.Result = "not found"
			}
		case config.OpGetAll:
			entry.Result = formatIDs(store.GetAllIDs())
		case config.OpSelect:
			store.Select(st.IDs...)
		case config.OpDeselect:
			store.Deselect(st.IDs...)
		case config.OpSetSelected:
			store.SetSelected(st.IDs...)
		case config.OpClearSelected:
			store.ClearSelected()
		case config.OpGetSelected:
			entry.Result = formatIDs(store.GetSelectedIDs())
		case config.OpIsSelected:
			entry.Result = strconv.FormatBool(store.IsSelected(st.IDs[0]))
		case config.OpFlush:
			d := store.FlushSelected()
			entry.Result = fmt.Sprintf("selected=%s deselected=%s", formatIDs(d.Selected), formatIDs(d.Deselected))
		case config.OpDelete:
			store.Delete(st.IDs...)
		case config.OpChanged:
			for _, id := range st.IDs {
				store.FeatureChanged(id)
			}
		case config.OpGetChanged:
			entry.Result = formatIDs(store.GetChangedIDs())
		case config.OpClearChanged:
			store.ClearChangedIDs()
		case config.OpDirty:
			store.SetDirty()
		case config.OpRender:
			store.Render()
		default:
			return nil, fmt.Errorf("steps[%d]: unknown op %q", i, st.Op)
		}

		for _, c := range rec.Calls() {
			entry.Events = append(entry.Events, describeEvent(c))
		}

		logger.Debug("step replayed",
			"index", i,
			"op", string(st.Op),
			"events", len(entry.Events),
		)
		tr.Entries = append(tr.Entries, entry)
	}

	tr.Final = State{
		Dirty:    store.IsDirty(),
		Features: store.GetAllIDs(),
		Selected: store.GetSelectedIDs(),
		Changed:  store.GetChangedIDs(),
	}
	return tr, nil
}

// WriteText writes the transcript in its line format:
//
//	# title
//	op [args] => result
//	  ~ event
//	final dirty=... features=[...] selected=[...] changed=[...]
func (t *Transcript) WriteText(w io.Writer) error {
	var b strings.Builder

	if t.Title != "" {
		fmt.Fprintf(&b, "# %s\n", t.Title)
	}
	for _, e := range t.Entries {
		b.WriteString(string(e.Op))
		if len(e.Args) > 0 {
			b.WriteString(" " + formatIDs(e.Args))
		}
		if e.Result != "" {
			b.WriteString(" => " + e.Result)
		}
		b.WriteByte('\n')
		for _, ev := range e.Events {
			fmt.Fprintf(&b, "  ~ %s\n", ev)
		}
	}
	fmt.Fprintf(&b, "final dirty=%t features=%s selected=%s changed=%s\n",
		t.Final.Dirty,
		formatIDs(t.Final.Features),
		formatIDs(t.Final.Selected),
		formatIDs(t.Final.Changed),
	)

	_, err := io.WriteString(w, b.String())
	return err
}

// describeEvent renders a fired event on one line.
func describeEvent(c hub.Call) string {
	switch p := c.Payload.(type) {
	case drawstore.DeletedEvent[string]:
		return fmt.Sprintf("%s features=%s", c.Name, formatIDs(featureIDs(p.Features)))
	case drawstore.RenderEvent[string]:
		return fmt.Sprintf("%s hot=%s cold=%s cold_changed=%t",
			c.Name, formatIDs(featureIDs(p.Hot)), formatIDs(featureIDs(p.Cold)), p.ColdChanged)
	default:
		return fmt.Sprintf("%s %v", c.Name, c.Payload)
	}
}

func featureIDs(fs []drawstore.Feature[string]) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.ID()
	}
	return ids
}

func formatIDs(ids []string) string {
	return "[" + strings.Join(ids, " ") + "]"
}
