package drawstore

import (
	"testing"
)

func sourceIDs(fs []Feature[string]) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.ID()
	}
	return ids
}

func addShapes(t *testing.T, s *Store[string], ids ...string) {
	t.Helper()
	for _, id := range ids {
		sh, err := NewShape(KindPoint, WithID(id))
		if err != nil {
			t.Fatalf("NewShape() error = %v", err)
		}
		s.Add(sh)
	}
}

func TestStore_RenderLifecycle(t *testing.T) {
	s, rec := newTestStore(t)
	addShapes(t, s, "a", "b", "c")
	s.SetDirty()
	s.FeatureChanged("a")

	steps := []struct {
		name            string
		prepare         func()
		wantHot         []string
		wantCold        []string
		wantColdChanged bool
	}{
		{
			name:            "dirty render sends everything cold",
			prepare:         func() {},
			wantCold:        []string{"a", "b", "c"},
			wantColdChanged: true,
		},
		{
			name:            "changed feature becomes hot",
			prepare:         func() { s.FeatureChanged("b") },
			wantHot:         []string{"b"},
			wantCold:        []string{"a", "c"},
			wantColdChanged: true,
		},
		{
			name:            "hot feature cools down",
			prepare:         func() {},
			wantCold:        []string{"a", "c", "b"},
			wantColdChanged: true,
		},
		{
			name:     "idle render keeps cold source",
			prepare:  func() { s.FeatureChanged("ghost") },
			wantCold: []string{"a", "c", "b"},
		},
	}

	for _, step := range steps {
		rec.Reset()
		step.prepare()
		s.Render()

		if s.IsDirty() {
			t.Errorf("%s: IsDirty() = true after Render", step.name)
		}
		assertIDs(t, step.name+": GetChangedIDs()", s.GetChangedIDs())

		src := s.Sources()
		assertIDs(t, step.name+": hot", sourceIDs(src.Hot), step.wantHot...)
		assertIDs(t, step.name+": cold", sourceIDs(src.Cold), step.wantCold...)

		if rec.CallCount() != 1 {
			t.Fatalf("%s: fire call count = %d, want 1", step.name, rec.CallCount())
		}
		call := rec.Calls()[0]
		if call.Name != EventRender {
			t.Errorf("%s: fired %q, want %q", step.name, call.Name, EventRender)
		}
		ev, ok := call.Payload.(RenderEvent[string])
		if !ok {
			t.Fatalf("%s: payload type = %T, want RenderEvent[string]", step.name, call.Payload)
		}
		if ev.ColdChanged != step.wantColdChanged {
			t.Errorf("%s: ColdChanged = %v, want %v", step.name, ev.ColdChanged, step.wantColdChanged)
		}
		assertIDs(t, step.name+": event hot", sourceIDs(ev.Hot), step.wantHot...)
		assertIDs(t, step.name+": event cold", sourceIDs(ev.Cold), step.wantCold...)
	}
}

func TestStore_RenderAfterDelete(t *testing.T) {
	s, _ := newTestStore(t)
	addShapes(t, s, "a", "b")
	s.Render()

	s.FeatureChanged("b")
	s.Render()
	s.Delete("a")
	if !s.IsDirty() {
		t.Fatal("IsDirty() = false after Delete, want true")
	}

	s.Render()

	src := s.Sources()
	assertIDs(t, "hot", sourceIDs(src.Hot))
	assertIDs(t, "cold", sourceIDs(src.Cold), "b")
}

func TestStore_SourcesIsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	addShapes(t, s, "a")
	s.SetDirty()
	s.Render()

	src := s.Sources()
	src.Cold[0] = nil

	if got := s.Sources().Cold[0]; got == nil {
		t.Error("Sources() returned the internal slice")
	}
}
