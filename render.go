package drawstore

// Render rebuilds the hot and cold sources and clears the pending render state.
//
// A dirty store re-renders everything: every feature goes to the cold
// source and the hot source is emptied. Otherwise only the changed
// features that still exist become hot. Features that were hot in the
// previous render and did not change again cool down into the cold source,
// and the rest of the cold source is kept as it was.
//
// Render fires [EventRender] with the new sources, then clears the dirty
// flag and the changed ids.
func (s *Store[K]) Render() {
	var hotIDs, coldIDs []K

	if s.isDirty {
		coldIDs = s.features.Keys()
	} else {
		for _, id := range s.changed.Items() {
			if s.features.Has(id) {
				hotIDs = append(hotIDs, id)
			}
		}
		hot := toSet(hotIDs)
		for _, f := range s.sources.Hot {
			id := f.ID()
			if _, again := hot[id]; !again && s.features.Has(id) {
				coldIDs = append(coldIDs, id)
			}
		}
	}

	lastColdCount := len(s.sources.Cold)
	cold := []Feature[K]{}
	if !s.isDirty {
		hot, moved := toSet(hotIDs), toSet(coldIDs)
		for _, f := range s.sources.Cold {
			id := f.ID()
			_, isHot := hot[id]
			_, isMoved := moved[id]
			if !isHot && !isMoved && s.features.Has(id) {
				cold = append(cold, f)
			}
		}
	}
	coldChanged := lastColdCount != len(cold) || len(coldIDs) > 0

	hot := make([]Feature[K], 0, len(hotIDs))
	for _, id := range hotIDs {
		f, _ := s.features.Get(id)
		hot = append(hot, f)
	}
	for _, id := range coldIDs {
		f, _ := s.features.Get(id)
		cold = append(cold, f)
	}

	s.sources = Sources[K]{Hot: hot, Cold: cold}

	s.logger.Debug("store rendered",
		"hot", len(hot),
		"cold", len(cold),
		"cold_changed", coldChanged,
		"full", s.isDirty,
	)
	s.fire(EventRender, RenderEvent[K]{
		Hot:         append([]Feature[K]{}, hot...),
		Cold:        append([]Feature[K]{}, cold...),
		ColdChanged: coldChanged,
	})

	s.isDirty = false
	s.changed.Clear()
}

func toSet[K comparable](ids []K) map[K]struct{} {
	set := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
