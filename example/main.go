package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jpalmerr/drawstore"
	"github.com/jpalmerr/drawstore/hub"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// the hub plays the map: it receives every event the store fires
	h, err := hub.New()
	if err != nil {
		slog.Error("failed to create hub", "error", err)
		os.Exit(1)
	}
	events := h.Subscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range events {
			fmt.Printf("  event %-13s %v\n", ev.Name, ev.Payload)
		}
	}()

	store, err := drawstore.New[string](&drawstore.Context{Map: h}, drawstore.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create store", "error", err)
		os.Exit(1)
	}

	depot, _ := drawstore.NewShape(drawstore.KindPoint, drawstore.WithID("depot"),
		drawstore.WithProperties("name", "North depot"))
	route, _ := drawstore.NewShape(drawstore.KindLine, drawstore.WithID("route"))
	zone, _ := drawstore.NewShape(drawstore.KindPolygon, drawstore.WithID("zone"))

	for _, sh := range []*drawstore.Shape{depot, route, zone} {
		store.Add(sh)
	}
	store.SetDirty()
	store.Render()

	store.Select("depot", "route")
	fmt.Printf("selected:  %v\n", store.GetSelectedIDs())
	fmt.Printf("flush:     %+v\n", store.FlushSelected())

	depot.SetProperty("name", "South depot")
	store.FeatureChanged(depot.ID())
	store.Render()

	store.SetSelected("zone")
	fmt.Printf("flush:     %+v\n", store.FlushSelected())

	store.Delete("route", "zone")
	fmt.Printf("remaining: %v (dirty=%t)\n", store.GetAllIDs(), store.IsDirty())
	store.Render()

	h.Unsubscribe(events)
	wg.Wait()
}
