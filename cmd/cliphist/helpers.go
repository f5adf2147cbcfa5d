package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/MegoCs/clipboard-history/internal/clip"
	"github.com/MegoCs/clipboard-history/internal/history"
	"github.com/MegoCs/clipboard-history/internal/service"
	"github.com/MegoCs/clipboard-history/internal/storage"
)

// openStorage resolves the history file location from config.
func openStorage(v *viper.Viper) (*storage.Storage, error) {
	if path := v.GetString("data-file"); path != "" {
		return storage.NewWithFile(path)
	}
	return storage.New()
}

// openStore loads the persisted history into a bounded store.
func openStore(v *viper.Viper) (*history.Store, *storage.Storage, error) {
	store, err := openStorage(v)
	if err != nil {
		return nil, nil, err
	}
	hs := history.New(history.Config{
		MaxEntries:      v.GetInt("max-history"),
		MaxContentBytes: v.GetInt("max-content-size"),
	}, store)
	entries, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load history: %w", err)
	}
	hs.Load(entries)
	return hs, store, nil
}

// buildService wires the full facade: persistence, bounded store, system
// clipboard backend, and monitor.
func buildService(v *viper.Viper, pollInterval time.Duration) (*service.Service, error) {
	hs, store, err := openStore(v)
	if err != nil {
		return nil, err
	}
	backend := clip.New()
	return service.New(hs, backend,
		service.WithPollInterval(pollInterval),
		service.WithStoragePath(store.Path()),
	), nil
}
