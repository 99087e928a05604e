package config

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch loads filename into a new Store and re-reads it whenever the file
// changes on disk, swapping the snapshot in place. A reload that fails to
// parse or validate is logged and discarded, so the last good snapshot
// keeps serving.
func Watch(filename string) (*Store, error) {
	cfg, err := LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	store := NewStore(cfg)

	v := viper.New()
	v.SetConfigFile(filename)
	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := LoadFromFile(e.Name)
		if err != nil {
			slog.Error("config reload rejected, keeping previous snapshot", "file", e.Name, "error", err)
			return
		}
		store.Swap(next)
		slog.Info("config reloaded", "file", e.Name, "op", e.Op.String())
	})
	v.WatchConfig()

	return store, nil
}
