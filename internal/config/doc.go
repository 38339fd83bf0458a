// Package config provides the tool's two configuration layers.
//
// Option settings (options.go) are typed values persisted in the host's
// option-var store. They are read live at every use - never cached - so a
// user changing a setting mid-session takes effect at the next read. A stored
// value that fails to deserialize is reported through a host warning, reset
// to its default, and the default returned.
//
// LayeredConfig (layered.go) merges per-package JSON and TOML configuration
// files from an ordered list of directories, highest priority last-applied.
package config
