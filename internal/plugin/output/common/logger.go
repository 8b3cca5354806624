// Package common provides shared utilities for output plugins.
package common

import "github.com/hashicorp/go-hclog"

// PluginLogger returns a sub-logger named after the plugin, or a null logger
// when the parent is nil so plugins can log unconditionally.
func PluginLogger(parent hclog.Logger, pluginName string) hclog.Logger {
	if parent == nil {
		return hclog.NewNullLogger()
	}
	return parent.Named(pluginName)
}
