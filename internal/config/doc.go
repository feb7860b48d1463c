// SPDX-License-Identifier: MPL-2.0

// Package config handles the maxcli application configuration.
//
// Configuration lives in config.cue under the platform config directory and
// is validated against an embedded CUE schema before being merged into Viper
// on top of the compiled-in defaults. This file holds user preferences (UI,
// dependency-check behavior, Coolify endpoint); the persisted module
// enable/disable state is a separate document owned by internal/modstate.
package config
