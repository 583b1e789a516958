// Package binder maps tagged struct fields onto paths of a YAML store.
//
// A field takes part when it carries an ezcfg tag, or, with
// options.ImplicitEmbedded, when it is promoted from an embedded struct:
//
//	type Settings struct {
//		Base
//		Port int      `ezcfg:"server.port" comment:"TCP port"`
//		Tags []string `ezcfg:"" kind:"list"`
//		Temp string   `ezcfg:"-"`
//	}
//
// Load pulls stored values into the fields and writes the runtime value of
// every field the store lacks. Save writes only fields whose value differs
// from the store. Either pass persists the backing file at most once.
// Per-field problems never abort a pass; they come back as diagnostics.
package binder
