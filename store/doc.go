// Package store provides the hierarchical key-value configuration store
// the binder reads from and writes to.
//
// A store is a YAML document kept as a yaml.Node tree, so key order and
// comments survive a load/save round trip. Values are addressed by dotted
// paths:
//
//	server:
//	  # Port the lobby listens on
//	  port: 25565
//
// is reached with "server.port". Writes create intermediate sections on
// demand; writing nil removes the key.
package store
