// Package registry defines the provider-agnostic resource registry used by
// every pipeline component to talk to the remote control plane.
//
// The registry exposes four operations: Find, Create, Upsert and WaitUntil.
// Find returns an explicit absent value instead of an error when a resource
// does not exist; Create is find-first and returns the existing resource
// unchanged when one is already present; Upsert overwrites by name. All
// write operations are safe to call twice with identical arguments.
//
// Resource specs are typed structs per kind (see specs.go); the provider
// implementation serializes them at the boundary. The concrete AWS-backed
// implementation lives in internal/platform/awscp.
package registry
