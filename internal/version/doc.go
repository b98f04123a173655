// Package version reports which insight build is running. Values come from
// -ldflags at release time and fall back to the module and VCS data embedded
// by the Go toolchain.
package version
