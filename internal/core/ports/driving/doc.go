// Package driving defines the inbound ports of the core: the service
// interfaces consumed by the CLI and the interactive shell.
package driving
