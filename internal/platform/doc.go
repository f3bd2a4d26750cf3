// Package platform drives the deployment platform CLI: maintenance mode
// toggling, remote command execution, and application restarts, always against
// an explicitly supplied application identifier.
package platform
