// Package deploy implements the deployment pipeline: target validation,
// advisory security scanning, upstream synchronization, undeployed commit
// preview with operator confirmation, translation sync, pushes to upstream and
// the deployment remote, migrations inside a maintenance window, and restart.
package deploy
