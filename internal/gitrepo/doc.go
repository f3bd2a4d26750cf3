// Package gitrepo wraps git invocations with typed repository operations used
// by the deployment pipeline: remote inspection, upstream synchronization,
// undeployed commit listing, per-path diffing, and pushes.
package gitrepo
