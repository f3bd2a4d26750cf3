// Package scan runs the static security scanner as a best-effort advisory
// step; its absence or findings never abort the deployment pipeline.
package scan
