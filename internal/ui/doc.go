// Package ui adapts execshell command lifecycle events into human-readable
// console logging for interactive sessions.
package ui
