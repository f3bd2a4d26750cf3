// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines abstractions used throughout shipit
// to run git, the deployment platform CLI, the translation push client, and
// the security scanner in a testable manner.
package execshell
