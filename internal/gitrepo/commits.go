package gitrepo

import (
	"fmt"
	"strings"
)

const (
	commitLogFieldSeparatorConstant = "\x1f"
	commitLogLineSeparatorConstant  = "\n"
	commitLogFieldCountConstant     = 4
	commitDisplayTemplateConstant   = "%s | %s: %s (%s)"
)

// DeployableCommit describes a commit awaiting deployment.
type DeployableCommit struct {
	AbbreviatedHash string
	RelativeTime    string
	Subject         string
	Author          string
}

// Format renders the commit as a single preview line.
func (commit DeployableCommit) Format() string {
	return fmt.Sprintf(commitDisplayTemplateConstant, commit.AbbreviatedHash, commit.RelativeTime, commit.Subject, commit.Author)
}

// ParseCommitLog converts unit-separated git log output into deployable commits, preserving order.
func ParseCommitLog(logOutput string) []DeployableCommit {
	commits := make([]DeployableCommit, 0)
	for _, logLine := range strings.Split(logOutput, commitLogLineSeparatorConstant) {
		trimmedLine := strings.TrimRight(logLine, "\r")
		if len(strings.TrimSpace(trimmedLine)) == 0 {
			continue
		}

		lineFields := strings.SplitN(trimmedLine, commitLogFieldSeparatorConstant, commitLogFieldCountConstant)
		if len(lineFields) < commitLogFieldCountConstant {
			continue
		}

		commits = append(commits, DeployableCommit{
			AbbreviatedHash: strings.TrimSpace(lineFields[0]),
			RelativeTime:    strings.TrimSpace(lineFields[1]),
			Subject:         strings.TrimSpace(lineFields[2]),
			Author:          strings.TrimSpace(lineFields[3]),
		})
	}
	return commits
}
