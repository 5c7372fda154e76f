package vcs

import (
	"bufio"
	"strings"
)

// parsePorcelain parses `git worktree list --porcelain` output. Entries
// are stanzas separated by blank lines:
//
//	worktree /path/to/tree
//	HEAD abcdef...
//	branch refs/heads/worktree/feat-a
//
// A detached entry carries "detached" instead of a branch line.
func parsePorcelain(output string) []Worktree {
	var (
		out     []Worktree
		current *Worktree
	)
	flush := func() {
		if current != nil && current.Path != "" {
			out = append(out, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		if rest, ok := strings.CutPrefix(line, "worktree "); ok {
			flush()
			current = &Worktree{Path: rest}
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "branch "):
			branch := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(branch, "refs/heads/")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case line == "detached":
			current.Detached = true
		}
	}
	flush()
	return out
}
