package events

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseDependencyTree reads the text output of `mvn dependency:tree`:
//
//	[INFO] com.example:app:jar:1.0
//	[INFO] +- org.lib:core:jar:2.3:compile
//	[INFO] |  \- org.lib:util:jar:1.1:compile
//	[INFO] \- junit:junit:jar:4.12:test
//
// Each tree produces a ProjectResolved event for its root line followed by a
// DependencyResolution event holding every node below the root. Multi-module
// output yields one pair per module. Lines outside a tree are ignored.
func ParseDependencyTree(r io.Reader) ([]Event, error) {
	var (
		evs   []Event
		root  *Node
		stack []*Node // stack[d] is the last node seen at depth d
	)
	flush := func() {
		if root == nil {
			return
		}
		evs = append(evs,
			ProjectResolved{
				GroupID:    root.GroupID,
				ArtifactID: root.ArtifactID,
				Version:    root.Version,
				Name:       root.ArtifactID,
			},
			DependencyResolution{Edges: root.Edges(), Root: root},
		)
		root, stack = nil, nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(reLogLevel.ReplaceAllString(sc.Text(), ""), " \t\r")

		if m := reTreeLine.FindStringSubmatch(line); m != nil {
			if root == nil {
				return nil, fmt.Errorf("dependency tree line %d: dependency before project line", lineNo)
			}
			depth := len(m[1])/3 + 1
			if depth > len(stack) {
				return nil, fmt.Errorf("dependency tree line %d: unexpected indentation", lineNo)
			}
			node, err := parseDependency(stripAnnotation(m[2]))
			if err != nil {
				return nil, fmt.Errorf("dependency tree line %d: %w", lineNo, err)
			}
			// A loser of conflict resolution, or a cycle back-reference, is not
			// part of the resolved graph. It still takes its stack slot so any
			// entries nested below it are dropped with it.
			if !isUnresolved(m[2]) {
				parent := stack[depth-1]
				parent.Deps = append(parent.Deps, node)
			}
			stack = append(stack[:depth], node)
			continue
		}

		if reProjectLine.MatchString(line) {
			flush()
			node, err := parseProject(line)
			if err != nil {
				return nil, fmt.Errorf("dependency tree line %d: %w", lineNo, err)
			}
			root = node
			stack = []*Node{node}
			continue
		}

		// Anything else ends the current tree.
		flush()
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dependency tree: %w", err)
	}
	flush()
	return evs, nil
}

// reLogLevel matches the Maven log level prefix, e.g. "[INFO] ".
var reLogLevel = regexp.MustCompile(`^\[[A-Z]+\] ?`)

// reTreeLine matches "|  +- coords" style lines: group 1 is the indentation,
// group 2 the coordinate and any annotation.
var reTreeLine = regexp.MustCompile(`^((?:[| ]  )*)[+\\]- (\S.*)$`)

// reProjectLine matches a bare g:a:packaging[:classifier]:version line.
var reProjectLine = regexp.MustCompile(`^[\w.\-]+:[\w.\-]+(?::[\w.\-]+){2,3}$`)

// isUnresolved reports whether a verbose-mode entry was omitted by conflict
// resolution or as a cycle. "omitted for duplicate" entries are kept.
func isUnresolved(entry string) bool {
	if !strings.HasPrefix(entry, "(") {
		return false
	}
	return strings.Contains(entry, "omitted for conflict") || strings.Contains(entry, "omitted for cycle")
}

// stripAnnotation drops verbose-mode decorations such as
// " (version managed from 1.0)" or "(g:a:jar:1.0:compile - omitted for duplicate)".
func stripAnnotation(s string) string {
	s = strings.TrimPrefix(s, "(")
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// parseProject parses g:a:packaging:version or g:a:packaging:classifier:version.
func parseProject(s string) (*Node, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 4:
		return &Node{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2], Version: parts[3]}, nil
	case 5:
		return &Node{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2], Classifier: parts[3], Version: parts[4]}, nil
	default:
		return nil, fmt.Errorf("malformed project coordinate %q", s)
	}
}

// parseDependency parses g:a:ext:version:scope or g:a:ext:classifier:version:scope.
func parseDependency(s string) (*Node, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 5:
		return &Node{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2], Version: parts[3], Scope: parts[4]}, nil
	case 6:
		return &Node{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2], Classifier: parts[3], Version: parts[4], Scope: parts[5]}, nil
	default:
		return nil, fmt.Errorf("malformed dependency coordinate %q", s)
	}
}
