// Package parser turns the contents of task files into domain tasks.
//
// Every parser is a pure function of its input bytes. An otherwise valid file
// without tasks yields an empty slice and no error.
package parser

import (
	"bufio"
	"bytes"
	"strings"

	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Func parses the raw contents of one task file.
type Func func(data []byte) ([]domain.Task, error)

var parsers = map[domain.RunnerKind]Func{
	domain.RunnerMake:      ParseMakefile,
	domain.RunnerJust:      ParseJustfile,
	domain.RunnerTask:      ParseTaskfile,
	domain.RunnerCargoMake: ParseCargoMake,
	domain.RunnerMise:      ParseMise,
	domain.RunnerMask:      ParseMaskfile,
}

// Parse dispatches data to the parser registered for kind.
func Parse(kind domain.RunnerKind, data []byte) ([]domain.Task, error) {
	fn, ok := parsers[kind]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownRunner, "no parser for runner"), "runner", kind.String())
	}
	return fn(data)
}

// parseError wraps a format-specific failure so that it still matches domain.ErrParseFailed.
func parseError(msg string, cause error) error {
	err := zerr.Wrap(domain.ErrParseFailed, msg)
	if cause != nil {
		err = zerr.With(err, "reason", cause.Error())
	}
	return err
}

// splitLines returns the lines of data without terminators.
func splitLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines
}

// commentText strips the leading hash marks and whitespace from a comment line.
func commentText(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
}
