// Package publish writes the results of a run where the workflow picks them up:
// the message file, the step output file and the step summary file.
package publish

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Targets names the files a run writes to.
type Targets struct {
	// MessageFile receives the announcement and is overwritten on every run.
	MessageFile string
	// OutputFile is the GITHUB_OUTPUT file; the announcement is appended under OutputKey.
	OutputFile string
	OutputKey  string
	// SummaryFile is the GITHUB_STEP_SUMMARY file; the run summary is appended to it.
	SummaryFile string
}

// Publisher writes announcements and summaries to their Targets.
type Publisher struct {
	targets      Targets
	newDelimiter func() string
	logger       *logrus.Logger
}

// NewPublisher creates a Publisher for the given targets.
func NewPublisher(targets Targets, logger *logrus.Logger) *Publisher {
	return &Publisher{
		targets:      targets,
		newDelimiter: func() string { return "ghadelimiter_" + uuid.NewString() },
		logger:       logger,
	}
}

// Publish writes the announcement to the message file and the output file and
// appends the summary to the summary file. The first failure is returned.
func (p *Publisher) Publish(announcement, summary string) error {
	if err := os.WriteFile(p.targets.MessageFile, []byte(announcement), 0o644); err != nil {
		return fmt.Errorf("publish: write message file: %w", err)
	}
	p.logger.WithField("path", p.targets.MessageFile).Info("Wrote message file")

	output := OutputEntry(p.targets.OutputKey, announcement, p.newDelimiter)
	if err := appendFile(p.targets.OutputFile, output); err != nil {
		return fmt.Errorf("publish: append step output: %w", err)
	}
	p.logger.WithFields(logrus.Fields{"path": p.targets.OutputFile, "key": p.targets.OutputKey}).Info("Appended step output")

	if err := appendFile(p.targets.SummaryFile, summary); err != nil {
		return fmt.Errorf("publish: append step summary: %w", err)
	}
	p.logger.WithField("path", p.targets.SummaryFile).Info("Appended step summary")
	return nil
}

// OutputEntry formats a multi-line step output as key<<DELIM / value / DELIM.
// Delimiters are drawn from newDelimiter until one does not occur in value.
func OutputEntry(key, value string, newDelimiter func() string) string {
	delim := newDelimiter()
	for strings.Contains(value, delim) {
		delim = newDelimiter()
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delim, value, delim)
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
