// Package domain contains the core business entities for Success.
// These entities represent the fundamental concepts of the goal and
// session tracker and are independent of any external frameworks or
// infrastructure.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyGoalName   = errors.New("goal name cannot be empty")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrTimerActive     = errors.New("a timer is already active")
)

// Goal is a named, user-defined unit of work or reward. A goal may
// carry a quantity unit (e.g. "pages") collected after each session
// and a list of helper shell commands launched while a timer runs.
type Goal struct {
	ID           string
	Name         string
	IsReward     bool
	Commands     []string
	QuantityUnit string
	CreatedAt    time.Time
}

// NewGoal creates a new goal with the given name.
func NewGoal(name string, isReward bool, commands []string, quantityUnit string) (*Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGoalName
	}

	return &Goal{
		ID:           generateID(),
		Name:         name,
		IsReward:     isReward,
		Commands:     commands,
		QuantityUnit: strings.TrimSpace(quantityUnit),
		CreatedAt:    time.Now(),
	}, nil
}

// TracksQuantity reports whether sessions for this goal collect a
// quantity value.
func (g *Goal) TracksQuantity() bool {
	return g.QuantityUnit != ""
}

// ParseCommands splits the free-text command field of the goal form
// into individual shell commands. Separators are ';' and newlines;
// blank entries are dropped.
func ParseCommands(input string) []string {
	var commands []string
	for _, part := range strings.FieldsFunc(input, func(r rune) bool {
		return r == ';' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			commands = append(commands, part)
		}
	}
	return commands
}
