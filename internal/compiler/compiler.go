// SPDX-License-Identifier: MPL-2.0

// Package compiler drives the dart-sass executable: it turns caller values
// into a validated command line and runs it through an executor.
package compiler

import (
	"context"
	"fmt"

	"github.com/flechette-insolente/flechette/internal/executor"
	"github.com/flechette-insolente/flechette/pkg/arguments"

	"github.com/charmbracelet/log"
)

const versionFlag = "--version"

type (
	// Runner runs the executable with the given arguments.
	// *executor.Executor satisfies it.
	Runner interface {
		Run(ctx context.Context, args ...string) (*executor.Result, error)
	}

	// Compiler is the facade other packages call to compile stylesheets.
	Compiler struct {
		runner   Runner
		registry *arguments.Registry
	}

	// Option configures a Compiler.
	Option func(*Compiler)
)

// WithRegistry replaces the default parameter registry.
func WithRegistry(r *arguments.Registry) Option {
	return func(c *Compiler) {
		if r != nil {
			c.registry = r
		}
	}
}

// New creates a Compiler running commands through runner.
func New(runner Runner, opts ...Option) *Compiler {
	c := &Compiler{
		runner:   runner,
		registry: arguments.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the parameter registry used to build command lines.
func (c *Compiler) Registry() *arguments.Registry { return c.registry }

// Version runs the executable with --version and returns its trimmed output.
func (c *Compiler) Version(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, versionFlag)
	if err != nil {
		return "", err
	}
	return res.Trimmed(), nil
}

// Plan validates source and params and returns the command line Compile
// would run, without running it.
func (c *Compiler) Plan(source string, params ...arguments.Param) (*arguments.ArgumentSet, error) {
	set, err := c.registry.Build(source, params...)
	if err != nil {
		return nil, fmt.Errorf("invalid compile arguments: %w", err)
	}
	return set, nil
}

// Compile validates source and params, runs the executable once and
// returns its trimmed output. Invalid arguments never start a process.
func (c *Compiler) Compile(ctx context.Context, source string, params ...arguments.Param) (string, error) {
	set, err := c.Plan(source, params...)
	if err != nil {
		return "", err
	}

	log.FromContext(ctx).Debug("compiling", "source", set.Source(), "destination", set.Destination(), "args", set.String())

	res, err := c.runner.Run(ctx, set.Tokens()...)
	if err != nil {
		return "", err
	}
	return res.Trimmed(), nil
}
