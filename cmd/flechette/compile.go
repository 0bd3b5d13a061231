// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flechette-insolente/flechette/internal/compiler"
	"github.com/flechette-insolente/flechette/internal/config"
	"github.com/flechette-insolente/flechette/internal/watch"
	"github.com/flechette-insolente/flechette/pkg/arguments"
)

// compileFlags binds the generated compile flags of one command instance.
type compileFlags struct {
	options   []arguments.CLIParameter
	choices   map[string]*choiceValue
	pathLists map[string]*pathListValue
	dryRun    bool
	watch     bool
}

// newCompileCommand creates the `flechette compile` command. Its positional
// arguments and flags are generated from the parameter declarations.
func newCompileCommand(app *App) *cobra.Command {
	reg := arguments.Default()
	positional, err := reg.CLIArguments(coercers())
	if err != nil {
		panic(fmt.Sprintf("compile arguments: %v", err))
	}
	options, err := reg.CLIOptions(coercers())
	if err != nil {
		panic(fmt.Sprintf("compile options: %v", err))
	}

	flags := &compileFlags{
		options:   options,
		choices:   map[string]*choiceValue{},
		pathLists: map[string]*pathListValue{},
	}

	required := 0
	usage := []string{"compile"}
	for _, p := range positional {
		if p.Spec.Required {
			required++
			usage = append(usage, "<"+p.Spec.Name+">")
		} else {
			usage = append(usage, "["+p.Spec.Name+"]")
		}
	}

	cmd := &cobra.Command{
		Use:   strings.Join(usage, " "),
		Short: "Compile Sass sources to CSS with dart-sass",
		Long: `Compile Sass sources to CSS with the dart-sass executable.

Options not given on the command line fall back to the 'compile' section
of the configuration. Load paths from the command line are searched after
the configured ones.`,
		Example: `  flechette compile styles/main.scss dist/main.css
  flechette compile styles/ dist/ --style compressed --load-path vendor/scss
  flechette compile main.scss --dry-run
  flechette compile styles/ dist/ --watch`,
		Args: cobra.RangeArgs(required, len(positional)),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) >= len(positional) {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			if typ, ok := positional[len(args)].Type.(pathType); ok && typ.dirsOnly() {
				return nil, cobra.ShellCompDirectiveFilterDirs
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withSession(cmd, func(ctx context.Context, s *session) error {
				return runCompile(ctx, cmd, app, s, flags, args)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the dart-sass command line instead of running it")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "recompile whenever a Sass file under the source or a load path changes")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "watch")

	return cmd
}

// register adds one flag per option declaration, two for toggles.
func (f *compileFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	for _, opt := range f.options {
		spec := opt.Spec
		switch spec.Kind {
		case arguments.KindChoice:
			v, ok := opt.Type.(*choiceValue)
			if !ok {
				panic(fmt.Sprintf("option %q: unexpected CLI type %T", spec.Name, opt.Type))
			}
			f.choices[spec.Name] = v
			name := flagName(spec.Tokens[0])
			fs.Var(v, name, fmt.Sprintf("%s One of: %s.", spec.Help, strings.Join(spec.Choices, ", ")))
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(spec.Choices, cobra.ShellCompDirectiveNoFileComp))
		case arguments.KindMultiPath, arguments.KindPath:
			typ, ok := opt.Type.(pathType)
			if !ok {
				panic(fmt.Sprintf("option %q: unexpected CLI type %T", spec.Name, opt.Type))
			}
			v := &pathListValue{typ: typ}
			f.pathLists[spec.Name] = v
			name := flagName(spec.Tokens[0])
			fs.Var(v, name, spec.Help)
			if typ.dirsOnly() {
				_ = cmd.MarkFlagDirname(name)
			}
		case arguments.KindToggle:
			on, off := flagName(spec.Tokens[0]), flagName(spec.Tokens[1])
			fs.Bool(on, false, spec.Help)
			fs.Bool(off, false, "Opposite of --"+on+".")
			cmd.MarkFlagsMutuallyExclusive(on, off)
		}
	}
}

// params merges the flags given on the command line over the compile
// defaults of cfg.
func (f *compileFlags) params(cmd *cobra.Command, cfg *config.Config, args []string) []arguments.Param {
	fs := cmd.Flags()

	var extraLoadPaths []string
	if v, ok := f.pathLists[arguments.LoadPathsName]; ok {
		extraLoadPaths = v.GetSlice()
	}
	params := cfg.CompileParams(extraLoadPaths...)

	for _, opt := range f.options {
		spec := opt.Spec
		switch spec.Kind {
		case arguments.KindChoice:
			if fs.Changed(flagName(spec.Tokens[0])) {
				params = setParam(params, arguments.P(spec.Name, f.choices[spec.Name].String()))
			}
		case arguments.KindMultiPath, arguments.KindPath:
			if spec.Name == arguments.LoadPathsName || !fs.Changed(flagName(spec.Tokens[0])) {
				continue
			}
			values := f.pathLists[spec.Name].GetSlice()
			if spec.Kind == arguments.KindPath {
				params = setParam(params, arguments.P(spec.Name, values[len(values)-1]))
			} else {
				params = setParam(params, arguments.P(spec.Name, values))
			}
		case arguments.KindToggle:
			switch {
			case fs.Changed(flagName(spec.Tokens[0])):
				params = setParam(params, arguments.P(spec.Name, true))
			case fs.Changed(flagName(spec.Tokens[1])):
				params = setParam(params, arguments.P(spec.Name, false))
			}
		}
	}

	if len(args) > 1 {
		params = append(params, arguments.Destination(args[1]))
	}
	return params
}

// setParam replaces the param with the same name, or appends p.
func setParam(params []arguments.Param, p arguments.Param) []arguments.Param {
	for i := range params {
		if params[i].Name == p.Name {
			params[i] = p
			return params
		}
	}
	return append(params, p)
}

func flagName(token string) string { return strings.TrimPrefix(token, "--") }

func runCompile(ctx context.Context, cmd *cobra.Command, app *App, s *session, flags *compileFlags, args []string) error {
	logger := log.FromContext(ctx)
	source := args[0]
	params := flags.params(cmd, s.cfg, args)
	for _, p := range params {
		logger.Debug("compile parameter", "name", p.Name, "value", p.Value)
	}

	comp, err := app.compiler(s)
	if err != nil {
		return app.fail(cmd, err)
	}

	if flags.dryRun {
		set, err := comp.Plan(source, params...)
		if err != nil {
			return app.fail(cmd, err)
		}
		line, err := arguments.ShellJoin(append([]string{s.cfg.ExecutablePath(s.build)}, set.Tokens()...))
		if err != nil {
			return app.fail(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		return nil
	}

	if flags.watch {
		return runWatch(ctx, cmd, app, comp, source, params)
	}

	output, err := comp.Compile(ctx, source, params...)
	if err != nil {
		logger.Error("compilation failed", "source", source, "error", err)
		return app.fail(cmd, err)
	}
	if output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	}
	return nil
}

// runWatch compiles once, then again on every change under the source and
// the load paths, until ctx is cancelled. Compile failures are rendered and
// watching goes on; invalid arguments stop it before the first run.
func runWatch(ctx context.Context, cmd *cobra.Command, app *App, comp *compiler.Compiler, source string, params []arguments.Param) error {
	logger := log.FromContext(ctx)

	if _, err := comp.Plan(source, params...); err != nil {
		return app.fail(cmd, err)
	}

	compileOnce := func(ctx context.Context) {
		output, err := comp.Compile(ctx, source, params...)
		if err != nil {
			renderFailure(cmd.ErrOrStderr(), err, app.verbose)
			return
		}
		if output != "" {
			fmt.Fprintln(cmd.OutOrStdout(), output)
		}
		logger.Info("compiled", "source", source)
	}

	roots := append([]string{source}, paramStrings(params, arguments.LoadPathsName)...)
	w, err := watch.New(watch.Config{
		Roots:  roots,
		Logger: logger,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Info("change detected, recompiling", "files", len(changed))
			compileOnce(ctx)
			return nil
		},
	})
	if err != nil {
		return app.fail(cmd, err)
	}

	compileOnce(ctx)
	logger.Info("watching for changes", "dirs", strings.Join(w.Roots(), ", "))
	if err := w.Run(ctx); err != nil {
		return app.fail(cmd, err)
	}
	return nil
}

// paramStrings returns the string list value of the named param.
func paramStrings(params []arguments.Param, name string) []string {
	for _, p := range params {
		if p.Name != name {
			continue
		}
		if values, ok := p.Value.([]string); ok {
			return values
		}
	}
	return nil
}
