// Package cli turns a language provider and a pipeline into a complete
// formatter command-line tool: init/check/format/watch subcommands, YAML
// config loading, recursive file collection, and a bbolt-backed skip cache.
// The formatting engine itself stays ignorant of all of this.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/corey/fmtkit/engine"
	"github.com/corey/fmtkit/parser"
	"github.com/corey/fmtkit/pipeline"
)

// Builder assembles a formatter binary from its parts. Chain the With*
// methods and finish with Execute:
//
//	cli.NewBuilder[myfmt.Config]("myfmt", myfmt.Language{}).
//		WithPipeline(myfmt.Pipeline()).
//		WithDefaultConfig(myfmt.DefaultConfig()).
//		Execute()
type Builder[C any] struct {
	name          string
	version       string
	provider      parser.LanguageProvider
	pipeline      *pipeline.Pipeline[C]
	defaultConfig C
}

// NewBuilder creates a builder for a formatter named name, parsing with the
// given provider. The pipeline starts empty and the default config is the
// zero value of C.
func NewBuilder[C any](name string, provider parser.LanguageProvider) *Builder[C] {
	return &Builder[C]{
		name:     name,
		provider: provider,
		pipeline: pipeline.New[C](),
	}
}

// AddPass appends a pass to the builder's pipeline.
func (b *Builder[C]) AddPass(pass pipeline.Pass[C]) *Builder[C] {
	b.pipeline.AddPass(pass)
	return b
}

// WithPipeline replaces the builder's pipeline.
func (b *Builder[C]) WithPipeline(p *pipeline.Pipeline[C]) *Builder[C] {
	b.pipeline = p
	return b
}

// WithVersion sets the version string reported by --version.
func (b *Builder[C]) WithVersion(version string) *Builder[C] {
	b.version = version
	return b
}

// WithDefaultConfig sets the config used when no config file exists, and
// the content written by the init subcommand.
func (b *Builder[C]) WithDefaultConfig(config C) *Builder[C] {
	b.defaultConfig = config
	return b
}

// defaultConfigFile is the conventional config filename, <name>.yml.
func (b *Builder[C]) defaultConfigFile() string {
	return b.name + ".yml"
}

// Command builds the cobra root command with init, check, format, and watch
// subcommands.
func (b *Builder[C]) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           b.name,
		Short:         "Format source code with " + b.name,
		Version:       b.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(b.initCommand())
	root.AddCommand(b.checkCommand())
	root.AddCommand(b.formatCommand())
	root.AddCommand(b.watchCommand())
	return root
}

// Execute runs the command line. Errors print to stderr and the process
// exits non-zero.
func (b *Builder[C]) Execute() {
	if err := b.Command().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func (b *Builder[C]) initCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := WriteDefaultConfig(configPath, b.defaultConfig); err != nil {
				return err
			}
			fmt.Printf("%s wrote %s\n", color.GreenString("✓"), configPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "file", "f", b.defaultConfigFile(), "config file to create")
	return cmd
}

func (b *Builder[C]) checkCommand() *cobra.Command {
	var configPath, cachePath string
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files that are not formatted, without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := b.openSession(configPath, cachePath, args)
			if err != nil {
				return err
			}
			defer session.close()

			outcomes := session.eng.Check(session.config, session.codes, session.files)
			reportDiagnostics(outcomes)

			changed := 0
			for _, oc := range outcomes {
				if !oc.Changed {
					session.markClean(oc.Path)
					continue
				}
				changed++
				fmt.Printf("%s %s\n", color.YellowString("✗"), oc.Path)
				if showDiff {
					fmt.Print(oc.Diff)
				}
			}

			if changed == 0 {
				fmt.Printf("%s %d file(s) formatted correctly\n", color.GreenString("✓"), len(outcomes)+session.skipped)
				return nil
			}
			return fmt.Errorf("%d file(s) need formatting", changed)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", b.defaultConfigFile(), "config file")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff per unformatted file")
	cmd.Flags().StringVar(&cachePath, "cache", "", "skip files unchanged since this cache last saw them clean")
	return cmd
}

func (b *Builder[C]) formatCommand() *cobra.Command {
	var configPath, cachePath string
	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format files in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := b.openSession(configPath, cachePath, args)
			if err != nil {
				return err
			}
			defer session.close()

			outcomes, err := session.eng.FormatAndWrite(session.config, session.codes, session.files)
			if err != nil {
				return err
			}
			reportDiagnostics(outcomes)

			changed := 0
			for _, oc := range outcomes {
				if oc.Changed {
					changed++
					fmt.Printf("%s %s\n", color.GreenString("✓"), oc.Path)
				}
				session.markCleanOnDisk(oc.Path)
			}

			if changed == 0 {
				fmt.Printf("%s no files needed formatting\n", color.GreenString("✓"))
			} else {
				fmt.Printf("%s formatted %d file(s)\n", color.GreenString("✓"), changed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", b.defaultConfigFile(), "config file")
	cmd.Flags().StringVar(&cachePath, "cache", "", "skip files unchanged since this cache last saw them clean")
	return cmd
}

func (b *Builder[C]) watchCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Reformat supported files as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(configPath, b.defaultConfig)
			if err != nil {
				return err
			}
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}

			eng := engine.New(b.provider, b.pipeline)
			defer eng.Close()

			watcher, err := NewWatcher(b.provider.Extensions())
			if err != nil {
				return err
			}
			defer watcher.Close()

			fmt.Printf("%s watching %v\n", color.CyanString("…"), roots)
			return watcher.Watch(roots, func(path string) {
				data, err := os.ReadFile(path)
				if err != nil {
					return
				}
				outcomes, err := eng.FormatAndWrite(config, []string{string(data)}, []string{path})
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
					return
				}
				if outcomes[0].Changed {
					fmt.Printf("%s %s\n", color.GreenString("✓"), path)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", b.defaultConfigFile(), "config file")
	return cmd
}

// reportDiagnostics prints every diagnostic the engine collected, colored by
// severity.
func reportDiagnostics(outcomes []engine.Outcome) {
	for _, oc := range outcomes {
		for _, d := range oc.Diagnostics {
			label := d.Severity.String()
			switch d.Severity {
			case pipeline.SeverityError:
				label = color.RedString(label)
			case pipeline.SeverityWarning:
				label = color.YellowString(label)
			default:
				label = color.CyanString(label)
			}
			loc := oc.Path
			if loc == "" {
				loc = "<buffer>"
			}
			if d.Range != nil {
				loc = fmt.Sprintf("%s:%s", loc, d.Range)
			}
			fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", label, d.Source, loc, d.Message)
		}
	}
}
