// Command odbcenv inspects the ODBC driver manager: configured data sources,
// connection strings as odbcenv builds them, the error taxonomy, locale
// resolution and the exported constants.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/koustreak/odbcenv"
	"github.com/koustreak/odbcenv/internal/config"
	"github.com/koustreak/odbcenv/internal/connstr"
	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/locale"
	"github.com/koustreak/odbcenv/internal/odbc"
)

// CLI defines the command-line interface for odbcenv.
type CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"YAML configuration file" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error, disabled)"`
	LogFormat string `name:"log-format" help:"Log format (json, console)"`
	NoPooling bool   `name:"no-pooling" help:"Disable driver-manager connection pooling"`

	DataSources DataSourcesCmd `cmd:"" name:"datasources" help:"List data sources configured in the driver manager"`
	ConnStr     ConnStrCmd     `cmd:"" name:"connstr" help:"Build a connection string without connecting"`
	Taxonomy    TaxonomyCmd    `cmd:"" help:"Print the error class hierarchy"`
	Locale      LocaleCmd      `cmd:"" help:"Show the numeric characters for the host or a given locale"`
	Constants   ConstantsCmd   `cmd:"" help:"List exported ODBC constants"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

// settings merges the config file, ODBCENV_* variables and flags, in that
// order of increasing precedence.
func (c *CLI) settings() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}

	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}
	if c.NoPooling {
		cfg.Pooling = false
	}
	return cfg, cfg.Validate()
}

// DataSourcesCmd lists data sources.
type DataSourcesCmd struct{}

func (c *DataSourcesCmd) Run(ctx *kong.Context) error {
	sources, err := odbcenv.DataSources()
	if err != nil {
		return err
	}
	if sources.Len() == 0 {
		fmt.Fprintln(ctx.Stdout, "No data sources configured")
		return nil
	}
	for _, name := range sources.Names() {
		desc, _ := sources.Get(name)
		fmt.Fprintf(ctx.Stdout, "%s\t%s\n", name, desc)
	}
	return nil
}

// ConnStrCmd builds a connection string.
type ConnStrCmd struct {
	Base        string   `arg:"" optional:"" help:"Base connection string, e.g. DSN=sales"`
	Keywords    []string `name:"kw" short:"k" sep:"none" help:"Keyword argument as key=value (repeatable)" placeholder:"KEY=VALUE"`
	ShowSecrets bool     `name:"show-secrets" help:"Print password values instead of masking them"`
}

func (c *ConnStrCmd) Run(ctx *kong.Context) error {
	var positional []any
	if c.Base != "" {
		positional = append(positional, c.Base)
	}

	keywords := make([]connstr.Keyword, 0, len(c.Keywords))
	for _, raw := range c.Keywords {
		kw, err := connstr.ParseKeyword(raw)
		if err != nil {
			return err
		}
		keywords = append(keywords, kw)
	}

	req, err := odbcenv.BuildConnectionString(positional, keywords...)
	if err != nil {
		return err
	}

	s := req.Redacted()
	if c.ShowSecrets {
		s = req.ConnectionString
	}
	fmt.Fprintln(ctx.Stdout, s)
	fmt.Fprintf(ctx.Stdout, "autocommit: %t\n", req.Autocommit)
	fmt.Fprintf(ctx.Stdout, "timeout:    %s\n", req.LoginTimeout())
	return nil
}

// TaxonomyCmd prints the error classes as a tree.
type TaxonomyCmd struct {
	Docs bool `help:"Include each class's documentation"`
}

func (c *TaxonomyCmd) Run(ctx *kong.Context) error {
	classes := odbcenv.Classes()
	c.print(ctx.Stdout, classes, "", 0)
	return nil
}

func (c *TaxonomyCmd) print(w io.Writer, classes []*errs.Class, parent string, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, cl := range classes {
		if cl.Parent != parent {
			continue
		}
		fmt.Fprintf(w, "%s%s\n", indent, cl.Name)
		if c.Docs {
			fmt.Fprintf(w, "%s    %s\n", indent, cl.Doc)
		}
		c.print(w, classes, cl.Name, depth+1)
	}
}

// LocaleCmd shows resolved numeric characters.
type LocaleCmd struct {
	Tag     string   `help:"Resolve for this locale (BCP 47 or POSIX name) instead of the host" placeholder:"LOCALE"`
	Numbers []string `arg:"" optional:"" sep:"none" help:"Numbers to parse with the resolved characters"`
}

func (c *LocaleCmd) Run(ctx *kong.Context) error {
	state := odbcenv.Locale()
	if c.Tag != "" {
		tag, err := locale.ParseTag(c.Tag)
		if err != nil {
			return err
		}
		conv, err := locale.NewCLDRSource(tag).Conventions()
		if err != nil {
			return err
		}
		state = locale.Resolve(conv)
	}

	fmt.Fprintf(ctx.Stdout, "decimal_point:   %q\n", state.DecimalPoint)
	fmt.Fprintf(ctx.Stdout, "group_separator: %q\n", state.GroupSeparator)
	fmt.Fprintf(ctx.Stdout, "currency_symbol: %q\n", state.CurrencySymbol)

	for _, n := range c.Numbers {
		d, err := state.ParseDecimal(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Stdout, "%s => %s\n", n, d)
	}
	return nil
}

// ConstantsCmd lists ODBC constants.
type ConstantsCmd struct {
	Filter string `short:"f" help:"Only names containing this text (case-insensitive)"`
}

func (c *ConstantsCmd) Run(ctx *kong.Context) error {
	list := odbcenv.Constants()
	if c.Filter != "" {
		list = odbc.FilterConstants(c.Filter)
	}
	for _, k := range list {
		fmt.Fprintf(ctx.Stdout, "%-40s %d\n", k.Name, k.Value)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *kong.Context) error {
	fmt.Fprintf(ctx.Stdout, "odbcenv version %s (DB API %s, paramstyle %s)\n",
		odbcenv.Version, odbcenv.APILevel, odbcenv.ParamStyle)
	return nil
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("odbcenv"),
		kong.Description("Inspect the ODBC driver manager environment"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.settings()
	if err != nil {
		return err
	}
	if err := odbcenv.Configure(cfg); err != nil {
		return err
	}
	return ctx.Run(ctx)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "odbcenv: %v\n", err)
		os.Exit(1)
	}
}
