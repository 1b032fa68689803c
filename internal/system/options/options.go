// Released under an MIT license. See LICENSE.

// Package options parses lish's command line and configuration file.
package options

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Config holds the settings read from the configuration file.
type Config struct {
	GCThreshold int      `yaml:"gc_threshold"`
	History     string   `yaml:"history"`
	HistorySize int      `yaml:"history_size"`
	Init        []string `yaml:"init"`
	Loose       bool     `yaml:"loose_symbols"`
	MaxDepth    int      `yaml:"max_depth"`
	Prompt      string   `yaml:"prompt"`
}

// T (options) is the result of parsing the command line.
type T struct {
	Args        []string
	Command     string
	Config      Config
	ConfigPath  string
	Interactive bool
	Script      string
	Version     bool
}

type options = T

const usage = `lish

Usage:
  lish [-l] SCRIPT [ARGUMENTS...]
  lish [-l] -c COMMAND [ARGUMENTS...]
  lish [-il] [--config=PATH]
  lish -h
  lish -v

Arguments:
  ARGUMENTS  Positional arguments, available as *args*.
  SCRIPT     Path to a lish script.

Options:
  -c, --command=COMMAND  Evaluate the specified command.
      --config=PATH      Read configuration from PATH.
  -i, --interactive      Invert interactive mode detection.
  -l, --loose            Start with loose symbols enabled.
  -h, --help             Display this help.
  -v, --version          Print lish version.

If lish's stdin is a TTY, and lish was invoked with no script or command,
interactive and job control features are enabled. Otherwise, these
features are disabled.
`

// Defaults returns the configuration used when no file overrides it.
func Defaults() Config {
	c := Config{
		GCThreshold: 100000,
		HistorySize: 1000,
		MaxDepth:    10000,
		Prompt:      "lish> ",
	}

	if home, err := os.UserHomeDir(); err == nil {
		c.History = filepath.Join(home, ".local", "share", "lish", "history")
	}

	return c
}

// Load reads the YAML configuration at path over the defaults. A missing
// file is not an error. On a malformed file the defaults are returned
// along with the error.
func Load(path string) (Config, error) {
	c := Defaults()

	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return c, err
	}

	loaded := c

	err = yaml.Unmarshal(b, &loaded)
	if err != nil {
		return c, err
	}

	loaded.History = home(loaded.History)
	for i, path := range loaded.Init {
		loaded.Init[i] = home(path)
	}

	return loaded, nil
}

func home(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	dir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(dir, path[2:])
}

// Parse parses argv (without the program name) and loads the
// configuration file. Configuration errors are reported and ignored.
func Parse(argv []string, version string) *T {
	opts, err := docopt.ParseArgs(usage, argv, version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	o := &T{}

	o.Command, _ = opts.String("--command")
	o.Script, _ = opts.String("SCRIPT")
	o.ConfigPath, _ = opts.String("--config")

	if o.ConfigPath == "" {
		o.ConfigPath = DefaultPath()
	}

	o.Config, err = Load(o.ConfigPath)
	if err != nil {
		println("lish: " + o.ConfigPath + ": " + err.Error())
	}

	if loose, _ := opts.Bool("--loose"); loose {
		o.Config.Loose = true
	}

	name := os.Args[0]
	if o.Script != "" {
		name = o.Script
	}

	args, _ := opts["ARGUMENTS"].([]string)
	o.Args = append([]string{name}, args...)

	o.Interactive = o.Script == "" && o.Command == "" &&
		isatty.IsTerminal(os.Stdin.Fd())

	if invert, _ := opts.Bool("--interactive"); invert {
		o.Interactive = !o.Interactive
	}

	return o
}

// DefaultPath returns the configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "lish", "config.yaml")
}

// Terminal returns the file descriptor of the controlling terminal.
func (o *options) Terminal() int {
	return int(os.Stdin.Fd())
}
