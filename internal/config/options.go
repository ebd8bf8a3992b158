package config

import (
	"fmt"
	"os/exec"

	"github.com/spf13/viper"
)

// Option keys.
const (
	KeyReaderPoolSize = "reader_pool_size"
	KeySandboxCommand = "sandbox_command"
	KeyWatch          = "watch"
	KeyDebug          = "debug"
)

const maxReaderPoolSize = 64

// Options are the runtime knobs of the dispatcher process. They come from
// sd_chinfusor.yml, CHINFUSOR_* environment variables and command line flags.
type Options struct {
	ReaderPoolSize int    // Number of engine output readers
	SandboxCommand string // Wrapper used for sandboxed engines
	Watch          bool   // Reload the configuration on change
	Debug          bool
}

// DefaultOptions returns the built-in options.
func DefaultOptions() Options {
	return Options{
		ReaderPoolSize: 2,
		SandboxCommand: "firejail",
		Watch:          true,
	}
}

// SetDefaults registers the default options with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultOptions()
	v.SetDefault(KeyReaderPoolSize, d.ReaderPoolSize)
	v.SetDefault(KeySandboxCommand, d.SandboxCommand)
	v.SetDefault(KeyWatch, d.Watch)
	v.SetDefault(KeyDebug, d.Debug)
}

// LoadOptions reads the options from v, keeping defaults for unset keys.
func LoadOptions(v *viper.Viper) (Options, error) {
	opts := DefaultOptions()

	if v.IsSet(KeyReaderPoolSize) {
		opts.ReaderPoolSize = v.GetInt(KeyReaderPoolSize)
	}
	if v.IsSet(KeySandboxCommand) {
		opts.SandboxCommand = v.GetString(KeySandboxCommand)
	}
	if v.IsSet(KeyWatch) {
		opts.Watch = v.GetBool(KeyWatch)
	}
	if v.IsSet(KeyDebug) {
		opts.Debug = v.GetBool(KeyDebug)
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

// Validate checks the option values.
func (o Options) Validate() error {
	if o.ReaderPoolSize < 1 || o.ReaderPoolSize > maxReaderPoolSize {
		return fmt.Errorf("%w: %s must be between 1 and %d, got %d",
			ErrInvalidOption, KeyReaderPoolSize, maxReaderPoolSize, o.ReaderPoolSize)
	}
	if o.SandboxCommand == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidOption, KeySandboxCommand)
	}
	return nil
}

// SandboxAvailable reports whether the sandbox command can be found.
func (o Options) SandboxAvailable() bool {
	_, err := exec.LookPath(o.SandboxCommand)
	return err == nil
}
