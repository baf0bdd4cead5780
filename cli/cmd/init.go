package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/profile"
)

const defaultConfigIndent = 2

// ignoreFlags are never written to the configuration file.
var ignoreFlags = []string{"help", "version"}

// Init writes a configuration file holding the current value of every
// global flag.
type Init struct {
	Force  bool   `help:"Overwrite an existing configuration file." short:"f"`
	Output string `default:"${config}" help:"Destination of the configuration file." short:"o" type:"path"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context, ktx *kong.Context, stdio *Stdio) error {
	if _, err := os.Stat(i.Output); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", i.Output)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalWithOptions(
		configValues(ktx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrWriteConfig.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(i.Output), 0o700); err != nil {
		return ErrWriteConfig.With(slog.String("file", i.Output)).Wrap(err)
	}

	if err := os.WriteFile(i.Output, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", i.Output)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", i.Output))

	_, err = fmt.Fprintln(stdio.Out, i.Output)

	return err
}

// configValues collects the global flags with a non-empty value, in
// declaration order.
func configValues(ktx *kong.Context) yaml.MapSlice {
	var ms yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.Contains(ignoreFlags, flag.Name) ||
			(flag.Group != nil && flag.Group.Key == profile.Tag) {
			continue
		}

		if v, ok := configValue(ktx.FlagValue(flag)); ok {
			ms = append(ms, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return ms
}

// configValue converts a flag value to a plain YAML scalar or list.
// Named string types such as log levels are written as strings.
func configValue(val any) (any, bool) {
	if val == nil {
		return nil, false
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), rv.Len() > 0

	case reflect.Bool:
		return rv.Bool(), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true

	case reflect.Float32, reflect.Float64:
		return rv.Float(), true

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil, false
		}

		list := make([]any, 0, rv.Len())

		for i := range rv.Len() {
			if v, ok := configValue(rv.Index(i).Interface()); ok {
				list = append(list, v)
			}
		}

		return list, len(list) > 0

	default:
		return fmt.Sprint(val), true
	}
}
