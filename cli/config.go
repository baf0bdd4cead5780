package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/pkg"
)

// baseConfig is the file name of the configuration file.
const baseConfig = "config.yaml"

// baseHistory is the file name of the REPL history file.
const baseHistory = "history"

// loadConfig is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys name global flags. Nested mappings are joined with '-', and '_' may
// stand in for '-', so these are equivalent:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Command-line flags override file values. A file that cannot be decoded
// is reported and ignored.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file",
				slog.Any("error", pkg.ErrConfig.Wrap(err)))
		}

		return config{}, nil
	}

	c := config{}
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] over a flattened configuration file.
type config map[string]any

func (c config) flatten(prefix string, doc map[string]any) {
	for key, val := range doc {
		name := prefix + strings.ReplaceAll(key, "_", "-")

		if sub, ok := val.(map[string]any); ok {
			c.flatten(name+"-", sub)

			continue
		}

		c[name] = flagValue(val)
	}
}

// flagValue converts a decoded YAML value to a form kong's mappers accept:
// booleans pass through, numbers become strings, and lists are joined with
// commas.
func flagValue(val any) any {
	switch v := val.(type) {
	case bool, string, nil:
		return v

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(flagValue(item))
		}

		return strings.Join(items, ",")

	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
