package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/matzehuels/scatterfield/pkg/errors"
)

// Format is a plan file encoding.
type Format string

// Supported plan formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported plan file %q (want .toml, .yaml or .json)", path)
}

// Load reads and validates a plan file.
func Load(path string) (Plan, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Plan{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Plan{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan %s", path)
		}
		return Plan{}, errors.Wrap(errors.ErrCodeInternal, err, "open plan %s", path)
	}
	defer f.Close()

	p, err := Decode(f, format)
	if err != nil {
		return Plan{}, err
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// Decode parses a plan without validating it. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (Plan, error) {
	var p Plan
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&p)
		if err != nil {
			return Plan{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml plan")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Plan{}, errors.New(errors.ErrCodeInvalidFormat, "unknown plan keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return Plan{}, errors.Wrap(errors.ErrCodeInternal, err, "read yaml plan")
		}
		if err := yaml.UnmarshalStrict(data, &p); err != nil {
			return Plan{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml plan")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return Plan{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json plan")
		}
	default:
		return Plan{}, errors.New(errors.ErrCodeUnsupported, "unsupported plan format %q", format)
	}
	return p, nil
}

// Encode writes p in the given format.
func Encode(w io.Writer, p Plan, format Format) error {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml plan")
		}
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml plan")
		}
		buf.Write(data)
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json plan")
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported plan format %q", format)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
