package yamlmanifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vk/assetgraph/internal/config"
	"github.com/vk/assetgraph/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type document struct {
	Sources   []sourceEntry   `yaml:"sources"`
	Artifacts []artifactEntry `yaml:"artifacts"`
	Targets   []targetEntry   `yaml:"targets"`
}

type sourceEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type artifactEntry struct {
	Name    string       `yaml:"name"`
	Path    string       `yaml:"path"`
	Action  string       `yaml:"action"`
	Inputs  []inputEntry `yaml:"inputs"`
	Command []string     `yaml:"command"`
}

type inputEntry struct {
	Tag  string `yaml:"tag"`
	From string `yaml:"from"`
}

type targetEntry struct {
	Name  string   `yaml:"name"`
	Build []string `yaml:"build"`
}

var placeholder = regexp.MustCompile(`\$\{([^}]*)\}`)

// Loader is the YAML implementation of config.Loader.
type Loader struct {
	env map[string]string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a YAML manifest loader. env backs `${env.NAME}`.
func NewLoader(env map[string]string) *Loader {
	return &Loader{env: env}
}

// Load decodes every given file and merges the declarations into one model.
// Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{}
	for _, file := range paths {
		m, err := l.loadFile(file)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}

	logger.Debug("YAML loading complete.", "sources", len(model.Sources), "artifacts", len(model.Artifacts), "targets", len(model.Targets))
	return model, nil
}

func (l *Loader) loadFile(file string) (*config.Model, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}

	x := &expander{dir: filepath.Dir(abs), env: l.env}
	model := &config.Model{}

	for _, s := range doc.Sources {
		model.Sources = append(model.Sources, &config.Source{
			Name:   s.Name,
			Path:   x.expand(s.Path),
			Origin: file,
		})
	}
	for _, a := range doc.Artifacts {
		art := &config.Artifact{
			Name:   a.Name,
			Path:   x.expand(a.Path),
			Action: a.Action,
			Origin: file,
		}
		for _, in := range a.Inputs {
			ref, err := config.ParseRef(in.From)
			if err != nil {
				return nil, fmt.Errorf("%s: artifact '%s', input '%s': %w", file, a.Name, in.Tag, err)
			}
			art.Inputs = append(art.Inputs, &config.Input{Tag: in.Tag, From: ref})
		}
		for _, arg := range a.Command {
			art.Command = append(art.Command, x.expand(arg))
		}
		model.Artifacts = append(model.Artifacts, art)
	}
	for _, t := range doc.Targets {
		target := &config.Target{Name: t.Name, Origin: file}
		for _, b := range t.Build {
			ref, err := config.ParseRef(b)
			if err != nil {
				return nil, fmt.Errorf("%s: target '%s': %w", file, t.Name, err)
			}
			target.Build = append(target.Build, ref)
		}
		model.Targets = append(model.Targets, target)
	}

	if err := x.err(); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return model, nil
}

// expander substitutes ${dir} and ${env.NAME}, collecting unknown names.
type expander struct {
	dir     string
	env     map[string]string
	unknown []string
}

func (x *expander) expand(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := strings.TrimSpace(m[2 : len(m)-1])
		if name == "dir" {
			return x.dir
		}
		if key, ok := strings.CutPrefix(name, "env."); ok {
			if v, ok := x.env[key]; ok {
				return v
			}
		}
		x.unknown = append(x.unknown, name)
		return m
	})
}

func (x *expander) err() error {
	if len(x.unknown) == 0 {
		return nil
	}
	return fmt.Errorf("undefined variables: %s", strings.Join(x.unknown, ", "))
}
