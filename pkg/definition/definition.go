package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
	"github.com/aretw0/libstate/pkg/registry"
	"gopkg.in/yaml.v3"
)

// Hook names a registry entry and its arguments.
type Hook struct {
	Action    string         `yaml:"action,omitempty"`
	Condition string         `yaml:"condition,omitempty"`
	Args      map[string]any `yaml:"args,omitempty"`
}

// State declares a state and its hooks.
type State struct {
	ID    string `yaml:"id"`
	Entry *Hook  `yaml:"entry,omitempty"`
	Do    *Hook  `yaml:"do,omitempty"`
	Exit  *Hook  `yaml:"exit,omitempty"`
}

// Transition declares an edge. An empty From marks the entry transition.
type Transition struct {
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to"`
	When *Hook  `yaml:"when,omitempty"`
	Then *Hook  `yaml:"then,omitempty"`
}

// Definition is the document root.
type Definition struct {
	Name        string       `yaml:"name,omitempty"`
	Description string       `yaml:"description,omitempty"`
	States      []State      `yaml:"states"`
	Transitions []Transition `yaml:"transitions"`
}

// Parse decodes a definition, rejecting unknown fields.
func Parse(data []byte) (*Definition, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a definition from r.
func Decode(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse definition: document is empty")
		}
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return &def, nil
}

// Load reads and parses the definition stored at path.
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Marshal encodes def back to YAML.
func Marshal(def *Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Build registers the declared states and transitions on a new graph,
// resolving hook names against reg. States are registered first, so
// transitions may reference states declared anywhere in the document.
func Build(def *Definition, reg *registry.Registry) (*graph.Graph[string], error) {
	g := graph.New[string]()

	for i, s := range def.States {
		if s.ID == "" {
			return nil, fmt.Errorf("state #%d: id is required", i)
		}
		var opts []graph.StateOption[string]
		hooks := []struct {
			hook *Hook
			kind domain.HookKind
			opt  func(domain.Action[string]) graph.StateOption[string]
		}{
			{s.Entry, domain.HookEntry, graph.OnEntry[string]},
			{s.Do, domain.HookDo, graph.OnDo[string]},
			{s.Exit, domain.HookExit, graph.OnExit[string]},
		}
		for _, h := range hooks {
			if h.hook == nil {
				continue
			}
			action, err := resolveAction(reg, h.hook)
			if err != nil {
				return nil, fmt.Errorf("state %s: %s hook: %w", s.ID, h.kind, err)
			}
			opts = append(opts, h.opt(registry.StateAction[string](action)))
		}
		g.RegisterState(s.ID, opts...)
	}

	for i, t := range def.Transitions {
		if t.To == "" {
			return nil, &domain.ConfigurationError{
				Op:     "register_transition",
				ID:     fmt.Sprintf("#%d", i),
				Reason: domain.ErrMissingDestination,
			}
		}

		var opts []graph.TransitionOption[string]
		if t.When != nil {
			cond, err := resolveCondition(reg, t.When)
			if err != nil {
				return nil, fmt.Errorf("transition %s: %w", label(t), err)
			}
			opts = append(opts, graph.When(registry.Guard[string](cond)))
		}
		if t.Then != nil {
			action, err := resolveAction(reg, t.Then)
			if err != nil {
				return nil, fmt.Errorf("transition %s: %w", label(t), err)
			}
			opts = append(opts, graph.Then(registry.TransitionAction[string](action)))
		}

		var err error
		if t.From == "" {
			err = g.RegisterEntry(t.To, opts...)
		} else {
			err = g.RegisterTransition(t.From, t.To, opts...)
		}
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

func resolveAction(reg *registry.Registry, h *Hook) (registry.MemoryAction, error) {
	if h.Action == "" {
		return nil, fmt.Errorf("hook must name an action")
	}
	return reg.Action(h.Action, h.Args)
}

func resolveCondition(reg *registry.Registry, h *Hook) (registry.MemoryCondition, error) {
	if h.Condition == "" {
		return nil, fmt.Errorf("guard must name a condition")
	}
	return reg.Condition(h.Condition, h.Args)
}

func label(t Transition) string {
	if t.From == "" {
		return "start -> " + t.To
	}
	return t.From + " -> " + t.To
}
