package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aretw0/libstate/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

type keyArgs struct {
	Key string `mapstructure:"key"`
}

type keyValueArgs struct {
	Key   string `mapstructure:"key"`
	Value any    `mapstructure:"value"`
}

type incrArgs struct {
	Key string  `mapstructure:"key"`
	By  float64 `mapstructure:"by"`
}

type copyArgs struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

type logArgs struct {
	Message string   `mapstructure:"message"`
	Level   string   `mapstructure:"level"`
	Keys    []string `mapstructure:"keys"`
}

// decode maps declarative arguments onto a typed struct, rejecting unknown fields.
func decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

func requireKey(key string) error {
	if key == "" {
		return fmt.Errorf("field %q is required", "key")
	}
	return nil
}

// NewWithBuiltins creates a registry preloaded with the built-in actions and conditions.
// The log action writes to logger.
func NewWithBuiltins(logger *slog.Logger) *Registry {
	r := NewRegistry()
	RegisterBuiltins(r, logger)
	return r
}

// RegisterBuiltins adds the built-in actions and conditions to r.
//
// Actions: set, set_default, incr, delete, copy, log.
// Conditions: equals, not_equals, exists, missing, less_than, greater_than.
func RegisterBuiltins(r *Registry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r.RegisterAction("set", func(args map[string]any) (MemoryAction, error) {
		var a keyValueArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) error {
			mem[a.Key] = a.Value
			return nil
		}, nil
	})

	r.RegisterAction("set_default", func(args map[string]any) (MemoryAction, error) {
		var a keyValueArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) error {
			if _, ok := mem[a.Key]; !ok {
				mem[a.Key] = a.Value
			}
			return nil
		}, nil
	})

	r.RegisterAction("incr", func(args map[string]any) (MemoryAction, error) {
		a := incrArgs{By: 1}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) error {
			next, err := add(mem[a.Key], a.By)
			if err != nil {
				return fmt.Errorf("incr %s: %w", a.Key, err)
			}
			mem[a.Key] = next
			return nil
		}, nil
	})

	r.RegisterAction("delete", func(args map[string]any) (MemoryAction, error) {
		var a keyArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) error {
			delete(mem, a.Key)
			return nil
		}, nil
	})

	r.RegisterAction("copy", func(args map[string]any) (MemoryAction, error) {
		var a copyArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if a.From == "" || a.To == "" {
			return nil, fmt.Errorf("fields %q and %q are required", "from", "to")
		}
		return func(_ context.Context, mem domain.Memory) error {
			v, ok := mem[a.From]
			if !ok {
				return fmt.Errorf("copy: key %q is not set", a.From)
			}
			mem[a.To] = v
			return nil
		}, nil
	})

	r.RegisterAction("log", func(args map[string]any) (MemoryAction, error) {
		a := logArgs{Level: "info"}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(a.Level)); err != nil {
			return nil, err
		}
		return func(ctx context.Context, mem domain.Memory) error {
			attrs := make([]any, 0, len(a.Keys)*2)
			for _, k := range a.Keys {
				attrs = append(attrs, k, mem[k])
			}
			logger.Log(ctx, level, a.Message, attrs...)
			return nil
		}, nil
	})

	r.RegisterCondition("equals", func(args map[string]any) (MemoryCondition, error) {
		var a keyValueArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) (bool, error) {
			return equal(mem[a.Key], a.Value), nil
		}, nil
	})

	r.RegisterCondition("not_equals", func(args map[string]any) (MemoryCondition, error) {
		var a keyValueArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) (bool, error) {
			return !equal(mem[a.Key], a.Value), nil
		}, nil
	})

	r.RegisterCondition("exists", func(args map[string]any) (MemoryCondition, error) {
		var a keyArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) (bool, error) {
			_, ok := mem[a.Key]
			return ok, nil
		}, nil
	})

	r.RegisterCondition("missing", func(args map[string]any) (MemoryCondition, error) {
		var a keyArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		return func(_ context.Context, mem domain.Memory) (bool, error) {
			_, ok := mem[a.Key]
			return !ok, nil
		}, nil
	})

	r.RegisterCondition("less_than", compare(func(a, b float64) bool { return a < b }))
	r.RegisterCondition("greater_than", compare(func(a, b float64) bool { return a > b }))
}

func compare(op func(a, b float64) bool) ConditionFactory {
	return func(args map[string]any) (MemoryCondition, error) {
		var a keyValueArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if err := requireKey(a.Key); err != nil {
			return nil, err
		}
		bound, ok := toFloat(a.Value)
		if !ok {
			return nil, fmt.Errorf("field %q must be numeric (got %T)", "value", a.Value)
		}
		return func(_ context.Context, mem domain.Memory) (bool, error) {
			v, ok := mem[a.Key]
			if !ok {
				return false, nil
			}
			n, ok := toFloat(v)
			if !ok {
				return false, fmt.Errorf("key %q holds a non-numeric value (%T)", a.Key, v)
			}
			return op(n, bound), nil
		}, nil
	}
}

// equal compares two memory values, treating numbers of different Go types as equal
// when their values match.
func equal(a, b any) bool {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(a, b)
}

// add increments v by delta. A missing value counts as zero; integers stay integers
// when delta is whole.
func add(v any, delta float64) (any, error) {
	if v == nil {
		v = 0
	}
	switch n := v.(type) {
	case int:
		if delta == float64(int(delta)) {
			return n + int(delta), nil
		}
		return float64(n) + delta, nil
	case int64:
		if delta == float64(int64(delta)) {
			return n + int64(delta), nil
		}
		return float64(n) + delta, nil
	}
	if f, ok := toFloat(v); ok {
		return f + delta, nil
	}
	return nil, fmt.Errorf("value is not numeric (%T)", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
