package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// EnvError reports an environment variable that could not be applied to a
// config field
type EnvError struct {
	Var   string
	Field string
	Err   error
}

func (e *EnvError) Error() string {
	return fmt.Sprintf("env %s (%s): %v", e.Var, e.Field, e.Err)
}

func (e *EnvError) Unwrap() error { return e.Err }

// envLookup matches os.LookupEnv so tests can supply their own environment
type envLookup func(key string) (string, bool)

// applyEnv overrides every field tagged `env` under v whose variable is set.
// Nested structs are walked with their dotted path kept for error messages.
func applyEnv(v reflect.Value, path string, lookup envLookup) error {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		field := v.Field(i)
		name := sf.Name
		if path != "" {
			name = path + "." + sf.Name
		}

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field, name, lookup); err != nil {
				return err
			}
			continue
		}

		key := sf.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		parsed, err := parseEnvValue(field.Type(), raw)
		if err != nil {
			return &EnvError{Var: key, Field: name, Err: err}
		}
		field.Set(parsed)
	}
	return nil
}

// parseEnvValue converts raw into a value of type t
func parseEnvValue(t reflect.Type, raw string) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	if t == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return out, err
		}
		out.SetInt(int64(d))
		return out, nil
	}

	switch t.Kind() {
	case reflect.String:
		out.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return out, err
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return out, err
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return out, err
		}
		out.SetFloat(f)
	default:
		return out, fmt.Errorf("unsupported kind %s", t.Kind())
	}
	return out, nil
}

func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config), "", os.LookupEnv)
}
