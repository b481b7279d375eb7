package nexus

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Environment is implemented by configs that know whether they run in production.
type Environment interface {
	IsProduction() bool
}

// DefaultSecurityChecker rejects weak values in fields tagged `secret:"true"`.
// Configs implementing Environment are only checked in production.
type DefaultSecurityChecker struct {
	// WeakValues are compared case-insensitively as substrings.
	WeakValues []string
	MinLength  int
}

var defaultWeakValues = []string{"password", "123456", "changeme", "development", "secret"}

func (sc *DefaultSecurityChecker) CheckSecurity(_ context.Context, cfg interface{}) error {
	if env, ok := cfg.(Environment); ok && !env.IsProduction() {
		return nil
	}
	return sc.walk(reflect.ValueOf(cfg), "")
}

func (sc *DefaultSecurityChecker) walk(v reflect.Value, path string) error {
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
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if path != "" {
			name = path + "." + name
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Struct || fv.Kind() == reflect.Ptr {
			if err := sc.walk(fv, name); err != nil {
				return err
			}
			continue
		}
		if field.Tag.Get("secret") != "true" || fv.Kind() != reflect.String {
			continue
		}
		if err := sc.checkValue(name, fv.String()); err != nil {
			return err
		}
	}
	return nil
}

// checkValue ignores empty values: whether a secret is required is up to validation.
func (sc *DefaultSecurityChecker) checkValue(name, value string) error {
	if value == "" {
		return nil
	}
	minLen := sc.MinLength
	if minLen == 0 {
		minLen = 16
	}
	if len(value) < minLen {
		return fmt.Errorf("secret field %s is shorter than %d characters", name, minLen)
	}

	weak := sc.WeakValues
	if weak == nil {
		weak = defaultWeakValues
	}
	lower := strings.ToLower(value)
	for _, pattern := range weak {
		if strings.Contains(lower, strings.ToLower(pattern)) {
			return fmt.Errorf("secret field %s contains a well-known value", name)
		}
	}
	return nil
}
