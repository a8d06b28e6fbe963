/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/avgsync/pkg/logger"
	"github.com/carverauto/avgsync/pkg/models"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")
)

var (
	durationType       = reflect.TypeOf(time.Duration(0))
	modelsDurationType = reflect.TypeOf(models.Duration(0))
)

// EnvConfigLoader loads configuration from environment variables.
// Nested struct fields are joined with underscores: with prefix AVGSYNC_,
// the json field "nats" -> "url" maps to AVGSYNC_NATS_URL.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader by reading from environment variables.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	e.logger.Debug().Msg("Loading configuration from environment variables")

	// A complete JSON document in one variable takes precedence.
	if jsonConfig := os.Getenv(e.prefix + "CONFIG_JSON"); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
			e.logger.Error().Err(err).Msg("Failed to unmarshal CONFIG_JSON")

			return fmt.Errorf("failed to unmarshal CONFIG_JSON: %w", err)
		}

		e.logger.Info().Msg("Loaded configuration from CONFIG_JSON environment variable")

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	if err := e.loadStruct(v, e.prefix); err != nil {
		return err
	}

	e.logger.Info().Msg("Successfully loaded configuration from environment variables")

	return nil
}

// loadStruct recursively loads a struct from environment variables.
func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		jsonTag := fieldType.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		fieldName := strings.Split(jsonTag, ",")[0]
		envName := buildEnvName(prefix, fieldName)

		if err := e.setFieldValue(field, envName); err != nil {
			e.logger.Debug().
				Str("field", fieldName).
				Str("env", envName).
				Err(err).
				Msg("Failed to set field from environment variable")

			continue
		}
	}

	return nil
}

func buildEnvName(prefix, fieldName string) string {
	envName := strings.ToUpper(fieldName)
	envName = strings.ReplaceAll(envName, ".", "_")

	return prefix + envName
}

// setFieldValue sets a struct field value from an environment variable.
func (e *EnvConfigLoader) setFieldValue(field reflect.Value, envName string) error {
	if isStructLike(field) {
		return e.loadNested(field, envName)
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok || envValue == "" {
		return nil
	}

	target := field
	if field.Kind() == reflect.Ptr {
		target = reflect.New(field.Type().Elem()).Elem()
	}

	if err := setFieldByKind(target, envName, envValue); err != nil {
		return err
	}

	if field.Kind() == reflect.Ptr {
		field.Set(target.Addr())
	}

	e.logger.Debug().
		Str("env", envName).
		Str("value", "[set]").
		Msg("Loaded value from environment variable")

	return nil
}

func isStructLike(field reflect.Value) bool {
	return field.Kind() == reflect.Struct ||
		(field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct)
}

// loadNested fills nested structs. Nil struct pointers are only allocated
// when at least one variable under their prefix is set, so optional
// sections stay nil.
func (e *EnvConfigLoader) loadNested(field reflect.Value, envName string) error {
	prefix := envName + "_"

	if field.Kind() == reflect.Struct {
		return e.loadStruct(field, prefix)
	}

	if field.IsNil() {
		if !hasEnvWithPrefix(prefix) {
			return nil
		}

		field.Set(reflect.New(field.Type().Elem()))
	}

	return e.loadStruct(field.Elem(), prefix)
}

func hasEnvWithPrefix(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}

	return false
}

// setFieldByKind sets field value based on its reflect.Kind.
func setFieldByKind(field reflect.Value, envName, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Bool:
		b, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", envName, err)
		}

		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntField(field, envName, envValue)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", envName, err)
		}

		field.SetFloat(f)
	case reflect.Slice:
		return setSliceField(field, envName, envValue)
	default:
		if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
			return fmt.Errorf("unsupported type %s for %s: %w", field.Kind(), envName, err)
		}
	}

	return nil
}

// setIntField sets an integer field value, with special handling for durations.
func setIntField(field reflect.Value, envName, envValue string) error {
	if field.Type() == durationType || field.Type() == modelsDurationType {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", envName, err)
		}

		field.SetInt(int64(d))

		return nil
	}

	i, err := strconv.ParseInt(envValue, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value for %s: %w", envName, err)
	}

	field.SetInt(i)

	return nil
}

func setSliceField(field reflect.Value, envName, envValue string) error {
	if field.Type().Elem().Kind() == reflect.String {
		values := strings.Split(envValue, ",")
		slice := reflect.MakeSlice(field.Type(), len(values), len(values))

		for i, v := range values {
			slice.Index(i).SetString(strings.TrimSpace(v))
		}

		field.Set(slice)

		return nil
	}

	if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
		return fmt.Errorf("invalid slice value for %s: %w", envName, err)
	}

	return nil
}
