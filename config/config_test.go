package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// Test struct with various field types
type TestConfig struct {
	StringField   string        `env:"TEST_STRING"`
	IntField      int           `env:"TEST_INT"`
	Int64Field    int64         `env:"TEST_INT64"`
	UintField     uint64        `env:"TEST_UINT"`
	FloatField    float64       `env:"TEST_FLOAT"`
	BoolField     bool          `env:"TEST_BOOL"`
	DurationField time.Duration `env:"TEST_DURATION"`
	DefaultField  string        `env:"TEST_DEFAULT,default:defaultValue"`
	NoTagField    string        // Field without env tag
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected TestConfig
		wantErr  bool
	}{
		{
			name: "all fields set from environment",
			envVars: map[string]string{
				"BEAVER_TEST_STRING":   "hello",
				"BEAVER_TEST_INT":      "42",
				"BEAVER_TEST_INT64":    "9223372036854775807",
				"BEAVER_TEST_UINT":     "18446744073709551615",
				"BEAVER_TEST_FLOAT":    "0.1",
				"BEAVER_TEST_BOOL":     "true",
				"BEAVER_TEST_DURATION": "1m30s",
			},
			expected: TestConfig{
				StringField:   "hello",
				IntField:      42,
				Int64Field:    9223372036854775807,
				UintField:     18446744073709551615,
				FloatField:    0.1,
				BoolField:     true,
				DurationField: 90 * time.Second,
				DefaultField:  "defaultValue",
			},
		},
		{
			name: "override default value",
			envVars: map[string]string{
				"BEAVER_TEST_DEFAULT": "overridden",
			},
			expected: TestConfig{
				DefaultField: "overridden",
			},
		},
		{
			name: "invalid int value",
			envVars: map[string]string{
				"BEAVER_TEST_INT": "not-a-number",
			},
			wantErr: true,
		},
		{
			name: "negative uint value",
			envVars: map[string]string{
				"BEAVER_TEST_UINT": "-1",
			},
			wantErr: true,
		},
		{
			name: "invalid float value",
			envVars: map[string]string{
				"BEAVER_TEST_FLOAT": "pi",
			},
			wantErr: true,
		},
		{
			name: "invalid bool value",
			envVars: map[string]string{
				"BEAVER_TEST_BOOL": "not-a-bool",
			},
			wantErr: true,
		},
		{
			name:    "empty environment leaves zero values",
			envVars: map[string]string{},
			expected: TestConfig{
				DefaultField: "defaultValue",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{
				"BEAVER_TEST_STRING", "BEAVER_TEST_INT", "BEAVER_TEST_INT64", "BEAVER_TEST_UINT",
				"BEAVER_TEST_FLOAT", "BEAVER_TEST_BOOL", "BEAVER_TEST_DURATION", "BEAVER_TEST_DEFAULT",
			} {
				t.Setenv(k, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := &TestConfig{}
			err := Load(cfg)

			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && !reflect.DeepEqual(*cfg, tt.expected) {
				t.Errorf("Load() = %+v, want %+v", *cfg, tt.expected)
			}
		})
	}
}

func TestLoadWithPrefix(t *testing.T) {
	t.Setenv("MYAPP_TEST_STRING", "prefixed")
	t.Setenv("TEST_INT", "7")

	cfg := &TestConfig{}
	if err := Load(cfg, LoadOptions{Prefix: "MYAPP_"}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StringField != "prefixed" {
		t.Errorf("StringField = %v, want %v", cfg.StringField, "prefixed")
	}

	cfg = &TestConfig{}
	if err := Load(cfg, LoadOptions{}); err != nil {
		t.Fatalf("Load() without prefix error = %v", err)
	}
	if cfg.IntField != 7 {
		t.Errorf("IntField = %v, want %v", cfg.IntField, 7)
	}
}

func TestLoadWithDebug(t *testing.T) {
	t.Setenv("BEAVER_CONFIG_DEBUG", "true")
	t.Setenv("BEAVER_TEST_STRING", "debug-test")

	cfg := &TestConfig{}
	if err := Load(cfg); err != nil {
		t.Errorf("Load() with debug enabled failed: %v", err)
	}

	if cfg.StringField != "debug-test" {
		t.Errorf("StringField = %v, want %v", cfg.StringField, "debug-test")
	}
}

func TestLoadRequired(t *testing.T) {
	type RequiredConfig struct {
		Secret string `env:"TEST_REQUIRED_SECRET,required"`
	}

	t.Setenv("BEAVER_TEST_REQUIRED_SECRET", "")
	if err := Load(&RequiredConfig{}); err == nil {
		t.Error("Load() expected error for missing required field")
	}

	t.Setenv("BEAVER_TEST_REQUIRED_SECRET", "s3cret")
	cfg := &RequiredConfig{}
	if err := Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Secret != "s3cret" {
		t.Errorf("Secret = %v, want %v", cfg.Secret, "s3cret")
	}
}

func TestLoadRejectsNonPointer(t *testing.T) {
	if err := Load(TestConfig{}); !errors.Is(err, ErrNotStructPointer) {
		t.Errorf("Load() error = %v, want %v", err, ErrNotStructPointer)
	}
	var n int
	if err := Load(&n); !errors.Is(err, ErrNotStructPointer) {
		t.Errorf("Load() error = %v, want %v", err, ErrNotStructPointer)
	}
}

func TestSetFieldValue(t *testing.T) {
	tests := []struct {
		name      string
		fieldType string
		value     string
		wantErr   bool
	}{
		{name: "valid string", fieldType: "string", value: "test"},
		{name: "valid int", fieldType: "int", value: "123"},
		{name: "valid int64", fieldType: "int64", value: "9223372036854775807"},
		{name: "valid uint64", fieldType: "uint64", value: "8000"},
		{name: "valid float64", fieldType: "float64", value: "30"},
		{name: "valid bool true", fieldType: "bool", value: "true"},
		{name: "valid bool 0", fieldType: "bool", value: "0"},
		{name: "invalid int", fieldType: "int", value: "abc", wantErr: true},
		{name: "invalid uint64", fieldType: "uint64", value: "1.5", wantErr: true},
		{name: "invalid bool", fieldType: "bool", value: "yes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg interface{}
			switch tt.fieldType {
			case "string":
				cfg = &struct{ Field string }{}
			case "int":
				cfg = &struct{ Field int }{}
			case "int64":
				cfg = &struct{ Field int64 }{}
			case "uint64":
				cfg = &struct{ Field uint64 }{}
			case "float64":
				cfg = &struct{ Field float64 }{}
			case "bool":
				cfg = &struct{ Field bool }{}
			}

			field := reflect.ValueOf(cfg).Elem().Field(0)

			err := setFieldValue(field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("setFieldValue() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComplexEnvTag(t *testing.T) {
	type ComplexConfig struct {
		Field1 string `env:"COMPLEX_FIELD1,default:value1"`
		Field2 string `env:"COMPLEX_FIELD2,default:value2,other:ignored"`
		Field3 string `env:"COMPLEX_FIELD3,something,default:value3"`
	}

	cfg := &ComplexConfig{}
	if err := Load(cfg); err != nil {
		t.Errorf("Load() failed: %v", err)
	}

	if cfg.Field1 != "value1" {
		t.Errorf("Field1 = %v, want %v", cfg.Field1, "value1")
	}
	if cfg.Field2 != "value2" {
		t.Errorf("Field2 = %v, want %v", cfg.Field2, "value2")
	}
	if cfg.Field3 != "value3" {
		t.Errorf("Field3 = %v, want %v", cfg.Field3, "value3")
	}
}

func TestUnsupportedFieldType(t *testing.T) {
	type UnsupportedConfig struct {
		SliceField []string `env:"TEST_SLICE"`
	}

	t.Setenv("BEAVER_TEST_SLICE", "a,b")

	cfg := &UnsupportedConfig{}
	if err := Load(cfg); err != nil {
		t.Errorf("Load() should not error for unsupported types, got: %v", err)
	}
	if cfg.SliceField != nil {
		t.Errorf("SliceField = %v, want nil", cfg.SliceField)
	}
}
