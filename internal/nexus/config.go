package nexus

import (
	"context"
	"flag"
	"fmt"
	"os"
	"reflect"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigError represents domain-specific configuration errors
type ConfigError struct {
	Code    string
	Message string
	Field   string
	Cause   error
}

func (e ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e ConfigError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeInvalidType   = "CONFIG_INVALID_TYPE"
	ErrCodeFileNotFound  = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation    = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment   = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge         = "CONFIG_MERGE_FAILED"
	ErrCodeSecurityCheck = "CONFIG_SECURITY_CHECK_FAILED"
)

// Validator handles configuration validation
type Validator interface {
	Validate(ctx context.Context, cfg interface{}) error
}

// SecurityChecker performs security validation on configuration
type SecurityChecker interface {
	CheckSecurity(ctx context.Context, cfg interface{}) error
}

type LoaderOptions struct {
	DefaultFileName string
	FileFlag        string
	FileName        string
	OnlyEnvironment bool
	Defaults        interface{}
	Validator       Validator
	SecurityChecker SecurityChecker
	FlagSet         *flag.FlagSet
	Args            []string
}

// Loader reads a config struct from an optional file and the environment.
type Loader struct {
	options LoaderOptions
}

type LoaderOption func(*LoaderOptions)

// WithDefaultFileName sets the file used when the flag is absent, if it exists.
func WithDefaultFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.DefaultFileName = fileName
	}
}

// WithFileFlag sets the command line flag naming the configuration file.
func WithFileFlag(name string, fs *flag.FlagSet, args []string) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileFlag = name
		o.FlagSet = fs
		o.Args = args
		o.FileName = ""
	}
}

func WithFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileName = fileName
		o.FileFlag = ""
	}
}

func WithOnlyEnvironment() LoaderOption {
	return func(o *LoaderOptions) {
		o.OnlyEnvironment = true
		o.FileFlag = ""
		o.FileName = ""
	}
}

// WithDefaults fills zero-valued fields from defaults after file and env are read.
// defaults must be a pointer to the same struct type as the loaded config.
func WithDefaults(defaults interface{}) LoaderOption {
	return func(o *LoaderOptions) {
		o.Defaults = defaults
	}
}

func WithValidator(v Validator) LoaderOption {
	return func(o *LoaderOptions) {
		o.Validator = v
	}
}

func WithSecurityChecker(sc SecurityChecker) LoaderOption {
	return func(o *LoaderOptions) {
		o.SecurityChecker = sc
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		DefaultFileName: ".env",
		Validator:       &DefaultValidator{},
		SecurityChecker: &DefaultSecurityChecker{},
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Loader{options: options}
}

// Load populates cfg. Order: file (when resolved) then environment, then defaults for
// whatever is still zero, then the security check and struct validation.
func (l *Loader) Load(ctx context.Context, cfg interface{}) error {
	if err := validateInputType(cfg); err != nil {
		return err
	}

	fileName := ""
	if !l.options.OnlyEnvironment {
		var err error
		if fileName, err = l.resolveFileName(); err != nil {
			return err
		}
	}

	if fileName != "" {
		// ReadConfig applies the environment on top of the file.
		if err := cleanenv.ReadConfig(fileName, cfg); err != nil {
			return &ConfigError{
				Code:    ErrCodeFileNotFound,
				Message: fmt.Sprintf("failed to read configuration file %s", fileName),
				Cause:   err,
			}
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return &ConfigError{Code: ErrCodeEnvironment, Message: "failed to read environment variables", Cause: err}
	}

	if l.options.Defaults != nil {
		if err := mergo.Merge(cfg, l.options.Defaults); err != nil {
			return &ConfigError{Code: ErrCodeMerge, Message: "failed to merge defaults", Cause: err}
		}
	}

	if l.options.SecurityChecker != nil {
		if err := l.options.SecurityChecker.CheckSecurity(ctx, cfg); err != nil {
			return &ConfigError{Code: ErrCodeSecurityCheck, Message: "security validation failed", Cause: err}
		}
	}

	if l.options.Validator != nil {
		if err := l.options.Validator.Validate(ctx, cfg); err != nil {
			return &ConfigError{Code: ErrCodeValidation, Message: "configuration validation failed", Cause: err}
		}
	}

	return nil
}

func validateInputType(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return &ConfigError{
			Code:    ErrCodeInvalidType,
			Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg),
		}
	}
	return nil
}

func (l *Loader) resolveFileName() (string, error) {
	if l.options.FileName != "" {
		return l.options.FileName, nil
	}

	if l.options.FileFlag != "" && l.options.FlagSet != nil {
		fs := l.options.FlagSet
		f := fs.Lookup(l.options.FileFlag)
		if f == nil {
			fs.String(l.options.FileFlag, "", "configuration file")
			f = fs.Lookup(l.options.FileFlag)
		}
		if !fs.Parsed() {
			if err := fs.Parse(l.options.Args); err != nil {
				return "", &ConfigError{Code: ErrCodeInvalidType, Message: "invalid command line", Cause: err}
			}
		}
		if name := f.Value.String(); name != "" {
			return name, nil
		}
	}

	if l.options.DefaultFileName != "" {
		if _, err := os.Stat(l.options.DefaultFileName); err == nil {
			return l.options.DefaultFileName, nil
		}
	}
	return "", nil
}

// DefaultValidator validates `validate` struct tags with go-playground/validator.
type DefaultValidator struct {
	validator *validator.Validate
}

func (v *DefaultValidator) Validate(_ context.Context, cfg interface{}) error {
	if v.validator == nil {
		v.validator = validator.New()
	}
	return v.validator.Struct(cfg)
}
