package adapter

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/teranos/sketchflow/errors"
)

var optionValidator = newOptionValidator()

// newOptionValidator reports fields by their option key.
func newOptionValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

// DecodeOptions decodes an open option bag into a typed options struct
// (mapstructure tags), then checks its validate tags. Values are weakly
// typed, so "true" and "12" from the command line decode into bool and int
// fields. Keys the struct does not declare are ignored.
//
// Failures are marked as adapter generation errors.
func DecodeOptions(opts Options, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to build options decoder"), errors.ErrAdapterGeneration)
	}
	if err := decoder.Decode(map[string]any(opts)); err != nil {
		return errors.Mark(errors.Wrap(err, "invalid adapter options"), errors.ErrAdapterGeneration)
	}

	if err := optionValidator.Struct(target); err != nil {
		return errors.Mark(errors.Newf("invalid adapter options: %s", describeValidation(err)), errors.ErrAdapterGeneration)
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			msgs[i] = fe.Field() + " failed " + fe.Tag() + "=" + fe.Param()
		} else {
			msgs[i] = fe.Field() + " failed " + fe.Tag()
		}
	}
	return strings.Join(msgs, ", ")
}
