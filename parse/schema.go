package parse

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/teranos/sketchflow/internal/util"
	"github.com/teranos/sketchflow/sketch"
)

// Point is a position relative to the parent shape.
type Point struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// Size is a non-negative extent.
type Size struct {
	Width  *float64 `json:"width" validate:"required,gte=0"`
	Height *float64 `json:"height" validate:"required,gte=0"`
}

// At builds a Point.
func At(x, y float64) *Point {
	return &Point{X: util.Ptr(x), Y: util.Ptr(y)}
}

// Sized builds a Size.
func Sized(width, height float64) *Size {
	return &Size{Width: util.Ptr(width), Height: util.Ptr(height)}
}

func layoutOf(p *Point, s *Size, rotation *float64) sketch.Layout {
	l := sketch.Layout{X: *p.X, Y: *p.Y, Width: *s.Width, Height: *s.Height}
	if rotation != nil {
		r := *rotation
		l.Rotation = &r
	}
	return l
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkItems validates every payload item, reporting the first violation as
// a sketch.ValidationError located under "payload[i]".
func checkItems[T any](items []T) error {
	for i := range items {
		if err := structValidator.Struct(&items[i]); err != nil {
			return schemaError(i, err)
		}
	}
	return nil
}

func schemaError(index int, err error) error {
	base := fmt.Sprintf("payload[%d]", index)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &sketch.ValidationError{Path: base, Message: err.Error()}
	}

	fe := verrs[0]
	path := base
	// Namespace starts with the Go type name of the item, e.g. "Vector.size.width"
	if _, rest, found := strings.Cut(fe.Namespace(), "."); found {
		path += "." + rest
	}
	return &sketch.ValidationError{Path: path, Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return fmt.Sprintf("must be one of %s, got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func payloadError(err error) error {
	return &sketch.ValidationError{Path: "payload", Message: err.Error()}
}
