package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CreatedAtLayout is the created_at format shared with the index mapping (yyyy-MM-dd HH:mm:ss).
const CreatedAtLayout = "2006-01-02 15:04:05"

// Car is a single catalog record. ID is the engine document id and is never part of the
// indexed source; it is empty until the first successful index call.
type Car struct {
	ID          string  `json:"-"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Price       float64 `json:"price"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// CarInput is the request payload for creating a car. Pointer fields distinguish absent
// (or null) values from zero values.
type CarInput struct {
	Make        *FlexString `json:"make" validate:"required"`
	Model       *FlexString `json:"model" validate:"required"`
	Year        *FlexInt    `json:"year" validate:"required"`
	Price       *FlexFloat  `json:"price" validate:"required"`
	Color       *FlexString `json:"color"`
	Description *FlexString `json:"description"`
}

// ValidationError is a client input error. Field is empty when the payload itself is unusable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so error messages match the payload keys.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseCar decodes and validates a create payload. Year and price are coerced rather than
// rejected, so "2020" and 2020.9 both become 2020.
func ParseCar(raw []byte, now time.Time) (*Car, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return nil, &ValidationError{Message: "Invalid JSON data"}
	}

	var in CarInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, &ValidationError{Message: "Invalid JSON data"}
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			return nil, &ValidationError{Field: field, Message: fmt.Sprintf("Missing required field: %s", field)}
		}
		return nil, err
	}

	car := &Car{
		Make:      string(*in.Make),
		Model:     string(*in.Model),
		Year:      int(*in.Year),
		Price:     float64(*in.Price),
		CreatedAt: now.UTC().Format(CreatedAtLayout),
	}
	if in.Color != nil {
		color := string(*in.Color)
		car.Color = &color
	}
	if in.Description != nil {
		desc := string(*in.Description)
		car.Description = &desc
	}
	return car, nil
}

// Response flattens the record and its id into one object for API clients.
func (c *Car) Response() map[string]any {
	out := map[string]any{
		"id":         c.ID,
		"make":       c.Make,
		"model":      c.Model,
		"year":       c.Year,
		"price":      c.Price,
		"created_at": c.CreatedAt,
	}
	if c.Color != nil {
		out["color"] = *c.Color
	}
	if c.Description != nil {
		out["description"] = *c.Description
	}
	return out
}

// FromSearchHit merges a document id into a copy of its source fields.
func FromSearchHit(id string, source map[string]any) map[string]any {
	out := make(map[string]any, len(source)+1)
	for k, v := range source {
		out[k] = v
	}
	out["id"] = id
	return out
}
