package resumes

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalize applies defaults and replaces nil lists with empty ones so the
// stored and returned shapes are stable.
func normalize(f Fields) Fields {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		f.Title = DefaultTitle
	}
	f.Template = strings.TrimSpace(f.Template)
	if f.Template == "" {
		f.Template = DefaultTemplate
	}
	f.PersonalInfo.FullName = strings.TrimSpace(f.PersonalInfo.FullName)
	f.PersonalInfo.Email = strings.TrimSpace(f.PersonalInfo.Email)

	f.Experience = emptyIfNil(f.Experience)
	for i := range f.Experience {
		f.Experience[i].Achievements = emptyIfNil(f.Experience[i].Achievements)
	}
	f.Education = emptyIfNil(f.Education)
	for i := range f.Education {
		f.Education[i].Achievements = emptyIfNil(f.Education[i].Achievements)
	}
	f.Projects = emptyIfNil(f.Projects)
	for i := range f.Projects {
		f.Projects[i].Technologies = emptyIfNil(f.Projects[i].Technologies)
	}
	f.Certifications = emptyIfNil(f.Certifications)
	f.Skills.Technical = emptyIfNil(f.Skills.Technical)
	f.Skills.Soft = emptyIfNil(f.Skills.Soft)
	f.Skills.Languages = emptyIfNil(f.Skills.Languages)
	f.Skills.Tools = emptyIfNil(f.Skills.Tools)
	if f.AISuggestions != nil {
		f.AISuggestions.Suggestions = emptyIfNil(f.AISuggestions.Suggestions)
	}
	return f
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// check runs the struct tags and reports failures by JSON path,
// e.g. "experience[0].company".
func check(f Fields) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Issue: issue(fe),
		})
	}
	return out
}

func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func issue(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "max":
		return "must be between 0 and 100"
	default:
		return "invalid"
	}
}
