package customvalidator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	requestStages       = oneOf("New", "In Progress", "Repaired", "Scrap")
	requestTypes        = oneOf("Corrective", "Preventive")
	equipmentStatuses   = oneOf("Active", "Inactive", "Scrapped")
	userRoles           = oneOf("admin", "manager", "technician", "user")
	requirementStatuses = oneOf("pending", "approved", "rejected")
	priorities          = oneOf("Low", "Medium", "High")

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// RegisterCustomValidations registers the GearGuard rules on v.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"request_stage":      requestStages,
		"request_type":       requestTypes,
		"equipment_status":   equipmentStatuses,
		"user_role":          userRoles,
		"requirement_status": requirementStatuses,
		"priority":           priorities,
		"iso_date":           isISODate,
		"email":              isGoodEmailFormat,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// fieldString unwraps string and *string fields. ok is false for a nil pointer.
func fieldString(fl validator.FieldLevel) (string, bool) {
	f := fl.Field()
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return "", false
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}

func oneOf(values ...string) validator.Func {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		s, ok := fieldString(fl)
		if !ok {
			return true
		}
		_, found := allowed[s]
		return found
	}
}

// isISODate accepts RFC3339 timestamps and YYYY-MM-DD dates. An empty string passes so that
// optional fields can be cleared.
func isISODate(fl validator.FieldLevel) bool {
	s, ok := fieldString(fl)
	if !ok {
		return true
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	s, ok := fieldString(fl)
	if !ok {
		return true
	}
	return emailRegex.MatchString(s)
}
