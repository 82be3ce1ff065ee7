package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/noah-isme/alumni-directory-api/internal/models"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
)

// alumniTextFields maps editable JSON field names to their nullable columns.
var alumniTextFields = map[string]func(*models.Alumni) **string{
	"gender":                  func(a *models.Alumni) **string { return &a.Gender },
	"programName":             func(a *models.Alumni) **string { return &a.ProgramName },
	"specialization":          func(a *models.Alumni) **string { return &a.Specialization },
	"department":              func(a *models.Alumni) **string { return &a.Department },
	"serialNo":                func(a *models.Alumni) **string { return &a.SerialNo },
	"email":                   func(a *models.Alumni) **string { return &a.Email },
	"phone":                   func(a *models.Alumni) **string { return &a.Phone },
	"linkedIn":                func(a *models.Alumni) **string { return &a.LinkedIn },
	"twitter":                 func(a *models.Alumni) **string { return &a.Twitter },
	"instagram":               func(a *models.Alumni) **string { return &a.Instagram },
	"facebook":                func(a *models.Alumni) **string { return &a.Facebook },
	"lastPosition":            func(a *models.Alumni) **string { return &a.LastPosition },
	"lastOrganization":        func(a *models.Alumni) **string { return &a.LastOrganization },
	"natureOfJob":             func(a *models.Alumni) **string { return &a.NatureOfJob },
	"currentLocationIndia":    func(a *models.Alumni) **string { return &a.CurrentLocationIndia },
	"currentOverseasLocation": func(a *models.Alumni) **string { return &a.CurrentOverseasLocation },
	"country":                 func(a *models.Alumni) **string { return &a.Country },
	"achievements":            func(a *models.Alumni) **string { return &a.Achievements },
	"collegeClubs":            func(a *models.Alumni) **string { return &a.CollegeClubs },
	"hostels":                 func(a *models.Alumni) **string { return &a.Hostels },
	"higherStudies":           func(a *models.Alumni) **string { return &a.HigherStudies },
	"startup":                 func(a *models.Alumni) **string { return &a.Startup },
	"photoLink":               func(a *models.Alumni) **string { return &a.PhotoLink },
}

var alumniYearFields = map[string]func(*models.Alumni) **int{
	"yearOfEntry":      func(a *models.Alumni) **int { return &a.YearOfEntry },
	"yearOfGraduation": func(a *models.Alumni) **int { return &a.YearOfGraduation },
}

// protectedAlumniKeys are never written from a proposal.
var protectedAlumniKeys = map[string]struct{}{
	"rollNumber": {},
	"id":         {},
	"_id":        {},
	"createdAt":  {},
	"updatedAt":  {},
	"__v":        {},
}

// mergeAlumniFields copies the proposed values onto record, field by field.
// Protected and unknown keys are returned in skipped. On a type mismatch the
// record is left untouched.
func mergeAlumniFields(record *models.Alumni, changes models.FieldSet) (applied, skipped []string, err error) {
	next := *record
	for _, key := range changes.Keys() {
		value := changes[key]
		if _, ok := protectedAlumniKeys[key]; ok {
			skipped = append(skipped, key)
			continue
		}

		switch {
		case key == "name":
			name, err := coerceText(key, value)
			if err != nil {
				return nil, nil, err
			}
			if name == nil {
				return nil, nil, appErrors.Clone(appErrors.ErrValidation, "name cannot be empty")
			}
			next.Name = *name
		case alumniTextFields[key] != nil:
			text, err := coerceText(key, value)
			if err != nil {
				return nil, nil, err
			}
			*alumniTextFields[key](&next) = text
		case alumniYearFields[key] != nil:
			year, err := coerceYear(key, value)
			if err != nil {
				return nil, nil, err
			}
			*alumniYearFields[key](&next) = year
		default:
			skipped = append(skipped, key)
			continue
		}
		applied = append(applied, key)
	}
	*record = next
	return applied, skipped, nil
}

// coerceText accepts strings (trimmed, blank clears), numbers or null.
func coerceText(key string, value interface{}) (*string, error) {
	var text string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		text = strings.TrimSpace(v)
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		text = v.String()
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a string or null", key))
	}
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

// coerceYear accepts whole numbers, integer strings or null.
func coerceYear(key string, value interface{}) (*int, error) {
	invalid := appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer or null", key))
	var year int
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return nil, invalid
		}
		year = int(v)
	case int:
		year = v
	case int64:
		year = int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, invalid
		}
		year = int(n)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, invalid
		}
		year = n
	default:
		return nil, invalid
	}
	return &year, nil
}
