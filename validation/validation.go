package validation

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/2HgO/subscriber-requests-go/errors"
	"github.com/2HgO/subscriber-requests-go/models"
	"github.com/2HgO/subscriber-requests-go/types/requests"
)

var (
	nameRegex  = regexp.MustCompile(`^[А-ЯЁ][а-яё]+$`)
	phoneRegex = regexp.MustCompile(`^\+7[0-9]{10}$`)

	structValidator = validator.New()
	lowerDomain     = cases.Lower(language.Und)
)

const (
	RuleCyrillicName = "cyrillic_name"
	RulePhone        = "phone_ru"
	RuleDate         = "iso8601_date"
	RuleEmail        = "email"
)

// Name accepts a capitalised Cyrillic word: one uppercase letter followed by
// one or more lowercase letters. The value is returned exactly as given.
func Name(value string) (string, error) {
	if !nameRegex.MatchString(value) {
		return "", errors.NewInvalidFormatError("", RuleCyrillicName, "must start with an uppercase letter and contain only Cyrillic letters")
	}
	return value, nil
}

// Phone accepts +7 followed by exactly ten digits.
func Phone(value string) (string, error) {
	if !phoneRegex.MatchString(value) {
		return "", errors.NewInvalidFormatError("", RulePhone, "phone number must be in the format +7XXXXXXXXXX")
	}
	return value, nil
}

func Date(value string) (models.Date, error) {
	date, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, errors.NewInvalidFormatError("", RuleDate, "must be a valid date in the format YYYY-MM-DD")
	}
	return date, nil
}

// Email accepts a standard address with a dotted domain. The domain is
// returned lower-cased, the local part as given.
func Email(value string) (string, error) {
	invalid := errors.NewInvalidFormatError("", RuleEmail, "must be a valid email address")
	if err := structValidator.Var(value, "email"); err != nil {
		return "", invalid
	}
	at := strings.LastIndexByte(value, '@')
	if at < 0 || !strings.Contains(value[at+1:], ".") {
		return "", invalid
	}
	return value[:at+1] + lowerDomain.String(value[at+1:]), nil
}

// Rule binds one predicate to the request field it checks and the record
// field it fills. Expected names the primitive the raw value must decode to.
type Rule struct {
	Field    string
	Expected string
	Apply    func(value string, record *models.SubscriberRequest) error
}

// Rules are evaluated in order and the first failing rule is reported.
var Rules = []Rule{
	{
		Field:    requests.FieldLastName,
		Expected: "string",
		Apply: func(value string, record *models.SubscriberRequest) (err error) {
			record.LastName, err = Name(value)
			return
		},
	},
	{
		Field:    requests.FieldFirstName,
		Expected: "string",
		Apply: func(value string, record *models.SubscriberRequest) (err error) {
			record.FirstName, err = Name(value)
			return
		},
	},
	{
		Field:    requests.FieldBirthDate,
		Expected: "date string",
		Apply: func(value string, record *models.SubscriberRequest) (err error) {
			record.BirthDate, err = Date(value)
			return
		},
	},
	{
		Field:    requests.FieldPhoneNumber,
		Expected: "string",
		Apply: func(value string, record *models.SubscriberRequest) (err error) {
			record.PhoneNumber, err = Phone(value)
			return
		},
	},
	{
		Field:    requests.FieldEmail,
		Expected: "string",
		Apply: func(value string, record *models.SubscriberRequest) (err error) {
			record.Email, err = Email(value)
			return
		},
	},
}

var null = []byte("null")

// Validate turns a raw request into a normalized record. Presence and type
// are checked for every field before any format rule runs. Only the first
// failure is returned.
func Validate(req requests.CreateSubscriberRequest) (*models.SubscriberRequest, error) {
	values := make([]string, len(Rules))
	for i, rule := range Rules {
		raw, ok := req[rule.Field]
		if !ok {
			return nil, errors.NewMissingFieldError(rule.Field)
		}
		if bytes.Equal(bytes.TrimSpace(raw), null) {
			return nil, errors.NewTypeMismatchError(rule.Field, rule.Expected)
		}
		if err := json.Unmarshal(raw, &values[i]); err != nil {
			return nil, errors.NewTypeMismatchError(rule.Field, rule.Expected)
		}
	}

	record := new(models.SubscriberRequest)
	for i, rule := range Rules {
		if err := rule.Apply(values[i], record); err != nil {
			return nil, errors.WithField(err, rule.Field)
		}
	}
	return record, nil
}
