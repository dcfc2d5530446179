package requests

import "encoding/json"

const (
	FieldLastName    = "last_name"
	FieldFirstName   = "first_name"
	FieldBirthDate   = "birth_date"
	FieldPhoneNumber = "phone_number"
	FieldEmail       = "email"
)

// Aliases maps the Russian field names accepted on input to their canonical
// names.
var Aliases = map[string]string{
	"фамилия":        FieldLastName,
	"имя":            FieldFirstName,
	"дата_рождения":  FieldBirthDate,
	"номер_телефона": FieldPhoneNumber,
}

// CreateSubscriberRequest holds the undecoded body fields of a create
// request. Field values are type checked by the validation package.
type CreateSubscriberRequest map[string]json.RawMessage

// ResolveAliases copies aliased fields to their canonical name. A canonical
// field that is already present is left untouched.
func (c CreateSubscriberRequest) ResolveAliases() {
	for alias, field := range Aliases {
		value, ok := c[alias]
		if !ok {
			continue
		}
		if _, exists := c[field]; !exists {
			c[field] = value
		}
		delete(c, alias)
	}
}

// CreateSubscriberForm is the form-encoded shape of CreateSubscriberRequest.
type CreateSubscriberForm struct {
	LastName    *string `schema:"last_name"`
	FirstName   *string `schema:"first_name"`
	BirthDate   *string `schema:"birth_date"`
	PhoneNumber *string `schema:"phone_number"`
	Email       *string `schema:"email"`

	LastNameAlias    *string `schema:"фамилия"`
	FirstNameAlias   *string `schema:"имя"`
	BirthDateAlias   *string `schema:"дата_рождения"`
	PhoneNumberAlias *string `schema:"номер_телефона"`
}

func (f *CreateSubscriberForm) Request() (CreateSubscriberRequest, error) {
	req := CreateSubscriberRequest{}
	for key, value := range map[string]*string{
		FieldLastName:    f.LastName,
		FieldFirstName:   f.FirstName,
		FieldBirthDate:   f.BirthDate,
		FieldPhoneNumber: f.PhoneNumber,
		FieldEmail:       f.Email,
		"фамилия":        f.LastNameAlias,
		"имя":            f.FirstNameAlias,
		"дата_рождения":  f.BirthDateAlias,
		"номер_телефона": f.PhoneNumberAlias,
	} {
		if value == nil {
			continue
		}
		raw, err := json.Marshal(*value)
		if err != nil {
			return nil, err
		}
		req[key] = raw
	}
	req.ResolveAliases()
	return req, nil
}
