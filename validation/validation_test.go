package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2HgO/subscriber-requests-go/errors"
	"github.com/2HgO/subscriber-requests-go/models"
	"github.com/2HgO/subscriber-requests-go/types/requests"
)

func assertInvalidFormat(t *testing.T, err error, rule string) {
	t.Helper()
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.ErrInvalidFormat, appErr.Type)
	assert.Equal(t, rule, appErr.Rule)
}

func TestName(t *testing.T) {
	for _, valid := range []string{"Иванов", "Ёлкин", "Ли", "Пётр"} {
		got, err := Name(valid)
		assert.NoError(t, err, valid)
		assert.Equal(t, valid, got)
	}

	for _, invalid := range []string{"", "иванов", "Иванов2", "И", "ИВанов", "Ivanov", "Иван ов", "Иван-Петров", " Иванов", "Иванов "} {
		_, err := Name(invalid)
		assertInvalidFormat(t, err, RuleCyrillicName)
	}
}

func TestNameRejectsDecomposedYo(t *testing.T) {
	// Е followed by a combining diaeresis
	_, err := Name("Фе\u0308доров")
	assertInvalidFormat(t, err, RuleCyrillicName)
}

func TestPhone(t *testing.T) {
	got, err := Phone("+79991234567")
	require.NoError(t, err)
	assert.Equal(t, "+79991234567", got)

	for _, invalid := range []string{"+7999123456", "+799912345678", "79991234567", "+89991234567", "+7999123456a", "+7 999 123 45 67", "+7-999-123-45-67", "+7٩٩٩1234567"} {
		_, err := Phone(invalid)
		assertInvalidFormat(t, err, RulePhone)
	}
}

func TestDate(t *testing.T) {
	got, err := Date("1990-05-20")
	require.NoError(t, err)
	assert.Equal(t, models.Date{Year: 1990, Month: time.May, Day: 20}, got)

	_, err = Date("2024-02-29")
	assert.NoError(t, err)
	_, err = Date("2999-01-01")
	assert.NoError(t, err)

	for _, invalid := range []string{"", "2023-02-29", "1990-13-01", "1990-04-31", "20.05.1990", "1990-5-20", "not a date"} {
		_, err := Date(invalid)
		assertInvalidFormat(t, err, RuleDate)
	}
}

func TestEmail(t *testing.T) {
	for _, valid := range []string{"ivan@example.com", "ivan.petrov+tag@mail.example.ru"} {
		got, err := Email(valid)
		assert.NoError(t, err, valid)
		assert.Equal(t, valid, got)
	}

	got, err := Email("Ivan.Petrov@Mail.Example.RU")
	require.NoError(t, err)
	assert.Equal(t, "Ivan.Petrov@mail.example.ru", got)

	for _, invalid := range []string{"", "ivan", "ivan@", "@example.com", "ivan@localhost", "ivan@@example.com", "ivan@exa mple.com"} {
		_, err := Email(invalid)
		assertInvalidFormat(t, err, RuleEmail)
	}
}

func body(t *testing.T, fields map[string]any) requests.CreateSubscriberRequest {
	t.Helper()
	req := requests.CreateSubscriberRequest{}
	for key, value := range fields {
		raw, err := json.Marshal(value)
		require.NoError(t, err)
		req[key] = raw
	}
	return req
}

func validFields() map[string]any {
	return map[string]any{
		"last_name":    "Петров",
		"first_name":   "Иван",
		"birth_date":   "1990-05-20",
		"phone_number": "+79161234567",
		"email":        "ivan@example.com",
	}
}

func TestValidate(t *testing.T) {
	record, err := Validate(body(t, validFields()))
	require.NoError(t, err)

	assert.Equal(t, &models.SubscriberRequest{
		LastName:    "Петров",
		FirstName:   "Иван",
		BirthDate:   models.Date{Year: 1990, Month: time.May, Day: 20},
		PhoneNumber: "+79161234567",
		Email:       "ivan@example.com",
	}, record)
}

func TestValidateReportsSingleInvalidField(t *testing.T) {
	cases := map[string]any{
		"last_name":    "петров",
		"first_name":   "Иван2",
		"birth_date":   "1990-02-30",
		"phone_number": "+7916123456",
		"email":        "ivan@example",
	}
	for field, value := range cases {
		fields := validFields()
		fields[field] = value

		_, err := Validate(body(t, fields))
		appErr := errors.AsAppError(err)

		assert.Equal(t, errors.ErrInvalidFormat, appErr.Type, field)
		assert.Equal(t, field, appErr.Field)
		assert.Equal(t, 422, appErr.Code)
	}
}

func TestValidateMissingField(t *testing.T) {
	for _, rule := range Rules {
		fields := validFields()
		delete(fields, rule.Field)

		_, err := Validate(body(t, fields))
		appErr := errors.AsAppError(err)

		assert.Equal(t, errors.ErrMissingField, appErr.Type)
		assert.Equal(t, rule.Field, appErr.Field)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	for _, value := range []any{nil, 42, true, []string{"Петров"}, map[string]string{}} {
		fields := validFields()
		fields["last_name"] = value

		_, err := Validate(body(t, fields))
		appErr := errors.AsAppError(err)

		assert.Equal(t, errors.ErrTypeMismatch, appErr.Type)
		assert.Equal(t, "last_name", appErr.Field)
	}
}

func TestValidateChecksTypesBeforeFormats(t *testing.T) {
	fields := validFields()
	fields["last_name"] = "петров"
	fields["email"] = 7

	_, err := Validate(body(t, fields))
	appErr := errors.AsAppError(err)

	assert.Equal(t, errors.ErrTypeMismatch, appErr.Type)
	assert.Equal(t, "email", appErr.Field)
}

func TestValidateReportsFirstFailingField(t *testing.T) {
	fields := validFields()
	fields["phone_number"] = "8-916-123-45-67"
	fields["first_name"] = "ivan"

	_, err := Validate(body(t, fields))

	assert.Equal(t, "first_name", errors.AsAppError(err).Field)
}
