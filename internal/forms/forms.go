package forms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Клиент сериализует сложные поля (agenda, awardees, admissions и т.д.)
// в multipart форму как JSON-строки. Здесь единый шаг декодирования и
// валидации, общий для create и update.

var validate = validator.New()

// DecodeJSONField разбирает JSON-строку из поля формы в dst.
// Пустое значение - не ошибка: поле просто не передано.
func DecodeJSONField(field, value string, dst interface{}) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return fmt.Errorf("поле %s содержит некорректный JSON: %w", field, err)
	}

	return nil
}

// ParseBool принимает и булево строковое представление, и "on"/"off" от форм.
func ParseBool(value string, fallback bool) bool {
	if value == "" {
		return fallback
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true
	case "off", "no":
		return false
	}
	return fallback
}

// ParseDate разбирает дату в формате RFC3339 либо YYYY-MM-DD.
func ParseDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("неверный формат даты: %s", value)
	}
	return &t, nil
}

// ValidateStruct прогоняет структуру через validator и собирает все
// отсутствующие обязательные поля в одно сообщение.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	missing := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		missing = append(missing, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("отсутствуют или некорректны обязательные поля: %s", strings.Join(missing, ", "))
}
