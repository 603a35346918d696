package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Структурные списки хранятся в колонках jsonb.
// Valuer/Scanner ниже кодируют их при записи и декодируют при чтении.

type Awardee struct {
	Name    string `json:"name"`
	Program string `json:"program"`
	Year    string `json:"year"`
	Award   string `json:"award"`
}

type Awardees []Awardee

type Attachment struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	FileType string `json:"fileType"`
}

type Attachments []Attachment

type Admission struct {
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type Admissions []Admission

type PriceTier struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type PriceTiers []PriceTier

func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования jsonb: %w", err)
	}
	return data, nil
}

func jsonbScan(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}

	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("неподдерживаемый тип jsonb: %T", src)
	}

	return json.Unmarshal(data, dst)
}

func (a Awardees) Value() (driver.Value, error) {
	if a == nil {
		a = Awardees{}
	}
	return jsonbValue(a)
}

func (a *Awardees) Scan(src interface{}) error {
	return jsonbScan(src, a)
}

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		a = Attachments{}
	}
	return jsonbValue(a)
}

func (a *Attachments) Scan(src interface{}) error {
	return jsonbScan(src, a)
}

func (a Admissions) Value() (driver.Value, error) {
	if a == nil {
		a = Admissions{}
	}
	return jsonbValue(a)
}

func (a *Admissions) Scan(src interface{}) error {
	return jsonbScan(src, a)
}

func (p PriceTiers) Value() (driver.Value, error) {
	if p == nil {
		p = PriceTiers{}
	}
	return jsonbValue(p)
}

func (p *PriceTiers) Scan(src interface{}) error {
	return jsonbScan(src, p)
}
