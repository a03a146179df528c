package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Price keeps a menu price the way it was supplied: a JSON number or a
// string. Legacy documents carry strings like "450" or "450/900".
type Price struct {
	Amount float64
	Text   string
}

func NumberPrice(amount float64) Price { return Price{Amount: amount} }

func TextPrice(text string) Price {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return Price{Amount: amount, Text: text}
}

func (p Price) IsText() bool { return p.Text != "" }

// decimalPrice is a plain decimal: no sign, exponent, hex or digit separators.
var decimalPrice = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Validate accepts a positive number or a non-empty numeric string.
func (p Price) Validate() error {
	if p.IsText() {
		text := strings.TrimSpace(p.Text)
		if !decimalPrice.MatchString(text) {
			return fmt.Errorf("price %q is not numeric", p.Text)
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(v, 0) {
			return fmt.Errorf("price %q is not numeric", p.Text)
		}
		if v <= 0 {
			return errors.New("price must be positive")
		}
		return nil
	}
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return errors.New("price is not a finite number")
	}
	if p.Amount <= 0 {
		return errors.New("price must be positive")
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.IsText() {
		return json.Marshal(p.Text)
	}
	return json.Marshal(p.Amount)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*p = Price{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = TextPrice(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("price must be a number or string: %w", err)
	}
	*p = NumberPrice(f)
	return nil
}

// Value stores the JSON form so a string price survives a round trip.
func (p Price) Value() (driver.Value, error) {
	b, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Price) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Price{}
		return nil
	case string:
		return p.UnmarshalJSON([]byte(v))
	case []byte:
		return p.UnmarshalJSON(v)
	case float64:
		*p = NumberPrice(v)
		return nil
	case int64:
		*p = NumberPrice(float64(v))
		return nil
	}
	return fmt.Errorf("unsupported price column type %T", src)
}
