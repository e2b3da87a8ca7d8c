package handlers

import (
	"bytes"
	"errors"
	"strconv"
)

// Decimal accepts both 12.5 and "12.5" in request bodies.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*d = Decimal(v)
	return nil
}

// Integer accepts both 3 and "3" in request bodies.
type Integer int64

func (i *Integer) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*i = Integer(v)
	return nil
}

func unquote(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = bytes.TrimSpace(b[1 : len(b)-1])
	}
	if len(b) == 0 {
		return "", errors.New("empty number")
	}
	return string(b), nil
}

func decimalPtr(d *Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := float64(*d)
	return &v
}

func intPtr(i *Integer) *int {
	if i == nil {
		return nil
	}
	v := int(*i)
	return &v
}
