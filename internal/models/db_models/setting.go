package db_models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"edupanel/pkg/utils"
)

type SettingType string

const (
	SettingString  SettingType = "string"
	SettingNumber  SettingType = "number"
	SettingBoolean SettingType = "boolean"
	SettingJSON    SettingType = "json"
)

func (t SettingType) Valid() bool {
	switch t {
	case SettingString, SettingNumber, SettingBoolean, SettingJSON:
		return true
	}
	return false
}

// StoredJSON is a JSON column that PostgreSQL keeps as jsonb and every other
// dialect keeps as TEXT. A SQLite JSON column has NUMERIC affinity, so numbers
// read back as int64 or float64 instead of their JSON text.
type StoredJSON datatypes.JSON

func (StoredJSON) GormDataType() string { return "json" }

func (StoredJSON) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

func (j StoredJSON) Value() (driver.Value, error) {
	return datatypes.JSON(j).Value()
}

func (j *StoredJSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*j = StoredJSON(strconv.FormatInt(v, 10))
		return nil
	case float64:
		*j = StoredJSON(strconv.FormatFloat(v, 'g', -1, 64))
		return nil
	}
	return (*datatypes.JSON)(j).Scan(value)
}

func (j StoredJSON) MarshalJSON() ([]byte, error) {
	return datatypes.JSON(j).MarshalJSON()
}

func (j StoredJSON) String() string { return string(j) }

type Setting struct {
	BaseModel
	Key         string      `gorm:"uniqueIndex;not null"`
	Value       StoredJSON  `gorm:"not null"`
	Description string
	Type        SettingType `gorm:"type:varchar(10);not null"`
}

// SettingValue is one of StringValue, NumberValue, BoolValue or JSONValue.
type SettingValue interface {
	Type() SettingType
	Interface() any
	isSettingValue()
}

type (
	StringValue string
	NumberValue float64
	BoolValue   bool
	JSONValue   json.RawMessage
)

func (StringValue) Type() SettingType { return SettingString }
func (NumberValue) Type() SettingType { return SettingNumber }
func (BoolValue) Type() SettingType   { return SettingBoolean }
func (JSONValue) Type() SettingType   { return SettingJSON }

func (v StringValue) Interface() any { return string(v) }
func (v NumberValue) Interface() any { return float64(v) }
func (v BoolValue) Interface() any   { return bool(v) }
func (v JSONValue) Interface() any   { return json.RawMessage(v) }

func (StringValue) isSettingValue() {}
func (NumberValue) isSettingValue() {}
func (BoolValue) isSettingValue()   {}
func (JSONValue) isSettingValue()   {}

// InferSettingType guesses a type from the shape of a JSON value.
func InferSettingType(raw json.RawMessage) SettingType {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return SettingString
	}
	switch c := trimmed[0]; {
	case c == '"':
		return SettingString
	case c == 't' || c == 'f':
		return SettingBoolean
	case c == '-' || (c >= '0' && c <= '9'):
		return SettingNumber
	default:
		return SettingJSON
	}
}

// ParseSettingValue coerces a raw JSON request value into the variant for t.
func ParseSettingValue(t SettingType, raw json.RawMessage) (SettingValue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, utils.NewValidationError("value must be valid JSON")
	}

	var asString string
	isString := json.Unmarshal(trimmed, &asString) == nil

	switch t {
	case SettingString:
		if isString {
			return StringValue(asString), nil
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return nil, utils.NewValidationError("value must be valid JSON")
		}
		return StringValue(buf.String()), nil

	case SettingNumber:
		if isString {
			f, err := strconv.ParseFloat(strings.TrimSpace(asString), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, utils.NewValidationError("value must be a number")
			}
			return NumberValue(f), nil
		}
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, utils.NewValidationError("value must be a number")
		}
		return NumberValue(f), nil

	case SettingBoolean:
		if isString {
			return BoolValue(asString == "true"), nil
		}
		return BoolValue(string(trimmed) == "true"), nil

	case SettingJSON:
		if isString {
			if !json.Valid([]byte(asString)) {
				return nil, utils.NewValidationError("value must be a valid JSON string")
			}
			return JSONValue(asString), nil
		}
		return JSONValue(trimmed), nil
	}

	return nil, fmt.Errorf("%w: %q", utils.ErrInvalidSettingType, t)
}

// EncodeSettingValue produces the stored JSON column value.
func EncodeSettingValue(v SettingValue) (StoredJSON, error) {
	if j, ok := v.(JSONValue); ok {
		var buf bytes.Buffer
		if err := json.Compact(&buf, j); err != nil {
			return nil, err
		}
		return StoredJSON(buf.Bytes()), nil
	}
	b, err := json.Marshal(v.Interface())
	if err != nil {
		return nil, err
	}
	return StoredJSON(b), nil
}

// DecodeSettingValue reads a stored value according to the row's type.
// A stored value that no longer matches its type is surfaced as raw JSON.
func DecodeSettingValue(t SettingType, stored StoredJSON) SettingValue {
	switch t {
	case SettingString:
		var s string
		if json.Unmarshal(stored, &s) == nil {
			return StringValue(s)
		}
	case SettingNumber:
		var f float64
		if json.Unmarshal(stored, &f) == nil {
			return NumberValue(f)
		}
	case SettingBoolean:
		var b bool
		if json.Unmarshal(stored, &b) == nil {
			return BoolValue(b)
		}
	}
	return JSONValue(stored)
}

func (s *Setting) Decoded() SettingValue {
	return DecodeSettingValue(s.Type, s.Value)
}
