package table

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// MarshalJSON encodes missing cells as null, numbers as JSON numbers and
// text as strings. Infinities have no JSON number form and are written as
// the strings "+Inf" and "-Inf".
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNumber:
		if math.IsInf(c.num, 0) {
			return []byte(strconv.Quote(c.String())), nil
		}
		return strconv.AppendFloat(nil, c.num, 'g', -1, 64), nil
	case KindText:
		return json.Marshal(c.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = Missing()
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "+Inf":
			*c = Number(math.Inf(1))
		case "-Inf":
			*c = Number(math.Inf(-1))
		default:
			*c = Text(s)
		}
		return nil
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("cell: invalid JSON value %s", data)
		}
		*c = Number(v)
		return nil
	}
}
