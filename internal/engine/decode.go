package engine

import (
	"errors"
	"regexp"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/mitchellh/mapstructure"
)

var quotedField = regexp.MustCompile(`'([^']+)'`)

// decodeInputs fills target from a generic input map. Numbers given as
// strings or integers are converted, keys match field names
// case-insensitively, and unknown keys are rejected.
func decodeInputs(inputs map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(inputs); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return calcerr.New(calcerr.InvalidInput, err.Error())
	}

	var fields []string
	for _, msg := range merr.Errors {
		if m := quotedField.FindStringSubmatch(msg); m != nil {
			fields = append(fields, m[1])
		}
	}
	return calcerr.New(calcerr.InvalidInput, strings.Join(merr.Errors, "; "), fields...)
}
