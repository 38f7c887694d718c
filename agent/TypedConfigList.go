package agent

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// TypedConfigList implements functionality for typing a ConfigList.
// In this way, a ConfigList can explicitly have its type stored so
// that when deserializing the ConfigList, we can deserialize it into
// its concrete type without knowing beforehand or declaring beforehand
// a variable of its concrete type.
type TypedConfigList struct {
	Type
	ConfigList
}

// NewTypedConfigList types the argument ConfigList and returns it
// as a TypedConfigList which explicitly holds its Type.
func NewTypedConfigList(c ConfigList) TypedConfigList {
	return TypedConfigList{Type: c.Type(), ConfigList: c}
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (j *TypedConfigList) UnmarshalJSON(data []byte) error {
	configs, typeName, err := unmarshalConfigList(
		data,
		"Type",
		"ConfigList")
	if err != nil {
		return err
	}

	j.Type = typeName
	j.ConfigList = configs

	return nil
}

// unmarshalConfigList uses reflection to unmarshall a ConfigList into
// its concrete type. Both the ConfigList and its Type are returned.
func unmarshalConfigList(data []byte, typeJsonField,
	valueJsonField string) (ConfigList, Type, error) {
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", err
	}

	name, ok := lookup(m, typeJsonField).(string)
	if !ok {
		return nil, "", errors.Errorf("unmarshalConfigList: missing %q "+
			"field", typeJsonField)
	}
	typeName := Type(name)

	ty, found := registeredTypes[typeName]
	if !found {
		return nil, "", errors.Errorf("unmarshalConfigList: no agent "+
			"type %q registered", typeName)
	}
	value := reflect.New(ty).Interface()

	valueBytes, err := json.Marshal(lookup(m, valueJsonField))
	if err != nil {
		return nil, "", err
	}

	if err = json.Unmarshal(valueBytes, value); err != nil {
		return nil, "", errors.Wrapf(err, "unmarshalConfigList: could "+
			"not decode %v", typeName)
	}
	concreteValue := reflect.ValueOf(value).Elem().Interface().(ConfigList)

	return concreteValue, typeName, nil
}

// lookup returns the value in m whose key matches key case
// insensitively. Configuration files read through viper have their
// keys lowercased.
func lookup(m map[string]interface{}, key string) interface{} {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// At returns the Config at index i in the TypedConfigList
func (t *TypedConfigList) At(i int) Config {
	return ConfigAt(i, t.ConfigList)
}
