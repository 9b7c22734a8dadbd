package provider

import (
	"encoding/json"
	"io"
	"os"
	"reflect"
	"strconv"
	"sync"

	"github.com/nodeflow-project/clickhouse-node/config"
	"github.com/nodeflow-project/clickhouse-node/utils"
)

const (
	ErrJsonInvalidSource = utils.Error("NewJsonProvider: Invalid source type")
)

// JsonProvider config.ConfigProvider backed by a JSON document
type JsonProvider struct {
	configData map[string]json.RawMessage
	m          sync.RWMutex
}

// NewJsonProvider creates a JsonProvider from a file name, io.Reader, []byte or json.RawMessage
func NewJsonProvider(src interface{}) (config.ConfigProvider, error) {
	p := &JsonProvider{
		configData: make(map[string]json.RawMessage),
	}
	switch v := src.(type) {
	case json.RawMessage:
		if err := json.Unmarshal(v, &p.configData); err != nil {
			return nil, err
		}
	case []byte:
		if err := json.Unmarshal(v, &p.configData); err != nil {
			return nil, err
		}
	case io.Reader:
		if err := p.fromReader(v); err != nil {
			return nil, err
		}
	case string:
		f, err := os.Open(v)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err = p.fromReader(f); err != nil {
			return nil, err
		}
	default:
		return nil, ErrJsonInvalidSource
	}
	return p, nil
}

func (j *JsonProvider) fromReader(src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &j.configData)
}

// Get de-serializes everything to dest
func (j *JsonProvider) Get(dest interface{}) error {
	j.m.RLock()
	defer j.m.RUnlock()
	data, err := json.Marshal(j.configData)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, dest); err != nil {
		return err
	}
	return applyDefaults(dest)
}

// GetKey de-serializes the value of a top-level key into dest
func (j *JsonProvider) GetKey(key string, dest interface{}) error {
	j.m.RLock()
	defer j.m.RUnlock()
	v, ok := j.configData[key]
	if !ok {
		return config.ErrNoKey
	}
	if err := json.Unmarshal(v, dest); err != nil {
		return err
	}
	return applyDefaults(dest)
}

// KeyExists returns true if the given top-level key exists
func (j *JsonProvider) KeyExists(key string) bool {
	j.m.RLock()
	defer j.m.RUnlock()
	_, ok := j.configData[key]
	return ok
}

// applyDefaults fills zero-valued struct fields from their "default" tag
func applyDefaults(dest interface{}) error {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		fieldValue := v.Field(i)

		if defaultVal := field.Tag.Get("default"); defaultVal != "" && fieldValue.IsZero() {
			switch fieldValue.Kind() {
			case reflect.String:
				fieldValue.SetString(defaultVal)
			case reflect.Int, reflect.Int32, reflect.Int64:
				if intVal, err := strconv.ParseInt(defaultVal, 10, 64); err == nil {
					fieldValue.SetInt(intVal)
				}
			case reflect.Bool:
				if boolVal, err := strconv.ParseBool(defaultVal); err == nil {
					fieldValue.SetBool(boolVal)
				}
			case reflect.Float64:
				if floatVal, err := strconv.ParseFloat(defaultVal, 64); err == nil {
					fieldValue.SetFloat(floatVal)
				}
			}
		}

		if fieldValue.Kind() == reflect.Struct && fieldValue.CanAddr() {
			if err := applyDefaults(fieldValue.Addr().Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}
