package config

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/mu2e/jobdef/internal/filestage"
)

// CustomHooks are passed to viper's Unmarshal. Viper keeps only the last DecodeHook option, so all hooks are
// composed into one.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		LocationDecodeHook(),
		ProtocolDecodeHook(),
	)),
}

func LocationDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// check that src and target types are valid
		if f.Kind() != reflect.String || t != reflect.TypeOf(filestage.Location("")) {
			return data, nil
		}
		return filestage.ParseLocation(reflect.ValueOf(data).String())
	}
}

func ProtocolDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(filestage.Protocol("")) {
			return data, nil
		}
		return filestage.ParseProtocol(reflect.ValueOf(data).String())
	}
}
