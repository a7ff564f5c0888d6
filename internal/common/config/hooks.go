package config

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/npsdata/bqfirestoresync/internal/warehouse"
)

// CustomHooks extends the decode hooks viper uses by default with the ones for our own types.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		TableRefDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)),
}

// TableRefDecodeHook decodes strings such as "dataset.table" or "project.dataset.table" into a warehouse.TableRef.
func TableRefDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// check that src and target types are valid
		if f.Kind() != reflect.String || t != reflect.TypeOf(warehouse.TableRef{}) {
			return data, nil
		}
		return warehouse.ParseTableRef(data.(string))
	}
}
