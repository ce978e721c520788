package renderers

import (
	"reflect"

	"github.com/marrick66/spec-agent-skills/pkg/types/tools"
)

// extractMetadata copies metadata into target, accepting both pointer and
// value metadata. Results decoded from JSON hold values; results built in
// process may hold either.
func extractMetadata(metadata tools.ToolMetadata, target any) bool {
	if metadata == nil {
		return false
	}

	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.IsNil() {
		return false
	}

	metadataValue := reflect.ValueOf(metadata)
	if metadataValue.Kind() == reflect.Ptr && !metadataValue.IsNil() {
		metadataValue = metadataValue.Elem()
	}

	targetElem := targetValue.Elem()
	if targetElem.Type() != metadataValue.Type() {
		return false
	}
	targetElem.Set(metadataValue)
	return true
}
