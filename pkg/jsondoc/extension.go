package jsondoc

import (
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

func init() {
	jsoniter.RegisterExtension(&jsonExtension{})
}

type jsonExtension struct {
	jsoniter.DummyExtension
}

// DocumentEncoder lets jsoniter write Documents embedded in other types
// without going through MarshalJSON.
type DocumentEncoder struct{}

func (DocumentEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return len((*Document)(ptr).props) == 0
}

func (DocumentEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	defaultEncoder.writeDocument(stream, (*Document)(ptr))
}

type ValueEncoder struct{}

func (ValueEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Value)(ptr).kind == KindEmpty
}

func (ValueEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	defaultEncoder.writeValue(stream, *(*Value)(ptr))
}

func (e *jsonExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch typ {
	case reflect2.TypeOf(Document{}):
		return DocumentEncoder{}
	case reflect2.TypeOf(Value{}):
		return ValueEncoder{}
	}
	return nil
}
