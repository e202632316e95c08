package preview

import "texpeek/pkg/texture"

// Message types exchanged between the preview page and the host over the
// websocket. Inbound: extract, adjustExposure. Outbound: updateImage, error.
const (
	TypeExtract        = "extract"
	TypeAdjustExposure = "adjustExposure"
	TypeUpdateImage    = "updateImage"
	TypeError          = "error"
)

// Message is the wire schema, a flat union discriminated by Type. Fields
// not relevant to a given type stay empty and are omitted on the wire.
type Message struct {
	Type string `json:"type"`

	// extract / adjustExposure
	Selection *texture.Selection `json:"selection,omitempty"`

	// adjustExposure
	Exposure *float64 `json:"exposure,omitempty"`
	Display  string   `json:"display,omitempty"`
	View     string   `json:"view,omitempty"`

	// updateImage
	Base64Image   string `json:"base64Image,omitempty"`
	LevelInfoHTML string `json:"levelInfoHtml,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

func errorMessage(err error) Message {
	return Message{Type: TypeError, Message: err.Error()}
}
