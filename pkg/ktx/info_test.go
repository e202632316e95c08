package ktx

import "testing"

const sampleInfoJSON = `{
  "$schema": "https://schema.khronos.org/ktx/info_v0.json",
  "header": {
    "vkFormat": "VK_FORMAT_R16G16B16A16_SFLOAT",
    "typeSize": 2,
    "pixelWidth": 2048,
    "pixelHeight": 1024,
    "pixelDepth": 0,
    "layerCount": 0,
    "faceCount": 6,
    "levelCount": 12,
    "supercompressionScheme": "NONE"
  },
  "index": {}
}`

func TestParseInfo(t *testing.T) {
	h := parseInfo([]byte(sampleInfoJSON))
	if h.PixelWidth != 2048 || h.PixelHeight != 1024 {
		t.Errorf("size = %dx%d, want 2048x1024", h.PixelWidth, h.PixelHeight)
	}
	if h.FaceCount != 6 {
		t.Errorf("FaceCount = %d, want 6", h.FaceCount)
	}
	if !h.IsCubemap() {
		t.Error("IsCubemap() = false, want true")
	}
	if h.LevelCount != 12 {
		t.Errorf("LevelCount = %d, want 12", h.LevelCount)
	}
	// Zero counts normalize to 1 so selector omission logic can rely on them.
	if h.LayerCount != 1 {
		t.Errorf("LayerCount = %d, want 1 (normalized from 0)", h.LayerCount)
	}
	if h.PixelDepth != 1 {
		t.Errorf("PixelDepth = %d, want 1 (normalized from 0)", h.PixelDepth)
	}
	if h.Format != "VK_FORMAT_R16G16B16A16_SFLOAT" {
		t.Errorf("Format = %q", h.Format)
	}
}

func TestParseInfoMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "not json", data: "ktx info: cannot open file"},
		{name: "missing header", data: `{"index": {}}`},
		{name: "wrong types", data: `{"header": {"pixelWidth": "wide", "pixelHeight": 1, "faceCount": 1, "levelCount": 1}}`},
		{name: "invalid face count", data: `{"header": {"pixelWidth": 4, "pixelHeight": 4, "faceCount": 3, "levelCount": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := parseInfo([]byte(tt.data))
			if h.LevelCount != 1 || h.LayerCount != 1 || h.FaceCount != 1 || h.PixelDepth != 1 {
				t.Errorf("parseInfo() = %+v, want 1/1/1/1 fallback header", h)
			}
		})
	}
}
