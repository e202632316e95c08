// Package ktx shells out to the KTX-Software `ktx` tool for container
// metadata and sub-image extraction. Decoding stays in the external tool.
package ktx

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"

	"texpeek/pkg/executil"
	"texpeek/pkg/texture"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed info_schema.json
var infoSchema string

// Tool wraps one ktx binary.
type Tool struct {
	Path string
}

func New(path string) *Tool {
	if path == "" {
		path = "ktx"
	}
	return &Tool{Path: path}
}

type infoOutput struct {
	Header struct {
		VkFormat               string `json:"vkFormat"`
		PixelWidth             int    `json:"pixelWidth"`
		PixelHeight            int    `json:"pixelHeight"`
		PixelDepth             int    `json:"pixelDepth"`
		LayerCount             int    `json:"layerCount"`
		FaceCount              int    `json:"faceCount"`
		LevelCount             int    `json:"levelCount"`
		SupercompressionScheme string `json:"supercompressionScheme"`
	} `json:"header"`
}

// Info reads the container header via `ktx info --format json`. Older tool
// releases only accept the --format=json spelling, so a failed run is
// retried once with that variant. Malformed or absent metadata never
// fails: the synthetic 1/1/1/1 header keeps the preview usable.
func (t *Tool) Info(ctx context.Context, path string) texture.Header {
	out, err := executil.Output(ctx, t.Path, "info", "--format", "json", path)
	if err != nil {
		slog.Debug("ktx info failed, retrying with --format=json", "err", err)
		out, err = executil.Output(ctx, t.Path, "info", "--format=json", path)
	}
	if err != nil {
		slog.Warn("ktx info failed, using fallback header", "path", path, "err", err)
		return texture.FallbackHeader()
	}
	return parseInfo([]byte(out))
}

func parseInfo(data []byte) texture.Header {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(infoSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil || !result.Valid() {
		slog.Warn("ktx info output failed schema validation, using fallback header", "err", err)
		return texture.FallbackHeader()
	}

	var out infoOutput
	if err := json.Unmarshal(data, &out); err != nil {
		slog.Warn("ktx info output is not valid JSON, using fallback header", "err", err)
		return texture.FallbackHeader()
	}

	return texture.Header{
		PixelWidth:  out.Header.PixelWidth,
		PixelHeight: out.Header.PixelHeight,
		PixelDepth:  out.Header.PixelDepth,
		LayerCount:  out.Header.LayerCount,
		FaceCount:   out.Header.FaceCount,
		LevelCount:  out.Header.LevelCount,
		Format:      out.Header.VkFormat,
	}.Normalize()
}
