package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lakeside/internal/logger"
)

// Info describes the current GL context.
type Info struct {
	Version  string
	Renderer string
	GLSL     string
}

// Init loads the GL function pointers and sets the default state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init() (Info, error) {
	if err := gl.Init(); err != nil {
		return Info{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	info := Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("glsl", info.GLSL),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	return info, nil
}
