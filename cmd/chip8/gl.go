package main

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/p47t/chip8emu"
)

type glFrontend struct {
	screenData            []byte
	window                *glfw.Window
	fullScreenTriangleVAO uint32
	bufferTexture         uint32
	shaderProgram         uint32
}

const vertexShader = `
#version 330

noperspective out vec2 TexCoord;

void main(void) {
    TexCoord.x = (gl_VertexID == 2)? 2.0: 0.0;
    TexCoord.y = (gl_VertexID == 1)? 2.0: 0.0;

	gl_Position = vec4(2.0 * TexCoord - 1.0, 0.0, 1.0);
}
`

const fragmentShader = `
#version 330

uniform sampler2D buffer;
noperspective in vec2 TexCoord;

out vec3 outColor;

void main(void) {
	outColor = texture(buffer, TexCoord).rgb;
}
`

var glfwKeyMap = map[glfw.Key]int{
	glfw.Key1: 0x1,
	glfw.Key2: 0x2,
	glfw.Key3: 0x3,
	glfw.Key4: 0xC,
	glfw.KeyQ: 0x4,
	glfw.KeyW: 0x5,
	glfw.KeyE: 0x6,
	glfw.KeyR: 0xD,
	glfw.KeyA: 0x7,
	glfw.KeyS: 0x8,
	glfw.KeyD: 0x9,
	glfw.KeyF: 0xE,
	glfw.KeyZ: 0xA,
	glfw.KeyX: 0x0,
	glfw.KeyC: 0xB,
	glfw.KeyV: 0xF,
}

func newGLFrontend(sys *chip8.System, scale int) (*glFrontend, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	fe := &glFrontend{}

	// Create window
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(ScreenWidth*scale, ScreenHeight*scale, "Chip8", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	fe.window = window
	fe.window.MakeContextCurrent()

	// Key handling
	fe.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		c8Key, ok := glfwKeyMap[key]
		if !ok {
			if key == glfw.KeyEscape && action == glfw.Press {
				w.SetShouldClose(true)
			}
			return
		}
		switch action {
		case glfw.Press:
			sys.OnKeyDown(c8Key)
		case glfw.Release:
			sys.OnKeyUp(c8Key)
		}
	})

	// Initialize Glow
	if err := gl.Init(); err != nil {
		fe.Terminate()
		return nil, err
	}
	gl.ClearColor(1.0, 0.0, 0.0, 1.0)

	gl.GenVertexArrays(1, &fe.fullScreenTriangleVAO)
	gl.BindVertexArray(fe.fullScreenTriangleVAO)

	if err := fe.linkProgram(); err != nil {
		fe.Terminate()
		return nil, err
	}

	fe.screenData = make([]byte, ScreenWidth*ScreenHeight*3)
	for i := 0; i < len(fe.screenData); i++ {
		fe.screenData[i] = 0x80
	}

	gl.GenTextures(1, &fe.bufferTexture)
	gl.BindTexture(gl.TEXTURE_2D, fe.bufferTexture)

	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGB,
		ScreenWidth, ScreenHeight, 0,
		gl.RGB, gl.UNSIGNED_BYTE, unsafe.Pointer(&fe.screenData[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	bufferLoc := gl.GetUniformLocation(fe.shaderProgram, gl.Str("buffer"+"\x00"))
	gl.Uniform1i(bufferLoc, 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(fe.shaderProgram)

	return fe, nil
}

func (fe *glFrontend) linkProgram() error {
	var status int32

	fe.shaderProgram = gl.CreateProgram()

	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)
	gl.AttachShader(fe.shaderProgram, vs)
	defer gl.DetachShader(fe.shaderProgram, vs)

	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)
	gl.AttachShader(fe.shaderProgram, fs)
	defer gl.DetachShader(fe.shaderProgram, fs)

	gl.LinkProgram(fe.shaderProgram)
	gl.GetProgramiv(fe.shaderProgram, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return fmt.Errorf("failed to link shaderProgram")
	}
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to compile %v: %v", source, log)
	}

	return shader, nil
}

func (fe *glFrontend) PollInput(sys *chip8.System) bool {
	glfw.PollEvents()
	return fe.window.ShouldClose()
}

func (fe *glFrontend) Render(sys *chip8.System) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	fb := sys.Framebuffer()
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			// texture rows run bottom to top
			offset := ((ScreenHeight-y-1)*ScreenWidth + x) * 3
			v := byte(fb[y*ScreenWidth+x])
			fe.screenData[offset], fe.screenData[offset+1], fe.screenData[offset+2] = v, v, v
		}
	}

	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		ScreenWidth, ScreenHeight, gl.RGB, gl.UNSIGNED_BYTE,
		unsafe.Pointer(&fe.screenData[0]))

	gl.BindVertexArray(fe.fullScreenTriangleVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	fe.window.SwapBuffers()
}

func (fe *glFrontend) Terminate() {
	if fe.fullScreenTriangleVAO != 0 {
		gl.DeleteVertexArrays(1, &fe.fullScreenTriangleVAO)
	}
	if fe.bufferTexture != 0 {
		gl.DeleteTextures(1, &fe.bufferTexture)
	}
	if fe.shaderProgram != 0 {
		gl.DeleteProgram(fe.shaderProgram)
	}
	glfw.Terminate()
}
