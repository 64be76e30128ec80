// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name,
// or -1 if it is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Program is a linked program with a uniform location cache. Setters on
// inactive uniforms are no-ops, as in GL.
type Program struct {
	ID   uint32
	name string
	locs map[string]int32
}

// New compiles and links a named program.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	return &Program{ID: id, name: name, locs: make(map[string]int32)}, nil
}

// Name returns the name the program was created with.
func (p *Program) Name() string {
	return p.name
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Location returns the cached location of a uniform.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.locs[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Location(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Location(name), v)
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v [3]float32) {
	gl.Uniform3f(p.Location(name), v[0], v[1], v[2])
}

// SetVec3Array sets a vec3[] uniform from packed floats.
func (p *Program) SetVec3Array(name string, v []float32) {
	if len(v) < 3 {
		return
	}
	gl.Uniform3fv(p.Location(name), int32(len(v)/3), &v[0])
}

// SetFloatArray sets a float[] uniform.
func (p *Program) SetFloatArray(name string, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(p.Location(name), int32(len(v)), &v[0])
}

// SetMat3 sets a column-major mat3 uniform.
func (p *Program) SetMat3(name string, m [9]float32) {
	gl.UniformMatrix3fv(p.Location(name), 1, false, &m[0])
}

// SetMat4 sets a column-major mat4 uniform.
func (p *Program) SetMat4(name string, m *[16]float32) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, &m[0])
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
