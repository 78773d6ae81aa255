package lighting

import (
	"phong-engine/core"
	"phong-engine/math"
)

// GLSL 4.10 core sources computing the same terms as Ambient, AmbientDiffuse
// and Phong. Matrices are uploaded without transposition; see math.Mat4.

const vertexShaderGLSL = `#version 410 core

layout(location = 0) in vec3 a_pos;
layout(location = 1) in vec3 a_normal;

out vec3 v_normal;
out vec3 v_pos;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

void main() {
    gl_Position = projection * view * model * vec4(a_pos, 1.0);
    v_normal = a_normal;
    v_pos = (model * vec4(a_pos, 1.0)).xyz;
}
`

const ambientFragmentGLSL = `#version 410 core

in vec3 v_normal;
in vec3 v_pos;

out vec4 FragColor;

uniform vec3 u_objColor;
uniform vec3 u_lightColor;
uniform float u_ambientStrength;

void main() {
    vec3 ambient = u_ambientStrength * u_lightColor;
    FragColor = vec4(u_objColor * ambient, 1.0);
}
`

const diffuseFragmentGLSL = `#version 410 core

in vec3 v_normal;
in vec3 v_pos;

out vec4 FragColor;

uniform vec3 u_objColor;
uniform vec3 u_lightColor;
uniform vec3 u_lightDirection;
uniform float u_ambientStrength;

void main() {
    vec3 ambient = u_ambientStrength * u_lightColor;

    vec3 normal = normalize(v_normal);
    vec3 toLight = normalize(-u_lightDirection);
    float diffuseStrength = max(dot(normal, toLight), 0.0);
    vec3 diffuse = diffuseStrength * u_lightColor;

    FragColor = vec4(u_objColor * (ambient + diffuse), 1.0);
}
`

const phongFragmentGLSL = `#version 410 core

in vec3 v_normal;
in vec3 v_pos;

out vec4 FragColor;

uniform vec3 viewPos;

struct Material {
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
    float shininess;
};

struct Light {
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

uniform Material material;
uniform Light light;

void main() {
    vec3 ambient = material.ambient * light.ambient;

    vec3 normal = normalize(v_normal);
    vec3 toLight = normalize(-light.direction);
    float diffuseStrength = max(dot(normal, toLight), 0.0);
    vec3 diffuse = light.diffuse * (diffuseStrength * material.diffuse);

    vec3 specular = vec3(0.0);
    vec3 toEye = viewPos - v_pos;
    if (dot(toEye, toEye) >= 1e-12) {
        vec3 viewDir = normalize(toEye);
        vec3 reflectDir = reflect(light.direction, normal);
        float spec = pow(max(dot(viewDir, reflectDir), 0.0), material.shininess);
        specular = light.specular * (spec * material.specular);
    }

    FragColor = vec4(ambient + diffuse + specular, 1.0);
}
`

// Uniform names shared by the shader sources and the GPU renderer.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformViewPos    = "viewPos"

	UniformObjectColor     = "u_objColor"
	UniformLightColor      = "u_lightColor"
	UniformLightDirection  = "u_lightDirection"
	UniformAmbientStrength = "u_ambientStrength"

	UniformMaterialAmbient   = "material.ambient"
	UniformMaterialDiffuse   = "material.diffuse"
	UniformMaterialSpecular  = "material.specular"
	UniformMaterialShininess = "material.shininess"

	UniformLightDir      = "light.direction"
	UniformLightAmbient  = "light.ambient"
	UniformLightDiffuse  = "light.diffuse"
	UniformLightSpecular = "light.specular"
)

// VertexShaderSource is shared by every variant. Attribute 0 is the
// position, 1 the normal, which is passed through in object space.
func VertexShaderSource() string {
	return vertexShaderGLSL
}

// FragmentShaderSource returns the fragment stage for v, or "" for an
// unknown variant.
func FragmentShaderSource(v Variant) string {
	switch v {
	case VariantAmbient:
		return ambientFragmentGLSL
	case VariantDiffuse:
		return diffuseFragmentGLSL
	case VariantPhong:
		return phongFragmentGLSL
	}
	return ""
}

// Uniforms lists the uniforms the fragment stage of v reads in addition to
// the transform uniforms.
func Uniforms(v Variant) []string {
	switch v {
	case VariantAmbient:
		return []string{UniformObjectColor, UniformLightColor, UniformAmbientStrength}
	case VariantDiffuse:
		return []string{UniformObjectColor, UniformLightColor, UniformLightDirection, UniformAmbientStrength}
	case VariantPhong:
		return []string{
			UniformViewPos,
			UniformMaterialAmbient, UniformMaterialDiffuse, UniformMaterialSpecular, UniformMaterialShininess,
			UniformLightDir, UniformLightAmbient, UniformLightDiffuse, UniformLightSpecular,
		}
	}
	return nil
}

// UniformSetter receives scene-constant uniform values by name.
type UniformSetter interface {
	SetVec3(name string, v math.Vec3)
	SetColor(name string, c core.Color)
	SetFloat(name string, f float32)
}

// SetUniforms uploads the scene-constant parameters the fragment stage of
// e.Variant reads. viewPos changes every frame and is left to the caller.
func (e Evaluator) SetUniforms(s UniformSetter) {
	switch e.Variant {
	case VariantAmbient, VariantDiffuse:
		s.SetColor(UniformObjectColor, e.Object.ObjectColor)
		s.SetColor(UniformLightColor, e.Object.LightColor)
		s.SetFloat(UniformAmbientStrength, e.Object.AmbientStrength)
		if e.Variant == VariantDiffuse {
			s.SetVec3(UniformLightDirection, e.Object.LightDirection)
		}
	case VariantPhong:
		s.SetColor(UniformMaterialAmbient, e.Material.Ambient)
		s.SetColor(UniformMaterialDiffuse, e.Material.Diffuse)
		s.SetColor(UniformMaterialSpecular, e.Material.Specular)
		s.SetFloat(UniformMaterialShininess, e.Material.Shininess)
		s.SetVec3(UniformLightDir, e.Light.Direction)
		s.SetColor(UniformLightAmbient, e.Light.Ambient)
		s.SetColor(UniformLightDiffuse, e.Light.Diffuse)
		s.SetColor(UniformLightSpecular, e.Light.Specular)
	}
}
