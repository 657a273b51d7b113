package renderer

// Single forward-shading program shared by all meshes. Flat material
// color with a fixed directional light plus exponential fog.
const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
	vec4 worldPos = uModel * vec4(aPos, 1.0);
	vWorldPos = worldPos.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProjection * uView * worldPos;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;

uniform vec4 uColor;
uniform float uTransmission;
uniform vec3 uCameraPos;
uniform vec3 uFogColor;
uniform float uFogDensity;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
	float diffuse = max(dot(n, lightDir), 0.0);
	float ambient = 0.35;
	vec3 lit = uColor.rgb * min(ambient + diffuse, 1.2);

	// Transmissive surfaces glow rather than shade
	lit = mix(lit, uColor.rgb * 1.4, uTransmission);

	float dist = length(vWorldPos - uCameraPos);
	float fog = 1.0 - exp(-uFogDensity * dist * dist);
	vec3 color = mix(lit, uFogColor, clamp(fog, 0.0, 1.0));

	float alpha = mix(uColor.a, 0.55, uTransmission);
	FragColor = vec4(color, alpha);
}
`
