package tonemap

// GLSL defines toneMap(vec3 color, float exposure, int mode) and
// linearToSRGB(vec3). Mode values match the Go constants.
const GLSL = `
const mat3 ACESInputMat = mat3(
	vec3(0.59719, 0.07600, 0.02840),
	vec3(0.35458, 0.90834, 0.13383),
	vec3(0.04823, 0.01566, 0.83777)
);
const mat3 ACESOutputMat = mat3(
	vec3( 1.60475, -0.10208, -0.00327),
	vec3(-0.53108,  1.10813, -0.07276),
	vec3(-0.07367, -0.00605,  1.07602)
);

vec3 RRTAndODTFit(vec3 v) {
	vec3 a = v * (v + 0.0245786) - 0.000090537;
	vec3 b = v * (0.983729 * v + 0.4329510) + 0.238081;
	return a / b;
}

vec3 toneMap(vec3 color, float exposure, int mode) {
	if (mode == 1) {
		return clamp(color * exposure, 0.0, 1.0);
	}
	if (mode == 2) {
		color *= exposure;
		return clamp(color / (vec3(1.0) + color), 0.0, 1.0);
	}
	if (mode == 3) {
		color *= exposure / 0.6;
		color = ACESInputMat * color;
		color = RRTAndODTFit(color);
		color = ACESOutputMat * color;
		return clamp(color, 0.0, 1.0);
	}
	return color;
}

vec3 linearToSRGB(vec3 c) {
	vec3 lo = c * 12.92;
	vec3 hi = 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055;
	return mix(hi, lo, vec3(lessThanEqual(c, vec3(0.0031308))));
}
`
