package typestore

// GeneratorKind enumerates every predeclared type constructor, grounded
// directly on the original implementation's TypeGenerator enum
// (module/declaration/type/generator.rs::all_predeclared), which lists
// 26 concrete names rather than the collapsed "mat{C}x{R}"/"vec{N}"/
// "textures" table rows the distilled spec's 4.4 table uses as
// shorthand. Predeclaring the concrete set is what lets resolving
// `mat3x4` or `texture_storage_2d_array` by name actually succeed.
type GeneratorKind uint8

const (
	GenArray GeneratorKind = iota
	GenAtomic
	GenMat2x2
	GenMat2x3
	GenMat2x4
	GenMat3x2
	GenMat3x3
	GenMat3x4
	GenMat4x2
	GenMat4x3
	GenMat4x4
	GenPtr
	GenTexture1D
	GenTexture2D
	GenTexture2DArray
	GenTexture3D
	GenTextureCube
	GenTextureCubeArray
	GenTextureMultisampled2D
	GenTextureDepthMultisampled2D
	GenTextureStorage2D
	GenTextureStorage2DArray
	GenTextureStorage3D
	GenVec2
	GenVec3
	GenVec4
)

// generatorInfo bundles a generator's predeclared name with the
// structural data specializeGenerator needs (matrix/vector shape).
type generatorInfo struct {
	name       string
	minArgs    int
	maxArgs    int
	matCols    int // 0 unless this is a Mat generator
	matRows    int
	vecWidth   int // 0 unless this is a Vec generator
	notImplemented bool
}

// allPredeclaredGenerators mirrors all_predeclared()'s (name, kind)
// table and valid_arg_count_range()'s per-kind (min, max), in the same
// order the original lists them.
var allPredeclaredGenerators = map[GeneratorKind]generatorInfo{
	GenArray:  {name: "array", minArgs: 1, maxArgs: 2},
	GenAtomic: {name: "atomic", minArgs: 1, maxArgs: 1},

	GenMat2x2: {name: "mat2x2", minArgs: 1, maxArgs: 1, matCols: 2, matRows: 2},
	GenMat2x3: {name: "mat2x3", minArgs: 1, maxArgs: 1, matCols: 2, matRows: 3},
	GenMat2x4: {name: "mat2x4", minArgs: 1, maxArgs: 1, matCols: 2, matRows: 4},
	GenMat3x2: {name: "mat3x2", minArgs: 1, maxArgs: 1, matCols: 3, matRows: 2},
	GenMat3x3: {name: "mat3x3", minArgs: 1, maxArgs: 1, matCols: 3, matRows: 3},
	GenMat3x4: {name: "mat3x4", minArgs: 1, maxArgs: 1, matCols: 3, matRows: 4},
	GenMat4x2: {name: "mat4x2", minArgs: 1, maxArgs: 1, matCols: 4, matRows: 2},
	GenMat4x3: {name: "mat4x3", minArgs: 1, maxArgs: 1, matCols: 4, matRows: 3},
	GenMat4x4: {name: "mat4x4", minArgs: 1, maxArgs: 1, matCols: 4, matRows: 4},

	GenPtr: {name: "ptr", minArgs: 1, maxArgs: 3, notImplemented: true},

	GenTexture1D:                  {name: "texture_1d", minArgs: 1, maxArgs: 1, notImplemented: true},
	GenTexture2D:                  {name: "texture_2d", minArgs: 1, maxArgs: 1, notImplemented: true},
	GenTexture2DArray:             {name: "texture_2d_array", minArgs: 1, maxArgs: 1, notImplemented: true},
	GenTexture3D:                  {name: "texture_3d", minArgs: 1, maxArgs: 1, notImplemented: true},
	GenTextureCube:                {name: "texture_cube", minArgs: 1, maxArgs: 1, notImplemented: true},
	GenTextureCubeArray:           {name: "texture_cube_array", minArgs: 1, maxArgs: 1, notImplemented: true},
	GenTextureMultisampled2D:      {name: "texture_multisampled_2d", minArgs: 1, maxArgs: 1, notImplemented: true},
	GenTextureDepthMultisampled2D: {name: "texture_depth_multisampled_2d", minArgs: 0, maxArgs: 0, notImplemented: true},
	GenTextureStorage2D:           {name: "texture_storage_2d", minArgs: 2, maxArgs: 2, notImplemented: true},
	GenTextureStorage2DArray:      {name: "texture_storage_2d_array", minArgs: 2, maxArgs: 2, notImplemented: true},
	GenTextureStorage3D:           {name: "texture_storage_3d", minArgs: 2, maxArgs: 2, notImplemented: true},

	GenVec2: {name: "vec2", minArgs: 1, maxArgs: 1, vecWidth: 2},
	GenVec3: {name: "vec3", minArgs: 1, maxArgs: 1, vecWidth: 3},
	GenVec4: {name: "vec4", minArgs: 1, maxArgs: 1, vecWidth: 4},
}

// generatorOrder fixes iteration order for Store construction, matching
// the table's declaration order above (source order, not map order).
var generatorOrder = []GeneratorKind{
	GenArray, GenAtomic,
	GenMat2x2, GenMat2x3, GenMat2x4, GenMat3x2, GenMat3x3, GenMat3x4, GenMat4x2, GenMat4x3, GenMat4x4,
	GenPtr,
	GenTexture1D, GenTexture2D, GenTexture2DArray, GenTexture3D, GenTextureCube, GenTextureCubeArray,
	GenTextureMultisampled2D, GenTextureDepthMultisampled2D,
	GenTextureStorage2D, GenTextureStorage2DArray, GenTextureStorage3D,
	GenVec2, GenVec3, GenVec4,
}
