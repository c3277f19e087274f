package domain

// Origin identifies who owns a test file.
type Origin string

const (
	// OriginCustom marks human-authored tests that survive regeneration.
	OriginCustom Origin = "custom"
	// OriginGenerated marks tool-owned tests rewritten on every update.
	OriginGenerated Origin = "generated"
	// OriginUnknown marks files outside both roots.
	OriginUnknown Origin = "unknown"
)

// TestFile represents a test file to be executed
type TestFile struct {
	Path     string // Full path to the test file
	FileName string // Just the filename
	Origin   Origin // Who owns the file
}

// TestCase represents a single test case within a test file
type TestCase struct {
	Name     string // Test function or method name
	FilePath string // Path to the test file containing this case
}
