package pathtrace

// Test bridge exposing unexported kernels to pathtrace_test.
var (
	Terminate = terminate
	Smooth    = smooth
)
