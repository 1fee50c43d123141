package clientgen

// emitGo renders the Go client scaffold. Paths are relative to the go/
// subdirectory of the output tree.
func emitGo(data templateData) (map[string]string, error) {
	return emitFiles(data, map[string]string{
		"client.go":      "go/client.go.tpl",
		"transport.go":   "go/transport.go.tpl",
		"client_test.go": "go/client_test.go.tpl",
		"go.mod":         "go/go.mod.tpl",
		"Dockerfile":     "go/Dockerfile.tpl",
		"ci.yml":         "go/ci.yml.tpl",
	})
}
