package clientgen

// emitPython renders the Python client scaffold. Paths are relative to the
// python/ subdirectory of the output tree.
func emitPython(data templateData) (map[string]string, error) {
	return emitFiles(data, map[string]string{
		"client.py":      "python/client.py.tpl",
		"transport.py":   "python/transport.py.tpl",
		"test_client.py": "python/test_client.py.tpl",
		"pyproject.toml": "python/pyproject.toml.tpl",
		"Dockerfile":     "python/Dockerfile.tpl",
		"ci.yml":         "python/ci.yml.tpl",
	})
}
