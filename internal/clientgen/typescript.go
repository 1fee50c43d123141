package clientgen

// emitTypeScript renders the TypeScript client scaffold. Paths are relative
// to the typescript/ subdirectory of the output tree.
func emitTypeScript(data templateData) (map[string]string, error) {
	return emitFiles(data, map[string]string{
		"src/client.ts":       "typescript/client.ts.tpl",
		"src/transport.ts":    "typescript/transport.ts.tpl",
		"test/client.test.ts": "typescript/client.test.ts.tpl",
		"package.json":        "typescript/package.json.tpl",
		"Dockerfile":          "typescript/Dockerfile.tpl",
		"ci.yml":              "typescript/ci.yml.tpl",
	})
}
