package clientgen

import "github.com/eventline-labs/eventc/pkg/spec"

// RootArtifacts returns the root-level build files for the output tree.
// These are pure functions of the API metadata (title, version) only, never
// of channels, messages, or schemas, so they are trivially regenerable.
func RootArtifacts(info spec.InfoSpec) (map[string]string, error) {
	data := templateData{
		Title:   info.Title,
		Version: info.Version,
	}
	return emitFiles(data, map[string]string{
		"Makefile":           "root/Makefile.tpl",
		"docker-compose.yml": "root/docker-compose.yml.tpl",
		"README.md":          "root/README.md.tpl",
		".gitignore":         "root/gitignore.tpl",
	})
}
