package resolver

// UnknownPackage names the consuming package when no metadata file says
// otherwise.
const UnknownPackage = "<unknown package>"

// PackageName reads the "name" property of the nearest package metadata
// file. It never fails: a missing, unreadable or nameless file yields
// UnknownPackage.
func PackageName(fsys FileSystem, start, filename string) string {
	res := Load(fsys, start, filename)
	if res.Outcome != Loaded {
		return UnknownPackage
	}

	var meta struct {
		Name string `yaml:"name"`
	}
	if err := res.Node.Decode(&meta); err != nil || meta.Name == "" {
		return UnknownPackage
	}
	return meta.Name
}
