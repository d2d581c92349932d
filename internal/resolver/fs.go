package resolver

//go:generate mockgen -source=fs.go -destination=mock_fs_test.go -package=resolver

import (
	"io/fs"
	"os"
)

// FileSystem is the read-only view of the filesystem the resolver needs.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// OS is the FileSystem backed by the host operating system.
type OS struct{}

func (OS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
