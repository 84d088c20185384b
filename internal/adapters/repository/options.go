package repository

import "io/fs"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithFileMode sets the permission bits of written dataset files.
func WithFileMode(mode fs.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

// WithInputPattern overrides the glob used to find processed files.
func WithInputPattern(pattern string) Option {
	return func(s *FileStore) {
		if pattern != "" {
			s.inputPattern = pattern
		}
	}
}

// WithInputDir sets the directory holding processed files.
func WithInputDir(dir string) Option {
	return func(s *FileStore) {
		s.inputDir = dir
	}
}
