package repository

import "golang.org/x/mod/modfile"

// Project describes the project enclosing an analysed path.
type Project struct {
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"`
	RootPath     string `yaml:"rootPath" json:"rootPath"`
	RelativePath string `yaml:"relativePath" json:"relativePath"`
	Origin       string `yaml:"origin,omitempty" json:"origin,omitempty"`
	// GoModule is set for go projects with a parsable go.mod.
	GoModule *modfile.Module `yaml:"-" json:"-"`
}
