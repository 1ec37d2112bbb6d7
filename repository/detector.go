package repository

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

const unknownType = "unknown"

type marker struct {
	file        string
	projectType string
}

// Detector finds the project root enclosing a path.
type Detector struct {
	fs      afs.Service
	markers []marker
}

// New creates a detector recognising go, java, python and javascript build files,
// falling back to a git checkout.
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []marker{
			{file: "go.mod", projectType: "go"},
			{file: "pom.xml", projectType: "java"},
			{file: "build.gradle", projectType: "java"},
			{file: "build.gradle.kts", projectType: "java"},
			{file: "pyproject.toml", projectType: "python"},
			{file: "setup.py", projectType: "python"},
			{file: "requirements.txt", projectType: "python"},
			{file: "package.json", projectType: "javascript"},
			{file: ".git", projectType: "git"},
		},
	}
}

var (
	artifactID  = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	gradleName  = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)
	pythonName  = regexp.MustCompile(`(?m)^\s*name\s*=\s*["']([^"']+)["']`)
	originEntry = `[remote "origin"]`
)

// DetectProject returns the project enclosing path. A path outside any project yields
// an unknown project rooted at path itself.
func (d *Detector) DetectProject(path string) (*Project, error) {
	location, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(location)
	if err != nil {
		return nil, err
	}
	dir := location
	if !info.IsDir() {
		dir = filepath.Dir(location)
	}
	project := &Project{Type: unknownType, RootPath: dir, Name: filepath.Base(dir)}
	if root, projectType := d.findRoot(dir); root != "" {
		project.RootPath = root
		project.Type = projectType
		project.Name = filepath.Base(root)
	}
	if rel, err := filepath.Rel(project.RootPath, location); err == nil {
		project.RelativePath = filepath.ToSlash(rel)
	}
	d.describe(project)
	return project, nil
}

func (d *Detector) findRoot(dir string) (string, string) {
	for {
		for _, candidate := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, candidate.file)); err == nil {
				return dir, candidate.projectType
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func (d *Detector) describe(project *Project) {
	root := project.RootPath
	switch project.Type {
	case "go":
		location := filepath.Join(root, "go.mod")
		if content := d.read(location); len(content) > 0 {
			if mod, _ := modfile.ParseLax(location, content, nil); mod != nil && mod.Module != nil {
				project.GoModule = mod.Module
				project.Name = mod.Module.Mod.Path
			}
		}
	case "java":
		if name := d.match(filepath.Join(root, "pom.xml"), artifactID); name != "" {
			project.Name = name
		} else if name := d.match(filepath.Join(root, "settings.gradle"), gradleName); name != "" {
			project.Name = name
		}
	case "python":
		for _, candidate := range []string{"pyproject.toml", "setup.py"} {
			if name := d.match(filepath.Join(root, candidate), pythonName); name != "" {
				project.Name = name
				break
			}
		}
	case "javascript":
		manifest := struct {
			Name string `json:"name"`
		}{}
		if content := d.read(filepath.Join(root, "package.json")); len(content) > 0 {
			if err := jsoniter.Unmarshal(content, &manifest); err == nil && manifest.Name != "" {
				project.Name = manifest.Name
			}
		}
	}
	project.Origin = d.origin(root)
}

func (d *Detector) read(location string) []byte {
	content, err := d.fs.DownloadWithURL(context.Background(), location)
	if err != nil {
		return nil
	}
	return content
}

func (d *Detector) match(location string, expr *regexp.Regexp) string {
	content := d.read(location)
	if len(content) == 0 {
		return ""
	}
	if matches := expr.FindSubmatch(content); len(matches) > 1 {
		return string(matches[1])
	}
	return ""
}

// origin returns the url of the origin remote of the enclosing git checkout.
func (d *Detector) origin(dir string) string {
	for {
		if content := d.read(filepath.Join(dir, ".git", "config")); len(content) > 0 {
			scanner := bufio.NewScanner(bytes.NewReader(content))
			inOrigin := false
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if strings.HasPrefix(line, "[") {
					inOrigin = line == originEntry
					continue
				}
				if inOrigin && strings.HasPrefix(line, "url") {
					if _, value, ok := strings.Cut(line, "="); ok {
						return strings.TrimSpace(value)
					}
				}
			}
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
