package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "holystreak/internal/modules/"

// importRule decides whether a file at path may import a holystreak module
// package. It returns a reason when the import is forbidden.
type importRule func(path, importPath string) (string, bool)

func TestStreakLayerImports(t *testing.T) {
	t.Parallel()
	checkImports(t, filepath.Join("..", "modules"), moduleLayerRule)
}

func TestUIDependsOnContractsOnly(t *testing.T) {
	t.Parallel()
	checkImports(t, filepath.Join("..", "ui"), func(_, importPath string) (string, bool) {
		switch packageLayer(importPath) {
		case "dto", "domain":
			return "", true
		}
		return "ui may only use module dto and domain packages", false
	})
}

func TestCommandsGoThroughBootstrap(t *testing.T) {
	t.Parallel()
	checkImports(t, filepath.Join("..", "..", "cmd"), func(_, importPath string) (string, bool) {
		switch packageLayer(importPath) {
		case "dto", "domain":
			return "", true
		}
		return "commands reach modules through bootstrap", false
	})
}

// checkImports parses every non-test file under root and applies rule to each
// import of a holystreak module package.
func checkImports(t *testing.T, root string, rule importRule) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		slash := filepath.ToSlash(path)
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(importPath, modulesPrefix) {
				continue
			}
			if reason, ok := rule(slash, importPath); !ok {
				t.Errorf("%s imports %s: %s", slash, importPath, reason)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

// packageLayer returns the layer of a module import path, e.g.
// "holystreak/internal/modules/streak/port/in" -> "port/in".
func packageLayer(importPath string) string {
	rest := strings.TrimPrefix(importPath, modulesPrefix)
	if i := strings.Index(rest, "/"); i >= 0 {
		return rest[i+1:]
	}
	return ""
}

// fileLocation returns the module and layer a source file under
// internal/modules belongs to.
func fileLocation(path string) (module, layer string) {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part != "modules" || i+2 >= len(parts) {
			continue
		}
		module = parts[i+1]
		layer = parts[i+2]
		if (layer == "adapter" || layer == "port") && i+3 < len(parts)-1 {
			layer += "/" + parts[i+3]
		}
		return module, layer
	}
	return "", ""
}

// allowedLayers lists, per layer, which layers of the same module it may use.
var allowedLayers = map[string][]string{
	"domain":      {"domain"},
	"dto":         {"dto"},
	"port/in":     {"dto", "domain"},
	"port/out":    {"dto", "domain"},
	"service":     {"domain", "port/out"},
	"usecase":     {"domain", "dto", "port/in", "service"},
	"adapter/in":  {"dto", "port/in"},
	"adapter/out": {"domain", "port/out"},
}

func moduleLayerRule(path, importPath string) (string, bool) {
	module, layer := fileLocation(path)
	target := packageLayer(importPath)
	if !strings.HasPrefix(importPath, modulesPrefix+module+"/") {
		if target == "dto" || target == "port/in" {
			return "", true
		}
		return "other modules are reachable only through dto and port/in", false
	}
	allowed, known := allowedLayers[layer]
	if !known {
		return "", true
	}
	for _, a := range allowed {
		if a == target {
			return "", true
		}
	}
	return layer + " may not depend on " + target, false
}

func TestModuleLayerRuleRejectsInwardLeaks(t *testing.T) {
	t.Parallel()
	cases := []struct {
		file string
		dep  string
		ok   bool
	}{
		{"../modules/streak/domain/streak.go", modulesPrefix + "streak/service", false},
		{"../modules/streak/service/streak_service.go", modulesPrefix + "streak/adapter/out", false},
		{"../modules/streak/adapter/in/cli_handler.go", modulesPrefix + "streak/usecase", false},
		{"../modules/streak/usecase/streak.go", modulesPrefix + "other/service", false},
		{"../modules/streak/usecase/streak.go", modulesPrefix + "other/port/in", true},
		{"../modules/streak/adapter/out/sqlite_timestamp_store.go", modulesPrefix + "streak/port/out", true},
	}
	for _, tc := range cases {
		if _, ok := moduleLayerRule(tc.file, tc.dep); ok != tc.ok {
			t.Errorf("%s -> %s: expected allowed=%v", tc.file, tc.dep, tc.ok)
		}
	}
}
