package config

import (
	"bufio"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/composegen/internal/render"
)

// RenderContext resolves the enhanced-components flag once, at configuration
// time. In auto mode the host project's go.mod is probed for the widgets
// module; the result is fixed for the whole session and never re-probed
// during traversal.
func (c *Config) RenderContext() render.Context {
	switch c.Components.Enhanced {
	case EnhancedOn:
		return render.Context{UseEnhancedComponents: true}
	case EnhancedOff:
		return render.Context{UseEnhancedComponents: false}
	default:
		enhanced := moduleRequired("go.mod", c.Components.WidgetsImport)
		slog.Debug("resolved enhanced components",
			slog.Bool("enhanced", enhanced),
			slog.String("widgets_import", c.Components.WidgetsImport))
		return render.Context{UseEnhancedComponents: enhanced}
	}
}

// moduleRequired reports whether the go.mod at path requires (or is) a module
// that covers importPath. A missing or unreadable go.mod means not required.
func moduleRequired(path, importPath string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "require ")
		line = strings.TrimPrefix(line, "module ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		mod := fields[0]
		if mod == importPath || strings.HasPrefix(importPath, mod+"/") {
			return true
		}
	}
	return false
}
