package events

import "github.com/atomicstack/popup-menu/internal/logging"

type DefinitionTracer struct{}

var Definition = DefinitionTracer{}

func (DefinitionTracer) Load(path string, items int) {
	logging.Trace("definition.load", map[string]interface{}{"path": path, "items": items})
}

func (DefinitionTracer) Reload(path string, added, removed, relabelled int) {
	logging.Trace("definition.reload", map[string]interface{}{
		"path":       path,
		"added":      added,
		"removed":    removed,
		"relabelled": relabelled,
	})
}

func (DefinitionTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("definition.error", map[string]interface{}{"path": path, "error": err.Error()})
}
