package events

import "github.com/atomicstack/popup-menu/internal/logging"

type MenuTracer struct{}

type LayoutTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Menu    = MenuTracer{}
	Layout  = LayoutTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (MenuTracer) Navigate(from, to string, back bool, depth int) {
	logging.Trace("menu.navigate", map[string]interface{}{
		"from":  from,
		"to":    to,
		"back":  back,
		"depth": depth,
	})
}

func (MenuTracer) Select(label, kind string) {
	logging.Trace("menu.select", map[string]interface{}{"label": label, "kind": kind})
}

func (MenuTracer) Open(label string, openedBy int) {
	logging.Trace("menu.open", map[string]interface{}{"group": label, "openedBy": openedBy})
}

func (MenuTracer) Close(label string, openedBy int) {
	logging.Trace("menu.close", map[string]interface{}{"group": label, "openedBy": openedBy})
}

func (MenuTracer) TypeAhead(query string, index int) {
	logging.Trace("menu.typeahead", map[string]interface{}{"query": query, "index": index})
}

func (LayoutTracer) Flush(level string, lines int) {
	logging.Trace("layout.flush", map[string]interface{}{"level": level, "lines": lines})
}

func (LayoutTracer) Cursor(line, offset int) {
	logging.Trace("layout.cursor", map[string]interface{}{"line": line, "offset": offset})
}

func (LayoutTracer) Redraw(pending string) {
	logging.Trace("layout.redraw", map[string]interface{}{"pending": pending})
}

func (LayoutTracer) Resize(width, capacity int) {
	logging.Trace("layout.resize", map[string]interface{}{"width": width, "capacity": capacity})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
