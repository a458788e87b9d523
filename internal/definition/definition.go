// Package definition loads menu definitions from YAML and turns them into a
// live menu.Group tree.
package definition

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a definition that parsed but does not describe a menu.
var ErrInvalid = errors.New("invalid menu definition")

const defaultTitle = "Menu"

// ParseError reports a definition file that could not be loaded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("menu definition %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Definition is the root of a menu file.
type Definition struct {
	Title        string  `yaml:"title"`
	BackAtBottom bool    `yaml:"back_at_bottom"`
	Items        []Entry `yaml:"items"`
}

// Entry is one menu entry. Exactly one of Items, Run, Tmux, Info or Action
// may be set; an entry with none of them is a plain informational item.
type Entry struct {
	ID           string   `yaml:"id"`
	Label        string   `yaml:"label"`
	BackAtBottom bool     `yaml:"back_at_bottom"`
	Items        []Entry  `yaml:"items"`
	Run          string   `yaml:"run"`
	Tmux         []string `yaml:"tmux"`
	Info         string   `yaml:"info"`
	Action       string   `yaml:"action"`
}

// IsGroup reports whether the entry opens a submenu.
func (e Entry) IsGroup() bool {
	return e.Items != nil
}

// IsCommand reports whether activating the entry does something.
func (e Entry) IsCommand() bool {
	return !e.IsGroup() && (e.Run != "" || len(e.Tmux) > 0 || e.Info != "" || e.Action != "")
}

// Count returns the number of entries in the definition, nested ones included.
func (d Definition) Count() int {
	return countEntries(d.Items)
}

func countEntries(entries []Entry) int {
	n := len(entries)
	for _, e := range entries {
		n += countEntries(e.Items)
	}
	return n
}

// Load reads and validates the definition at path.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, &ParseError{Path: path, Err: err}
	}
	def, err := Parse(data)
	if err != nil {
		return Definition{}, &ParseError{Path: path, Err: err}
	}
	return def, nil
}

// Parse decodes and validates a YAML definition. Missing IDs are derived
// from labels.
func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("decode yaml: %w", err)
	}
	if strings.TrimSpace(def.Title) == "" {
		def.Title = defaultTitle
	}
	if len(def.Items) == 0 {
		return Definition{}, fmt.Errorf("%w: no items", ErrInvalid)
	}
	if err := normalize(def.Items, ""); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func normalize(entries []Entry, parent string) error {
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		e := &entries[i]
		e.Label = strings.TrimSpace(e.Label)
		if e.Label == "" {
			return fmt.Errorf("%w: entry %d under %q has no label", ErrInvalid, i, rootID(parent))
		}
		if e.ID == "" {
			e.ID = Slug(e.Label)
		}
		if e.ID == "" {
			e.ID = fmt.Sprintf("item-%d", i+1)
		}
		if strings.Contains(e.ID, ":") || (parent == "" && e.ID == RootID) {
			return fmt.Errorf("%w: id %q is reserved or contains ':'", ErrInvalid, e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q under %q", ErrInvalid, e.ID, rootID(parent))
		}
		seen[e.ID] = struct{}{}
		if err := checkKind(*e); err != nil {
			return err
		}
		if e.IsGroup() {
			if err := normalize(e.Items, joinID(parent, e.ID)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkKind(e Entry) error {
	set := 0
	for _, ok := range []bool{e.IsGroup(), e.Run != "", len(e.Tmux) > 0, e.Info != "", e.Action != ""} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("%w: entry %q mixes items, run, tmux, info and action", ErrInvalid, e.ID)
	}
	if e.Action != "" && e.Action != ActionQuit {
		return fmt.Errorf("%w: entry %q has unknown action %q", ErrInvalid, e.ID, e.Action)
	}
	return nil
}

// Slug lowercases label and replaces every run of non-alphanumerics with '-'.
func Slug(label string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

func joinID(parent, id string) string {
	if parent == "" || parent == RootID {
		return id
	}
	return parent + ":" + id
}

func rootID(id string) string {
	if id == "" {
		return RootID
	}
	return id
}
